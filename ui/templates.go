package ui

import (
	"bytes"
	"fmt"
	"net/http"

	"perfdash/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// renderTemplate executes a template with the given data
func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	// Render to a buffer first so a failing template never sends a partial page
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template rendering failed",
			zap.String("template", templateName),
			zap.String("data_type", fmt.Sprintf("%T", data)),
			zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "template rendering failed",
			"code":  errors.CodeInternalError,
		})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.logger.Warn("failed to write template response", zap.String("template", templateName), zap.Error(err))
	}
}
