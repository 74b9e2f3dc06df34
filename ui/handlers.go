package ui

import (
	"fmt"
	"net/http"

	"perfdash/adapters/excel"
	"perfdash/internal/dashboard"
	"perfdash/internal/errors"
	"perfdash/internal/filter"
	"perfdash/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const exportBaseName = "employee_data_filtered"

// indexPage is the data behind index.html
type indexPage struct {
	Narrative *dashboard.Narrative
	View      *dashboard.View
	HasLogo   bool
}

func (s *Server) handleIndex(c *gin.Context) {
	criteria, err := parseCriteria(c, s.board)
	if err != nil {
		// a bookmarked URL with stale values still gets a page
		s.logger.Warn("ignoring invalid criteria on index", zap.Error(err))
		criteria = s.board.DefaultCriteria()
	}

	view := s.render(criteria)
	s.renderTemplate(c, pageIndex, indexPage{
		Narrative: s.narrative,
		View:      view,
		HasLogo:   s.logo != nil,
	})
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, s.board.FilterOptions())
}

func (s *Server) handleView(c *gin.Context) {
	criteria, err := parseCriteria(c, s.board)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.render(criteria))
}

func (s *Server) handleTableFragment(c *gin.Context) {
	criteria, err := parseCriteria(c, s.board)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.renderTemplate(c, fragmentTable, s.render(criteria))
}

func (s *Server) handleExport(c *gin.Context) {
	writer, err := excel.NewWriter(c.DefaultQuery("format", "csv"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	criteria, err := parseCriteria(c, s.board)
	if err != nil {
		s.respondError(c, err)
		return
	}

	view := s.render(criteria)
	data, err := writer.WriteTable(view.Columns, view.Rows)
	if err != nil {
		s.respondError(c, errors.Wrap(err, "failed to export filtered rows"))
		return
	}

	filename := fmt.Sprintf("%s.%s", exportBaseName, writer.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, writer.ContentType(), data)
}

func (s *Server) handleLogo(c *gin.Context) {
	if s.logo == nil {
		s.respondError(c, errors.AssetMissing("logo"))
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, s.logo.ContentType, s.logo.Data)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"records": s.board.Dataset().Len(),
	})
}

// render recomputes the view and records it
func (s *Server) render(criteria filter.Criteria) *dashboard.View {
	view := s.board.Render(criteria)
	metrics.ObserveRender(view.RowCount)
	return view
}

func (s *Server) respondError(c *gin.Context, err error) {
	// the access log reports c.Errors
	_ = c.Error(err)
	c.AbortWithStatusJSON(errors.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
