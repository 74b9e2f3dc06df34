package ui

import (
	"strconv"
	"strings"

	"perfdash/internal/dashboard"
	"perfdash/internal/errors"
	"perfdash/internal/filter"

	"github.com/gin-gonic/gin"
)

// parseCriteria reads the sidebar selection from the query string. Absent
// parameters take their value from the default selection; blank score bounds
// do too.
func parseCriteria(c *gin.Context, board *dashboard.Board) (filter.Criteria, error) {
	def := board.DefaultCriteria()

	scoreMin, err := queryInt(c, "score_min", def.ScoreMin)
	if err != nil {
		return filter.Criteria{}, err
	}
	scoreMax, err := queryInt(c, "score_max", def.ScoreMax)
	if err != nil {
		return filter.Criteria{}, err
	}

	return filter.NewCriteria(board.Dataset(),
		queryString(c, "gender", def.Gender),
		scoreMin,
		scoreMax,
		queryString(c, "marital_status", def.MaritalStatus))
}

// queryString keeps a present but empty value, which is a valid category
func queryString(c *gin.Context, key, fallback string) string {
	if v, ok := c.GetQuery(key); ok {
		return strings.TrimSpace(v)
	}
	return fallback
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Newf(errors.CodeInvalidInput, "%s must be an integer, got %q", key, raw)
	}
	return v, nil
}
