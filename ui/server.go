package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"perfdash/internal/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Template names
const (
	pageIndex     = "index.html"
	fragmentTable = "fragments/filtered_table.html"
)

// Server serves the dashboard page, its JSON API and the HTMX fragments
type Server struct {
	router    *gin.Engine
	board     *dashboard.Board
	narrative *dashboard.Narrative
	logo      *Asset
	templates *template.Template
	files     fs.FS
	logger    *zap.Logger
}

// Dependencies are the startup-loaded values a Server renders from
type Dependencies struct {
	Board     *dashboard.Board
	Narrative *dashboard.Narrative
	Logo      *Asset
	Logger    *zap.Logger
}

// NewServer builds the gin engine. files must contain ui/templates and ui/static.
func NewServer(files fs.FS, deps Dependencies) (*Server, error) {
	if deps.Board == nil {
		return nil, fmt.Errorf("ui: board is required")
	}
	if deps.Narrative == nil {
		deps.Narrative = &dashboard.Narrative{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:    gin.New(),
		board:     deps.Board,
		narrative: deps.Narrative,
		logo:      deps.Logo,
		files:     files,
		logger:    logger.Named("Server"),
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()

	return s, nil
}

// Handler exposes the engine for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"fixed": func(v float64, prec int) string { return fmt.Sprintf("%.*f", prec, v) },
		"add":   func(a, b int) int { return a + b },
	}

	templatesFS, err := fs.Sub(s.files, "ui/templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	s.templates = template.New("").Funcs(funcMap)
	for _, name := range []string{pageIndex, fragmentTable} {
		content, err := fs.ReadFile(templatesFS, name)
		if err != nil {
			return fmt.Errorf("failed to read template %s: %w", name, err)
		}
		if _, err := s.templates.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
	}

	s.logger.Debug("templates parsed", zap.String("defined", s.templates.DefinedTemplates()))
	return nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/logo", s.handleLogo)
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	api.GET("/options", s.handleOptions)
	api.GET("/view", s.handleView)
	api.GET("/export", s.handleExport)

	s.router.GET("/fragments/table", s.handleTableFragment)
}
