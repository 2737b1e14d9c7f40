package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"startinsight/adapters/excel"
	"startinsight/ports"
	"startinsight/ui/services"
)

//go:embed templates/*.html templates/fragments/*.html static/*
var embeddedFiles embed.FS

// App is the server-rendered insight UI.
type App struct {
	router    *chi.Mux
	repo      ports.InsightRepository
	templates *template.Template
	render    *services.RenderService
	exporter  *excel.Exporter
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates the UI application over an insight repository.
func NewApp(repo ports.InsightRepository) (*App, error) {
	funcMap := template.FuncMap{
		"until": func(n int) []int {
			res := make([]int, n)
			for i := range res {
				res[i] = i
			}
			return res
		},
		"add": func(a, b int) int { return a + b },
		// stars renders a 0-5 count as filled/hollow glyphs, e.g. "★★★☆☆".
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return "★★★★★"[:n*3] + "☆☆☆☆☆"[:(5-n)*3]
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles,
		"templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		repo:      repo,
		templates: templates,
		render:    services.NewRenderService(templates),
		exporter:  excel.NewExporter(),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", http.StripPrefix("/", staticFS))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/insights/{id}", a.handleInsightDetail)

	// HTMX fragment endpoints
	a.router.Get("/fragments/insights/{id}/trend", a.handleTrendFragment)

	// Export
	a.router.Get("/export/insights.xlsx", a.handleExport)
}

// Router exposes the handler for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the UI server.
func (a *App) Start(addr string) error {
	return http.ListenAndServe(addr, a.router)
}
