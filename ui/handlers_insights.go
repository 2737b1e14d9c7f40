package ui

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"startinsight/domain/core"
	"startinsight/domain/evidence"
	"startinsight/domain/insight"
	"startinsight/ports"
)

const listPageSize = 24

// indexPageData feeds templates/index.html.
type indexPageData struct {
	Insights []evidence.View
	Total    int
	Page     int
	HasNext  bool
	HasPrev  bool
	Source   string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 0 {
		page = 0
	}
	source := r.URL.Query().Get("source")

	insights, err := a.repo.List(r.Context(), ports.InsightFilters{
		Source: source,
		Limit:  listPageSize,
		Offset: page * listPageSize,
	})
	if err != nil {
		a.renderErrorPage(w, "Failed to load insights", err)
		return
	}
	total, err := a.repo.Count(r.Context())
	if err != nil {
		a.renderErrorPage(w, "Failed to count insights", err)
		return
	}

	data := indexPageData{
		Total:   total,
		Page:    page,
		HasNext: (page+1)*listPageSize < total,
		HasPrev: page > 0,
		Source:  source,
	}
	for _, ins := range insights {
		data.Insights = append(data.Insights, evidence.Normalize(ins))
	}

	a.renderPage(w, "index.html", data)
}

// detailPageData feeds templates/insight_detail.html.
type detailPageData struct {
	View         evidence.View
	ProblemHTML  template.HTML
	SolutionHTML template.HTML
	Chart        TrendChartView
	RawSignal    *insight.RawSignal
}

func (a *App) handleInsightDetail(w http.ResponseWriter, r *http.Request) {
	ins, ok := a.loadInsight(w, r)
	if !ok {
		return
	}

	selected, _ := strconv.Atoi(r.URL.Query().Get("kw"))
	data := detailPageData{
		View:         evidence.Normalize(ins),
		ProblemHTML:  a.render.Markdown(ins.ProblemStatement),
		SolutionHTML: a.render.Markdown(ins.ProposedSolution),
		Chart:        BuildTrendChart(ins.ID.String(), ins.TrendSeries, selected),
		RawSignal:    ins.RawSignal,
	}

	a.renderPage(w, "insight_detail.html", data)
}

// handleTrendFragment re-renders only the chart for a keyword switch.
func (a *App) handleTrendFragment(w http.ResponseWriter, r *http.Request) {
	ins, ok := a.loadInsight(w, r)
	if !ok {
		return
	}

	selected, _ := strconv.Atoi(r.URL.Query().Get("kw"))
	chart := BuildTrendChart(ins.ID.String(), ins.TrendSeries, selected)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(a.render.Fragment("fragments/trend_chart.html", chart))); err != nil {
		log.Printf("[ERROR] writing trend fragment: %v", err)
	}
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	insights, err := a.repo.List(r.Context(), ports.InsightFilters{Limit: 1000})
	if err != nil {
		a.renderErrorPage(w, "Failed to load insights for export", err)
		return
	}

	filename := fmt.Sprintf("insights-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := a.exporter.Write(w, insights); err != nil {
		log.Printf("[ERROR] excel export failed: %v", err)
	}
}

// loadInsight resolves the {id} route parameter, writing the error
// response itself when the record cannot be served.
func (a *App) loadInsight(w http.ResponseWriter, r *http.Request) (*insight.Insight, bool) {
	id, err := core.ParseInsightID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid insight id", http.StatusBadRequest)
		return nil, false
	}

	ins, err := a.repo.GetByID(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			http.NotFound(w, r)
		} else {
			a.renderErrorPage(w, "Failed to load insight", err)
		}
		return nil, false
	}
	return ins, true
}

func (a *App) renderPage(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[ERROR] failed to render %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (a *App) renderErrorPage(w http.ResponseWriter, message string, err error) {
	log.Printf("[ERROR] %s: %v", message, err)
	http.Error(w, message, http.StatusInternalServerError)
}
