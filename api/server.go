package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"startinsight/domain/core"
	"startinsight/domain/insight"
	apperrors "startinsight/internal/errors"
	"startinsight/ports"
)

// Server is the JSON API over stored insights. It is the surface the
// rendering layer (and any other consumer) fetches validated records
// from; ingestion happens here too, behind the same validation boundary
// the collector uses.
type Server struct {
	engine *gin.Engine
	repo   ports.InsightRepository
}

// NewServer creates the API server.
func NewServer(repo ports.InsightRepository, mode string) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}
	s := &Server{
		engine: gin.Default(),
		repo:   repo,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	v1 := s.engine.Group("/api/v1")
	v1.GET("/insights", s.handleListInsights)
	v1.GET("/insights/:id", s.handleGetInsight)
	v1.POST("/insights", s.handleIngestInsight)
	v1.DELETE("/insights/:id", s.handleDeleteInsight)
}

// Start runs the server on the given address.
func (s *Server) Start(addr string) error {
	return s.engine.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListInsights(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	insights, err := s.repo.List(c.Request.Context(), ports.InsightFilters{
		Source: c.Query("source"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.renderError(c, apperrors.Wrap(err, "failed to list insights"))
		return
	}

	total, err := s.repo.Count(c.Request.Context())
	if err != nil {
		s.renderError(c, apperrors.Wrap(err, "failed to count insights"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   insights,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) handleGetInsight(c *gin.Context) {
	id, err := core.ParseInsightID(c.Param("id"))
	if err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}

	ins, err := s.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, ins)
}

// handleIngestInsight accepts one insight record. The record must satisfy
// the full ingestion contract; violations come back as 422 with the
// failing rule, never as a best-effort patched store.
func (s *Server) handleIngestInsight(c *gin.Context) {
	var ins insight.Insight
	if err := c.ShouldBindJSON(&ins); err != nil {
		s.renderError(c, apperrors.InvalidInput("malformed insight payload: "+err.Error()))
		return
	}

	if err := ins.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"code":  apperrors.CodeValidationError,
		})
		return
	}

	if err := s.repo.Save(c.Request.Context(), &ins); err != nil {
		s.renderError(c, apperrors.Wrap(err, "failed to store insight"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": ins.ID})
}

func (s *Server) handleDeleteInsight(c *gin.Context) {
	id, err := core.ParseInsightID(c.Param("id"))
	if err != nil {
		s.renderError(c, apperrors.InvalidInput(err.Error()))
		return
	}
	if err := s.repo.Delete(c.Request.Context(), id); err != nil {
		s.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// renderError maps domain and application errors onto HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
		code = apperrors.CodeNotFound
	case core.IsValidationError(err):
		status = http.StatusUnprocessableEntity
		code = apperrors.CodeValidationError
	case errors.Is(err, context.Canceled):
		status = http.StatusRequestTimeout
	case code == apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
