package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avelkin/prognosia/internal/model"
	"github.com/avelkin/prognosia/internal/pipeline"
)

type handlers struct {
	pipeline *pipeline.Pipeline
}

// diagnoseRequest is the symptom payload shared by the POST endpoints.
// Days defaults to 3 when omitted.
type diagnoseRequest struct {
	Symptoms string `json:"symptoms"`
	Days     int    `json:"days"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handlers) diagnose(c *gin.Context) {
	var req diagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Days == 0 {
		req.Days = 3
	}

	report, err := h.pipeline.DiagnoseReport(c.Request.Context(), req.Symptoms, req.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handlers) recommend(c *gin.Context) {
	var req diagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	rec, err := h.pipeline.Recommend(req.Symptoms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handlers) explain(c *gin.Context) {
	detail, err := h.pipeline.Explain(c.Param("disease_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handlers) xaiDiagnosis(c *gin.Context) {
	detail, err := h.pipeline.ExplainDetailed(c.Param("disease_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handlers) xaiCompare(c *gin.Context) {
	var req diagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	comparison, err := h.pipeline.Compare(req.Symptoms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

func (h *handlers) symptoms(c *gin.Context) {
	listing, err := h.pipeline.Symptoms()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *handlers) diseases(c *gin.Context) {
	catalogue, err := h.pipeline.Diseases()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogue)
}

// respondError maps pipeline errors to HTTP status codes: invalid input
// to 400, unknown disease to 404, missing knowledge base to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case model.IsInputError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case model.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotInitialized):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Model not initialized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
