package stats

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/middleware"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/workout"
)

// Handler exposes the statistics API under /statistics.
type Handler struct {
	stats *Service
}

func NewHandler(stats *Service) *Handler {
	return &Handler{stats: stats}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/statistics", h.overall)
	rg.GET("/statistics/exercises/:type", h.exercise)
	rg.GET("/statistics/breakdown", h.breakdown)
	rg.GET("/statistics/weekly", h.weekly)
	rg.GET("/statistics/records", h.records)
}

func (h *Handler) overall(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	summary, err := h.stats.Overall(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) exercise(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	summary, err := h.stats.Exercise(c.Request.Context(), userID, workout.Type(c.Param("type")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) breakdown(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	entries, err := h.stats.ExerciseBreakdown(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"breakdown": entries})
}

func (h *Handler) weekly(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	report, err := h.stats.WeeklyReport(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) records(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	records, err := h.stats.Records(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if records == nil {
		records = []Record{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *workout.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
