package workout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/middleware"
)

// Handler exposes the workout CRUD API. All routes assume the auth
// middleware has placed the user id in the gin context.
type Handler struct {
	workouts *Service
}

func NewHandler(workouts *Service) *Handler {
	return &Handler{workouts: workouts}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/workouts", h.create)
	rg.GET("/workouts", h.list)
	rg.GET("/workouts/:id", h.get)
	rg.PATCH("/workouts/:id", h.update)
	rg.DELETE("/workouts/:id", h.delete)
}

type createRequest struct {
	ExerciseType    string   `json:"exercise_type" binding:"required"`
	Reps            int      `json:"reps"`
	DurationSeconds int      `json:"duration_seconds"`
	CaloriesBurned  *float64 `json:"calories_burned"`
}

type updateRequest struct {
	Reps            *int     `json:"reps"`
	DurationSeconds *int     `json:"duration_seconds"`
	CaloriesBurned  *float64 `json:"calories_burned"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := c.GetString(middleware.UserIDKey)
	w, err := h.workouts.Create(c.Request.Context(), userID, Type(req.ExerciseType), req.Reps, req.DurationSeconds, req.CaloriesBurned)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *Handler) list(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	f := Filter{Type: Type(c.Query("exercise_type"))}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		f.Offset = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		f.Limit = n
	}

	ws, err := h.workouts.List(c.Request.Context(), userID, f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if ws == nil {
		ws = []Workout{}
	}
	c.JSON(http.StatusOK, gin.H{"workouts": ws, "count": len(ws)})
}

func (h *Handler) get(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	w, err := h.workouts.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID := c.GetString(middleware.UserIDKey)
	w, err := h.workouts.Update(c.Request.Context(), userID, c.Param("id"), UpdateFields{
		Reps:            req.Reps,
		DurationSeconds: req.DurationSeconds,
		CaloriesBurned:  req.CaloriesBurned,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *Handler) delete(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	if err := h.workouts.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps domain errors to HTTP statuses. ErrForbidden is
// reported as 404 so the API never reveals another user's workout
// ids.
func (h *Handler) writeError(c *gin.Context, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
		c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
