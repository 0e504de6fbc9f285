package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"ib-riskcalc/internal/scoring"
	"ib-riskcalc/internal/service"
	"ib-riskcalc/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	svc *service.Service
	st  store.Store
}

func New(svc *service.Service, st store.Store) *Handler {
	return &Handler{svc: svc, st: st}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный параметр " + name})
		return 0, false
	}
	return uint(id), true
}

// respondErr отображает таксономию ошибок движка в коды ответов.
func respondErr(c *gin.Context, err error) {
	var (
		dup          *scoring.DuplicateSubmissionError
		insufficient *scoring.InsufficientDataError
		validation   *scoring.ValidationError
		scale        *scoring.InconsistentScaleError
	)
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &validation), errors.As(err, &scale):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "запись не найдена"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
