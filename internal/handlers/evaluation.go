package handlers

import (
	"net/http"
	"strings"

	"ib-riskcalc/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== ОЦЕНКИ ======

func (h *Handler) ListEvaluations(c *gin.Context) {
	evs, err := h.st.Evaluations().List()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, evs)
}

func (h *Handler) CreateEvaluation(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "название оценки должно быть не короче 3 символов"})
		return
	}

	ev, err := h.st.Evaluations().Create(req.Name, nil)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *Handler) GetActiveEvaluation(c *gin.Context) {
	ev, err := h.st.Evaluations().Active()
	if err != nil {
		respondErr(c, err)
		return
	}
	if ev == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "активной оценки нет"})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *Handler) SetEvaluationStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	status := models.EvaluationStatus(req.Status)
	switch status {
	case models.EvalInProgress, models.EvalCompleted, models.EvalInactive:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный статус оценки"})
		return
	}

	if err := h.st.Evaluations().SetStatus(id, status); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *Handler) CloneEvaluation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "название переоценки должно быть не короче 3 символов"})
		return
	}

	clone, err := h.svc.CloneEvaluation(id, req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, clone)
}

func (h *Handler) CompareEvaluations(c *gin.Context) {
	a, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, ok := parseID(c, "other")
	if !ok {
		return
	}

	deltas, err := h.svc.CompareEvaluations(a, b)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, deltas)
}

func (h *Handler) ListChangeLog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	logs, err := h.st.ChangeLog().List(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
