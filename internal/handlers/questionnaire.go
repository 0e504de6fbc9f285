package handlers

import (
	"net/http"
	"strings"
	"time"

	"ib-riskcalc/internal/service"

	"github.com/gin-gonic/gin"
)

// ====== АНКЕТЫ И ОТВЕТЫ ======

func (h *Handler) GetQuestionnaire(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	version, err := h.st.Questions().CurrentVersion(evalID, assetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	questions, err := h.st.Questions().Questionnaire(evalID, assetID, time.Now().Unix())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": version, "questions": questions})
}

func (h *Handler) GenerateQuestionnaire(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	questions, err := h.svc.GenerateQuestionnaire(c.Request.Context(), evalID, assetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, questions)
}

type submitRequest struct {
	Version int64                 `json:"version"`
	Answers []service.AnswerInput `json:"answers"`
}

func (h *Handler) SubmitAnswers(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	if err := h.svc.SubmitAnswers(evalID, assetID, req.Version, req.Answers); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submitted": len(req.Answers)})
}

// Пересдача — явная инвалидация: LLM-анализ актива будет удалён,
// производные результаты пересчитаны.
func (h *Handler) ResubmitAnswers(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	if err := h.svc.ResubmitAnswers(evalID, assetID, req.Version, req.Answers); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resubmitted": len(req.Answers)})
}

func (h *Handler) EditQuestion(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	questionID, ok := parseID(c, "question_id")
	if !ok {
		return
	}

	var req struct {
		Text   string `json:"text"`
		Weight int    `json:"weight"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	if err := h.svc.EditQuestion(evalID, questionID, strings.TrimSpace(req.Text), req.Weight); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question_id": questionID})
}
