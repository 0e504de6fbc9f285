package handlers

import (
	"net/http"

	"ib-riskcalc/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== РЕЗУЛЬТАТЫ РАСЧЁТОВ ======

func (h *Handler) GetAssessment(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	assessment, err := h.svc.AssetAssessment(evalID, assetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *Handler) GetMaturity(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}

	maturity, err := h.svc.EvaluationMaturity(evalID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, maturity)
}

// ====== LLM-АНАЛИЗ ======

func (h *Handler) GenerateAnalysis(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	analysis, err := h.svc.AnalyzeAsset(c.Request.Context(), evalID, assetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, analysis)
}

func (h *Handler) GetAnalysis(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	analysis, err := h.svc.AssetAnalysis(evalID, assetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "анализ не найден"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// ====== САЛЬВАГАРДЫ ======

func (h *Handler) ListSalvaguards(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	salvaguards, err := h.st.Salvaguards().List(evalID, assetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, salvaguards)
}

func (h *Handler) CreateSalvaguard(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	var req struct {
		MeasureID     uint   `json:"measure_id"`
		Status        string `json:"status"`
		Effectiveness int    `json:"effectiveness"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.MeasureID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}
	status, ok := salvaguardStatus(c, req.Status)
	if !ok {
		return
	}
	if req.Effectiveness < 0 || req.Effectiveness > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "эффективность должна быть в диапазоне 0..100"})
		return
	}

	if _, err := h.st.Assets().Get(evalID, assetID); err != nil {
		respondErr(c, err)
		return
	}

	sg, err := h.svc.AddSalvaguard(evalID, models.Salvaguard{
		AssetID:       assetID,
		MeasureID:     req.MeasureID,
		Status:        status,
		Effectiveness: req.Effectiveness,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sg)
}

func (h *Handler) UpdateSalvaguard(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	sgID, ok := parseID(c, "salvaguard_id")
	if !ok {
		return
	}

	var req struct {
		Status        string `json:"status"`
		Effectiveness int    `json:"effectiveness"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}
	status, ok := salvaguardStatus(c, req.Status)
	if !ok {
		return
	}
	if req.Effectiveness < 0 || req.Effectiveness > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "эффективность должна быть в диапазоне 0..100"})
		return
	}

	if err := h.svc.UpdateSalvaguard(evalID, sgID, status, req.Effectiveness); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"salvaguard_id": sgID})
}

func salvaguardStatus(c *gin.Context, raw string) (models.SalvaguardStatus, bool) {
	status := models.SalvaguardStatus(raw)
	switch status {
	case models.SalvaguardRecommended, models.SalvaguardInProgress, models.SalvaguardImplemented:
		return status, true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный статус сальвагарды"})
	return "", false
}
