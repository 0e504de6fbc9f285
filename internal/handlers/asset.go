package handlers

import (
	"net/http"
	"strings"

	"ib-riskcalc/internal/models"

	"github.com/gin-gonic/gin"
)

// ====== АКТИВЫ ======

func (h *Handler) ListAssets(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}

	assets, err := h.st.Assets().List(evalID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (h *Handler) CreateAsset(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Owner    string `json:"owner"`
		Location string `json:"location"`
		Critical bool   `json:"critical"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "название актива должно быть не короче 3 символов"})
		return
	}

	at := models.AssetType(req.Type)
	switch at {
	case models.AssetPhysicalServer, models.AssetVirtualServer,
		models.AssetNetwork, models.AssetApplication:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректный тип актива"})
		return
	}

	asset, err := h.st.Assets().Create(evalID, models.Asset{
		Name:     req.Name,
		Type:     at,
		Owner:    strings.TrimSpace(req.Owner),
		Location: strings.TrimSpace(req.Location),
		Critical: req.Critical,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// ====== УГРОЗЫ АКТИВА ======

func (h *Handler) ListAssetThreats(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	links, err := h.st.Catalog().AssetThreats(evalID, assetID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *Handler) LinkAssetThreat(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}

	var req struct {
		ThreatID    uint   `json:"threat_id"`
		Probability int    `json:"probability"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ThreatID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "некорректное тело запроса"})
		return
	}
	if req.Probability < 0 || req.Probability > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "вероятность должна быть в диапазоне 1..5 (0 — из каталога)"})
		return
	}

	err := h.svc.LinkThreat(evalID, models.AssetThreat{
		AssetID:     assetID,
		ThreatID:    req.ThreatID,
		Probability: req.Probability,
		Notes:       strings.TrimSpace(req.Notes),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"linked": req.ThreatID})
}

func (h *Handler) UnlinkAssetThreat(c *gin.Context) {
	evalID, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "asset_id")
	if !ok {
		return
	}
	linkID, ok := parseID(c, "link_id")
	if !ok {
		return
	}

	if err := h.svc.UnlinkThreat(evalID, assetID, linkID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ====== КАТАЛОГ ======

func (h *Handler) ListThreatCatalog(c *gin.Context) {
	threats, err := h.st.Catalog().Threats(c.Query("category"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, threats)
}

func (h *Handler) ListMeasureCatalog(c *gin.Context) {
	measures, err := h.st.Catalog().Measures()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, measures)
}

// рекомендуемые меры защиты для угрозы каталога
func (h *Handler) ListThreatMeasures(c *gin.Context) {
	threatID, ok := parseID(c, "threat_id")
	if !ok {
		return
	}

	measures, err := h.st.Catalog().MeasuresForThreat(threatID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, measures)
}
