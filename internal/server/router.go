package server

import (
	"net/http"

	"ib-riskcalc/internal/handlers"
	"ib-riskcalc/internal/service"
	"ib-riskcalc/internal/store"

	"github.com/gin-gonic/gin"
)

func NewRouter(svc *service.Service, st store.Store) *gin.Engine {
	r := gin.Default()

	h := handlers.New(svc, st)

	// ОЦЕНКИ
	r.GET("/evaluations", h.ListEvaluations)
	r.POST("/evaluations", h.CreateEvaluation)
	r.GET("/evaluations/active", h.GetActiveEvaluation)
	r.POST("/evaluations/:id/status", h.SetEvaluationStatus)
	r.POST("/evaluations/:id/clone", h.CloneEvaluation)
	r.GET("/evaluations/:id/compare/:other", h.CompareEvaluations)
	r.GET("/evaluations/:id/changelog", h.ListChangeLog)

	// АКТИВЫ
	r.GET("/evaluations/:id/assets", h.ListAssets)
	r.POST("/evaluations/:id/assets", h.CreateAsset)

	// ====== УГРОЗЫ И МЕРЫ ======
	r.GET("/catalog/threats", h.ListThreatCatalog)
	r.GET("/catalog/measures", h.ListMeasureCatalog)
	r.GET("/catalog/threats/:threat_id/measures", h.ListThreatMeasures)

	r.GET("/evaluations/:id/assets/:asset_id/threats", h.ListAssetThreats)
	r.POST("/evaluations/:id/assets/:asset_id/threats", h.LinkAssetThreat)
	r.DELETE("/evaluations/:id/assets/:asset_id/threats/:link_id", h.UnlinkAssetThreat)

	// АНКЕТЫ И ОТВЕТЫ
	r.GET("/evaluations/:id/assets/:asset_id/questionnaire", h.GetQuestionnaire)
	r.POST("/evaluations/:id/assets/:asset_id/questionnaire/generate", h.GenerateQuestionnaire)
	r.POST("/evaluations/:id/assets/:asset_id/answers", h.SubmitAnswers)
	r.PUT("/evaluations/:id/assets/:asset_id/answers", h.ResubmitAnswers)
	r.POST("/evaluations/:id/questions/:question_id", h.EditQuestion)

	// САЛЬВАГАРДЫ
	r.GET("/evaluations/:id/assets/:asset_id/salvaguards", h.ListSalvaguards)
	r.POST("/evaluations/:id/assets/:asset_id/salvaguards", h.CreateSalvaguard)
	r.POST("/evaluations/:id/salvaguards/:salvaguard_id", h.UpdateSalvaguard)

	// РЕЗУЛЬТАТЫ
	r.GET("/evaluations/:id/assets/:asset_id/assessment", h.GetAssessment)
	r.GET("/evaluations/:id/maturity", h.GetMaturity)

	// LLM-АНАЛИЗ
	r.GET("/evaluations/:id/assets/:asset_id/analysis", h.GetAnalysis)
	r.POST("/evaluations/:id/assets/:asset_id/analysis", h.GenerateAnalysis)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
