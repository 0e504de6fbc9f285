package store

import "ib-riskcalc/internal/models"

// Типизированные репозитории поверх БД. Каждый метод чтения/записи
// принимает идентификатор оценки обязательным параметром — данные
// разных оценок не пересекаются на уровне сигнатур.

type Evaluations interface {
	Create(name string, originID *uint) (models.Evaluation, error)
	Get(id uint) (models.Evaluation, error)
	List() ([]models.Evaluation, error)
	// Active возвращает текущую активную оценку (in_progress);
	// инвариант "не более одной активной" поддерживает SetStatus.
	Active() (*models.Evaluation, error)
	SetStatus(id uint, status models.EvaluationStatus) error
}

type Assets interface {
	Create(evaluationID uint, a models.Asset) (models.Asset, error)
	Get(evaluationID, assetID uint) (models.Asset, error)
	List(evaluationID uint) ([]models.Asset, error)
}

type Questions interface {
	// Questionnaire — все вопросы актива с версией не новее указанной,
	// упорядоченные по ID: согласованный срез анкеты.
	Questionnaire(evaluationID, assetID uint, version int64) ([]models.Question, error)
	CurrentVersion(evaluationID, assetID uint) (int64, error)
	Add(evaluationID, assetID uint, version int64, qs []models.Question) error
	// UpdateText правит текст/вес вопроса, сдвигая видимую версию
	// анкеты; ID вопроса не меняется.
	UpdateText(evaluationID, questionID uint, text string, weight int, newVersion int64) error
}

type Answers interface {
	GetSet(evaluationID, assetID uint, version int64) ([]models.Answer, error)
	SetExists(evaluationID, assetID uint, version int64) (bool, error)
	PutSet(evaluationID, assetID uint, version int64, answers []models.Answer) error
	DeleteSet(evaluationID, assetID uint, version int64) error
}

type Catalog interface {
	Threats(category string) ([]models.Threat, error)
	Measures() ([]models.ControlMeasure, error)
	MeasuresForThreat(threatID uint) ([]models.ControlMeasure, error)
	AssetThreats(evaluationID, assetID uint) ([]models.AssetThreat, error)
	LinkThreat(evaluationID uint, link models.AssetThreat) error
	UnlinkThreat(evaluationID, linkID uint) error
}

type Salvaguards interface {
	Get(evaluationID, id uint) (models.Salvaguard, error)
	List(evaluationID, assetID uint) ([]models.Salvaguard, error)
	ListAll(evaluationID uint) ([]models.Salvaguard, error)
	Create(evaluationID uint, s models.Salvaguard) (models.Salvaguard, error)
	SetStatus(evaluationID, id uint, status models.SalvaguardStatus, effectiveness int) error
}

type Results interface {
	PutImpact(r models.ImpactResult) error
	GetImpact(evaluationID, assetID uint) (*models.ImpactResult, error)
	PutRisk(r models.RiskResult) error
	GetRisk(evaluationID, assetID uint) (*models.RiskResult, error)
	ListRisks(evaluationID uint) ([]models.RiskResult, error)
	// MarkStale помечает производные результаты актива устаревшими;
	// до пересчёта они не отдаются.
	MarkStale(evaluationID, assetID uint) error
	PutMaturity(r models.MaturityResult) error
	GetMaturity(evaluationID uint) (*models.MaturityResult, error)
}

type Analyses interface {
	Get(evaluationID, assetID uint) (*models.AIAnalysis, error)
	Put(a models.AIAnalysis) error
	Delete(evaluationID, assetID uint) error
}

type ChangeLog interface {
	Append(evaluationID uint, entity string, entityID uint, action, details string) error
	List(evaluationID uint) ([]models.ChangeLog, error)
}

// Store — корневой доступ к репозиториям плюс транзакции.
type Store interface {
	Evaluations() Evaluations
	Assets() Assets
	Questions() Questions
	Answers() Answers
	Catalog() Catalog
	Salvaguards() Salvaguards
	Results() Results
	Analyses() Analyses
	ChangeLog() ChangeLog

	// InTx выполняет fn в одной транзакции; откат при любой ошибке.
	InTx(fn func(Store) error) error
}
