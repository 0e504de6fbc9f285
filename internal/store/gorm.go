package store

import (
	"errors"

	"ib-riskcalc/internal/models"

	"gorm.io/gorm"
)

// Реализация Store поверх gorm/postgres.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Evaluations() Evaluations { return evalRepo{g.db} }
func (g *Gorm) Assets() Assets           { return assetRepo{g.db} }
func (g *Gorm) Questions() Questions     { return questionRepo{g.db} }
func (g *Gorm) Answers() Answers         { return answerRepo{g.db} }
func (g *Gorm) Catalog() Catalog         { return catalogRepo{g.db} }
func (g *Gorm) Salvaguards() Salvaguards { return salvaguardRepo{g.db} }
func (g *Gorm) Results() Results         { return resultRepo{g.db} }
func (g *Gorm) Analyses() Analyses       { return analysisRepo{g.db} }
func (g *Gorm) ChangeLog() ChangeLog     { return changeLogRepo{g.db} }

func (g *Gorm) InTx(fn func(Store) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGorm(tx))
	})
}

// ====== ОЦЕНКИ ======

type evalRepo struct{ db *gorm.DB }

func (r evalRepo) Create(name string, originID *uint) (models.Evaluation, error) {
	ev := models.Evaluation{
		Name:     name,
		Status:   models.EvalInProgress,
		OriginID: originID,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// не более одной активной оценки
		if err := tx.Model(&models.Evaluation{}).
			Where("status = ?", models.EvalInProgress).
			Update("status", models.EvalInactive).Error; err != nil {
			return err
		}
		return tx.Create(&ev).Error
	})
	if err != nil {
		return models.Evaluation{}, err
	}
	return ev, nil
}

func (r evalRepo) Get(id uint) (models.Evaluation, error) {
	var ev models.Evaluation
	if err := r.db.First(&ev, id).Error; err != nil {
		return models.Evaluation{}, err
	}
	return ev, nil
}

func (r evalRepo) List() ([]models.Evaluation, error) {
	var evs []models.Evaluation
	err := r.db.Order("id asc").Find(&evs).Error
	return evs, err
}

func (r evalRepo) Active() (*models.Evaluation, error) {
	var ev models.Evaluation
	err := r.db.Where("status = ?", models.EvalInProgress).First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r evalRepo) SetStatus(id uint, status models.EvaluationStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if status == models.EvalInProgress {
			// не более одной активной оценки
			if err := tx.Model(&models.Evaluation{}).
				Where("status = ? AND id <> ?", models.EvalInProgress, id).
				Update("status", models.EvalInactive).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Evaluation{}).
			Where("id = ?", id).
			Update("status", status).Error
	})
}

// ====== АКТИВЫ ======

type assetRepo struct{ db *gorm.DB }

func (r assetRepo) Create(evaluationID uint, a models.Asset) (models.Asset, error) {
	a.EvaluationID = evaluationID
	if err := r.db.Create(&a).Error; err != nil {
		return models.Asset{}, err
	}
	return a, nil
}

func (r assetRepo) Get(evaluationID, assetID uint) (models.Asset, error) {
	var a models.Asset
	err := r.db.Where("evaluation_id = ? AND id = ?", evaluationID, assetID).
		First(&a).Error
	if err != nil {
		return models.Asset{}, err
	}
	return a, nil
}

func (r assetRepo) List(evaluationID uint) ([]models.Asset, error) {
	var as []models.Asset
	err := r.db.Where("evaluation_id = ?", evaluationID).
		Order("id asc").
		Find(&as).Error
	return as, err
}

// ====== ВОПРОСЫ ======

type questionRepo struct{ db *gorm.DB }

func (r questionRepo) Questionnaire(evaluationID, assetID uint, version int64) ([]models.Question, error) {
	var qs []models.Question
	err := r.db.Where("evaluation_id = ? AND asset_id = ? AND version <= ?",
		evaluationID, assetID, version).
		Order("id asc").
		Find(&qs).Error
	return qs, err
}

func (r questionRepo) CurrentVersion(evaluationID, assetID uint) (int64, error) {
	var version int64
	err := r.db.Model(&models.Question{}).
		Where("evaluation_id = ? AND asset_id = ?", evaluationID, assetID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	return version, err
}

func (r questionRepo) Add(evaluationID, assetID uint, version int64, qs []models.Question) error {
	if len(qs) == 0 {
		return nil
	}
	for i := range qs {
		qs[i].EvaluationID = evaluationID
		qs[i].AssetID = assetID
		qs[i].Version = version
	}
	return r.db.Create(&qs).Error
}

func (r questionRepo) UpdateText(evaluationID, questionID uint, text string, weight int, newVersion int64) error {
	return r.db.Model(&models.Question{}).
		Where("evaluation_id = ? AND id = ?", evaluationID, questionID).
		Updates(map[string]interface{}{
			"text":    text,
			"weight":  weight,
			"version": newVersion,
		}).Error
}

// ====== ОТВЕТЫ ======

type answerRepo struct{ db *gorm.DB }

func (r answerRepo) GetSet(evaluationID, assetID uint, version int64) ([]models.Answer, error) {
	var as []models.Answer
	err := r.db.Preload("Question").
		Where("evaluation_id = ? AND asset_id = ? AND version = ?",
			evaluationID, assetID, version).
		Order("question_id asc").
		Find(&as).Error
	return as, err
}

func (r answerRepo) SetExists(evaluationID, assetID uint, version int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Answer{}).
		Where("evaluation_id = ? AND asset_id = ? AND version = ?",
			evaluationID, assetID, version).
		Count(&count).Error
	return count > 0, err
}

func (r answerRepo) PutSet(evaluationID, assetID uint, version int64, answers []models.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	for i := range answers {
		answers[i].EvaluationID = evaluationID
		answers[i].AssetID = assetID
		answers[i].Version = version
	}
	return r.db.Create(&answers).Error
}

func (r answerRepo) DeleteSet(evaluationID, assetID uint, version int64) error {
	return r.db.Where("evaluation_id = ? AND asset_id = ? AND version = ?",
		evaluationID, assetID, version).
		Delete(&models.Answer{}).Error
}

// ====== КАТАЛОГ ======

type catalogRepo struct{ db *gorm.DB }

func (r catalogRepo) Threats(category string) ([]models.Threat, error) {
	q := r.db.Preload("Vulnerabilities").Order("code asc")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var ths []models.Threat
	err := q.Find(&ths).Error
	return ths, err
}

func (r catalogRepo) Measures() ([]models.ControlMeasure, error) {
	var ms []models.ControlMeasure
	err := r.db.Order("code asc").Find(&ms).Error
	return ms, err
}

func (r catalogRepo) MeasuresForThreat(threatID uint) ([]models.ControlMeasure, error) {
	var links []models.ThreatMeasure
	err := r.db.Preload("Measure").
		Where("threat_id = ?", threatID).
		Order("measure_id asc").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	ms := make([]models.ControlMeasure, 0, len(links))
	for _, l := range links {
		if l.Measure.ID == 0 {
			continue
		}
		ms = append(ms, l.Measure)
	}
	return ms, nil
}

func (r catalogRepo) AssetThreats(evaluationID, assetID uint) ([]models.AssetThreat, error) {
	var links []models.AssetThreat
	err := r.db.Preload("Threat").
		Where("evaluation_id = ? AND asset_id = ?", evaluationID, assetID).
		Order("id asc").
		Find(&links).Error
	return links, err
}

func (r catalogRepo) LinkThreat(evaluationID uint, link models.AssetThreat) error {
	link.EvaluationID = evaluationID

	var count int64
	if err := r.db.Model(&models.AssetThreat{}).
		Where("evaluation_id = ? AND asset_id = ? AND threat_id = ?",
			evaluationID, link.AssetID, link.ThreatID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New("threat already linked to asset")
	}
	return r.db.Create(&link).Error
}

func (r catalogRepo) UnlinkThreat(evaluationID, linkID uint) error {
	return r.db.Where("evaluation_id = ? AND id = ?", evaluationID, linkID).
		Delete(&models.AssetThreat{}).Error
}

// ====== САЛЬВАГАРДЫ ======

type salvaguardRepo struct{ db *gorm.DB }

func (r salvaguardRepo) Get(evaluationID, id uint) (models.Salvaguard, error) {
	var s models.Salvaguard
	err := r.db.Where("evaluation_id = ? AND id = ?", evaluationID, id).
		First(&s).Error
	if err != nil {
		return models.Salvaguard{}, err
	}
	return s, nil
}

func (r salvaguardRepo) List(evaluationID, assetID uint) ([]models.Salvaguard, error) {
	var ss []models.Salvaguard
	err := r.db.Preload("Measure").
		Where("evaluation_id = ? AND asset_id = ?", evaluationID, assetID).
		Order("id asc").
		Find(&ss).Error
	return ss, err
}

func (r salvaguardRepo) ListAll(evaluationID uint) ([]models.Salvaguard, error) {
	var ss []models.Salvaguard
	err := r.db.Where("evaluation_id = ?", evaluationID).
		Order("id asc").
		Find(&ss).Error
	return ss, err
}

func (r salvaguardRepo) Create(evaluationID uint, s models.Salvaguard) (models.Salvaguard, error) {
	s.EvaluationID = evaluationID
	if err := r.db.Create(&s).Error; err != nil {
		return models.Salvaguard{}, err
	}
	return s, nil
}

func (r salvaguardRepo) SetStatus(evaluationID, id uint, status models.SalvaguardStatus, effectiveness int) error {
	return r.db.Model(&models.Salvaguard{}).
		Where("evaluation_id = ? AND id = ?", evaluationID, id).
		Updates(map[string]interface{}{
			"status":        status,
			"effectiveness": effectiveness,
		}).Error
}

// ====== РЕЗУЛЬТАТЫ ======

type resultRepo struct{ db *gorm.DB }

func (r resultRepo) PutImpact(res models.ImpactResult) error {
	var existing models.ImpactResult
	err := r.db.Where("evaluation_id = ? AND asset_id = ?",
		res.EvaluationID, res.AssetID).
		First(&existing).Error
	if err == nil {
		res.ID = existing.ID
		res.CreatedAt = existing.CreatedAt
		return r.db.Save(&res).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&res).Error
}

func (r resultRepo) GetImpact(evaluationID, assetID uint) (*models.ImpactResult, error) {
	var res models.ImpactResult
	err := r.db.Where("evaluation_id = ? AND asset_id = ?", evaluationID, assetID).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r resultRepo) PutRisk(res models.RiskResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		threats := res.Threats
		res.Threats = nil

		var existing models.RiskResult
		err := tx.Where("evaluation_id = ? AND asset_id = ?",
			res.EvaluationID, res.AssetID).
			First(&existing).Error
		switch {
		case err == nil:
			res.ID = existing.ID
			res.CreatedAt = existing.CreatedAt
			if err := tx.Save(&res).Error; err != nil {
				return err
			}
			if err := tx.Where("risk_result_id = ?", res.ID).
				Delete(&models.ThreatRisk{}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&res).Error; err != nil {
				return err
			}
		default:
			return err
		}

		for i := range threats {
			threats[i].ID = 0
			threats[i].RiskResultID = res.ID
		}
		if len(threats) == 0 {
			return nil
		}
		return tx.Create(&threats).Error
	})
}

func (r resultRepo) GetRisk(evaluationID, assetID uint) (*models.RiskResult, error) {
	var res models.RiskResult
	err := r.db.Preload("Threats").Preload("Threats.Threat").
		Where("evaluation_id = ? AND asset_id = ?", evaluationID, assetID).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r resultRepo) ListRisks(evaluationID uint) ([]models.RiskResult, error) {
	var rs []models.RiskResult
	err := r.db.Preload("Threats").
		Where("evaluation_id = ?", evaluationID).
		Order("asset_id asc").
		Find(&rs).Error
	return rs, err
}

func (r resultRepo) MarkStale(evaluationID, assetID uint) error {
	if err := r.db.Model(&models.ImpactResult{}).
		Where("evaluation_id = ? AND asset_id = ?", evaluationID, assetID).
		Update("stale", true).Error; err != nil {
		return err
	}
	return r.db.Model(&models.RiskResult{}).
		Where("evaluation_id = ? AND asset_id = ?", evaluationID, assetID).
		Update("stale", true).Error
}

func (r resultRepo) PutMaturity(res models.MaturityResult) error {
	var existing models.MaturityResult
	err := r.db.Where("evaluation_id = ?", res.EvaluationID).
		First(&existing).Error
	if err == nil {
		res.ID = existing.ID
		res.CreatedAt = existing.CreatedAt
		return r.db.Save(&res).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&res).Error
}

func (r resultRepo) GetMaturity(evaluationID uint) (*models.MaturityResult, error) {
	var res models.MaturityResult
	err := r.db.Where("evaluation_id = ?", evaluationID).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ====== LLM-АНАЛИЗЫ ======

type analysisRepo struct{ db *gorm.DB }

func (r analysisRepo) Get(evaluationID, assetID uint) (*models.AIAnalysis, error) {
	var a models.AIAnalysis
	err := r.db.Where("evaluation_id = ? AND asset_id = ?", evaluationID, assetID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r analysisRepo) Put(a models.AIAnalysis) error {
	if err := r.Delete(a.EvaluationID, a.AssetID); err != nil {
		return err
	}
	return r.db.Create(&a).Error
}

func (r analysisRepo) Delete(evaluationID, assetID uint) error {
	return r.db.Where("evaluation_id = ? AND asset_id = ?", evaluationID, assetID).
		Delete(&models.AIAnalysis{}).Error
}

// ====== ЖУРНАЛ ======

type changeLogRepo struct{ db *gorm.DB }

func (r changeLogRepo) Append(evaluationID uint, entity string, entityID uint, action, details string) error {
	rec := models.ChangeLog{
		EvaluationID: evaluationID,
		Entity:       entity,
		EntityID:     entityID,
		Action:       action,
		Details:      details,
	}
	return r.db.Create(&rec).Error
}

func (r changeLogRepo) List(evaluationID uint) ([]models.ChangeLog, error) {
	var logs []models.ChangeLog
	err := r.db.Where("evaluation_id = ?", evaluationID).
		Order("id desc").
		Limit(200).
		Find(&logs).Error
	return logs, err
}
