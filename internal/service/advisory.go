package service

import (
	"context"
	"fmt"
	"time"

	"ib-riskcalc/internal/models"
	"ib-riskcalc/internal/scoring"
)

// Генератор кандидатов вопросов. Реализация обязана сама приводить
// сбои к каталожному fallback-набору — ошибок наружу не бывает.
type QuestionGenerator interface {
	Generate(ctx context.Context, asset models.Asset) ([]models.Question, models.QuestionSource)
	// Analyze — консультативный разбор рассчитанных результатов;
	// при сбое возвращает ошибку, fallback-текста нет.
	Analyze(ctx context.Context, asset models.Asset, impact models.ImpactResult, risk *models.RiskResult) (string, error)
}

// GenerateQuestionnaire пополняет анкету актива вопросами от
// советчика (или из fallback-банка) новой версией анкеты.
func (s *Service) GenerateQuestionnaire(ctx context.Context, evaluationID, assetID uint) ([]models.Question, error) {
	asset, err := s.store.Assets().Get(evaluationID, assetID)
	if err != nil {
		return nil, err
	}

	questions, source := s.generator.Generate(ctx, asset)

	version := time.Now().Unix()
	if err := s.store.Questions().Add(evaluationID, assetID, version, questions); err != nil {
		return nil, err
	}
	if err := s.store.ChangeLog().Append(evaluationID, "questionnaire", assetID, "generate",
		fmt.Sprintf("анкета актива %d пополнена: вопросов %d, источник %s, версия %d",
			assetID, len(questions), source, version)); err != nil {
		return nil, err
	}

	current, err := s.store.Questions().Questionnaire(evaluationID, assetID, version)
	if err != nil {
		return nil, err
	}
	return current, nil
}

// AnalyzeAsset строит и сохраняет LLM-анализ по актуальным результатам
// актива. Запись принадлежит набору ответов, по которому построена:
// пересдача ответов её удаляет.
func (s *Service) AnalyzeAsset(ctx context.Context, evaluationID, assetID uint) (models.AIAnalysis, error) {
	assessment, err := s.AssetAssessment(evaluationID, assetID)
	if err != nil {
		return models.AIAnalysis{}, err
	}

	asset, err := s.store.Assets().Get(evaluationID, assetID)
	if err != nil {
		return models.AIAnalysis{}, err
	}

	summary, err := s.generator.Analyze(ctx, asset, *assessment.Impact, assessment.Risk)
	if err != nil {
		return models.AIAnalysis{}, err
	}

	l := s.assetLock(evaluationID, assetID)
	l.Lock()
	defer l.Unlock()

	// пока шёл медленный вызов LLM, ответы могли смениться: анализ по
	// снятому набору не сохраняется
	current, err := s.store.Results().GetImpact(evaluationID, assetID)
	if err != nil {
		return models.AIAnalysis{}, err
	}
	if current == nil || current.Stale ||
		current.Version != assessment.Impact.Version ||
		!current.UpdatedAt.Equal(assessment.Impact.UpdatedAt) {
		return models.AIAnalysis{}, &scoring.ValidationError{
			Reason: "asset results changed during analysis, rerun it",
		}
	}

	analysis := models.AIAnalysis{
		EvaluationID: evaluationID,
		AssetID:      assetID,
		Version:      assessment.Impact.Version,
		Summary:      summary,
	}
	if err := s.store.Analyses().Put(analysis); err != nil {
		return models.AIAnalysis{}, err
	}
	if err := s.store.ChangeLog().Append(evaluationID, "analysis", assetID, "generate",
		fmt.Sprintf("LLM-анализ актива %d по версии анкеты %d", assetID, analysis.Version)); err != nil {
		return models.AIAnalysis{}, err
	}
	return analysis, nil
}

// AssetAnalysis отдаёт сохранённый анализ; nil — анализа нет (он либо
// не запрашивался, либо удалён пересдачей ответов).
func (s *Service) AssetAnalysis(evaluationID, assetID uint) (*models.AIAnalysis, error) {
	if _, err := s.store.Assets().Get(evaluationID, assetID); err != nil {
		return nil, err
	}
	return s.store.Analyses().Get(evaluationID, assetID)
}
