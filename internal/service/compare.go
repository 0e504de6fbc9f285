package service

import (
	"errors"

	"ib-riskcalc/internal/models"
	"ib-riskcalc/internal/scoring"
)

func asInsufficient(err error, target **scoring.InsufficientDataError) bool {
	return errors.As(err, target)
}

// Snapshot собирает метрики завершённой оценки для сравнения.
func (s *Service) Snapshot(evaluationID uint) (scoring.Snapshot, error) {
	snap := scoring.Snapshot{EvaluationID: evaluationID}

	// снимок строится только по свежим числам: пересчёт зрелости сам
	// пересчитывает устаревшие результаты каждого актива
	maturity, err := s.EvaluationMaturity(evaluationID)
	if err != nil {
		return snap, err
	}
	snap.MaturityScore = maturity.Score

	risks, err := s.store.Results().ListRisks(evaluationID)
	if err != nil {
		return snap, err
	}
	var inherent, residual float64
	var counted int
	for _, r := range risks {
		if r.Stale {
			// после пересчёта устаревшими остаются только строки
			// активов, риск которых больше не определён
			continue
		}
		inherent += r.InherentRisk
		residual += r.ResidualRisk
		counted++
	}
	if counted > 0 {
		snap.AvgInherentRisk = inherent / float64(counted)
		snap.AvgResidualRisk = residual / float64(counted)
	}

	salvaguards, err := s.store.Salvaguards().ListAll(evaluationID)
	if err != nil {
		return snap, err
	}
	for _, sg := range salvaguards {
		if sg.Status == models.SalvaguardImplemented {
			snap.SalvaguardsImplemented++
		}
	}
	return snap, nil
}

// CompareEvaluations сравнивает две завершённые оценки (обычно
// исходную и переоценку). Данные не изменяются.
func (s *Service) CompareEvaluations(aID, bID uint) ([]scoring.MetricDelta, error) {
	for _, id := range []uint{aID, bID} {
		ev, err := s.store.Evaluations().Get(id)
		if err != nil {
			return nil, err
		}
		if ev.Status != models.EvalCompleted {
			return nil, &scoring.ValidationError{
				Reason: "comparison requires completed evaluations",
			}
		}
	}

	a, err := s.Snapshot(aID)
	if err != nil {
		return nil, err
	}
	b, err := s.Snapshot(bID)
	if err != nil {
		return nil, err
	}
	return scoring.Compare(a, b), nil
}
