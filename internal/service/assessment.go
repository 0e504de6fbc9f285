package service

import (
	"fmt"

	"ib-riskcalc/internal/models"
	"ib-riskcalc/internal/scoring"
	"ib-riskcalc/internal/store"
)

// Результат оценки актива. Risk == nil означает "риск не определён"
// (у актива нет угроз) — это не нулевой риск.
type Assessment struct {
	Impact *models.ImpactResult `json:"impact"`
	Risk   *models.RiskResult   `json:"risk"`
	// причина отсутствия риска, если Risk == nil
	RiskUndefined string `json:"risk_undefined,omitempty"`
}

// AssetAssessment отдаёт воздействие и риск актива, пересчитывая их,
// если результатов ещё нет или они помечены устаревшими. Устаревший
// результат рядом со свежими ответами наружу не отдаётся никогда.
func (s *Service) AssetAssessment(evaluationID, assetID uint) (Assessment, error) {
	l := s.assetLock(evaluationID, assetID)
	l.Lock()
	defer l.Unlock()

	if _, err := s.store.Assets().Get(evaluationID, assetID); err != nil {
		return Assessment{}, err
	}

	impact, err := s.store.Results().GetImpact(evaluationID, assetID)
	if err != nil {
		return Assessment{}, err
	}
	risk, err := s.store.Results().GetRisk(evaluationID, assetID)
	if err != nil {
		return Assessment{}, err
	}

	if impact != nil && !impact.Stale && risk != nil && !risk.Stale {
		return Assessment{Impact: impact, Risk: risk}, nil
	}

	return s.recomputeAsset(evaluationID, assetID)
}

// recomputeAsset считает воздействие и риск по текущему набору
// ответов и идемпотентно сохраняет результаты.
func (s *Service) recomputeAsset(evaluationID, assetID uint) (Assessment, error) {
	var out Assessment

	err := s.store.InTx(func(st store.Store) error {
		version, err := st.Questions().CurrentVersion(evaluationID, assetID)
		if err != nil {
			return err
		}
		answers, err := st.Answers().GetSet(evaluationID, assetID, version)
		if err != nil {
			return err
		}
		if len(answers) == 0 {
			return &scoring.InsufficientDataError{Reason: "no answers submitted for asset"}
		}

		impact, err := scoring.ComputeImpact(answers)
		if err != nil {
			return err
		}
		impact.EvaluationID = evaluationID
		impact.AssetID = assetID
		impact.Version = version
		impact.Stale = false
		if err := st.Results().PutImpact(impact); err != nil {
			return err
		}

		threats, err := st.Catalog().AssetThreats(evaluationID, assetID)
		if err != nil {
			return err
		}
		salvaguards, err := st.Salvaguards().List(evaluationID, assetID)
		if err != nil {
			return err
		}

		agg, err := scoring.AggregateAssetRisk(impact, threats, salvaguards, s.riskPol)
		if err != nil {
			var ins *scoring.InsufficientDataError
			if asInsufficient(err, &ins) {
				// угроз нет — риск не определён; воздействие при этом
				// рассчитано и сохранено
				stored, gerr := st.Results().GetImpact(evaluationID, assetID)
				if gerr != nil {
					return gerr
				}
				out = Assessment{Impact: stored, RiskUndefined: ins.Reason}
				return nil
			}
			return err
		}

		riskRes := models.RiskResult{
			EvaluationID:  evaluationID,
			AssetID:       assetID,
			InherentRisk:  agg.Inherent,
			ResidualRisk:  agg.Residual,
			InherentLevel: agg.InherentLevel,
			ResidualLevel: agg.ResidualLevel,
			Threats:       agg.Threats,
		}
		if err := st.Results().PutRisk(riskRes); err != nil {
			return err
		}

		storedImpact, err := st.Results().GetImpact(evaluationID, assetID)
		if err != nil {
			return err
		}
		storedRisk, err := st.Results().GetRisk(evaluationID, assetID)
		if err != nil {
			return err
		}
		out = Assessment{Impact: storedImpact, Risk: storedRisk}

		return st.ChangeLog().Append(evaluationID, "assessment", assetID, "recompute",
			fmt.Sprintf("пересчёт результатов актива %d по версии анкеты %d", assetID, version))
	})
	if err != nil {
		return Assessment{}, err
	}
	return out, nil
}

// EvaluationMaturity считает зрелость по оценке целиком, пересчитывая
// устаревшие результаты активов по пути. Активы без ответов или без
// угроз в расчёт риска не входят, но учитываются в общем числе активов.
func (s *Service) EvaluationMaturity(evaluationID uint) (models.MaturityResult, error) {
	assets, err := s.store.Assets().List(evaluationID)
	if err != nil {
		return models.MaturityResult{}, err
	}

	in := scoring.MaturityInput{TotalAssets: len(assets)}

	for _, a := range assets {
		assessment, err := s.AssetAssessment(evaluationID, a.ID)
		if err != nil {
			var ins *scoring.InsufficientDataError
			if asInsufficient(err, &ins) {
				continue
			}
			return models.MaturityResult{}, err
		}
		if assessment.Risk == nil {
			continue
		}
		for _, tr := range assessment.Risk.Threats {
			in.ThreatRisks = append(in.ThreatRisks, tr.Value)
		}
		in.AssetResiduals = append(in.AssetResiduals, assessment.Risk.ResidualRisk)
	}

	in.Salvaguards, err = s.store.Salvaguards().ListAll(evaluationID)
	if err != nil {
		return models.MaturityResult{}, err
	}

	res, err := scoring.ComputeMaturity(in, s.matPol)
	if err != nil {
		return models.MaturityResult{}, err
	}
	res.EvaluationID = evaluationID

	if err := s.store.Results().PutMaturity(res); err != nil {
		return models.MaturityResult{}, err
	}
	if err := s.store.ChangeLog().Append(evaluationID, "maturity", evaluationID, "recompute",
		fmt.Sprintf("зрелость пересчитана: балл %.1f, уровень %d (%s)", res.Score, res.Level, res.LevelName)); err != nil {
		return models.MaturityResult{}, err
	}
	return res, nil
}
