package scoring

import "ib-riskcalc/internal/models"

// Веса слагаемых зрелости: доля внедрённых сальвагард, доля рисков
// не выше среднего, доля активов с остаточным риском в лимите.
// Формула сознательно считает позицию по безопасности, а не полноту
// заполнения анкет: объём бумажной работы зрелостью не является.
const (
	weightImplemented = 0.40
	weightRisksOK     = 0.30
	weightInLimit     = 0.30
)

// Политика отображения балла зрелости 0..100 в дискретный уровень.
type MaturityPolicy struct {
	LevelEdges [4]float64 // нижние границы уровней 2..5
	LevelNames [5]string
	// лимит остаточного риска (риск-аппетит организации)
	ResidualLimit float64
	Bands         BandConfig
}

func DefaultMaturityPolicy() MaturityPolicy {
	return MaturityPolicy{
		LevelEdges: [4]float64{20, 40, 60, 80},
		LevelNames: [5]string{
			"Начальный",
			"Повторяемый",
			"Определённый",
			"Управляемый",
			"Оптимизируемый",
		},
		ResidualLimit: 6,
		Bands:         DefaultBands(),
	}
}

func (p MaturityPolicy) Level(score float64) (int, string) {
	level := 1
	for i, edge := range p.LevelEdges {
		if score >= edge {
			level = i + 2
		}
	}
	return level, p.LevelNames[level-1]
}

// Входные данные расчёта зрелости, собранные по всей оценке.
type MaturityInput struct {
	Salvaguards []models.Salvaguard
	// риски по всем рассчитанным угрозам оценки
	ThreatRisks []float64
	// остаточный риск по каждому активу, для которого риск рассчитан
	AssetResiduals []float64
	TotalAssets    int
}

// ComputeMaturity считает организационную зрелость по оценке.
// Оценка без активов или без рассчитанных угроз — данных недостаточно,
// ни 0, ни 100 молча не возвращаются.
func ComputeMaturity(in MaturityInput, pol MaturityPolicy) (models.MaturityResult, error) {
	var res models.MaturityResult

	if in.TotalAssets == 0 {
		return res, &InsufficientDataError{Reason: "evaluation has no assets"}
	}
	if len(in.ThreatRisks) == 0 {
		return res, &InsufficientDataError{Reason: "evaluation has no computed threat risks"}
	}

	var implemented int
	for _, s := range in.Salvaguards {
		if s.Status == models.SalvaguardImplemented {
			implemented++
		}
	}
	pctImplemented := 0.0
	if len(in.Salvaguards) > 0 {
		pctImplemented = float64(implemented) / float64(len(in.Salvaguards))
	}

	var risksOK int
	for _, v := range in.ThreatRisks {
		if pol.Bands.AtOrBelowMedium(v) {
			risksOK++
		}
	}
	pctRisksOK := float64(risksOK) / float64(len(in.ThreatRisks))

	pctInLimit := 0.0
	if len(in.AssetResiduals) > 0 {
		var inLimit int
		for _, v := range in.AssetResiduals {
			if v <= pol.ResidualLimit {
				inLimit++
			}
		}
		pctInLimit = float64(inLimit) / float64(len(in.AssetResiduals))
	}

	score := 100 * (weightImplemented*pctImplemented +
		weightRisksOK*pctRisksOK +
		weightInLimit*pctInLimit)

	level, name := pol.Level(score)

	res.Score = score
	res.Level = level
	res.LevelName = name
	res.PctImplemented = 100 * pctImplemented
	res.PctRisksOK = 100 * pctRisksOK
	res.PctAssetsInLimit = 100 * pctInLimit
	return res, nil
}
