package scoring

import "ib-riskcalc/internal/models"

// Уровни риска по пятиполосной шкале на домене 1..25.
const (
	LevelVeryLow  = "very_low"
	LevelLow      = "low"
	LevelMedium   = "medium"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

const (
	RiskMin = 1.0
	RiskMax = 25.0
)

// Границы полос риска (нижняя граница включительно). Значения —
// настраиваемая политика, а не бизнес-логика: в разных методиках
// пороги отличаются.
type BandConfig struct {
	Low      float64
	Medium   float64
	High     float64
	Critical float64
}

func DefaultBands() BandConfig {
	return BandConfig{Low: 3, Medium: 6, High: 12, Critical: 20}
}

func (b BandConfig) Level(v float64) string {
	switch {
	case v >= b.Critical:
		return LevelCritical
	case v >= b.High:
		return LevelHigh
	case v >= b.Medium:
		return LevelMedium
	case v >= b.Low:
		return LevelLow
	}
	return LevelVeryLow
}

// AtOrBelowMedium — риск не выше среднего (учитывается в зрелости).
func (b BandConfig) AtOrBelowMedium(v float64) bool {
	return v < b.High
}

// Политика расчёта риска.
type RiskPolicy struct {
	Bands BandConfig
	// минимальный ненулевой остаточный риск: остаточный риск 0
	// означал бы ложную уверенность
	ResidualFloor float64
}

func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{Bands: DefaultBands(), ResidualFloor: 0.5}
}

// Агрегированный риск актива.
type AssetRisk struct {
	Inherent      float64
	Residual      float64
	InherentLevel string
	ResidualLevel string
	Threats       []models.ThreatRisk
}

// ThreatRiskValue считает риск по одной угрозе:
// вероятность (1..5) × максимум по измерениям (воздействие × деградация).
// probability — переопределение на уровне актива, 0 — взять из каталога.
func ThreatRiskValue(imp models.ImpactResult, th models.Threat, probability int) (float64, error) {
	prob := probability
	if prob == 0 {
		prob = th.Probability
	}
	if prob < 1 || prob > 5 {
		return 0, &InconsistentScaleError{Field: "probability", Value: prob}
	}
	for _, d := range []int{th.DegradationD, th.DegradationI, th.DegradationC} {
		if d < 0 || d > 100 {
			return 0, &InconsistentScaleError{Field: "degradation", Value: d}
		}
	}

	worst := float64(imp.ImpactD) * float64(th.DegradationD) / 100
	if v := float64(imp.ImpactI) * float64(th.DegradationI) / 100; v > worst {
		worst = v
	}
	if v := float64(imp.ImpactC) * float64(th.DegradationC) / 100; v > worst {
		worst = v
	}

	risk := float64(prob) * worst
	if risk < RiskMin {
		risk = RiskMin
	}
	if risk > RiskMax {
		risk = RiskMax
	}
	return risk, nil
}

// AggregateAssetRisk сводит риски по угрозам актива в присущий и
// остаточный риск. Присущий риск — максимум по угрозам: одна
// катастрофическая угроза не размывается множеством мелких.
// Актив без угроз — риск не определён, а не нулевой.
func AggregateAssetRisk(imp models.ImpactResult, threats []models.AssetThreat, salvaguards []models.Salvaguard, pol RiskPolicy) (AssetRisk, error) {
	var res AssetRisk

	if len(threats) == 0 {
		return res, &InsufficientDataError{Reason: "asset has no threats"}
	}

	inherent := 0.0
	res.Threats = make([]models.ThreatRisk, 0, len(threats))
	for _, at := range threats {
		v, err := ThreatRiskValue(imp, at.Threat, at.Probability)
		if err != nil {
			return AssetRisk{}, err
		}
		if v > inherent {
			inherent = v
		}
		res.Threats = append(res.Threats, models.ThreatRisk{
			ThreatID: at.ThreatID,
			Value:    v,
			Level:    pol.Bands.Level(v),
		})
	}

	residual := inherent
	if len(salvaguards) > 0 {
		var sum float64
		for _, s := range salvaguards {
			eff := s.Effectiveness
			if eff < 0 || eff > 100 {
				return AssetRisk{}, &InconsistentScaleError{Field: "effectiveness", Value: eff}
			}
			sum += float64(eff)
		}
		avg := sum / float64(len(salvaguards))
		residual = inherent * (1 - avg/100)
		if residual < pol.ResidualFloor {
			residual = pol.ResidualFloor
		}
	}

	res.Inherent = inherent
	res.Residual = residual
	res.InherentLevel = pol.Bands.Level(inherent)
	res.ResidualLevel = pol.Bands.Level(residual)
	return res, nil
}
