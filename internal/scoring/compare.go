package scoring

// Снимок завершённой оценки для сравнения с переоценкой.
type Snapshot struct {
	EvaluationID           uint
	MaturityScore          float64
	AvgInherentRisk        float64
	AvgResidualRisk        float64
	SalvaguardsImplemented int
}

type MetricDelta struct {
	Metric string  `json:"metric"`
	ValueA float64 `json:"value_a"`
	ValueB float64 `json:"value_b"`
	Delta  float64 `json:"delta"`
}

// Compare считает дельты метрик между двумя снимками. Чистая функция:
// снимки не изменяются, порядок метрик фиксированный.
func Compare(a, b Snapshot) []MetricDelta {
	metrics := []struct {
		name   string
		va, vb float64
	}{
		{"avg_inherent_risk", a.AvgInherentRisk, b.AvgInherentRisk},
		{"avg_residual_risk", a.AvgResidualRisk, b.AvgResidualRisk},
		{"maturity", a.MaturityScore, b.MaturityScore},
		{"salvaguards_implemented", float64(a.SalvaguardsImplemented), float64(b.SalvaguardsImplemented)},
	}

	out := make([]MetricDelta, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, MetricDelta{
			Metric: m.name,
			ValueA: m.va,
			ValueB: m.vb,
			Delta:  m.vb - m.va,
		})
	}
	return out
}
