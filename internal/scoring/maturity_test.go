package scoring

import (
	"testing"

	"ib-riskcalc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salvaguards(implemented, other int) []models.Salvaguard {
	out := make([]models.Salvaguard, 0, implemented+other)
	for i := 0; i < implemented; i++ {
		out = append(out, models.Salvaguard{Status: models.SalvaguardImplemented, Effectiveness: 70})
	}
	for i := 0; i < other; i++ {
		out = append(out, models.Salvaguard{Status: models.SalvaguardRecommended})
	}
	return out
}

func TestComputeMaturityRange(t *testing.T) {
	pol := DefaultMaturityPolicy()

	res, err := ComputeMaturity(MaturityInput{
		Salvaguards:    salvaguards(2, 3),
		ThreatRisks:    []float64{2, 8, 14, 22},
		AssetResiduals: []float64{3, 9},
		TotalAssets:    2,
	}, pol)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.LessOrEqual(t, res.Score, 100.0)
	assert.GreaterOrEqual(t, res.Level, 1)
	assert.LessOrEqual(t, res.Level, 5)
	assert.NotEmpty(t, res.LevelName)
}

// Регрессия на задокументированный дефект наивной формулы: зрелость
// считает позицию по безопасности, а не объём заполненной отчётности.
// Оценка со сплошь критичными рисками и без внедрённых мер обязана
// получить существенно меньший балл, чем оценка с низкими рисками и
// полностью внедрёнными мерами — при одинаковом объёме данных.
func TestMaturityRewardsPostureNotPaperwork(t *testing.T) {
	pol := DefaultMaturityPolicy()

	bad, err := ComputeMaturity(MaturityInput{
		Salvaguards:    salvaguards(0, 5),
		ThreatRisks:    []float64{22, 23, 24, 25},
		AssetResiduals: []float64{22, 25},
		TotalAssets:    2,
	}, pol)
	require.NoError(t, err)

	good, err := ComputeMaturity(MaturityInput{
		Salvaguards:    salvaguards(5, 0),
		ThreatRisks:    []float64{1, 2, 3, 4},
		AssetResiduals: []float64{1, 2},
		TotalAssets:    2,
	}, pol)
	require.NoError(t, err)

	assert.Less(t, bad.Score, 10.0)
	assert.Greater(t, good.Score, 90.0)
	assert.Greater(t, good.Score-bad.Score, 50.0)
	assert.Greater(t, good.Level, bad.Level)
}

func TestMaturityWeights(t *testing.T) {
	pol := DefaultMaturityPolicy()

	// только внедрённые меры, риски все высокие и вне лимита
	res, err := ComputeMaturity(MaturityInput{
		Salvaguards:    salvaguards(4, 0),
		ThreatRisks:    []float64{25, 25},
		AssetResiduals: []float64{25},
		TotalAssets:    1,
	}, pol)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, res.Score, 1e-9)

	// меры отсутствуют, все риски низкие и в лимите
	res, err = ComputeMaturity(MaturityInput{
		ThreatRisks:    []float64{2, 2},
		AssetResiduals: []float64{2},
		TotalAssets:    1,
	}, pol)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, res.Score, 1e-9)
}

func TestMaturityInsufficientData(t *testing.T) {
	pol := DefaultMaturityPolicy()

	_, err := ComputeMaturity(MaturityInput{TotalAssets: 0}, pol)
	var ins *InsufficientDataError
	require.ErrorAs(t, err, &ins)

	_, err = ComputeMaturity(MaturityInput{TotalAssets: 3}, pol)
	require.ErrorAs(t, err, &ins)
}

func TestMaturityLevelEdges(t *testing.T) {
	pol := DefaultMaturityPolicy()

	cases := []struct {
		score     float64
		wantLevel int
	}{
		{0, 1}, {19.9, 1},
		{20, 2}, {39.9, 2},
		{40, 3},
		{60, 4},
		{80, 5}, {100, 5},
	}
	for _, tc := range cases {
		level, name := pol.Level(tc.score)
		assert.Equal(t, tc.wantLevel, level, "score %v", tc.score)
		assert.Equal(t, pol.LevelNames[level-1], name)
	}
}
