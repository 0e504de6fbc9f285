package scoring

import (
	"testing"

	"ib-riskcalc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answer(id uint, dim models.Dimension, intent models.QuestionIntent, weight, value int) models.Answer {
	return models.Answer{
		QuestionID: id,
		Value:      value,
		Question: models.Question{
			Text:       "q",
			Dimension:  dim,
			Weight:     weight,
			Intent:     intent,
			AnswerType: models.AnswerScale5,
		},
	}
}

func TestComputeImpactBounds(t *testing.T) {
	cases := []struct {
		name    string
		answers []models.Answer
		wantD   int
	}{
		{
			name: "worst case direct",
			answers: []models.Answer{
				answer(1, models.DimAvailability, models.IntentDirect, 5, 5),
				answer(2, models.DimAvailability, models.IntentDirect, 5, 5),
			},
			wantD: 5,
		},
		{
			name: "best case direct",
			answers: []models.Answer{
				answer(1, models.DimAvailability, models.IntentDirect, 1, 1),
				answer(2, models.DimAvailability, models.IntentDirect, 5, 1),
			},
			wantD: 1,
		},
		{
			name: "inverted flips control absence into impact",
			answers: []models.Answer{
				// "контроля нет" (1) даёт максимальный вклад
				answer(1, models.DimAvailability, models.IntentInverted, 3, 1),
			},
			wantD: 5,
		},
		{
			name: "weighted mix",
			answers: []models.Answer{
				answer(1, models.DimAvailability, models.IntentDirect, 5, 4),
				answer(2, models.DimAvailability, models.IntentDirect, 1, 1),
			},
			wantD: 4, // (4*5 + 1*1)/6 = 3.5 -> 4
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ComputeImpact(tc.answers)
			require.NoError(t, err)
			assert.Equal(t, tc.wantD, res.ImpactD)
			assert.GreaterOrEqual(t, res.ImpactD, ScaleMin)
			assert.LessOrEqual(t, res.ImpactD, ScaleMax)
		})
	}
}

func TestComputeImpactMonotonic(t *testing.T) {
	// рост прямых ответов не уменьшает воздействие
	prev := 0
	for v := 1; v <= 5; v++ {
		res, err := ComputeImpact([]models.Answer{
			answer(1, models.DimIntegrity, models.IntentDirect, 3, v),
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.ImpactI, prev)
		prev = res.ImpactI
	}

	// рост инвертированных (контроль крепнет) не увеличивает воздействие
	prev = ScaleMax + 1
	for v := 1; v <= 5; v++ {
		res, err := ComputeImpact([]models.Answer{
			answer(1, models.DimIntegrity, models.IntentInverted, 3, v),
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, res.ImpactI, prev)
		prev = res.ImpactI
	}
}

func TestComputeImpactEmptyDimension(t *testing.T) {
	res, err := ComputeImpact([]models.Answer{
		answer(1, models.DimAvailability, models.IntentDirect, 3, 4),
	})
	require.NoError(t, err)

	assert.Equal(t, NeutralImpact, res.ImpactC)
	assert.Equal(t, "нет данных по измерению", res.JustificationC)
	assert.Contains(t, res.JustificationD, "определяющие ответы")
}

func TestComputeImpactRejectsDuplicateQuestion(t *testing.T) {
	_, err := ComputeImpact([]models.Answer{
		answer(7, models.DimAvailability, models.IntentDirect, 3, 4),
		answer(7, models.DimAvailability, models.IntentDirect, 3, 2),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestComputeImpactRejectsBadWeight(t *testing.T) {
	for _, w := range []int{0, 6, -1} {
		_, err := ComputeImpact([]models.Answer{
			answer(1, models.DimAvailability, models.IntentDirect, w, 4),
		})

		var serr *InconsistentScaleError
		require.ErrorAs(t, err, &serr, "weight %d", w)
		assert.Equal(t, "weight", serr.Field)
	}
}

func TestComputeImpactRejectsUnknownDimension(t *testing.T) {
	_, err := ComputeImpact([]models.Answer{
		answer(1, models.Dimension("X"), models.IntentDirect, 3, 4),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
