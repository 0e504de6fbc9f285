package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"ib-riskcalc/internal/models"
)

// вклад одного ответа в воздействие по измерению
type contribution struct {
	questionID uint
	text       string
	weight     int
	value      int // уже с учётом инверсии
}

// ComputeImpact сводит набор ответов одного актива в три оценки
// воздействия D/I/C (1..5) с детерминированным обоснованием.
// На любой дефект данных (дубликат вопроса, вес или измерение вне
// домена) расчёт отклоняется целиком.
func ComputeImpact(answers []models.Answer) (models.ImpactResult, error) {
	var res models.ImpactResult

	seen := make(map[uint]bool, len(answers))
	byDim := make(map[models.Dimension][]contribution)

	for _, a := range answers {
		q := a.Question
		if seen[a.QuestionID] {
			return res, &ValidationError{
				Reason: fmt.Sprintf("duplicate question %d in answer set", a.QuestionID),
			}
		}
		seen[a.QuestionID] = true

		if q.Weight < ScaleMin || q.Weight > ScaleMax {
			return res, &InconsistentScaleError{Field: "weight", Value: q.Weight}
		}
		switch q.Dimension {
		case models.DimAvailability, models.DimIntegrity, models.DimConfidentiality:
		default:
			return res, &ValidationError{
				Reason: "unknown dimension: " + string(q.Dimension),
			}
		}
		if a.Value < ScaleMin || a.Value > ScaleMax {
			return res, &InconsistentScaleError{Field: "value", Value: a.Value}
		}

		v := a.Value
		if q.Intent == models.IntentInverted {
			// ответ измеряет наличие контроля: "контроля нет" (1)
			// означает максимальное воздействие
			v = ScaleMax + 1 - v
		}

		byDim[q.Dimension] = append(byDim[q.Dimension], contribution{
			questionID: a.QuestionID,
			text:       q.Text,
			weight:     q.Weight,
			value:      v,
		})
	}

	res.ImpactD, res.JustificationD = dimensionImpact(models.DimAvailability, byDim[models.DimAvailability])
	res.ImpactI, res.JustificationI = dimensionImpact(models.DimIntegrity, byDim[models.DimIntegrity])
	res.ImpactC, res.JustificationC = dimensionImpact(models.DimConfidentiality, byDim[models.DimConfidentiality])

	return res, nil
}

// NeutralImpact — нейтральное значение для измерения без ответов.
const NeutralImpact = ScaleMin

func dimensionImpact(dim models.Dimension, contribs []contribution) (int, string) {
	if len(contribs) == 0 {
		return NeutralImpact, "нет данных по измерению"
	}

	var sum, weights int
	for _, c := range contribs {
		sum += c.value * c.weight
		weights += c.weight
	}

	avg := float64(sum) / float64(weights)
	ordinal := int(math.Round(avg))
	impact := ImpactScale(dim, ordinal)

	return impact, justification(contribs)
}

// Обоснование строится из ответов с наибольшим вкладом (value*weight),
// порядок детерминирован: по убыванию вклада, затем по ID вопроса.
func justification(contribs []contribution) string {
	sorted := make([]contribution, len(contribs))
	copy(sorted, contribs)
	sort.Slice(sorted, func(i, j int) bool {
		wi, wj := sorted[i].value*sorted[i].weight, sorted[j].value*sorted[j].weight
		if wi != wj {
			return wi > wj
		}
		return sorted[i].questionID < sorted[j].questionID
	})

	n := 2
	if len(sorted) < n {
		n = len(sorted)
	}

	parts := make([]string, 0, n)
	for _, c := range sorted[:n] {
		parts = append(parts, fmt.Sprintf("«%s» (значение %d, вес %d)", c.text, c.value, c.weight))
	}
	return "определяющие ответы: " + strings.Join(parts, "; ")
}
