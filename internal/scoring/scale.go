package scoring

import "ib-riskcalc/internal/models"

const (
	ScaleMin = 1
	ScaleMax = 5
)

// Справочная шкала MAGERIT: порядковое значение 1..5 → уровень
// воздействия 1..5 по измерению. Таблицы заданы явно, чтобы политику
// можно было поменять, не трогая расчёт.
var impactScale = map[models.Dimension][ScaleMax]int{
	models.DimAvailability:    {1, 2, 3, 4, 5},
	models.DimIntegrity:       {1, 2, 3, 4, 5},
	models.DimConfidentiality: {1, 2, 3, 4, 5},
}

// ImpactScale возвращает уровень воздействия для порядкового значения.
// Значения вне домена прижимаются к ближайшей границе — это
// задокументированная политика таблиц, а не молчаливое исправление
// данных (валидация сырых ответов происходит раньше, при сдаче).
func ImpactScale(dim models.Dimension, ordinal int) int {
	if ordinal < ScaleMin {
		ordinal = ScaleMin
	}
	if ordinal > ScaleMax {
		ordinal = ScaleMax
	}
	table, ok := impactScale[dim]
	if !ok {
		return ordinal
	}
	return table[ordinal-1]
}

// DerivedValue приводит сырое значение ответа к шкале 1..5.
// Для бинарных ответов 0 → 1 (нет воздействия), 1 → 5.
func DerivedValue(at models.AnswerType, raw int) (int, error) {
	switch at {
	case models.AnswerBinary:
		switch raw {
		case 0:
			return ScaleMin, nil
		case 1:
			return ScaleMax, nil
		}
		return 0, &ValidationError{Reason: "binary answer must be 0 or 1"}
	case models.AnswerScale5:
		if raw < ScaleMin || raw > ScaleMax {
			return 0, &ValidationError{Reason: "scale answer must be in 1..5"}
		}
		return raw, nil
	}
	return 0, &ValidationError{Reason: "unknown answer type: " + string(at)}
}
