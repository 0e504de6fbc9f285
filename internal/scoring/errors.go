package scoring

import "fmt"

// Ошибка валидации входных данных: расчёт отклоняется целиком,
// частичных результатов не бывает.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// Набор ответов для этой версии анкеты уже сдан; повторная сдача
// требует явной инвалидации.
type DuplicateSubmissionError struct {
	EvaluationID uint
	AssetID      uint
	Version      int64
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("duplicate submission: evaluation=%d asset=%d version=%d",
		e.EvaluationID, e.AssetID, e.Version)
}

// Запрошен расчёт, для которого нет исходных данных. Результат
// "не определён", а не ноль.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return "insufficient data: " + e.Reason
}

// Значение вне домена шкалы (вес, измерение, деградация и т.п.) —
// признак порчи данных, весь пакет отклоняется.
type InconsistentScaleError struct {
	Field string
	Value int
}

func (e *InconsistentScaleError) Error() string {
	return fmt.Sprintf("inconsistent scale: %s=%d", e.Field, e.Value)
}
