package models

import "gorm.io/gorm"

type EvaluationStatus string

const (
	EvalInProgress EvaluationStatus = "in_progress"
	EvalCompleted  EvaluationStatus = "completed"
	EvalInactive   EvaluationStatus = "inactive"
)

// Оценка — кампания анализа рисков (по MAGERIT / ISO 27002).
// Все производные данные (ответы, результаты, анализы) привязаны
// строго к одной оценке.
type Evaluation struct {
	gorm.Model
	Name   string           `gorm:"size:255;not null"`
	Status EvaluationStatus `gorm:"type:varchar(20);not null"`

	// если это переоценка — ссылка на исходную оценку
	OriginID *uint
}
