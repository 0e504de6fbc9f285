package models

import "gorm.io/gorm"

type SalvaguardStatus string

const (
	SalvaguardRecommended SalvaguardStatus = "recommended"
	SalvaguardInProgress  SalvaguardStatus = "in_progress"
	SalvaguardImplemented SalvaguardStatus = "implemented"
)

// Сальвагарда — мера защиты, применённая к активу в рамках оценки.
// Учитывается при расчёте остаточного риска и зрелости.
type Salvaguard struct {
	gorm.Model
	EvaluationID uint `gorm:"not null;index"`
	AssetID      uint `gorm:"not null;index"`
	MeasureID    uint `gorm:"not null"`

	Status        SalvaguardStatus `gorm:"type:varchar(20);not null"`
	Effectiveness int              `gorm:"not null;default:0"` // 0..100

	Asset   Asset
	Measure ControlMeasure
}
