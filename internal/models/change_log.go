package models

import "time"

// Журнал изменений: сдачи ответов, инвалидации, пересчёты.
type ChangeLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	EvaluationID uint `gorm:"not null;index"`

	Entity   string `gorm:"size:50;not null"` // "answers", "salvaguard", "analysis"
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "submit", "invalidate", "recompute" и т.п.
	Details  string `gorm:"type:text"`
}
