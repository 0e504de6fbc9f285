package models

import (
	"time"

	"gorm.io/gorm"
)

// Результат расчёта воздействия по активу. Один на пару
// (оценка, актив); пересчитывается при изменении набора ответов,
// руками не правится.
type ImpactResult struct {
	gorm.Model
	EvaluationID uint `gorm:"not null;uniqueIndex:idx_impact_asset"`
	AssetID      uint `gorm:"not null;uniqueIndex:idx_impact_asset"`

	ImpactD int `gorm:"not null"`
	ImpactI int `gorm:"not null"`
	ImpactC int `gorm:"not null"`

	JustificationD string `gorm:"type:text"`
	JustificationI string `gorm:"type:text"`
	JustificationC string `gorm:"type:text"`

	Version int64 `gorm:"not null"` // версия анкеты, по которой считали
	Stale   bool  `gorm:"not null;default:false"`
}

// Риск по отдельной угрозе актива.
type ThreatRisk struct {
	ID uint `gorm:"primaryKey"`

	RiskResultID uint `gorm:"not null;index"`
	ThreatID     uint `gorm:"not null"`

	Value float64 `gorm:"not null"` // 1..25
	Level string  `gorm:"size:16;not null"`

	Threat Threat
}

// Агрегированный риск по активу: присущий (до мер) и остаточный
// (после учёта эффективности сальвагард).
type RiskResult struct {
	gorm.Model
	EvaluationID uint `gorm:"not null;uniqueIndex:idx_risk_asset"`
	AssetID      uint `gorm:"not null;uniqueIndex:idx_risk_asset"`

	InherentRisk  float64 `gorm:"not null"`
	ResidualRisk  float64 `gorm:"not null"`
	InherentLevel string  `gorm:"size:16;not null"`
	ResidualLevel string  `gorm:"size:16;not null"`

	Stale bool `gorm:"not null;default:false"`

	Threats []ThreatRisk
}

// Результат расчёта зрелости: один на оценку, пересчитывается целиком.
type MaturityResult struct {
	gorm.Model
	EvaluationID uint `gorm:"not null;uniqueIndex"`

	Score     float64 `gorm:"not null"` // 0..100
	Level     int     `gorm:"not null"` // 1..5
	LevelName string  `gorm:"size:64;not null"`

	PctImplemented   float64 `gorm:"not null"` // доля внедрённых сальвагард
	PctRisksOK       float64 `gorm:"not null"` // доля рисков не выше среднего
	PctAssetsInLimit float64 `gorm:"not null"` // доля активов с остаточным риском в лимите
}

// Результат консультативного (LLM) анализа по активу. Принадлежит
// паре (оценка, актив) и удаляется при любом изменении её ответов.
type AIAnalysis struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	EvaluationID uint `gorm:"not null;uniqueIndex:idx_analysis_asset"`
	AssetID      uint `gorm:"not null;uniqueIndex:idx_analysis_asset"`

	Version int64  `gorm:"not null"` // версия анкеты-источника
	Summary string `gorm:"type:text"`
}
