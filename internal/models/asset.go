package models

import "gorm.io/gorm"

type AssetType string

const (
	AssetPhysicalServer AssetType = "physical_server"
	AssetVirtualServer  AssetType = "virtual_server"
	AssetNetwork        AssetType = "network"
	AssetApplication    AssetType = "application"
)

type Asset struct {
	gorm.Model
	EvaluationID uint
	Evaluation   Evaluation

	Name     string    `gorm:"size:255;not null"`
	Type     AssetType `gorm:"type:varchar(50);not null"`
	Owner    string    `gorm:"size:255"` // ответственный за актив
	Location string    `gorm:"size:255"`
	Critical bool      // критичный для бизнеса актив
}
