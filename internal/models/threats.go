package models

import "gorm.io/gorm"

// Каталог угроз (по MAGERIT / своей классификации)
type Threat struct {
	gorm.Model
	Code        string `gorm:"size:32;uniqueIndex"` // Например: A.11, E.2, УБИ.001
	Name        string `gorm:"size:255;not null"`
	Category    string `gorm:"size:64"` // Техногенная, Ошибки персонала, Атаки и т.п.
	Description string `gorm:"type:text"`

	// деградация по измерениям: какая доля воздействия реализуется
	// при наступлении угрозы, в процентах 0..100
	DegradationD int `gorm:"not null;default:0"`
	DegradationI int `gorm:"not null;default:0"`
	DegradationC int `gorm:"not null;default:0"`

	Probability int `gorm:"not null;default:1"` // класс частоты/вероятности 1..5

	Vulnerabilities []Vulnerability
}

// Уязвимость из каталога, через которую угроза реализуется (1:1 или 1:N)
type Vulnerability struct {
	gorm.Model
	ThreatID uint
	Threat   Threat

	Code        string `gorm:"size:32"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
}

// Каталог мер / контролей по ИБ (ISO 27002, ГОСТ и т.п.)
type ControlMeasure struct {
	gorm.Model
	Code        string `gorm:"size:32;uniqueIndex"`
	Name        string `gorm:"size:255;not null"`
	Standard    string `gorm:"size:128"` // ссылка на ISO, ФСТЭК, ГОСТ
	Description string `gorm:"type:text"`
}

// Связь "угроза → рекомендуемая мера защиты"
type ThreatMeasure struct {
	gorm.Model

	ThreatID  uint
	MeasureID uint

	Threat  Threat
	Measure ControlMeasure
}

// Связь "угроза актуальна для конкретного актива" в рамках оценки
type AssetThreat struct {
	ID uint `gorm:"primaryKey"`

	EvaluationID uint `gorm:"not null;index"`
	AssetID      uint `gorm:"not null;index"`
	ThreatID     uint `gorm:"not null"`

	// переопределение вероятности для этого актива; 0 — брать из каталога
	Probability int `gorm:"not null;default:0"`
	Notes       string `gorm:"type:text"`

	Asset  Asset
	Threat Threat
}
