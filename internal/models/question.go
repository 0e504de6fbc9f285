package models

import (
	"time"

	"gorm.io/gorm"
)

// Измерение воздействия: доступность / целостность / конфиденциальность.
type Dimension string

const (
	DimAvailability    Dimension = "D"
	DimIntegrity       Dimension = "I"
	DimConfidentiality Dimension = "C"
)

type AnswerType string

const (
	AnswerBinary AnswerType = "binary" // да / нет
	AnswerScale5 AnswerType = "scale5" // порядковая шкала 1..5
)

// Интент вопроса: прямой — значение ответа и есть вклад в воздействие,
// инвертированный — ответ измеряет наличие контроля, вклад = 6 - значение.
type QuestionIntent string

const (
	IntentDirect   QuestionIntent = "direct"
	IntentInverted QuestionIntent = "inverted"
)

type QuestionSource string

const (
	SourceCatalog  QuestionSource = "catalog"
	SourceAdvisory QuestionSource = "advisory"
	SourceFallback QuestionSource = "fallback"
)

// Вопрос анкеты по активу. Анкета версионируется меткой времени:
// правки вопросов сдвигают видимую версию, но ID вопросов, на которые
// уже ссылаются ответы, не меняются.
type Question struct {
	gorm.Model
	EvaluationID uint
	AssetID      uint

	Text       string         `gorm:"type:text;not null"`
	Dimension  Dimension      `gorm:"type:varchar(1);not null"`
	Weight     int            `gorm:"not null"` // 1..5
	AnswerType AnswerType     `gorm:"type:varchar(10);not null"`
	Intent     QuestionIntent `gorm:"type:varchar(10);not null"`
	Source     QuestionSource `gorm:"type:varchar(10);not null"`

	Version int64 `gorm:"not null;index"` // unix-метка версии анкеты
}

// Ответ на вопрос анкеты. Value — приведённое значение (для binary
// 0 -> 1, 1 -> 5), фиксируется при сдаче и больше не пересчитывается.
type Answer struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	EvaluationID uint  `gorm:"not null;index:idx_answer_set"`
	AssetID      uint  `gorm:"not null;index:idx_answer_set"`
	Version      int64 `gorm:"not null;index:idx_answer_set"`
	QuestionID   uint  `gorm:"not null"`

	RawValue int `gorm:"not null"` // 0/1 либо 1..5
	Value    int `gorm:"not null"` // 1..5

	Question Question
}
