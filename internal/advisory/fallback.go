package advisory

import "ib-riskcalc/internal/models"

// Фиксированный набор вопросов из банка каталога — страховка на
// случай недоступности или невалидного ответа LLM.
var fallbackCandidates = []Candidate{
	{
		Text:       "Допустимое время восстановления (RTO) превышает 24 часа?",
		Dimension:  "D",
		Weight:     5,
		AnswerType: "binary",
		Intent:     "direct",
	},
	{
		Text:       "Насколько отработана процедура аварийного восстановления (DRP)?",
		Dimension:  "D",
		Weight:     4,
		AnswerType: "scale5",
		Intent:     "inverted",
	},
	{
		Text:       "Насколько полно контролируется целостность конфигураций и данных?",
		Dimension:  "I",
		Weight:     4,
		AnswerType: "scale5",
		Intent:     "inverted",
	},
	{
		Text:       "Вносились ли незадокументированные изменения за последний год?",
		Dimension:  "I",
		Weight:     3,
		AnswerType: "binary",
		Intent:     "direct",
	},
	{
		Text:       "Обрабатываются ли на активе персональные или иные охраняемые данные?",
		Dimension:  "C",
		Weight:     5,
		AnswerType: "binary",
		Intent:     "direct",
	},
	{
		Text:       "Насколько строго разграничен доступ к данным актива?",
		Dimension:  "C",
		Weight:     4,
		AnswerType: "scale5",
		Intent:     "inverted",
	},
}

// Fallback возвращает банк вопросов с источником fallback, чтобы
// потребители отличали его от каталожных и советничьих вопросов.
func Fallback() []models.Question {
	questions := make([]models.Question, 0, len(fallbackCandidates))
	for _, c := range fallbackCandidates {
		questions = append(questions, toQuestion(c, models.SourceFallback))
	}
	return questions
}
