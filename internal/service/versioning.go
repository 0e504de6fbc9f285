package service

import (
	"fmt"
	"time"

	"ib-riskcalc/internal/models"
	"ib-riskcalc/internal/scoring"
	"ib-riskcalc/internal/store"
)

// Сырой ответ респондента на один вопрос.
type AnswerInput struct {
	QuestionID uint `json:"question_id"`
	RawValue   int  `json:"raw_value"`
}

// SubmitAnswers принимает полный набор ответов актива для версии
// анкеты. Повторная сдача для уже отвеченной версии отклоняется:
// ответы молча не перезаписываются, нужен явный ResubmitAnswers.
// version = 0 означает текущую версию анкеты.
func (s *Service) SubmitAnswers(evaluationID, assetID uint, version int64, inputs []AnswerInput) error {
	l := s.assetLock(evaluationID, assetID)
	l.Lock()
	defer l.Unlock()

	return s.store.InTx(func(st store.Store) error {
		v, err := s.resolveVersion(st, evaluationID, assetID, version)
		if err != nil {
			return err
		}

		exists, err := st.Answers().SetExists(evaluationID, assetID, v)
		if err != nil {
			return err
		}
		if exists {
			return &scoring.DuplicateSubmissionError{
				EvaluationID: evaluationID,
				AssetID:      assetID,
				Version:      v,
			}
		}

		answers, err := s.buildAnswerSet(st, evaluationID, assetID, v, inputs)
		if err != nil {
			return err
		}
		if err := st.Answers().PutSet(evaluationID, assetID, v, answers); err != nil {
			return err
		}

		// принятая сдача — мутация ответов: результаты и анализ,
		// построенные по прежней версии анкеты, больше не действительны
		if err := st.Analyses().Delete(evaluationID, assetID); err != nil {
			return err
		}
		if err := st.Results().MarkStale(evaluationID, assetID); err != nil {
			return err
		}
		return st.ChangeLog().Append(evaluationID, "answers", assetID, "submit",
			fmt.Sprintf("сдан набор ответов: актив %d, версия %d, ответов %d", assetID, v, len(answers)))
	})
}

// ResubmitAnswers — явный путь инвалидации: в одной транзакции
// удаляет LLM-анализ актива, помечает производные результаты
// устаревшими, снимает старый набор ответов и записывает новый.
func (s *Service) ResubmitAnswers(evaluationID, assetID uint, version int64, inputs []AnswerInput) error {
	l := s.assetLock(evaluationID, assetID)
	l.Lock()
	defer l.Unlock()

	return s.store.InTx(func(st store.Store) error {
		v, err := s.resolveVersion(st, evaluationID, assetID, version)
		if err != nil {
			return err
		}

		answers, err := s.buildAnswerSet(st, evaluationID, assetID, v, inputs)
		if err != nil {
			return err
		}

		if err := st.Analyses().Delete(evaluationID, assetID); err != nil {
			return err
		}
		if err := st.Results().MarkStale(evaluationID, assetID); err != nil {
			return err
		}
		if err := st.Answers().DeleteSet(evaluationID, assetID, v); err != nil {
			return err
		}
		if err := st.Answers().PutSet(evaluationID, assetID, v, answers); err != nil {
			return err
		}
		return st.ChangeLog().Append(evaluationID, "answers", assetID, "invalidate",
			fmt.Sprintf("пересдача ответов: актив %d, версия %d; LLM-анализ удалён, результаты помечены устаревшими", assetID, v))
	})
}

// EditQuestion правит текст и вес вопроса. ID вопроса, на который уже
// ссылаются ответы, не меняется — правка сдвигает видимую версию
// анкеты и действует только на будущие сдачи.
func (s *Service) EditQuestion(evaluationID, questionID uint, text string, weight int) error {
	if weight < scoring.ScaleMin || weight > scoring.ScaleMax {
		return &scoring.InconsistentScaleError{Field: "weight", Value: weight}
	}
	if len(text) < 3 {
		return &scoring.ValidationError{Reason: "question text too short"}
	}
	newVersion := time.Now().Unix()
	return s.store.InTx(func(st store.Store) error {
		if err := st.Questions().UpdateText(evaluationID, questionID, text, weight, newVersion); err != nil {
			return err
		}
		return st.ChangeLog().Append(evaluationID, "question", questionID, "edit",
			fmt.Sprintf("вопрос %d изменён, новая версия анкеты %d", questionID, newVersion))
	})
}

func (s *Service) resolveVersion(st store.Store, evaluationID, assetID uint, version int64) (int64, error) {
	if version != 0 {
		return version, nil
	}
	v, err := st.Questions().CurrentVersion(evaluationID, assetID)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, &scoring.InsufficientDataError{Reason: "asset has no questionnaire"}
	}
	return v, nil
}

// buildAnswerSet проверяет полноту и валидность набора и приводит
// сырые значения к шкале 1..5. Любой дефект — отказ всего набора.
func (s *Service) buildAnswerSet(st store.Store, evaluationID, assetID uint, version int64, inputs []AnswerInput) ([]models.Answer, error) {
	questions, err := st.Questions().Questionnaire(evaluationID, assetID, version)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, &scoring.InsufficientDataError{Reason: "asset has no questionnaire"}
	}

	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	seen := make(map[uint]bool, len(inputs))
	answers := make([]models.Answer, 0, len(inputs))
	for _, in := range inputs {
		q, ok := byID[in.QuestionID]
		if !ok {
			return nil, &scoring.ValidationError{
				Reason: fmt.Sprintf("answer references unknown question %d", in.QuestionID),
			}
		}
		if seen[in.QuestionID] {
			return nil, &scoring.ValidationError{
				Reason: fmt.Sprintf("duplicate answer for question %d", in.QuestionID),
			}
		}
		seen[in.QuestionID] = true

		value, err := scoring.DerivedValue(q.AnswerType, in.RawValue)
		if err != nil {
			return nil, err
		}
		answers = append(answers, models.Answer{
			QuestionID: in.QuestionID,
			RawValue:   in.RawValue,
			Value:      value,
		})
	}

	if len(answers) != len(questions) {
		return nil, &scoring.ValidationError{
			Reason: fmt.Sprintf("incomplete answer set: %d of %d questions answered",
				len(answers), len(questions)),
		}
	}
	return answers, nil
}
