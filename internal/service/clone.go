package service

import (
	"fmt"
	"time"

	"ib-riskcalc/internal/models"
	"ib-riskcalc/internal/store"
)

// CloneEvaluation создаёт переоценку: копирует активы (со свежими ID),
// их анкеты, привязки угроз и сальвагарды в новую оценку со ссылкой
// на исходную. Ответы и производные результаты не копируются —
// переоценка отвечает на анкеты заново.
func (s *Service) CloneEvaluation(originID uint, name string) (models.Evaluation, error) {
	var clone models.Evaluation

	err := s.store.InTx(func(st store.Store) error {
		origin, err := st.Evaluations().Get(originID)
		if err != nil {
			return err
		}

		clone, err = st.Evaluations().Create(name, &origin.ID)
		if err != nil {
			return err
		}

		assets, err := st.Assets().List(originID)
		if err != nil {
			return err
		}

		version := time.Now().Unix()
		for _, a := range assets {
			oldID := a.ID
			a.ID = 0
			a.CreatedAt = time.Time{}
			a.UpdatedAt = time.Time{}

			created, err := st.Assets().Create(clone.ID, a)
			if err != nil {
				return err
			}

			questions, err := st.Questions().Questionnaire(originID, oldID, time.Now().Unix())
			if err != nil {
				return err
			}
			for i := range questions {
				questions[i].ID = 0
				questions[i].CreatedAt = time.Time{}
				questions[i].UpdatedAt = time.Time{}
			}
			if err := st.Questions().Add(clone.ID, created.ID, version, questions); err != nil {
				return err
			}

			threats, err := st.Catalog().AssetThreats(originID, oldID)
			if err != nil {
				return err
			}
			for _, link := range threats {
				if err := st.Catalog().LinkThreat(clone.ID, models.AssetThreat{
					AssetID:     created.ID,
					ThreatID:    link.ThreatID,
					Probability: link.Probability,
					Notes:       link.Notes,
				}); err != nil {
					return err
				}
			}

			salvaguards, err := st.Salvaguards().List(originID, oldID)
			if err != nil {
				return err
			}
			for _, sg := range salvaguards {
				if _, err := st.Salvaguards().Create(clone.ID, models.Salvaguard{
					AssetID:       created.ID,
					MeasureID:     sg.MeasureID,
					Status:        sg.Status,
					Effectiveness: sg.Effectiveness,
				}); err != nil {
					return err
				}
			}
		}

		return st.ChangeLog().Append(clone.ID, "evaluation", clone.ID, "clone",
			fmt.Sprintf("переоценка на основе оценки %d: скопировано активов %d", originID, len(assets)))
	})
	if err != nil {
		return models.Evaluation{}, err
	}
	return clone, nil
}
