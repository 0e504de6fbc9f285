package service

import (
	"fmt"

	"ib-riskcalc/internal/models"
	"ib-riskcalc/internal/scoring"
	"ib-riskcalc/internal/store"
)

// AddSalvaguard применяет меру к активу и помечает его результаты
// устаревшими: остаточный риск зависит от набора сальвагард.
func (s *Service) AddSalvaguard(evaluationID uint, sg models.Salvaguard) (models.Salvaguard, error) {
	if sg.Effectiveness < 0 || sg.Effectiveness > 100 {
		return models.Salvaguard{}, &scoring.InconsistentScaleError{
			Field: "effectiveness", Value: sg.Effectiveness,
		}
	}

	l := s.assetLock(evaluationID, sg.AssetID)
	l.Lock()
	defer l.Unlock()

	var created models.Salvaguard
	err := s.store.InTx(func(st store.Store) error {
		var err error
		created, err = st.Salvaguards().Create(evaluationID, sg)
		if err != nil {
			return err
		}
		if err := st.Results().MarkStale(evaluationID, sg.AssetID); err != nil {
			return err
		}
		return st.ChangeLog().Append(evaluationID, "salvaguard", created.ID, "create",
			fmt.Sprintf("мера %d применена к активу %d (статус %s, эффективность %d%%)",
				sg.MeasureID, sg.AssetID, sg.Status, sg.Effectiveness))
	})
	if err != nil {
		return models.Salvaguard{}, err
	}
	return created, nil
}

// UpdateSalvaguard меняет статус внедрения и эффективность меры.
func (s *Service) UpdateSalvaguard(evaluationID, id uint, status models.SalvaguardStatus, effectiveness int) error {
	if effectiveness < 0 || effectiveness > 100 {
		return &scoring.InconsistentScaleError{Field: "effectiveness", Value: effectiveness}
	}

	sg, err := s.store.Salvaguards().Get(evaluationID, id)
	if err != nil {
		return err
	}

	l := s.assetLock(evaluationID, sg.AssetID)
	l.Lock()
	defer l.Unlock()

	return s.store.InTx(func(st store.Store) error {
		if err := st.Salvaguards().SetStatus(evaluationID, id, status, effectiveness); err != nil {
			return err
		}
		if err := st.Results().MarkStale(evaluationID, sg.AssetID); err != nil {
			return err
		}
		return st.ChangeLog().Append(evaluationID, "salvaguard", id, "status_change",
			fmt.Sprintf("мера по активу %d: статус %s, эффективность %d%%",
				sg.AssetID, status, effectiveness))
	})
}
