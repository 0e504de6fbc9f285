package service

import (
	"fmt"

	"ib-riskcalc/internal/models"
	"ib-riskcalc/internal/scoring"
	"ib-riskcalc/internal/store"
)

// LinkThreat признаёт угрозу актуальной для актива. Набор угроз —
// вход расчёта риска, поэтому результаты помечаются устаревшими.
func (s *Service) LinkThreat(evaluationID uint, link models.AssetThreat) error {
	if link.Probability < 0 || link.Probability > 5 {
		return &scoring.InconsistentScaleError{Field: "probability", Value: link.Probability}
	}

	l := s.assetLock(evaluationID, link.AssetID)
	l.Lock()
	defer l.Unlock()

	return s.store.InTx(func(st store.Store) error {
		if _, err := st.Assets().Get(evaluationID, link.AssetID); err != nil {
			return err
		}
		if err := st.Catalog().LinkThreat(evaluationID, link); err != nil {
			return err
		}
		if err := st.Results().MarkStale(evaluationID, link.AssetID); err != nil {
			return err
		}
		return st.ChangeLog().Append(evaluationID, "asset_threat", link.ThreatID, "link",
			fmt.Sprintf("угроза %d привязана к активу %d", link.ThreatID, link.AssetID))
	})
}

// UnlinkThreat снимает угрозу с актива.
func (s *Service) UnlinkThreat(evaluationID, assetID, linkID uint) error {
	l := s.assetLock(evaluationID, assetID)
	l.Lock()
	defer l.Unlock()

	return s.store.InTx(func(st store.Store) error {
		if err := st.Catalog().UnlinkThreat(evaluationID, linkID); err != nil {
			return err
		}
		if err := st.Results().MarkStale(evaluationID, assetID); err != nil {
			return err
		}
		return st.ChangeLog().Append(evaluationID, "asset_threat", linkID, "unlink",
			fmt.Sprintf("угроза снята с актива %d", assetID))
	})
}
