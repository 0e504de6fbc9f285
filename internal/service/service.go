package service

import (
	"sync"

	"ib-riskcalc/internal/scoring"
	"ib-riskcalc/internal/store"
)

// Service — оркестрация движка расчёта поверх хранилища: сдача и
// инвалидация ответов, пересчёт воздействия/риска/зрелости, сравнение
// оценок. Сами расчёты — чистые функции в пакете scoring.
type Service struct {
	store store.Store

	riskPol scoring.RiskPolicy
	matPol  scoring.MaturityPolicy

	generator QuestionGenerator

	// сериализация инвалидации и пересчёта по (оценка, актив):
	// устаревший LLM-анализ не должен пережить конкурентную правку
	// ответов
	mu    sync.Mutex
	locks map[assetKey]*sync.Mutex
}

type assetKey struct {
	evaluationID uint
	assetID      uint
}

func New(st store.Store, gen QuestionGenerator, riskPol scoring.RiskPolicy, matPol scoring.MaturityPolicy) *Service {
	return &Service{
		store:     st,
		generator: gen,
		riskPol:   riskPol,
		matPol:    matPol,
		locks:     make(map[assetKey]*sync.Mutex),
	}
}

func (s *Service) assetLock(evaluationID, assetID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := assetKey{evaluationID, assetID}
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}
