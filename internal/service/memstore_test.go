package service

import (
	"sort"
	"sync"
	"time"

	"ib-riskcalc/internal/models"
	"ib-riskcalc/internal/store"

	"gorm.io/gorm"
)

// memStore — хранилище в памяти для тестов сервиса: та же семантика,
// что у gorm-реализации, без БД. Транзакционность не эмулируется —
// тесты проверяют порядок операций, а не откат.
type memStore struct {
	mu sync.Mutex

	evals     map[uint]models.Evaluation
	assets    map[uint]models.Asset
	questions map[uint]models.Question
	answers   []models.Answer
	links     []models.AssetThreat
	sgs       map[uint]models.Salvaguard

	impacts  map[[2]uint]models.ImpactResult
	risks    map[[2]uint]models.RiskResult
	maturity map[uint]models.MaturityResult
	analyses map[[2]uint]models.AIAnalysis
	changes  []models.ChangeLog

	nextID uint
}

func newMemStore() *memStore {
	return &memStore{
		evals:     make(map[uint]models.Evaluation),
		assets:    make(map[uint]models.Asset),
		questions: make(map[uint]models.Question),
		sgs:       make(map[uint]models.Salvaguard),
		impacts:   make(map[[2]uint]models.ImpactResult),
		risks:     make(map[[2]uint]models.RiskResult),
		maturity:  make(map[uint]models.MaturityResult),
		analyses:  make(map[[2]uint]models.AIAnalysis),
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) Evaluations() store.Evaluations { return memEvals{m} }
func (m *memStore) Assets() store.Assets           { return memAssets{m} }
func (m *memStore) Questions() store.Questions     { return memQuestions{m} }
func (m *memStore) Answers() store.Answers         { return memAnswers{m} }
func (m *memStore) Catalog() store.Catalog         { return memCatalog{m} }
func (m *memStore) Salvaguards() store.Salvaguards { return memSalvaguards{m} }
func (m *memStore) Results() store.Results         { return memResults{m} }
func (m *memStore) Analyses() store.Analyses       { return memAnalyses{m} }
func (m *memStore) ChangeLog() store.ChangeLog     { return memChangeLog{m} }

func (m *memStore) InTx(fn func(store.Store) error) error { return fn(m) }

type memEvals struct{ m *memStore }

func (r memEvals) Create(name string, originID *uint) (models.Evaluation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, other := range r.m.evals {
		if other.Status == models.EvalInProgress {
			other.Status = models.EvalInactive
			r.m.evals[id] = other
		}
	}
	ev := models.Evaluation{Name: name, Status: models.EvalInProgress, OriginID: originID}
	ev.ID = r.m.id()
	r.m.evals[ev.ID] = ev
	return ev, nil
}

func (r memEvals) Get(id uint) (models.Evaluation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ev, ok := r.m.evals[id]
	if !ok {
		return models.Evaluation{}, gorm.ErrRecordNotFound
	}
	return ev, nil
}

func (r memEvals) List() ([]models.Evaluation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Evaluation, 0, len(r.m.evals))
	for _, ev := range r.m.evals {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memEvals) Active() (*models.Evaluation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, ev := range r.m.evals {
		if ev.Status == models.EvalInProgress {
			e := ev
			return &e, nil
		}
	}
	return nil, nil
}

func (r memEvals) SetStatus(id uint, status models.EvaluationStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ev, ok := r.m.evals[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status == models.EvalInProgress {
		for oid, other := range r.m.evals {
			if oid != id && other.Status == models.EvalInProgress {
				other.Status = models.EvalInactive
				r.m.evals[oid] = other
			}
		}
	}
	ev.Status = status
	r.m.evals[id] = ev
	return nil
}

type memAssets struct{ m *memStore }

func (r memAssets) Create(evaluationID uint, a models.Asset) (models.Asset, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a.ID = r.m.id()
	a.EvaluationID = evaluationID
	r.m.assets[a.ID] = a
	return a, nil
}

func (r memAssets) Get(evaluationID, assetID uint) (models.Asset, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.assets[assetID]
	if !ok || a.EvaluationID != evaluationID {
		return models.Asset{}, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r memAssets) List(evaluationID uint) ([]models.Asset, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Asset
	for _, a := range r.m.assets {
		if a.EvaluationID == evaluationID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memQuestions struct{ m *memStore }

func (r memQuestions) Questionnaire(evaluationID, assetID uint, version int64) ([]models.Question, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Question
	for _, q := range r.m.questions {
		if q.EvaluationID == evaluationID && q.AssetID == assetID && q.Version <= version {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memQuestions) CurrentVersion(evaluationID, assetID uint) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var max int64
	for _, q := range r.m.questions {
		if q.EvaluationID == evaluationID && q.AssetID == assetID && q.Version > max {
			max = q.Version
		}
	}
	return max, nil
}

func (r memQuestions) Add(evaluationID, assetID uint, version int64, qs []models.Question) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, q := range qs {
		q.ID = r.m.id()
		q.EvaluationID = evaluationID
		q.AssetID = assetID
		q.Version = version
		r.m.questions[q.ID] = q
	}
	return nil
}

func (r memQuestions) UpdateText(evaluationID, questionID uint, text string, weight int, newVersion int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	q, ok := r.m.questions[questionID]
	if !ok || q.EvaluationID != evaluationID {
		return gorm.ErrRecordNotFound
	}
	q.Text = text
	q.Weight = weight
	q.Version = newVersion
	r.m.questions[questionID] = q
	return nil
}

type memAnswers struct{ m *memStore }

func (r memAnswers) GetSet(evaluationID, assetID uint, version int64) ([]models.Answer, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Answer
	for _, a := range r.m.answers {
		if a.EvaluationID == evaluationID && a.AssetID == assetID && a.Version == version {
			a.Question = r.m.questions[a.QuestionID]
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out, nil
}

func (r memAnswers) SetExists(evaluationID, assetID uint, version int64) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.answers {
		if a.EvaluationID == evaluationID && a.AssetID == assetID && a.Version == version {
			return true, nil
		}
	}
	return false, nil
}

func (r memAnswers) PutSet(evaluationID, assetID uint, version int64, answers []models.Answer) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range answers {
		a.ID = r.m.id()
		a.EvaluationID = evaluationID
		a.AssetID = assetID
		a.Version = version
		r.m.answers = append(r.m.answers, a)
	}
	return nil
}

func (r memAnswers) DeleteSet(evaluationID, assetID uint, version int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	kept := r.m.answers[:0]
	for _, a := range r.m.answers {
		if a.EvaluationID == evaluationID && a.AssetID == assetID && a.Version == version {
			continue
		}
		kept = append(kept, a)
	}
	r.m.answers = kept
	return nil
}

type memCatalog struct{ m *memStore }

func (r memCatalog) Threats(string) ([]models.Threat, error)                 { return nil, nil }
func (r memCatalog) Measures() ([]models.ControlMeasure, error)              { return nil, nil }
func (r memCatalog) MeasuresForThreat(uint) ([]models.ControlMeasure, error) { return nil, nil }

func (r memCatalog) AssetThreats(evaluationID, assetID uint) ([]models.AssetThreat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.AssetThreat
	for _, l := range r.m.links {
		if l.EvaluationID == evaluationID && l.AssetID == assetID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r memCatalog) LinkThreat(evaluationID uint, link models.AssetThreat) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	link.ID = r.m.id()
	link.EvaluationID = evaluationID
	r.m.links = append(r.m.links, link)
	return nil
}

func (r memCatalog) UnlinkThreat(evaluationID, linkID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	kept := r.m.links[:0]
	for _, l := range r.m.links {
		if l.EvaluationID == evaluationID && l.ID == linkID {
			continue
		}
		kept = append(kept, l)
	}
	r.m.links = kept
	return nil
}

type memSalvaguards struct{ m *memStore }

func (r memSalvaguards) Get(evaluationID, id uint) (models.Salvaguard, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sgs[id]
	if !ok || s.EvaluationID != evaluationID {
		return models.Salvaguard{}, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r memSalvaguards) List(evaluationID, assetID uint) ([]models.Salvaguard, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Salvaguard
	for _, s := range r.m.sgs {
		if s.EvaluationID == evaluationID && s.AssetID == assetID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSalvaguards) ListAll(evaluationID uint) ([]models.Salvaguard, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Salvaguard
	for _, s := range r.m.sgs {
		if s.EvaluationID == evaluationID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSalvaguards) Create(evaluationID uint, s models.Salvaguard) (models.Salvaguard, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s.ID = r.m.id()
	s.EvaluationID = evaluationID
	r.m.sgs[s.ID] = s
	return s, nil
}

func (r memSalvaguards) SetStatus(evaluationID, id uint, status models.SalvaguardStatus, effectiveness int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sgs[id]
	if !ok || s.EvaluationID != evaluationID {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	s.Effectiveness = effectiveness
	r.m.sgs[id] = s
	return nil
}

type memResults struct{ m *memStore }

func (r memResults) PutImpact(res models.ImpactResult) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	key := [2]uint{res.EvaluationID, res.AssetID}
	if old, ok := r.m.impacts[key]; ok {
		res.ID = old.ID
	} else {
		res.ID = r.m.id()
	}
	res.UpdatedAt = time.Now()
	r.m.impacts[key] = res
	return nil
}

func (r memResults) GetImpact(evaluationID, assetID uint) (*models.ImpactResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	res, ok := r.m.impacts[[2]uint{evaluationID, assetID}]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r memResults) PutRisk(res models.RiskResult) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	key := [2]uint{res.EvaluationID, res.AssetID}
	if old, ok := r.m.risks[key]; ok {
		res.ID = old.ID
	} else {
		res.ID = r.m.id()
	}
	r.m.risks[key] = res
	return nil
}

func (r memResults) GetRisk(evaluationID, assetID uint) (*models.RiskResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	res, ok := r.m.risks[[2]uint{evaluationID, assetID}]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r memResults) ListRisks(evaluationID uint) ([]models.RiskResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.RiskResult
	for key, res := range r.m.risks {
		if key[0] == evaluationID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetID < out[j].AssetID })
	return out, nil
}

func (r memResults) MarkStale(evaluationID, assetID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	key := [2]uint{evaluationID, assetID}
	if res, ok := r.m.impacts[key]; ok {
		res.Stale = true
		r.m.impacts[key] = res
	}
	if res, ok := r.m.risks[key]; ok {
		res.Stale = true
		r.m.risks[key] = res
	}
	return nil
}

func (r memResults) PutMaturity(res models.MaturityResult) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if old, ok := r.m.maturity[res.EvaluationID]; ok {
		res.ID = old.ID
	} else {
		res.ID = r.m.id()
	}
	r.m.maturity[res.EvaluationID] = res
	return nil
}

func (r memResults) GetMaturity(evaluationID uint) (*models.MaturityResult, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	res, ok := r.m.maturity[evaluationID]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

type memAnalyses struct{ m *memStore }

func (r memAnalyses) Get(evaluationID, assetID uint) (*models.AIAnalysis, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a, ok := r.m.analyses[[2]uint{evaluationID, assetID}]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r memAnalyses) Put(a models.AIAnalysis) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	a.ID = r.m.id()
	r.m.analyses[[2]uint{a.EvaluationID, a.AssetID}] = a
	return nil
}

func (r memAnalyses) Delete(evaluationID, assetID uint) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.analyses, [2]uint{evaluationID, assetID})
	return nil
}

type memChangeLog struct{ m *memStore }

func (r memChangeLog) Append(evaluationID uint, entity string, entityID uint, action, details string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.changes = append(r.m.changes, models.ChangeLog{
		ID:           r.m.id(),
		EvaluationID: evaluationID,
		Entity:       entity,
		EntityID:     entityID,
		Action:       action,
		Details:      details,
	})
	return nil
}

func (r memChangeLog) List(evaluationID uint) ([]models.ChangeLog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.ChangeLog
	for _, c := range r.m.changes {
		if c.EvaluationID == evaluationID {
			out = append(out, c)
		}
	}
	return out, nil
}

var _ store.Store = (*memStore)(nil)
