// Package store is the single source of truth for daily sessions, tasks and
// the planner event log. Everything lives in process memory; restarting the
// process discards all data.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/dayplan/models"
)

// Store holds planner data guarded by a single RWMutex. All mutating
// operations are serialized; reads hand out deep copies so callers never
// alias guarded state.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*models.DailySession // keyed by calendar date
	events    []models.PlannerEvent
	tasks     map[string]models.Task
	taskOrder []string // task ids in insertion order, for stable iteration

	now func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		sessions: make(map[string]*models.DailySession),
		tasks:    make(map[string]models.Task),
		now:      time.Now,
	}
}

// GetOrCreateSession returns the session for date, creating an empty one on
// first access. Idempotent: the same date always yields the same session id.
func (s *Store) GetOrCreateSession(date time.Time) models.DailySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(date).Clone()
}

func (s *Store) getOrCreateLocked(date time.Time) *models.DailySession {
	key := models.DateKey(date)
	if sess, ok := s.sessions[key]; ok {
		return sess
	}
	sess := &models.DailySession{
		ID:   uuid.NewString(),
		Date: models.Day(date),
	}
	s.sessions[key] = sess
	return sess
}

// GetSession is a pure lookup with no create side effect.
func (s *Store) GetSession(date time.Time) (models.DailySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[models.DateKey(date)]
	if !ok {
		return models.DailySession{}, false
	}
	return sess.Clone(), true
}

// UpdateMorningContext replaces the session's morning context wholesale and
// appends one (now, energy) sample to the energy timeline. Samples outside
// the [1,5] range are ignored.
func (s *Store) UpdateMorningContext(date time.Time, ctx models.MorningContext) models.DailySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(date)
	sess.MorningContext = &ctx
	sample := models.EnergySample{At: s.now(), Level: ctx.EnergyLevel}
	if sample.Valid() {
		sess.EnergyPattern = append(sess.EnergyPattern, sample)
	}
	return sess.Clone()
}

// UpdateEveningReflection replaces the session's reflection wholesale and
// appends every valid sample the reflection carries to the energy timeline.
func (s *Store) UpdateEveningReflection(date time.Time, reflection models.EveningReflection) models.DailySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(date)
	sess.EveningReflection = &reflection
	for _, sample := range reflection.EnergyPattern {
		if sample.Valid() {
			sess.EnergyPattern = append(sess.EnergyPattern, sample)
		}
	}
	return sess.Clone()
}

// AddDecision appends the decision to the session's ordered decision list,
// creating the session first if needed.
func (s *Store) AddDecision(date time.Time, decision models.Decision) models.DailySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(date)
	sess.Decisions = append(sess.Decisions, decision)
	return sess.Clone()
}

// SessionsBetween returns sessions whose date falls inside [start, end]
// inclusive, sorted by date ascending so callers see a deterministic order.
func (s *Store) SessionsBetween(start, end time.Time) []models.DailySession {
	startKey, endKey := models.DateKey(start), models.DateKey(end)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.DailySession
	for key, sess := range s.sessions {
		if key >= startKey && key <= endKey {
			out = append(out, sess.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ListSessions returns all sessions sorted by date descending (newest first).
func (s *Store) ListSessions() []models.DailySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DailySession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// UpsertTasks inserts or replaces each task by identifier. Re-upserting an
// existing id replaces its fields, never its position in iteration order.
func (s *Store) UpsertTasks(tasks []models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range tasks {
		if _, ok := s.tasks[task.ID]; !ok {
			s.taskOrder = append(s.taskOrder, task.ID)
		}
		s.tasks[task.ID] = task
	}
}

// TasksForDate returns all tasks due on the given calendar date.
func (s *Store) TasksForDate(date time.Time) []models.Task {
	key := models.DateKey(date)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Task
	for _, id := range s.taskOrder {
		task := s.tasks[id]
		if task.DueDate != nil && models.DateKey(*task.DueDate) == key {
			out = append(out, task)
		}
	}
	return out
}

// AllTasks returns every known task in insertion order.
func (s *Store) AllTasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		out = append(out, s.tasks[id])
	}
	return out
}

// AddEvent appends to the planner event log. Events are never removed.
func (s *Store) AddEvent(event models.PlannerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// RecentEvents returns the last limit events in insertion order, oldest
// first. Callers wanting newest-first must reverse.
func (s *Store) RecentEvents(limit int) []models.PlannerEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.events) {
		limit = len(s.events)
	}
	return append([]models.PlannerEvent(nil), s.events[len(s.events)-limit:]...)
}

// RecentDecisions returns decisions across all sessions sorted by timestamp
// descending, truncated to limit.
func (s *Store) RecentDecisions(limit int) []models.Decision {
	s.mu.RLock()
	var decisions []models.Decision
	for _, sess := range s.sessions {
		decisions = append(decisions, sess.Decisions...)
	}
	s.mu.RUnlock()
	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].Timestamp.After(decisions[j].Timestamp)
	})
	if limit > 0 && len(decisions) > limit {
		decisions = decisions[:limit]
	}
	return decisions
}

// SeedSampleTasks inserts a small fixed task set dated today and tomorrow so
// the service is useful out of the box. No-op once any task exists.
func (s *Store) SeedSampleTasks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) > 0 {
		return
	}
	today := models.Day(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	samples := []models.Task{
		{ID: uuid.NewString(), Title: "Review system design doc", DueDate: &today, Status: models.TaskStatusNotStarted, Source: "sample"},
		{ID: uuid.NewString(), Title: "Write morning reflection", DueDate: &today, Status: models.TaskStatusNotStarted, Source: "sample"},
		{ID: uuid.NewString(), Title: "Plan next week's priorities", DueDate: &tomorrow, Status: models.TaskStatusNotStarted, Source: "sample"},
	}
	for _, task := range samples {
		s.taskOrder = append(s.taskOrder, task.ID)
		s.tasks[task.ID] = task
	}
}

// Summary reports how much the store currently holds.
func (s *Store) Summary() models.StoreSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.StoreSummary{
		Sessions: len(s.sessions),
		Events:   len(s.events),
		Tasks:    len(s.tasks),
	}
}
