package models

import "time"

// DateLayout is the canonical calendar-date format used as session keys.
const DateLayout = "2006-01-02"

// Energy levels are integers in [MinEnergyLevel, MaxEnergyLevel].
const (
	MinEnergyLevel = 1
	MaxEnergyLevel = 5
)

// DateKey formats t as the canonical calendar-date key (e.g. "2026-08-26").
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to midnight of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EnergySample is one (time, level) reading on a session's energy timeline.
type EnergySample struct {
	At    time.Time `json:"at"`
	Level int       `json:"level"`
}

// Valid reports whether the sample's level is inside the allowed range.
func (s EnergySample) Valid() bool {
	return s.Level >= MinEnergyLevel && s.Level <= MaxEnergyLevel
}

// MorningContext captures the morning check-in for one day. It is replaced
// wholesale on each check-in, never merged.
type MorningContext struct {
	EnergyLevel   int      `json:"energy_level"`
	TopOfMind     []string `json:"top_of_mind"`
	IntendedFocus string   `json:"intended_focus"`
	Blockers      []string `json:"blockers"`
}

// EveningReflection captures the evening review for one day. Like the
// morning context it is replaced wholesale on each submission.
type EveningReflection struct {
	ActualFocus    string         `json:"actual_focus"`
	Wins           []string       `json:"wins"`
	Challenges     []string       `json:"challenges"`
	TomorrowIntent string         `json:"tomorrow_intent"`
	EnergyPattern  []EnergySample `json:"energy_pattern"`
}

// Decision records a choice made during the day. Decisions are append-only.
type Decision struct {
	ID                string    `json:"id"`
	SessionID         string    `json:"session_id"`
	Question          string    `json:"question"`
	Context           string    `json:"context"`
	OptionsConsidered []string  `json:"options_considered"`
	ChosenOption      string    `json:"chosen_option,omitempty"`
	Reasoning         string    `json:"reasoning,omitempty"`
	Outcome           string    `json:"outcome,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// DailySession aggregates everything recorded for one calendar date.
// Exactly one session exists per date; the date is the primary key.
type DailySession struct {
	ID                string             `json:"id"`
	Date              time.Time          `json:"date"`
	MorningContext    *MorningContext    `json:"morning_context,omitempty"`
	EveningReflection *EveningReflection `json:"evening_reflection,omitempty"`
	Decisions         []Decision         `json:"decisions"`
	EnergyPattern     []EnergySample     `json:"energy_pattern"`
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (s DailySession) Clone() DailySession {
	out := s
	if s.MorningContext != nil {
		mc := *s.MorningContext
		mc.TopOfMind = append([]string(nil), s.MorningContext.TopOfMind...)
		mc.Blockers = append([]string(nil), s.MorningContext.Blockers...)
		out.MorningContext = &mc
	}
	if s.EveningReflection != nil {
		er := *s.EveningReflection
		er.Wins = append([]string(nil), s.EveningReflection.Wins...)
		er.Challenges = append([]string(nil), s.EveningReflection.Challenges...)
		er.EnergyPattern = append([]EnergySample(nil), s.EveningReflection.EnergyPattern...)
		out.EveningReflection = &er
	}
	out.Decisions = append([]Decision(nil), s.Decisions...)
	out.EnergyPattern = append([]EnergySample(nil), s.EnergyPattern...)
	return out
}

// TaskStatusNotStarted is the default status for newly synced tasks.
const TaskStatusNotStarted = "not_started"

// Task is an externally sourced to-do item, upserted by identifier.
type Task struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	DueDate *time.Time `json:"due_date,omitempty"`
	Status  string     `json:"status"`
	Source  string     `json:"source"`
}

// PlannerEvent is one entry of the append-only planner activity log.
type PlannerEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	SessionID   string    `json:"session_id"`
	Description string    `json:"description"`
}

// StoreSummary counts what the session store currently holds.
type StoreSummary struct {
	Sessions int `json:"sessions"`
	Events   int `json:"events"`
	Tasks    int `json:"tasks"`
}

// MemorySummary counts what the interaction memory index currently holds.
type MemorySummary struct {
	Buckets int `json:"buckets"`
}

// MemoryContext is the recall payload for a single day.
type MemoryContext struct {
	RecentMemories []string  `json:"recent_memories"`
	Date           time.Time `json:"date"`
}
