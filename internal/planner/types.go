package planner

import (
	"time"

	"github.com/mohammad-safakhou/dayplan/models"
)

// CheckInRequest is the typed morning check-in input.
type CheckInRequest struct {
	EnergyLevel   int      `json:"energy_level"`
	TopOfMind     []string `json:"top_of_mind"`
	IntendedFocus string   `json:"intended_focus"`
	Blockers      []string `json:"blockers"`
}

// CheckInResponse carries the composed plan plus today's tasks.
type CheckInResponse struct {
	Plan   string        `json:"plan"`
	Tasks  []models.Task `json:"tasks"`
	Energy int           `json:"energy"`
}

// ReflectionRequest is the typed evening reflection input.
type ReflectionRequest struct {
	SessionDate    time.Time             `json:"session_date"`
	ActualFocus    string                `json:"actual_focus"`
	Wins           []string              `json:"wins"`
	Challenges     []string              `json:"challenges"`
	TomorrowIntent string                `json:"tomorrow_intent"`
	EnergyPattern  []models.EnergySample `json:"energy_pattern"`
}

// ReflectionResponse returns the summary message and the updated session.
type ReflectionResponse struct {
	Message string              `json:"message"`
	Session models.DailySession `json:"session"`
}

// ChatRequest is a free-text exchange with optional memory recall.
type ChatRequest struct {
	Content        string `json:"content"`
	IncludeContext bool   `json:"include_context"`
	ChallengeMode  bool   `json:"challenge_mode"`
}

// ChatResponse carries the reply and whichever memories informed it.
type ChatResponse struct {
	Reply           string   `json:"reply"`
	RelatedMemories []string `json:"related_memories"`
}

// DecisionRequest captures a decision to record against today's session.
type DecisionRequest struct {
	Question     string   `json:"question"`
	Context      string   `json:"context"`
	Options      []string `json:"options"`
	ChosenOption string   `json:"chosen_option,omitempty"`
	Reasoning    string   `json:"reasoning,omitempty"`
}

// DecisionResponse returns the stored decision plus related memories.
type DecisionResponse struct {
	Decision       models.Decision `json:"decision"`
	RelatedContext []string        `json:"related_context"`
}

// WeeklyPatternsResponse summarizes the trailing seven-day window.
type WeeklyPatternsResponse struct {
	Summary      string   `json:"summary"`
	Highlights   []string `json:"highlights"`
	EnergyTrends []string `json:"energy_trends"`
}

// TaskSyncResponse reports the outcome of a task source sync.
type TaskSyncResponse struct {
	TasksSynced int    `json:"tasks_synced"`
	Message     string `json:"message"`
}
