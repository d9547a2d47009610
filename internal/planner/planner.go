// Package planner implements the application workflows on top of the session
// store and the interaction memory index. The service keeps no state of its
// own; every use case is a fixed call sequence on the two components.
package planner

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mohammad-safakhou/dayplan/internal/memory"
	"github.com/mohammad-safakhou/dayplan/internal/store"
	"github.com/mohammad-safakhou/dayplan/models"
)

// Source supplies task records from an external provider. The service only
// stores and queries whatever it is given.
type Source interface {
	FetchTasks(ctx context.Context) ([]models.Task, error)
}

// Config tunes the workflow layer.
type Config struct {
	Source      Source // nil when no task provider is configured
	SearchLimit int    // max memory matches per search, default 5
	Logger      *log.Logger
}

// Service composes the store and the memory index per use case.
type Service struct {
	store       *store.Store
	memory      *memory.Index
	source      Source
	searchLimit int
	logger      *log.Logger
	now         func() time.Time
}

// New wires the service around an already-constructed store and index.
func New(st *store.Store, idx *memory.Index, cfg Config) *Service {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 5
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(log.Writer(), "[PLANNER] ", log.LstdFlags)
	}
	return &Service{
		store:       st,
		memory:      idx,
		source:      cfg.Source,
		searchLimit: cfg.SearchLimit,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

// CheckIn runs the morning check-in: recall today's context, look up today's
// tasks, replace the morning context, compose the plan and record the
// exchange keyed by today's date.
func (s *Service) CheckIn(req CheckInRequest) CheckInResponse {
	today := s.now()
	recall := s.memory.ContextForDate(today)
	tasks := s.store.TasksForDate(today)

	s.store.UpdateMorningContext(today, models.MorningContext{
		EnergyLevel:   req.EnergyLevel,
		TopOfMind:     req.TopOfMind,
		IntendedFocus: req.IntendedFocus,
		Blockers:      req.Blockers,
	})

	lines := []string{
		fmt.Sprintf("Good morning! Your energy is at %d/5.", req.EnergyLevel),
		fmt.Sprintf("Today's focus: %s.", req.IntendedFocus),
	}
	if len(req.TopOfMind) > 0 {
		lines = append(lines, "Top of mind: "+strings.Join(req.TopOfMind, ", "))
	}
	if len(req.Blockers) > 0 {
		lines = append(lines, "Watch out for blockers: "+strings.Join(req.Blockers, ", "))
	}
	if len(recall.RecentMemories) > 0 {
		lines = append(lines, "Recent highlights: "+strings.Join(recall.RecentMemories, " | "))
	}
	if len(tasks) > 0 {
		lines = append(lines, "Today's tasks:")
		for _, task := range tasks {
			lines = append(lines, fmt.Sprintf(" • %s", task.Title))
		}
	} else {
		lines = append(lines, "No scheduled tasks for today. Consider planning one meaningful step.")
	}
	plan := strings.Join(lines, "\n")

	s.memory.AddInteraction(memory.ForDate(today),
		fmt.Sprintf("Morning check-in energy=%d", req.EnergyLevel),
		plan,
		map[string]string{"type": "morning_checkin"},
	)

	return CheckInResponse{Plan: plan, Tasks: tasks, Energy: req.EnergyLevel}
}

// Reflect stores the evening reflection, logs a planner event and records the
// summary keyed by the reflection's date.
func (s *Service) Reflect(req ReflectionRequest) ReflectionResponse {
	session := s.store.UpdateEveningReflection(req.SessionDate, models.EveningReflection{
		ActualFocus:    req.ActualFocus,
		Wins:           req.Wins,
		Challenges:     req.Challenges,
		TomorrowIntent: req.TomorrowIntent,
		EnergyPattern:  req.EnergyPattern,
	})
	s.store.AddEvent(models.PlannerEvent{
		Timestamp:   s.now(),
		SessionID:   session.ID,
		Description: "Evening reflection captured",
	})

	lines := []string{
		"Reflection stored.",
		fmt.Sprintf("Tomorrow you intend to: %s", req.TomorrowIntent),
	}
	if len(req.Wins) > 0 {
		lines = append(lines, "Celebrated wins: "+strings.Join(req.Wins, ", "))
	}
	if len(req.Challenges) > 0 {
		lines = append(lines, "Challenges noted: "+strings.Join(req.Challenges, ", "))
	}

	// The recorded memory is space-joined while the returned message keeps
	// line breaks; both shapes are user-visible contracts.
	s.memory.AddInteraction(memory.ForDate(req.SessionDate),
		"Evening reflection submitted",
		strings.Join(lines, " "),
		map[string]string{"type": "evening_reflection"},
	)

	return ReflectionResponse{Message: strings.Join(lines, "\n"), Session: session}
}

// Chat answers a free-text message, optionally grounding the reply in
// matching memories, and records the exchange keyed by today.
func (s *Service) Chat(req ChatRequest) ChatResponse {
	var related []string
	if req.IncludeContext {
		related = s.memory.Search(req.Content, s.searchLimit)
	}

	prefix := ""
	if req.ChallengeMode {
		prefix = "[Challenge] "
	}
	reply := fmt.Sprintf("%sYou said: %s. Here's what I am considering: ", prefix, req.Content)
	if len(related) > 0 {
		reply += "Earlier we discussed: " + strings.Join(related, " | ")
	} else {
		reply += "No directly related memories yet—let's build some context."
	}

	s.memory.AddInteraction(memory.ForToday(), req.Content, reply, map[string]string{"type": "chat"})

	return ChatResponse{Reply: reply, RelatedMemories: related}
}

// CreateDecision appends a decision to today's session, searches memories for
// the question and records a short interaction about the capture.
func (s *Service) CreateDecision(req DecisionRequest) DecisionResponse {
	today := s.now()
	session := s.store.GetOrCreateSession(today)
	decision := models.Decision{
		ID:                uuid.NewString(),
		SessionID:         session.ID,
		Question:          req.Question,
		Context:           req.Context,
		OptionsConsidered: req.Options,
		ChosenOption:      req.ChosenOption,
		Reasoning:         req.Reasoning,
		Timestamp:         s.now(),
	}
	s.store.AddDecision(today, decision)

	related := s.memory.Search(req.Question, s.searchLimit)

	s.memory.AddInteraction(memory.ForDate(today),
		fmt.Sprintf("Decision: %s", req.Question),
		fmt.Sprintf("Recorded decision with %d options.", len(req.Options)),
		map[string]string{"type": "decision"},
	)

	return DecisionResponse{Decision: decision, RelatedContext: related}
}

// WeeklyPatterns aggregates the trailing seven-day window: days with a high
// energy sample, reflections captured, and the mean of all energy samples.
func (s *Service) WeeklyPatterns() WeeklyPatternsResponse {
	today := s.now()
	start := today.AddDate(0, 0, -6)
	sessions := s.store.SessionsBetween(start, today)

	var highlights []string
	var energyTrends []string

	var highEnergyDays []string
	for _, session := range sessions {
		for _, sample := range session.EnergyPattern {
			if sample.Level >= 4 {
				highEnergyDays = append(highEnergyDays, session.Date.Format("Mon"))
				break
			}
		}
	}
	if len(highEnergyDays) > 0 {
		highlights = append(highlights, "High energy on: "+strings.Join(highEnergyDays, ", "))
	}

	reflections := 0
	for _, session := range sessions {
		if session.EveningReflection != nil {
			reflections++
		}
	}
	highlights = append(highlights, fmt.Sprintf("Captured %d evening reflections this week.", reflections))

	if avg, ok := averageEnergy(sessions); ok {
		energyTrends = append(energyTrends, fmt.Sprintf("Average recorded energy: %.2f/5", avg))
	}

	summary := "Weekly review prepared."
	if len(sessions) == 0 {
		summary = "No sessions recorded this week."
	}

	return WeeklyPatternsResponse{Summary: summary, Highlights: highlights, EnergyTrends: energyTrends}
}

// SyncTasks pulls tasks from the configured source, upserts them and returns
// every task the store knows about.
func (s *Service) SyncTasks(ctx context.Context) ([]models.Task, error) {
	if s.source != nil {
		fetched, err := s.source.FetchTasks(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch tasks: %w", err)
		}
		s.store.UpsertTasks(fetched)
		s.logger.Printf("synced %d tasks from source", len(fetched))
	}
	return s.store.AllTasks(), nil
}

func averageEnergy(sessions []models.DailySession) (float64, bool) {
	var sum, count int
	for _, session := range sessions {
		for _, sample := range session.EnergyPattern {
			sum += sample.Level
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}
