package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/dayplan/internal/planner"
	"github.com/mohammad-safakhou/dayplan/models"
)

// PlannerHandler exposes the planner workflows as a JSON API.
type PlannerHandler struct {
	Service *planner.Service
	Metrics *Metrics
}

// Register mounts the planner endpoints under the provided group.
func (h *PlannerHandler) Register(g *echo.Group) {
	g.POST("/daily/checkin", h.checkIn)
	g.POST("/daily/reflection", h.reflection)
	g.POST("/chat", h.chat)
	g.POST("/decisions", h.createDecision)
	g.GET("/patterns/weekly", h.weeklyPatterns)
	g.POST("/tasks/sync", h.syncTasks)
	g.GET("/tasks", h.listTasks)
}

type checkInPayload struct {
	EnergyLevel   int      `json:"energy_level"`
	TopOfMind     []string `json:"top_of_mind"`
	IntendedFocus string   `json:"intended_focus"`
	Blockers      []string `json:"blockers"`
}

func (h *PlannerHandler) checkIn(c echo.Context) error {
	var req checkInPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.EnergyLevel < models.MinEnergyLevel || req.EnergyLevel > models.MaxEnergyLevel {
		return echo.NewHTTPError(http.StatusBadRequest, "energy_level must be between 1 and 5")
	}
	if strings.TrimSpace(req.IntendedFocus) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "intended_focus is required")
	}

	resp := h.Service.CheckIn(planner.CheckInRequest{
		EnergyLevel:   req.EnergyLevel,
		TopOfMind:     req.TopOfMind,
		IntendedFocus: req.IntendedFocus,
		Blockers:      req.Blockers,
	})
	h.Metrics.MarkWorkflow("morning_checkin")
	return c.JSON(http.StatusOK, resp)
}

type energyEntryPayload struct {
	Time  string `json:"time"` // HH:MM
	Level int    `json:"level"`
}

type reflectionPayload struct {
	SessionDate    string               `json:"session_date"` // YYYY-MM-DD, today when empty
	ActualFocus    string               `json:"actual_focus"`
	Wins           []string             `json:"wins"`
	Challenges     []string             `json:"challenges"`
	TomorrowIntent string               `json:"tomorrow_intent"`
	EnergyPattern  []energyEntryPayload `json:"energy_pattern"`
}

func (h *PlannerHandler) reflection(c echo.Context) error {
	var req reflectionPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.ActualFocus) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "actual_focus is required")
	}
	if strings.TrimSpace(req.TomorrowIntent) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tomorrow_intent is required")
	}

	day := models.Day(time.Now())
	if req.SessionDate != "" {
		parsed, err := time.Parse(models.DateLayout, req.SessionDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "session_date must be YYYY-MM-DD")
		}
		day = parsed
	}

	samples := make([]models.EnergySample, 0, len(req.EnergyPattern))
	for _, entry := range req.EnergyPattern {
		clock, err := time.Parse("15:04", entry.Time)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid energy pattern time %q", entry.Time))
		}
		sample := models.EnergySample{
			At:    day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute),
			Level: entry.Level,
		}
		if !sample.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "energy pattern levels must be between 1 and 5")
		}
		samples = append(samples, sample)
	}

	resp := h.Service.Reflect(planner.ReflectionRequest{
		SessionDate:    day,
		ActualFocus:    req.ActualFocus,
		Wins:           req.Wins,
		Challenges:     req.Challenges,
		TomorrowIntent: req.TomorrowIntent,
		EnergyPattern:  samples,
	})
	h.Metrics.MarkWorkflow("evening_reflection")
	return c.JSON(http.StatusOK, resp)
}

type chatPayload struct {
	Content        string `json:"content"`
	IncludeContext *bool  `json:"include_context"` // default true
	ChallengeMode  bool   `json:"challenge_mode"`
}

func (h *PlannerHandler) chat(c echo.Context) error {
	var req chatPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}
	includeContext := true
	if req.IncludeContext != nil {
		includeContext = *req.IncludeContext
	}

	resp := h.Service.Chat(planner.ChatRequest{
		Content:        req.Content,
		IncludeContext: includeContext,
		ChallengeMode:  req.ChallengeMode,
	})
	h.Metrics.MarkWorkflow("chat")
	return c.JSON(http.StatusOK, resp)
}

type decisionPayload struct {
	Question     string   `json:"question"`
	Context      string   `json:"context"`
	Options      []string `json:"options"`
	ChosenOption string   `json:"chosen_option"`
	Reasoning    string   `json:"reasoning"`
}

func (h *PlannerHandler) createDecision(c echo.Context) error {
	var req decisionPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Question) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question is required")
	}

	resp := h.Service.CreateDecision(planner.DecisionRequest{
		Question:     req.Question,
		Context:      req.Context,
		Options:      req.Options,
		ChosenOption: req.ChosenOption,
		Reasoning:    req.Reasoning,
	})
	h.Metrics.MarkWorkflow("decision")
	return c.JSON(http.StatusOK, resp)
}

func (h *PlannerHandler) weeklyPatterns(c echo.Context) error {
	resp := h.Service.WeeklyPatterns()
	h.Metrics.MarkWorkflow("weekly_patterns")
	return c.JSON(http.StatusOK, resp)
}

func (h *PlannerHandler) syncTasks(c echo.Context) error {
	all, err := h.Service.SyncTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	h.Metrics.MarkWorkflow("task_sync")
	return c.JSON(http.StatusOK, planner.TaskSyncResponse{TasksSynced: len(all), Message: "Tasks loaded"})
}

func (h *PlannerHandler) listTasks(c echo.Context) error {
	all, err := h.Service.SyncTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	titles := make([]string, 0, len(all))
	for _, task := range all {
		titles = append(titles, task.Title)
	}
	return c.JSON(http.StatusOK, titles)
}
