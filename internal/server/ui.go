package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/dayplan/internal/helpers"
	"github.com/mohammad-safakhou/dayplan/internal/planner"
	"github.com/mohammad-safakhou/dayplan/internal/store"
	"github.com/mohammad-safakhou/dayplan/models"
)

// UIHandler renders a minimal no-JS daily workspace and handles its form
// submissions. The JSON API under /api stays the primary surface.
type UIHandler struct {
	Service *planner.Service
	Store   *store.Store
}

// Register mounts the UI routes on the root router.
func (h *UIHandler) Register(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/daily")
	})
	e.GET("/daily", h.daily)
	e.POST("/daily/morning", h.submitMorning)
	e.POST("/daily/evening", h.submitEvening)
}

func (h *UIHandler) daily(c echo.Context) error {
	return c.HTML(http.StatusOK, h.renderDaily("", ""))
}

func (h *UIHandler) submitMorning(c echo.Context) error {
	level, err := strconv.Atoi(c.FormValue("energy_level"))
	if err != nil || level < models.MinEnergyLevel || level > models.MaxEnergyLevel {
		return echo.NewHTTPError(http.StatusBadRequest, "energy_level must be between 1 and 5")
	}
	focus := strings.TrimSpace(c.FormValue("intended_focus"))
	if focus == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "intended_focus is required")
	}

	resp := h.Service.CheckIn(planner.CheckInRequest{
		EnergyLevel:   level,
		TopOfMind:     helpers.SplitList(c.FormValue("top_of_mind")),
		IntendedFocus: focus,
		Blockers:      helpers.SplitList(c.FormValue("blockers")),
	})
	return c.HTML(http.StatusOK, h.renderDaily(resp.Plan, ""))
}

func (h *UIHandler) submitEvening(c echo.Context) error {
	focus := strings.TrimSpace(c.FormValue("actual_focus"))
	intent := strings.TrimSpace(c.FormValue("tomorrow_intent"))
	if focus == "" || intent == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "actual_focus and tomorrow_intent are required")
	}
	today := models.Day(time.Now())

	resp := h.Service.Reflect(planner.ReflectionRequest{
		SessionDate:    today,
		ActualFocus:    focus,
		Wins:           helpers.SplitList(c.FormValue("wins")),
		Challenges:     helpers.SplitList(c.FormValue("challenges")),
		TomorrowIntent: intent,
		EnergyPattern:  helpers.ParseEnergyPattern(c.FormValue("energy_pattern"), today),
	})
	return c.HTML(http.StatusOK, h.renderDaily("", resp.Message))
}

func (h *UIHandler) renderDaily(plan, reflection string) string {
	today := models.Day(time.Now())
	var b strings.Builder
	b.WriteString("<!doctype html><html><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>Daily Planner</title></head><body style=\"font-family:system-ui,-apple-system,Segoe UI,Roboto,Helvetica,Arial,sans-serif; color:#e5e7eb; background:#0f172a;\">")
	b.WriteString("<div style=\"max-width:960px;margin:24px auto;padding:0 16px\">")
	b.WriteString("<h1 style=\"font-size:18px;font-weight:600;margin-bottom:8px\">Daily Planner — " + today.Format("Mon, 02 Jan 2006") + "</h1>")

	if plan != "" {
		b.WriteString("<h2 style=\"font-size:14px;font-weight:600;margin:16px 0 8px\">Your plan</h2>")
		b.WriteString("<pre style=\"background:#0b1220;border:1px solid #1f2937;border-radius:8px;padding:12px;overflow:auto\">")
		b.WriteString(template.HTMLEscapeString(plan))
		b.WriteString("</pre>")
	}
	if reflection != "" {
		b.WriteString("<h2 style=\"font-size:14px;font-weight:600;margin:16px 0 8px\">Reflection</h2>")
		b.WriteString("<pre style=\"background:#0b1220;border:1px solid #1f2937;border-radius:8px;padding:12px;overflow:auto\">")
		b.WriteString(template.HTMLEscapeString(reflection))
		b.WriteString("</pre>")
	}

	b.WriteString("<h2 style=\"font-size:14px;font-weight:600;margin:16px 0 8px\">Morning check-in</h2>")
	b.WriteString("<form method=\"post\" action=\"/daily/morning\">")
	b.WriteString("<label>Energy (1-5) <input name=\"energy_level\" value=\"3\"></label><br>")
	b.WriteString("<label>Focus <input name=\"intended_focus\"></label><br>")
	b.WriteString("<label>Top of mind <input name=\"top_of_mind\" placeholder=\"comma separated\"></label><br>")
	b.WriteString("<label>Blockers <input name=\"blockers\" placeholder=\"comma separated\"></label><br>")
	b.WriteString("<button type=\"submit\">Plan my day</button></form>")

	b.WriteString("<h2 style=\"font-size:14px;font-weight:600;margin:16px 0 8px\">Evening reflection</h2>")
	b.WriteString("<form method=\"post\" action=\"/daily/evening\">")
	b.WriteString("<label>Actual focus <input name=\"actual_focus\"></label><br>")
	b.WriteString("<label>Wins <input name=\"wins\" placeholder=\"comma separated\"></label><br>")
	b.WriteString("<label>Challenges <input name=\"challenges\" placeholder=\"comma separated\"></label><br>")
	b.WriteString("<label>Tomorrow <input name=\"tomorrow_intent\"></label><br>")
	b.WriteString("<label>Energy pattern <textarea name=\"energy_pattern\" placeholder=\"09:00 4&#10;14:00 2\"></textarea></label><br>")
	b.WriteString("<button type=\"submit\">Store reflection</button></form>")

	if session, ok := h.Store.GetSession(today); ok {
		b.WriteString("<h2 style=\"font-size:14px;font-weight:600;margin:16px 0 8px\">Today's session</h2>")
		b.WriteString("<pre style=\"background:#0b1220;border:1px solid #1f2937;border-radius:8px;padding:12px;overflow:auto\"><code>")
		if raw, err := json.MarshalIndent(session, "", "  "); err == nil {
			b.Write(raw)
		}
		b.WriteString("</code></pre>")
	}
	if tasks := h.Store.TasksForDate(today); len(tasks) > 0 {
		b.WriteString("<h2 style=\"font-size:14px;font-weight:600;margin:16px 0 8px\">Tasks due today</h2><ul>")
		for _, task := range tasks {
			b.WriteString("<li>" + template.HTMLEscapeString(task.Title) + "</li>")
		}
		b.WriteString("</ul>")
	}
	if events := h.Store.RecentEvents(10); len(events) > 0 {
		b.WriteString("<h2 style=\"font-size:14px;font-weight:600;margin:16px 0 8px\">Recent activity</h2><ul>")
		for _, event := range events {
			b.WriteString("<li>" + event.Timestamp.Format(time.RFC822) + " — " + template.HTMLEscapeString(event.Description) + "</li>")
		}
		b.WriteString("</ul>")
	}

	summary := h.Store.Summary()
	b.WriteString("<p style=\"color:#9ca3af\">" +
		strconv.Itoa(summary.Sessions) + " sessions · " +
		strconv.Itoa(summary.Events) + " events · " +
		strconv.Itoa(summary.Tasks) + " tasks</p>")
	b.WriteString("</div></body></html>")
	return b.String()
}
