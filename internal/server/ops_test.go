package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/dayplan/internal/memory"
	"github.com/mohammad-safakhou/dayplan/internal/store"
	"github.com/mohammad-safakhou/dayplan/models"
)

func TestOpsSummary(t *testing.T) {
	e := echo.New()
	st := store.New()
	idx := memory.NewIndex()
	st.GetOrCreateSession(time.Now())
	idx.AddInteraction(memory.ForToday(), "hi", "hello", nil)
	handler := &OpsHandler{Store: st, Memory: idx, EventsLimit: 10}

	req := httptest.NewRequest(http.MethodGet, "/api/ops/summary", nil)
	rec := httptest.NewRecorder()
	if err := handler.summary(e.NewContext(req, rec)); err != nil {
		t.Fatalf("summary: %v", err)
	}

	var resp struct {
		Store  models.StoreSummary  `json:"store"`
		Memory models.MemorySummary `json:"memory"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Store.Sessions != 1 || resp.Memory.Buckets != 1 {
		t.Fatalf("unexpected summary %+v", resp)
	}
}

func TestOpsEventsLimit(t *testing.T) {
	e := echo.New()
	st := store.New()
	for i := 0; i < 4; i++ {
		st.AddEvent(models.PlannerEvent{Timestamp: time.Now(), Description: "event"})
	}
	handler := &OpsHandler{Store: st, Memory: memory.NewIndex(), EventsLimit: 10}

	req := httptest.NewRequest(http.MethodGet, "/api/ops/events?limit=2", nil)
	rec := httptest.NewRecorder()
	if err := handler.events(e.NewContext(req, rec)); err != nil {
		t.Fatalf("events: %v", err)
	}
	var events []models.PlannerEvent
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/ops/events?limit=nope", nil)
	err := handler.events(e.NewContext(req, httptest.NewRecorder()))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %#v", err)
	}
}

func TestUIMorningForm(t *testing.T) {
	e := echo.New()
	handler, _, _ := newTestHandler()
	ui := &UIHandler{Service: handler.Service, Store: store.New()}

	form := url.Values{}
	form.Set("energy_level", "4")
	form.Set("intended_focus", "deep work")
	form.Set("top_of_mind", "retro, budget")
	req := httptest.NewRequest(http.MethodPost, "/daily/morning", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	if err := ui.submitMorning(e.NewContext(req, rec)); err != nil {
		t.Fatalf("submitMorning: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Today&#39;s focus: deep work.") &&
		!strings.Contains(rec.Body.String(), "Today's focus: deep work.") {
		t.Fatalf("rendered page missing plan")
	}
}

func TestUIMorningFormRejectsBadEnergy(t *testing.T) {
	e := echo.New()
	handler, _, _ := newTestHandler()
	ui := &UIHandler{Service: handler.Service, Store: store.New()}

	form := url.Values{}
	form.Set("energy_level", "11")
	form.Set("intended_focus", "deep work")
	req := httptest.NewRequest(http.MethodPost, "/daily/morning", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	err := ui.submitMorning(e.NewContext(req, httptest.NewRecorder()))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %#v", err)
	}
}
