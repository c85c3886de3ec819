package tests

import (
	"net/http"
	"testing"
	"time"
)

type eventPayload struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Fields     map[string]string `json:"fields"`
	ReceivedAt time.Time         `json:"received_at"`
}

type eventsPayload struct {
	Events []eventPayload `json:"events"`
}

func TestReceiveHook(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/v1/hooks", map[string]any{
		"name":   "integration-test",
		"fields": map[string]string{"source": "tests"},
	})
	if status != http.StatusAccepted {
		t.Fatalf("status = %d (%s)", status, body)
	}

	var event eventPayload
	decodeSuccess(t, body, &event)
	if event.ID == "" || event.Name != "integration-test" {
		t.Fatalf("unexpected event %+v", event)
	}

	status, body = doJSON(t, http.MethodGet, "/api/v1/hooks?limit=10", nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d (%s)", status, body)
	}

	var events eventsPayload
	decodeSuccess(t, body, &events)
	found := false
	for _, e := range events.Events {
		if e.ID == event.ID {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("posted event %s not found in listing", event.ID)
	}
}

func TestReceiveHookMissingName(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/v1/hooks", map[string]any{
		"fields": map[string]string{"k": "v"},
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d (%s)", status, body)
	}
	env := decodeError(t, body)
	if _, ok := env.Error["name"]; !ok {
		t.Errorf("expected field error for name, got %+v", env.Error)
	}
}

func TestReceiveHookMalformedBody(t *testing.T) {
	status, body := doJSON(t, http.MethodPost, "/api/v1/hooks", map[string]any{
		"name":       "x",
		"unexpected": true,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d (%s)", status, body)
	}
}

func TestListHooksInvalidLimit(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/v1/hooks?limit=9999", nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d (%s)", status, body)
	}
}
