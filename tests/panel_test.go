package tests

import (
	"net/http"
	"strings"
	"testing"
)

type secretField struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Value      string `json:"value"`
	Issuer     string `json:"issuer"`
	Label      string `json:"label"`
	Code       string `json:"code"`
	ValidUntil int64  `json:"valid_until"`
	Remaining  int64  `json:"remaining"`
	Error      string `json:"error"`
}

type secretPayload struct {
	Name   string        `json:"name"`
	Fields []secretField `json:"fields"`
	Error  string        `json:"error"`
}

type secretsPayload struct {
	Secrets []secretPayload `json:"secrets"`
}

func TestListSecrets(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/v1/secrets", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d (%s)", status, body)
	}

	var payload secretsPayload
	decodeSuccess(t, body, &payload)
	if len(payload.Secrets) == 0 {
		t.Fatal("expected at least one monitored secret")
	}

	for _, secret := range payload.Secrets {
		if secret.Name == "" {
			t.Errorf("secret without name: %+v", secret)
		}
		for _, field := range secret.Fields {
			switch field.Kind {
			case "totp":
				if len(field.Code) < 6 || len(field.Code) > 10 {
					t.Errorf("secret %s field %s: bad code %q", secret.Name, field.Name, field.Code)
				}
				if field.Remaining <= 0 {
					t.Errorf("secret %s field %s: remaining = %d", secret.Name, field.Name, field.Remaining)
				}
			case "plain", "invalid":
			default:
				t.Errorf("unknown field kind %q", field.Kind)
			}
		}
	}
}

func TestSecretCodes(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/v1/secrets", nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	var payload secretsPayload
	decodeSuccess(t, body, &payload)
	if len(payload.Secrets) == 0 {
		t.Skip("no monitored secrets configured")
	}

	name := payload.Secrets[0].Name
	status, body = doJSON(t, http.MethodGet, "/api/v1/secrets/"+name+"/codes", nil)
	if status != http.StatusOK {
		t.Fatalf("codes status = %d (%s)", status, body)
	}

	var secret secretPayload
	decodeSuccess(t, body, &secret)
	for _, field := range secret.Fields {
		if field.Kind == "plain" {
			t.Errorf("codes endpoint must not return plain fields, got %+v", field)
		}
	}
}

func TestSecretCodesUnknownName(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/v1/secrets/no-such-secret/codes", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d (%s)", status, body)
	}
	if env := decodeError(t, body); env.Message == "" {
		t.Error("error response should carry a message")
	}
}

func TestSecretCodesInvalidName(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/api/v1/secrets/Not%20Valid/codes", nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d (%s)", status, body)
	}
}

func TestPanelPage(t *testing.T) {
	resp, err := httpClient.Get(strings.TrimRight(baseURL(), "/") + "/")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content-type = %q", ct)
	}
}

func TestHealth(t *testing.T) {
	status, body := doJSON(t, http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d (%s)", status, body)
	}
}
