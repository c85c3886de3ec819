package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/secretdeck/secretdeck/internal/panel/entity"
	"github.com/secretdeck/secretdeck/internal/pkg/clock"
	"github.com/secretdeck/secretdeck/internal/pkg/config"
	"github.com/secretdeck/secretdeck/internal/pkg/goerror"
	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"github.com/secretdeck/secretdeck/internal/pkg/secretstore"
	"github.com/secretdeck/secretdeck/internal/pkg/validator"
)

// RFC 6238 test key (ASCII "12345678901234567890") so expected codes come
// straight from the RFC appendix.
const testURI = "otpauth://totp/Demo:alice@example.com?secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ&issuer=Demo"

type fakeStore struct {
	secrets map[string]map[string]string
	fails   map[string]error
	calls   int
}

func (f *fakeStore) Fetch(_ context.Context, name string) (map[string]string, error) {
	f.calls++
	if err, ok := f.fails[name]; ok {
		return nil, err
	}
	data, ok := f.secrets[name]
	if !ok {
		return nil, secretstore.ErrNotFound
	}
	return data, nil
}

func newTestUsecase(t *testing.T, store *fakeStore, names []string) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte("panel:\n  refresh_interval: 1\n"))
	if err != nil {
		t.Fatalf("new config: %v", err)
	}

	return NewPanel(Dependency{
		RepoStore:  store,
		Config:     cfg,
		Clock:      clock.Fixed{At: time.Unix(1111111109, 0)},
		Validator:  v,
		Instrument: instrument.NewNoop(),
		Names:      names,
	})
}

func TestListSecretsClassifiesFields(t *testing.T) {
	store := &fakeStore{secrets: map[string]map[string]string{
		"demo": {
			"token": testURI,
			"note":  "plain text",
			"bad":   "otpauth://totp/x?secret=!!!",
		},
	}}
	uc := newTestUsecase(t, store, []string{"demo"})

	secrets, err := uc.ListSecrets(context.Background())
	if err != nil {
		t.Fatalf("ListSecrets: %v", err)
	}
	if len(secrets) != 1 {
		t.Fatalf("expected 1 secret, got %d", len(secrets))
	}

	fields := secrets[0].Fields
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}

	// keys come back sorted: bad, note, token
	if fields[0].Name != "bad" || fields[0].Kind != entity.FieldKindInvalid {
		t.Errorf("field 0 = %q kind %q, want bad/invalid", fields[0].Name, fields[0].Kind)
	}
	if fields[0].Error == "" {
		t.Error("invalid field should carry the parse error")
	}
	if fields[1].Name != "note" || fields[1].Kind != entity.FieldKindPlain || fields[1].Value != "plain text" {
		t.Errorf("field 1 = %+v, want plain note", fields[1])
	}
	if fields[2].Name != "token" || fields[2].Kind != entity.FieldKindTOTP {
		t.Errorf("field 2 = %+v, want totp token", fields[2])
	}
	// RFC 6238 SHA-1 vector at T=1111111109.
	if fields[2].Code != "081804" {
		t.Errorf("code = %q, want 081804", fields[2].Code)
	}
	if fields[2].Issuer != "Demo" || fields[2].Label != "alice@example.com" {
		t.Errorf("issuer/label = %q/%q", fields[2].Issuer, fields[2].Label)
	}
	if fields[2].Remaining <= 0 || fields[2].Remaining > 30 {
		t.Errorf("remaining = %d, want within (0,30]", fields[2].Remaining)
	}
}

func TestListSecretsFetchFailureIsIsolated(t *testing.T) {
	store := &fakeStore{
		secrets: map[string]map[string]string{"ok": {"note": "fine"}},
		fails:   map[string]error{"broken": errors.New("connection refused")},
	}
	uc := newTestUsecase(t, store, []string{"broken", "ok"})

	secrets, err := uc.ListSecrets(context.Background())
	if err != nil {
		t.Fatalf("ListSecrets: %v", err)
	}
	if len(secrets) != 2 {
		t.Fatalf("expected 2 secrets, got %d", len(secrets))
	}
	if secrets[0].Error == "" || len(secrets[0].Fields) != 0 {
		t.Errorf("broken secret should be an error row, got %+v", secrets[0])
	}
	if secrets[1].Error != "" || len(secrets[1].Fields) != 1 {
		t.Errorf("ok secret should have fields, got %+v", secrets[1])
	}
}

func TestSecretCodesFiltersPlainFields(t *testing.T) {
	store := &fakeStore{secrets: map[string]map[string]string{
		"demo": {"token": testURI, "note": "plain"},
	}}
	uc := newTestUsecase(t, store, []string{"demo"})

	secret, err := uc.SecretCodes(context.Background(), SecretCodesInput{Name: "demo"})
	if err != nil {
		t.Fatalf("SecretCodes: %v", err)
	}
	if len(secret.Fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(secret.Fields))
	}
	if secret.Fields[0].Name != "token" || secret.Fields[0].Code == "" {
		t.Errorf("unexpected field %+v", secret.Fields[0])
	}
}

func TestSecretCodesNotMonitored(t *testing.T) {
	store := &fakeStore{secrets: map[string]map[string]string{"other": {}}}
	uc := newTestUsecase(t, store, []string{"demo"})

	_, err := uc.SecretCodes(context.Background(), SecretCodesInput{Name: "other"})
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	if store.calls != 0 {
		t.Errorf("store should not be hit for unmonitored names, calls = %d", store.calls)
	}
}

func TestSecretCodesInvalidName(t *testing.T) {
	uc := newTestUsecase(t, &fakeStore{}, []string{"demo"})

	for _, name := range []string{"", "UPPER", "has space", strings.Repeat("a", 260)} {
		_, err := uc.SecretCodes(context.Background(), SecretCodesInput{Name: name})
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeValidation {
			t.Errorf("name %q: expected validation error, got %v", name, err)
		}
	}
}

func TestSecretCodesMissingSecret(t *testing.T) {
	store := &fakeStore{}
	uc := newTestUsecase(t, store, []string{"demo"})

	_, err := uc.SecretCodes(context.Background(), SecretCodesInput{Name: "demo"})
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestStreamCodesDeliversAndCloses(t *testing.T) {
	store := &fakeStore{secrets: map[string]map[string]string{
		"demo": {"token": testURI},
	}}
	uc := newTestUsecase(t, store, []string{"demo"})

	if _, err := uc.ListSecrets(context.Background()); err != nil {
		t.Fatalf("warm snapshot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	stream := uc.StreamCodes(ctx)

	uc.publish(uc.buildStreamEvent())

	select {
	case evt := <-stream:
		if len(evt.Secrets) != 1 || evt.Secrets[0].Name != "demo" {
			t.Fatalf("unexpected event %+v", evt)
		}
		if evt.Secrets[0].Fields[0].Code != "081804" {
			t.Errorf("code = %q, want 081804", evt.Secrets[0].Fields[0].Code)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	cancel()
	select {
	case _, ok := <-stream:
		if ok {
			return // drained a buffered frame; channel closes after
		}
	case <-time.After(time.Second):
		t.Fatal("stream did not close after cancel")
	}
}
