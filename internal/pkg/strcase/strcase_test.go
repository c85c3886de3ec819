package strcase

import "testing"

func TestToLowerSnake(t *testing.T) {
	cases := map[string]string{
		"":           "",
		"Name":       "name",
		"SecretName": "secret_name",
		"userID":     "user_id",
		"HTTPServer": "http_server",
		"ValidUntil": "valid_until",
		"already":    "already",
		"A":          "a",
	}

	for in, want := range cases {
		if got := ToLowerSnake(in); got != want {
			t.Errorf("ToLowerSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
