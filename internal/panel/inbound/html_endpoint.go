package inbound

import (
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Page renders the HTML panel. The initial view is rendered server-side;
// the embedded script subscribes to the SSE stream for live updates.
// @Summary Panel page
// @Description Renders the HTML panel with live one-time codes.
// @Tags Panel
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 500 {string} string "Internal server error"
// @Router / [get]
func (h *HTTPEndpoint) Page(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.ListSecrets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list secrets for page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]SecretResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toSecretResponse(item))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, SecretsResponse{Secrets: resp}); err != nil {
		slog.ErrorContext(r.Context(), "failed to render page", "error", err)
	}
}
