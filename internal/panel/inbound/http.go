package inbound

import (
	"net/http"

	"github.com/secretdeck/secretdeck/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/secrets", end.ListSecrets)
	r.GET("/api/v1/secrets/:name/codes", end.SecretCodes)

	r.GETRaw("/api/v1/secrets/stream", http.HandlerFunc(end.StreamCodes))
	r.GETRaw("/", http.HandlerFunc(end.Page))
}
