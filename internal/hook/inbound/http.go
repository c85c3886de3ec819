package inbound

import "github.com/secretdeck/secretdeck/internal/pkg/router"

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/hooks", end.Receive)
	r.GET("/api/v1/hooks", end.ListEvents)
}
