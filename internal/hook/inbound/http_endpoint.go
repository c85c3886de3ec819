package inbound

import (
	"net/http"

	"github.com/secretdeck/secretdeck/internal/hook/entity"
	"github.com/secretdeck/secretdeck/internal/hook/usecase"
	"github.com/secretdeck/secretdeck/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ReceiveResponse is the accepted envelope echoed back to the sender.
type ReceiveResponse struct {
	EventResponse
}

func (ReceiveResponse) StatusCode() int { return http.StatusAccepted }

func (ReceiveResponse) Message() string { return "event has been accepted" }

// Receive accepts a webhook envelope and stores it for display.
// @Summary Receive webhook
// @Description Accepts a JSON envelope and stores it for display on the panel.
// @Tags Hook
// @Accept json
// @Param request body ReceiveRequest true "Webhook envelope"
// @Success 202 {object} router.successResponse{data=ReceiveResponse} "Accepted"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/hooks [post]
func (h *HTTPEndpoint) Receive(r *router.Request) (any, error) {
	var req ReceiveRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	event, err := h.uc.Receive(r.Context(), usecase.ReceiveInput{
		Name:   req.Name,
		Fields: req.Fields,
	})
	if err != nil {
		return nil, err
	}

	return ReceiveResponse{EventResponse: toEventResponse(*event)}, nil
}

// ListEvents returns the most recent webhook envelopes.
// @Summary List webhook events
// @Description Returns recent webhook envelopes, newest first.
// @Tags Hook
// @Produce json
// @Param limit query int false "Maximum events to return (default 20)"
// @Success 200 {object} router.successResponse{data=EventsResponse} "Event list"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/hooks [get]
func (h *HTTPEndpoint) ListEvents(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt64("limit")
	if err != nil {
		return nil, err
	}

	events, err := h.uc.ListEvents(r.Context(), usecase.ListEventsInput{Limit: limit})
	if err != nil {
		return nil, err
	}

	resp := make([]EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, toEventResponse(event))
	}

	return EventsResponse{Events: resp}, nil
}

func toEventResponse(event entity.Event) EventResponse {
	return EventResponse{
		ID:         event.ID,
		Name:       event.Name,
		Fields:     event.Fields,
		ReceivedAt: event.ReceivedAt,
	}
}
