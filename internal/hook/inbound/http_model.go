package inbound

import "time"

type ReceiveRequest struct {
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields"`
}

type EventResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Fields     map[string]string `json:"fields,omitempty"`
	ReceivedAt time.Time         `json:"received_at"`
}

type EventsResponse struct {
	Events []EventResponse `json:"events"`
}
