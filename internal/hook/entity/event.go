package entity

import "time"

// Event is one received webhook envelope, stored verbatim for display.
type Event struct {
	ID         string
	Name       string
	Fields     map[string]string
	ReceivedAt time.Time
}
