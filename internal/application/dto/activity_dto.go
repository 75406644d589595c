package dto

import "time"

// ActivityLogResponse entrada de la bitácora.
type ActivityLogResponse struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
