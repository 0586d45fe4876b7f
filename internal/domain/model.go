package domain

import "time"

// Model holds the identity and timestamp fields shared by every stored record.
type Model struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta exposes the embedded Model so generic repositories can stamp records.
func (m *Model) Meta() *Model {
	return m
}
