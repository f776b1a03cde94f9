package model

// Item is the domain model for a task entry.
// IDs are unique among the items currently in a list.
type Item struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Complete bool   `json:"complete"`
}
