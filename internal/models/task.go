package models

// Task is a single to-do item. Every task belongs to exactly one user and is
// only ever visible to its owner.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	UserID    int64  `json:"-"`
}
