package models

import "time"

// TodoItem is a single task record. UserID is the username of the creating
// account; every record has an owner. Description and DueDate are optional.
type TodoItem struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Completed    bool       `json:"completed"`
	CreationDate time.Time  `json:"creationDate"`
	UserID       string     `json:"userId"`
}
