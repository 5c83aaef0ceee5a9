package models

import "time"

// Status is the board column a todo occupies.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inProgress"
	StatusReview     Status = "review"
	StatusFinished   Status = "finished"
)

// Valid reports whether s is one of the four recognized board columns.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusFinished:
		return true
	}
	return false
}

// Order is the priority tier of a todo.
type Order string

const (
	OrderLow    Order = "low"
	OrderMedium Order = "medium"
	OrderHigh   Order = "high"
)

// Valid reports whether o is a recognized priority tier.
func (o Order) Valid() bool {
	switch o {
	case OrderLow, OrderMedium, OrderHigh:
		return true
	}
	return false
}

// Todo is a single board card. User is filled only by list queries that
// join the owner; email is left blank there.
type Todo struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content,omitempty"`
	Status    Status      `json:"status"`
	Order     Order       `json:"order"`
	UserID    string      `json:"userId"`
	User      *PublicUser `json:"user,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
