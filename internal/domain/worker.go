package domain

import (
	"strings"
	"time"
)

// Worker represents a farm worker in the domain model.
// Workers are deactivated on off-boarding, never deleted.
type Worker struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Position  string     `json:"position"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	HireDate  *time.Time `json:"hire_date,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// String returns the worker name for display purposes.
func (w Worker) String() string {
	if w.Position == "" {
		return w.Name
	}
	return w.Name + " (" + w.Position + ")"
}

// WorkerDraft holds the editable fields of a worker.
type WorkerDraft struct {
	Name     string     `json:"name" validate:"required,max=100"`
	Position string     `json:"position" validate:"max=100"`
	Phone    string     `json:"phone" validate:"max=30"`
	Email    string     `json:"email" validate:"omitempty,email"`
	HireDate *time.Time `json:"hire_date"`
}

// NewWorkerDraft starts an edit of w.
func NewWorkerDraft(w Worker) WorkerDraft {
	return WorkerDraft{
		Name:     w.Name,
		Position: w.Position,
		Phone:    w.Phone,
		Email:    w.Email,
		HireDate: w.HireDate,
	}
}

// Normalize trims surrounding whitespace from the text fields.
func (d WorkerDraft) Normalize() WorkerDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Position = strings.TrimSpace(d.Position)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	return d
}

// Apply returns a copy of w with the draft's fields written over it.
func (d WorkerDraft) Apply(w Worker) Worker {
	w.Name = d.Name
	w.Position = d.Position
	w.Phone = d.Phone
	w.Email = d.Email
	w.HireDate = d.HireDate
	return w
}
