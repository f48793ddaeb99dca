package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// AssistanceStatus tracks the back-office lifecycle of a roadside request.
type AssistanceStatus string

const (
	StatusPending    AssistanceStatus = "pending"
	StatusDispatched AssistanceStatus = "dispatched"
	StatusCompleted  AssistanceStatus = "completed"
	StatusCancelled  AssistanceStatus = "cancelled"
)

// AssistanceRequest is the persisted record of a roadside-assistance
// submission. Every other workflow is fire-and-forget; this one is tracked
// because a technician has to be dispatched against it.
type AssistanceRequest struct {
	gorm.Model
	ReferenceNumber string `gorm:"not null;uniqueIndex" json:"reference_number"`

	Name             string `gorm:"not null" json:"name"`
	Email            string `gorm:"not null;index" json:"email"`
	ContactNumber    string `gorm:"not null" json:"contact_number"`
	VehicleModel     string `gorm:"not null" json:"vehicle_model"`
	VehicleRegNumber string `gorm:"not null" json:"vehicle_reg_number"`
	AssistanceType   string `gorm:"not null" json:"assistance_type"`
	Location         string `gorm:"not null" json:"location"`
	Description      string `gorm:"type:text" json:"description"`

	Status AssistanceStatus `gorm:"not null;default:pending;index" json:"status"`

	// Dispatch metadata, filled in by back-office staff once a technician
	// is assigned.
	TechnicianName    string     `json:"technician_name"`
	TechnicianContact string     `json:"technician_contact"`
	EstimatedArrival  string     `json:"estimated_arrival"`
	DispatchedAt      *time.Time `json:"dispatched_at"`
	CompletedAt       *time.Time `json:"completed_at"`

	ResolutionNotes string `gorm:"type:text" json:"resolution_notes"`
}

// CanTransitionTo reports whether moving to next respects the monotonic
// lifecycle pending -> dispatched -> completed, with cancellation allowed
// from any non-terminal state.
func (s AssistanceStatus) CanTransitionTo(next AssistanceStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusDispatched || next == StatusCancelled
	case StatusDispatched:
		return next == StatusCompleted || next == StatusCancelled
	default:
		// completed and cancelled are terminal
		return false
	}
}

// TransitionTo advances the request status, stamping the dispatch/completion
// timestamps. It refuses transitions that would move the lifecycle backwards
// or out of a terminal state.
func (r *AssistanceRequest) TransitionTo(next AssistanceStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("invalid status transition %s -> %s for request %s", r.Status, next, r.ReferenceNumber)
	}

	now := time.Now()
	switch next {
	case StatusDispatched:
		r.DispatchedAt = &now
	case StatusCompleted:
		r.CompletedAt = &now
	}
	r.Status = next
	return nil
}
