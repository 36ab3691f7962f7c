package entity

import (
	"errors"
	"time"
)

// Status is the lifecycle state of an exchange.
type Status string

const (
	StatusRequested Status = "Requested"
	StatusActive    Status = "Active"
	StatusDeclined  Status = "Declined"
	StatusCancelled Status = "Cancelled"
)

// ValidTarget reports whether s is a status a caller may request via the API.
// Requested is the creation state and is never a transition target.
func ValidTarget(s Status) bool {
	switch s {
	case StatusActive, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

var (
	ErrInvalidStatus    = errors.New("invalid status")
	ErrNotParticipant   = errors.New("not authorized")
	ErrRecipientAccept  = errors.New("only the receiver can accept")
	ErrRecipientDecline = errors.New("only the receiver can decline")
	ErrExchangeSettled  = errors.New("exchange is no longer in requested status")
	ErrExchangeNotFound = errors.New("exchange not found")
	ErrSelfExchange     = errors.New("cannot request an exchange with yourself")
)

type Exchange struct {
	ID         int64     `db:"exchange_id"`
	ProfileID1 int64     `db:"profile_id_1"` // initiator
	ProfileID2 int64     `db:"profile_id_2"` // recipient
	SkillID1   int64     `db:"skill_id_1"`   // offered by initiator
	SkillID2   int64     `db:"skill_id_2"`   // requested from recipient
	Status     Status    `db:"status"`
	Location   string    `db:"location"`
	DateStart  time.Time `db:"date_start"`
	DateEnd    time.Time `db:"date_end"` // last-modified bookkeeping, touched on status change
}

// Transition validates a status change against the actor's role in the
// exchange and applies it. It is a pure in-memory operation; persistence is
// the caller's job.
//
//	Requested -> Active     recipient only
//	Requested -> Declined   recipient only
//	Requested -> Cancelled  initiator or recipient
//
// All four states are terminal once left Requested.
func (e *Exchange) Transition(target Status, actorProfileID int64) error {
	if !ValidTarget(target) {
		return ErrInvalidStatus
	}
	if target == StatusActive && actorProfileID != e.ProfileID2 {
		return ErrRecipientAccept
	}
	if target == StatusDeclined && actorProfileID != e.ProfileID2 {
		return ErrRecipientDecline
	}
	if actorProfileID != e.ProfileID1 && actorProfileID != e.ProfileID2 {
		return ErrNotParticipant
	}
	if e.Status != StatusRequested {
		return ErrExchangeSettled
	}
	e.Status = target
	return nil
}

type CreateExchangeInput struct {
	ToProfileID int64 `json:"to_profile_id" binding:"required"`
	SkillID1    int64 `json:"skill_id_1" binding:"required"`
	SkillID2    int64 `json:"skill_id_2" binding:"required"`
}

type UpdateStatusInput struct {
	Status Status `json:"status" binding:"required"`
}

// ExchangeView is the row shape returned by the received/sent listings,
// exchange columns joined with skill and profile names.
type ExchangeView struct {
	ExchangeID     int64     `json:"exchange_id"`
	ProfileID1     int64     `json:"profile_id_1"`
	ProfileID2     int64     `json:"profile_id_2"`
	Profile1Name   string    `json:"profile_1_name"`
	Profile2Name   string    `json:"profile_2_name"`
	OfferedSkill   string    `json:"offered_skill"`
	RequestedSkill string    `json:"requested_skill"`
	Status         Status    `json:"status"`
	Location       string    `json:"location"`
	DateStart      time.Time `json:"date_start"`
	DateEnd        time.Time `json:"date_end"`
}
