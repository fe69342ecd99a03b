package model

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// BookingState selects bookings in list queries.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState resolves a query value; empty means ALL.
func ParseBookingState(s string) (BookingState, bool) {
	if s == "" {
		return StateAll, true
	}
	switch st := BookingState(strings.ToUpper(s)); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, true
	}
	return "", false
}

type Booking struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	ItemID   int64         `json:"itemId"`
	BookerID int64         `json:"bookerId"`
	Status   BookingStatus `json:"status"`
}

// BookingShort is the reduced view embedded into items.
type BookingShort struct {
	ID       int64         `json:"id"`
	BookerID int64         `json:"bookerId"`
	ItemID   int64         `json:"itemId"`
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Status   BookingStatus `json:"status"`
}

// BookingFull is a booking with its item and booker resolved.
type BookingFull struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status BookingStatus `json:"status"`
	Item   Item          `json:"item"`
	Booker User          `json:"booker"`
}

// swagger:model BookingCreate
type BookingCreate struct {
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
	ItemID int64      `json:"itemId" validate:"required,gt=0"`
}
