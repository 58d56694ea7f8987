package service

import "errors"

// Booking failures are typed so the HTTP layer can report a reason code
// instead of a bare boolean.
var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrAlreadyBooked   = errors.New("member already booked for this slot")
	ErrClassFull       = errors.New("class is full")
	ErrQuotaExceeded   = errors.New("session quota exceeded for current period")
	ErrPastOccurrence  = errors.New("occurrence is in the past")
)
