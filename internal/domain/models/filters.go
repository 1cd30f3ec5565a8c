package models

import "time"

// BookingFilter holds the predicates the record store can evaluate.
type BookingFilter struct {
	Status      BookingStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PaymentFilter holds the predicates the record store can evaluate.
type PaymentFilter struct {
	Status    PaymentStatus
	Method    string
	BookingID int64
	DateFrom  *time.Time
	DateTo    *time.Time
}
