package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingPaid      BookingStatus = "paid"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is created at checkout initiation (pending), marked paid by the
// payment webhook and may be cancelled by an admin. UserID stays empty for
// guests until the webhook links or creates their account.
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId,omitempty"`
	Status          BookingStatus `json:"status"`
	StripeSessionID string        `json:"stripeSessionId,omitempty"`

	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	OtherNames string `json:"otherNames,omitempty"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`

	DepartureDate      time.Time `json:"departureDate"`
	Direction          string    `json:"direction"`
	DepartureStageID   string    `json:"departureStageId"`
	DestinationStageID string    `json:"destinationStageId"`

	NumBags      int `json:"numBags"`
	NumTransfers int `json:"numTransfers"`
	TotalPrice   int `json:"totalPrice"` // whole EUR

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingSegment is one daily leg of a booking's route.
// TravelDate = booking departure date + SegmentIndex days.
type BookingSegment struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"bookingId"`
	SegmentIndex int       `json:"segmentIndex"`
	FromStageID  string    `json:"fromStageId"`
	ToStageID    string    `json:"toStageId"`
	TravelDate   time.Time `json:"travelDate"`
	StartHotelID string    `json:"startHotelId,omitempty"`
	EndHotelID   string    `json:"endHotelId,omitempty"`
	HotelNotes   string    `json:"hotelNotes,omitempty"`
}
