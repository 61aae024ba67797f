package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"trailporter/internal/config"
	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
	"trailporter/internal/payments"
	"trailporter/internal/pricing"
	"trailporter/internal/repositories"
	"trailporter/internal/trail"
	"trailporter/internal/utils"
)

// BookingPayload is the trip the frontend submits at checkout. The submitted
// amount is advisory only; the server reprices from the regenerated route
// and rejects a mismatch.
type BookingPayload struct {
	BasicDetails struct {
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		BookingNames string `json:"bookingNames"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
	} `json:"basicDetails"`
	AboutTrip struct {
		DepartureDate string `json:"departureDate"` // YYYY-MM-DD
		Departure     string `json:"departure"`     // stage code
		Destination   string `json:"destination"`   // stage code
		Direction     string `json:"direction"`
		Bags          int    `json:"bags"`
	} `json:"aboutTrip"`
	Route [][2]string `json:"route"`
}

type CheckoutService struct {
	Bookings  repositories.BookingRepository
	Segments  repositories.SegmentRepository
	Checks    ChecksService
	Provider  payments.CheckoutProvider
	RequestID string
}

// BookingView is a booking with its ordered daily legs, as returned to the
// confirmation page and the dashboards.
type BookingView struct {
	Booking  models.Booking          `json:"booking"`
	Segments []models.BookingSegment `json:"segments"`
}

// Start validates the trip, re-runs the gate checks, persists a pending
// booking with its daily segments and opens a Stripe checkout session.
// It returns the URL the customer is redirected to.
func (s CheckoutService) Start(ctx context.Context, amountEUR int, rawPayload string) (string, error) {
	var p BookingPayload
	if err := json.Unmarshal([]byte(rawPayload), &p); err != nil {
		return "", domain.ValidationError{Field: "bookingPayload", Msg: "malformed payload", Err: err}
	}

	firstName := utils.TrimOrEmpty(p.BasicDetails.FirstName)
	lastName := utils.TrimOrEmpty(p.BasicDetails.LastName)
	email := utils.NormalizeEmail(p.BasicDetails.Email)
	if firstName == "" || lastName == "" {
		return "", domain.ValidationError{Field: "name", Msg: "first and last name are required"}
	}
	if !utils.LooksLikeEmail(email) {
		return "", domain.ValidationError{Field: "email", Msg: "invalid email address"}
	}
	if p.AboutTrip.Bags < 1 {
		return "", domain.ValidationError{Field: "bags", Msg: "at least one bag is required"}
	}

	departure, err := utils.ParseDate(p.AboutTrip.DepartureDate)
	if err != nil {
		return "", domain.ValidationError{Field: "departureDate", Msg: "expected YYYY-MM-DD", Err: err}
	}

	// The client also sends a route, but only the regenerated one counts.
	route := trail.GenerateRoute(p.AboutTrip.Departure, p.AboutTrip.Destination)
	if route == nil {
		return "", domain.ValidationError{Field: "route", Msg: "invalid departure or destination stage"}
	}
	direction, _ := trail.RouteDirection(p.AboutTrip.Departure, p.AboutTrip.Destination)

	price, ok := pricing.Price(route, p.AboutTrip.Bags)
	if !ok {
		return "", domain.ValidationError{Field: "route", Msg: "cannot price this trip"}
	}
	if price != amountEUR {
		utils.LogEvent(s.RequestID, "checkout", "start",
			fmt.Sprintf("amount mismatch submitted=%d computed=%d", amountEUR, price))
		return "", domain.ValidationError{Field: "amount", Msg: "submitted amount does not match the trip price"}
	}

	// The gate may have passed minutes ago; repeat it so a stale tab cannot
	// book a taken email or a filled day.
	res, err := s.Checks.CheckBooking(email, departure, p.AboutTrip.Departure, p.AboutTrip.Destination)
	if err != nil {
		return "", err
	}
	if !res.OK {
		return "", domain.ConflictError{Resource: "booking", Msg: res.Message}
	}

	booking := models.Booking{
		ID:                 uuid.NewString(),
		Status:             models.BookingPending,
		FirstName:          firstName,
		LastName:           lastName,
		OtherNames:         utils.TrimOrEmpty(p.BasicDetails.BookingNames),
		Email:              email,
		Phone:              utils.TrimOrEmpty(p.BasicDetails.Phone),
		DepartureDate:      departure,
		Direction:          string(direction),
		DepartureStageID:   p.AboutTrip.Departure,
		DestinationStageID: p.AboutTrip.Destination,
		NumBags:            p.AboutTrip.Bags,
		NumTransfers:       len(route),
		TotalPrice:         price,
	}
	if err := s.Bookings.Create(booking); err != nil {
		return "", err
	}

	segments := make([]models.BookingSegment, 0, len(route))
	for i, seg := range route {
		segments = append(segments, models.BookingSegment{
			ID:           uuid.NewString(),
			BookingID:    booking.ID,
			SegmentIndex: i,
			FromStageID:  seg.From,
			ToStageID:    seg.To,
			TravelDate:   departure.AddDate(0, 0, i),
		})
	}
	if err := s.Segments.CreateBatch(segments); err != nil {
		return "", err
	}

	description := fmt.Sprintf("Luggage transfer %s to %s (%d days)",
		trail.StageName(p.AboutTrip.Departure), trail.StageName(p.AboutTrip.Destination), len(route))
	sess, err := s.Provider.CreateCheckoutSession(ctx, payments.CheckoutParams{
		BookingID:   booking.ID,
		Email:       email,
		AmountEUR:   price,
		Description: description,
		Origin:      config.App.AppOrigin,
	})
	if err != nil {
		return "", domain.InternalError{Msg: "create payment session", Err: err}
	}

	if err := s.Bookings.SetStripeSession(booking.ID, sess.ID); err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "checkout", "start", "booking "+booking.ID+" session "+sess.ID)
	return sess.URL, nil
}

// Success resolves a returning checkout session to its booking and segments
// for the confirmation page. It does not mark anything paid; only the
// webhook does.
func (s CheckoutService) Success(ctx context.Context, sessionID string) (BookingView, error) {
	if sessionID == "" {
		return BookingView{}, domain.ValidationError{Field: "session_id", Msg: "missing session id"}
	}

	sess, err := s.Provider.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return BookingView{}, domain.NotFoundError{Resource: "checkout session", Err: err}
	}

	booking, err := s.Bookings.GetByStripeSession(sess.ID)
	if err != nil {
		return BookingView{}, err
	}
	segments, err := s.Segments.ListByBooking(booking.ID)
	if err != nil {
		return BookingView{}, err
	}
	return BookingView{Booking: booking, Segments: segments}, nil
}
