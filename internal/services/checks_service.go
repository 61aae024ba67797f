package services

import (
	"time"

	"trailporter/internal/domain"
	"trailporter/internal/repositories"
	"trailporter/internal/trail"
	"trailporter/internal/utils"
)

// ChecksService answers the pre-checkout gate: is this email free to book
// with, and do the requested dates still have capacity.
type ChecksService struct {
	Users     repositories.UserRepository
	Capacity  CapacityService
	RequestID string
}

// CheckEmail fails when the address already has an account. Guests book
// without one; existing users must sign in so the booking lands on their
// account.
func (s ChecksService) CheckEmail(email string) (CheckResult, error) {
	normalized := utils.NormalizeEmail(email)
	if !utils.LooksLikeEmail(normalized) {
		return CheckResult{}, domain.ValidationError{Field: "email", Msg: "invalid email address"}
	}

	exists, err := s.Users.ExistsByUsername(normalized)
	if err != nil {
		return CheckResult{}, err
	}
	if exists {
		return CheckResult{OK: false, Message: EmailAlreadyRegisteredMessage}, nil
	}
	return CheckResult{OK: true}, nil
}

// CheckAvailability validates a client-submitted route (pairs of adjacent
// stage codes) and runs the capacity check over its travel days.
func (s ChecksService) CheckAvailability(departure time.Time, pairs [][2]string) (CheckResult, error) {
	if len(pairs) == 0 {
		return CheckResult{}, domain.ValidationError{Field: "route", Msg: "route is required"}
	}
	route := make([]trail.Segment, 0, len(pairs))
	for _, p := range pairs {
		if !trail.ValidSegment(p[0], p[1]) {
			return CheckResult{}, domain.ValidationError{Field: "route", Msg: "route contains an invalid segment"}
		}
		route = append(route, trail.Segment{From: p[0], To: p[1]})
	}
	return s.Capacity.Check(departure, route)
}

// CheckBooking runs the full gate: email availability, then date capacity
// over the generated route.
func (s ChecksService) CheckBooking(email string, departure time.Time, startID, endID string) (CheckResult, error) {
	res, err := s.CheckEmail(email)
	if err != nil || !res.OK {
		return res, err
	}

	route := trail.GenerateRoute(startID, endID)
	if route == nil {
		return CheckResult{}, domain.ValidationError{Field: "route", Msg: "invalid departure or destination stage"}
	}
	return s.Capacity.Check(departure, route)
}
