package services

import (
	"time"

	"trailporter/internal/config"
	"trailporter/internal/repositories"
	"trailporter/internal/trail"
	"trailporter/internal/utils"
)

// Fixed gate responses; the frontend matches on these strings.
const (
	EmailAlreadyRegisteredMessage = "An account with this email is already registered."
	DatesFullyBookedMessage       = "The selected dates are fully booked. Please choose different dates."
)

// CheckResult is the outcome of a pre-checkout gate check.
type CheckResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// CapacityService enforces the per-day transfer quota. A quota of zero or
// less disables the check entirely.
type CapacityService struct {
	Segments  repositories.SegmentRepository
	MaxPerDay int
	RequestID string
}

func (s CapacityService) maxPerDay() int {
	if s.MaxPerDay != 0 {
		return s.MaxPerDay
	}
	return config.App.MaxTransfersPerDay
}

// Check verifies every travel day of the route still has room. The count and
// the later insert are not atomic; an oversell window exists and is accepted,
// since bookings trickle in slowly.
func (s CapacityService) Check(departure time.Time, route []trail.Segment) (CheckResult, error) {
	quota := s.maxPerDay()
	if quota <= 0 || len(route) == 0 {
		return CheckResult{OK: true}, nil
	}

	from := departure
	to := departure.AddDate(0, 0, len(route)-1)
	counts, err := s.Segments.CountByDateRange(from, to)
	if err != nil {
		return CheckResult{}, err
	}

	// Accumulate the booking's own transfers per day so a route that lands
	// on the same date twice counts twice against the quota.
	proposed := map[string]int{}
	for i := range route {
		day := utils.DateKey(departure.AddDate(0, 0, i))
		proposed[day]++
		if counts[day]+proposed[day] > quota {
			utils.LogEvent(s.RequestID, "capacity", "check", "day "+day+" at quota")
			return CheckResult{OK: false, Message: DatesFullyBookedMessage}, nil
		}
	}
	return CheckResult{OK: true}, nil
}
