package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trailporter/internal/http/middleware"
	"trailporter/internal/repositories"
	"trailporter/internal/services"
	"trailporter/internal/utils"
)

// bookingCheckRequest is discriminated on Type: "email" checks whether the
// address can still book as a guest, "availability" checks date capacity.
type bookingCheckRequest struct {
	Type          string      `json:"type" binding:"required"`
	Email         string      `json:"email"`
	DepartureDate string      `json:"departureDate"`
	Route         [][2]string `json:"route"`
}

func checksService(c *gin.Context) services.ChecksService {
	rid := middleware.GetRequestID(c)
	return services.ChecksService{
		Users:     repositories.UserRepository{},
		Capacity:  services.CapacityService{Segments: repositories.SegmentRepository{}, RequestID: rid},
		RequestID: rid,
	}
}

// BookingCheck is the pre-checkout gate. The rate limiter runs before this
// handler.
func BookingCheck(c *gin.Context) {
	var req bookingCheckRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := checksService(c)
	switch req.Type {
	case "email":
		res, err := svc.CheckEmail(req.Email)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	case "availability":
		departure, err := utils.ParseDate(req.DepartureDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "departureDate must be YYYY-MM-DD", nil)
			return
		}
		res, err := svc.CheckAvailability(departure, req.Route)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	default:
		respondError(c, http.StatusBadRequest, "validation_error", "unknown check type", nil)
	}
}
