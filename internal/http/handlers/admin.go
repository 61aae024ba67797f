package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
	"trailporter/internal/http/middleware"
	"trailporter/internal/repositories"
	"trailporter/internal/utils"
)

// AdminListBookings returns every booking, optionally filtered by ?status=.
func AdminListBookings(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", string(models.BookingPending), string(models.BookingPaid), string(models.BookingCancelled):
	default:
		respondError(c, http.StatusBadRequest, "validation_error", "unknown status filter", nil)
		return
	}

	bookings, err := repositories.BookingRepository{}.List(status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AdminCancelBooking flips a pending or paid booking to cancelled, freeing
// its daily capacity.
func AdminCancelBooking(c *gin.Context) {
	repo := repositories.BookingRepository{}

	booking, err := repo.GetByID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.Status == models.BookingCancelled {
		RespondDomainError(c, domain.ConflictError{Resource: "booking", Msg: "already cancelled"})
		return
	}

	if err := repo.Cancel(booking.ID); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "admin", "cancel_booking", "booking "+booking.ID)
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// LocationID is checked by the custom `stageid` validator registered on the
// binding engine.
type hotelRequest struct {
	LocationID  string `json:"locationId" binding:"required,stageid"`
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contactInfo"`
}

// AdminListHotels lists hotels, optionally for one stage via ?location=.
func AdminListHotels(c *gin.Context) {
	hotels, err := repositories.HotelRepository{}.List(c.Query("location"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotels": hotels})
}

func AdminCreateHotel(c *gin.Context) {
	var req hotelRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	hotel := models.Hotel{
		ID:          uuid.NewString(),
		LocationID:  req.LocationID,
		Name:        utils.TrimOrEmpty(req.Name),
		ContactInfo: utils.TrimOrEmpty(req.ContactInfo),
	}
	if err := (repositories.HotelRepository{}).Create(hotel); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"hotel": hotel})
}

func AdminUpdateHotel(c *gin.Context) {
	var req hotelRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	hotel := models.Hotel{
		ID:          c.Param("id"),
		LocationID:  req.LocationID,
		Name:        utils.TrimOrEmpty(req.Name),
		ContactInfo: utils.TrimOrEmpty(req.ContactInfo),
	}
	if err := (repositories.HotelRepository{}).Update(hotel); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}

func AdminDeleteHotel(c *gin.Context) {
	if err := (repositories.HotelRepository{}).Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hotel deleted"})
}

// AdminAssignSegmentHotels records pickup/dropoff hotels for one daily leg.
func AdminAssignSegmentHotels(c *gin.Context) {
	var req struct {
		StartHotelID string `json:"startHotelId"`
		EndHotelID   string `json:"endHotelId"`
		Notes        string `json:"notes"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	err := repositories.SegmentRepository{}.AssignHotels(
		c.Param("id"), req.StartHotelID, req.EndHotelID, utils.TrimOrEmpty(req.Notes))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hotels assigned"})
}
