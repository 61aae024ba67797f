package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trailporter/internal/http/middleware"
	"trailporter/internal/repositories"
	"trailporter/internal/services"
)

// MyBookings lists the caller's bookings with their daily legs.
func MyBookings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	bookingRepo := repositories.BookingRepository{}
	segmentRepo := repositories.SegmentRepository{}

	bookings, err := bookingRepo.ListByUser(user.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	views := make([]services.BookingView, 0, len(bookings))
	for _, b := range bookings {
		segments, err := segmentRepo.ListByBooking(b.ID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		views = append(views, services.BookingView{Booking: b, Segments: segments})
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// MyBookingConfirmationPDF renders the confirmation document for one of the
// caller's paid bookings.
func MyBookingConfirmationPDF(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	svc := services.DocsService{
		Bookings:  repositories.BookingRepository{},
		Segments:  repositories.SegmentRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.Confirmation(c.Param("id"), user.UserID, user.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
