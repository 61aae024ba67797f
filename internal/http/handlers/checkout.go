package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trailporter/internal/config"
	"trailporter/internal/http/middleware"
	"trailporter/internal/payments"
	"trailporter/internal/repositories"
	"trailporter/internal/services"
)

func checkoutService(c *gin.Context) services.CheckoutService {
	rid := middleware.GetRequestID(c)
	return services.CheckoutService{
		Bookings: repositories.BookingRepository{},
		Segments: repositories.SegmentRepository{},
		Checks: services.ChecksService{
			Users:     repositories.UserRepository{},
			Capacity:  services.CapacityService{Segments: repositories.SegmentRepository{}, RequestID: rid},
			RequestID: rid,
		},
		Provider:  &payments.StripeProvider{Client: payments.StripeClient(config.App.StripeSecretKey)},
		RequestID: rid,
	}
}

// Checkout accepts the booking form and redirects the client to Stripe.
// amount arrives as a decimal EUR string; prices are whole euros, so a
// fractional amount can never match the computed price.
func Checkout(c *gin.Context) {
	rawAmount := c.PostForm("amount")
	rawPayload := c.PostForm("bookingPayload")
	if rawAmount == "" || rawPayload == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "amount and bookingPayload are required", nil)
		return
	}

	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil || amount <= 0 || amount != math.Trunc(amount) {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid amount", nil)
		return
	}

	url, err := checkoutService(c).Start(c.Request.Context(), int(amount), rawPayload)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// BookingSuccess serves the post-payment confirmation page data.
func BookingSuccess(c *gin.Context) {
	view, err := checkoutService(c).Success(c.Request.Context(), c.Query("session_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
