package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"trailporter/internal/config"
	"trailporter/internal/domain"
	"trailporter/internal/http/middleware"
	"trailporter/internal/mail"
	"trailporter/internal/payments"
	"trailporter/internal/repositories"
	"trailporter/internal/services"
	"trailporter/internal/utils"
)

const webhookMaxBody = 64 * 1024

// StripeWebhook receives payment events. Only signature and shape problems
// get a non-200: once an event verifies, internal failures are logged and
// acknowledged, because Stripe would otherwise retry a payment that already
// went through.
func StripeWebhook(c *gin.Context) {
	rid := middleware.GetRequestID(c)

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookMaxBody))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "unreadable body", nil)
		return
	}

	event, err := payments.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"), config.App.StripeWebhookSecret)
	if err != nil {
		utils.LogEvent(rid, "webhook", "verify", "signature rejected: "+err.Error())
		respondError(c, http.StatusBadRequest, "invalid_signature", "webhook signature verification failed", nil)
		return
	}

	mailer := mail.NewMailer(config.App.SMTPHost, config.App.SMTPPort,
		config.App.SMTPUser, config.App.SMTPPass, config.App.SMTPFrom)
	svc := services.WebhookService{
		Bookings: repositories.BookingRepository{},
		Users:    repositories.UserRepository{},
		Reset: services.ResetService{
			Users:     repositories.UserRepository{},
			Tokens:    repositories.ResetTokenRepository{},
			Mailer:    mailer,
			RequestID: rid,
		},
		Mailer:    mailer,
		RequestID: rid,
	}

	if err := svc.HandleEvent(event); err != nil {
		if domain.IsValidation(err) {
			RespondDomainError(c, err)
			return
		}
		utils.LogEvent(rid, "webhook", "handle", "processing failed: "+err.Error())
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
