package services

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"

	"trailporter/internal/auth"
	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
	"trailporter/internal/mail"
	"trailporter/internal/repositories"
	"trailporter/internal/utils"
)

// WebhookService reacts to verified Stripe events. Processing failures are
// logged and swallowed by the handler: once the signature checks out we
// acknowledge with 200, because Stripe retries on anything else and the
// payment already happened.
type WebhookService struct {
	Bookings  repositories.BookingRepository
	Users     repositories.UserRepository
	Reset     ResetService
	Mailer    *mail.Mailer
	RequestID string
}

// HandleEvent dispatches a verified event to its processor.
func (s WebhookService) HandleEvent(event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return domain.InternalError{Msg: "decode checkout session event", Err: err}
		}
		return s.handleCheckoutCompleted(sess)
	default:
		utils.LogEvent(s.RequestID, "webhook", "handle", "ignoring event "+string(event.Type))
		return nil
	}
}

// handleCheckoutCompleted marks the booking paid and makes sure an account
// exists for the payer: existing users get the booking linked, new ones get
// an account with a random password. Either way a reset token goes out so
// the payer can claim or re-enter the account.
func (s WebhookService) handleCheckoutCompleted(sess stripe.CheckoutSession) error {
	bookingID := sess.Metadata["bookingId"]
	if bookingID == "" {
		return domain.ValidationError{Field: "metadata", Msg: "missing bookingId"}
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return err
	}

	// Stripe's payer email is authoritative; the form email is a fallback.
	email := booking.Email
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		email = sess.CustomerDetails.Email
	}

	user, _, err := s.findOrCreateUser(email)
	if err != nil {
		return err
	}

	if err := s.Bookings.MarkPaid(booking.ID, user.ID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "webhook", "checkout_completed", "booking "+booking.ID+" paid")

	resetURL, err := s.Reset.Issue(user.ID)
	if err != nil {
		return err
	}
	if s.Mailer != nil {
		if err := s.Mailer.SendResetLink(user.Username, resetURL); err != nil {
			return domain.InternalError{Msg: "send claim email", Err: err}
		}
	}
	return nil
}

func (s WebhookService) findOrCreateUser(email string) (models.User, bool, error) {
	normalized := utils.NormalizeEmail(email)

	user, err := s.Users.GetByUsername(normalized)
	if err == nil {
		return user, false, nil
	}
	if !domain.IsNotFound(err) {
		return models.User{}, false, err
	}

	// The account starts with an unguessable password; the customer picks
	// theirs through the emailed reset link.
	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return models.User{}, false, domain.InternalError{Msg: "hash placeholder password", Err: err}
	}
	user = models.User{
		ID:           uuid.NewString(),
		Username:     normalized,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.Users.Create(user); err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}
