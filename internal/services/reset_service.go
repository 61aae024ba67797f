package services

import (
	"time"

	"github.com/google/uuid"

	"trailporter/internal/auth"
	"trailporter/internal/config"
	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
	"trailporter/internal/mail"
	"trailporter/internal/repositories"
	"trailporter/internal/utils"
)

// ResetTokenTTL bounds how long a reset link works.
const ResetTokenTTL = 24 * time.Hour

type ResetService struct {
	Users     repositories.UserRepository
	Tokens    repositories.ResetTokenRepository
	Mailer    *mail.Mailer
	RequestID string
}

// Request issues a reset token and emails the link. It reports success even
// for unknown addresses so the endpoint cannot be used to probe accounts.
func (s ResetService) Request(email string) error {
	normalized := utils.NormalizeEmail(email)

	user, err := s.Users.GetByUsername(normalized)
	if err != nil {
		if domain.IsNotFound(err) {
			utils.LogEvent(s.RequestID, "reset", "request", "no account for requested address")
			return nil
		}
		return err
	}

	resetURL, err := s.Issue(user.ID)
	if err != nil {
		return err
	}
	if s.Mailer != nil {
		if err := s.Mailer.SendResetLink(user.Username, resetURL); err != nil {
			return domain.InternalError{Msg: "send reset email", Err: err}
		}
	}
	return nil
}

// Issue creates a token for the user and returns the full reset URL.
func (s ResetService) Issue(userID string) (string, error) {
	token := models.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: utils.NowUTC().Add(ResetTokenTTL),
	}
	if err := s.Tokens.Create(token); err != nil {
		return "", err
	}
	return config.App.AppOrigin + "/reset-password/" + token.ID, nil
}

// Validate checks a token without consuming it, so the frontend can show the
// form only for live links.
func (s ResetService) Validate(tokenID string) error {
	token, err := s.Tokens.Get(tokenID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.UnauthorizedError{Msg: "invalid or expired reset link"}
		}
		return err
	}
	if !token.ExpiresAt.After(utils.NowUTC()) {
		return domain.UnauthorizedError{Msg: "invalid or expired reset link"}
	}
	return nil
}

// Consume sets a new password and retires every outstanding token of the
// user, so one successful reset kills any other links in flight.
func (s ResetService) Consume(tokenID, newPassword string) error {
	if len(newPassword) < 6 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}

	token, err := s.Tokens.Get(tokenID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.UnauthorizedError{Msg: "invalid or expired reset link"}
		}
		return err
	}
	if !token.ExpiresAt.After(utils.NowUTC()) {
		return domain.UnauthorizedError{Msg: "invalid or expired reset link"}
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return domain.InternalError{Msg: "hash password", Err: err}
	}
	if err := s.Users.UpdatePassword(token.UserID, hash); err != nil {
		return err
	}
	if err := s.Tokens.DeleteByUser(token.UserID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "reset", "consume", "password updated for "+token.UserID)
	return nil
}
