package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trailporter/internal/config"
	"trailporter/internal/domain"
	"trailporter/internal/http/middleware"
	"trailporter/internal/mail"
	"trailporter/internal/repositories"
	"trailporter/internal/services"
)

func resetService(c *gin.Context) services.ResetService {
	return services.ResetService{
		Users:  repositories.UserRepository{},
		Tokens: repositories.ResetTokenRepository{},
		Mailer: mail.NewMailer(config.App.SMTPHost, config.App.SMTPPort,
			config.App.SMTPUser, config.App.SMTPPass, config.App.SMTPFrom),
		RequestID: middleware.GetRequestID(c),
	}
}

// RequestReset always answers 200 so the endpoint cannot confirm whether an
// address has an account.
func RequestReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := resetService(c).Request(req.Email); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the address has an account, a reset link is on its way"})
}

// ValidateResetToken lets the frontend show the form only for live links.
func ValidateResetToken(c *gin.Context) {
	if err := resetService(c).Validate(c.Param("token")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// ConsumeResetToken sets the new password and retires the user's tokens.
func ConsumeResetToken(c *gin.Context) {
	var req struct {
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Password != req.ConfirmPassword {
		RespondDomainError(c, domain.ValidationError{Field: "confirmPassword", Msg: "passwords do not match"})
		return
	}

	if err := resetService(c).Consume(c.Param("token"), req.Password); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
