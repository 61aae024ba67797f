package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trailporter/internal/http/middleware"
	"trailporter/internal/repositories"
	"trailporter/internal/services"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     repositories.UserRepository{},
		Sessions:  repositories.SessionRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

// Login verifies credentials and sets the session cookie.
func Login(c *gin.Context) {
	var req credentialsRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	session, user, err := authService(c).Login(req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	middleware.SetSessionCookie(c, session.ID)
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
	})
}

// Register creates a customer account and logs it in immediately.
func Register(c *gin.Context) {
	var req credentialsRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	session, user, err := authService(c).Register(req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	middleware.SetSessionCookie(c, session.ID)
	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
	})
}

// Logout deletes the server-side session and clears the cookie. It succeeds
// even without a valid session.
func Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(middleware.SessionCookieName)
	if err := authService(c).Logout(sessionID); err != nil {
		RespondDomainError(c, err)
		return
	}
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user, for the frontend session probe.
func Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
