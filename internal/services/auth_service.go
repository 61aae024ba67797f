package services

import (
	"time"

	"github.com/google/uuid"

	"trailporter/internal/auth"
	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
	"trailporter/internal/repositories"
	"trailporter/internal/utils"
)

// SessionTTL is how long a login stays valid without re-authenticating.
const SessionTTL = 30 * 24 * time.Hour

// Uniform credential failure; never reveals whether the username exists.
const incorrectCredentialsMessage = "Incorrect username or password."

type AuthService struct {
	Users     repositories.UserRepository
	Sessions  repositories.SessionRepository
	RequestID string
}

// Login verifies credentials and opens a session. The same error comes back
// for an unknown username and a wrong password.
func (s AuthService) Login(username, password string) (models.Session, models.User, error) {
	normalized := utils.NormalizeEmail(username)

	user, err := s.Users.GetByUsername(normalized)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Session{}, models.User{}, domain.UnauthorizedError{Msg: incorrectCredentialsMessage}
		}
		return models.Session{}, models.User{}, err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil || !ok {
		utils.LogEvent(s.RequestID, "auth", "login", "credential mismatch for "+normalized)
		return models.Session{}, models.User{}, domain.UnauthorizedError{Msg: incorrectCredentialsMessage}
	}

	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: utils.NowUTC().Add(SessionTTL),
	}
	if err := s.Sessions.Create(session); err != nil {
		return models.Session{}, models.User{}, err
	}
	return session, user, nil
}

// Register creates a customer account and logs it in.
func (s AuthService) Register(username, password string) (models.Session, models.User, error) {
	normalized := utils.NormalizeEmail(username)
	if len(normalized) < 3 {
		return models.Session{}, models.User{}, domain.ValidationError{Field: "username", Msg: "must be at least 3 characters"}
	}
	if len(password) < 6 {
		return models.Session{}, models.User{}, domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}

	exists, err := s.Users.ExistsByUsername(normalized)
	if err != nil {
		return models.Session{}, models.User{}, err
	}
	if exists {
		return models.Session{}, models.User{}, domain.ConflictError{Resource: "user", Msg: "username already taken"}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Session{}, models.User{}, domain.InternalError{Msg: "hash password", Err: err}
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     normalized,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.Users.Create(user); err != nil {
		return models.Session{}, models.User{}, err
	}

	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: utils.NowUTC().Add(SessionTTL),
	}
	if err := s.Sessions.Create(session); err != nil {
		return models.Session{}, models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", "created account "+user.ID)
	return session, user, nil
}

func (s AuthService) Logout(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Sessions.Delete(sessionID)
}

// Authenticate resolves a session cookie to its user. Expired sessions are
// deleted on sight; the delete is conditional on expiry so a concurrent
// valid session cannot be removed by accident.
func (s AuthService) Authenticate(sessionID string) (models.User, error) {
	session, user, err := s.Sessions.GetWithUser(sessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, domain.UnauthorizedError{Msg: "session not found"}
		}
		return models.User{}, err
	}

	now := utils.NowUTC()
	if !session.ExpiresAt.After(now) {
		if err := s.Sessions.DeleteExpired(session.ID, now); err != nil {
			utils.LogEvent(s.RequestID, "auth", "authenticate", "expired session cleanup failed: "+err.Error())
		}
		return models.User{}, domain.UnauthorizedError{Msg: "session expired"}
	}
	return user, nil
}
