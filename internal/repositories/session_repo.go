package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trailporter/internal/config"
	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
)

type SessionRepository struct {
	DB *sql.DB
}

func (r SessionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r SessionRepository) Create(s models.Session) error {
	_, err := r.db().Exec(
		`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`,
		s.ID, s.UserID, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetWithUser returns the session and its user in one round trip.
func (r SessionRepository) GetWithUser(sessionID string) (models.Session, models.User, error) {
	var s models.Session
	var u models.User
	var role string
	err := r.db().QueryRow(
		`SELECT s.id, s.user_id, s.expires_at, u.id, u.username, u.password_hash, u.role
		 FROM sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.id = ? LIMIT 1`,
		sessionID,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &u.ID, &u.Username, &u.PasswordHash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, models.User{}, domain.NotFoundError{Resource: "session"}
	}
	if err != nil {
		return models.Session{}, models.User{}, fmt.Errorf("get session: %w", err)
	}
	u.Role = domain.Role(role)
	return s, u, nil
}

func (r SessionRepository) Delete(sessionID string) error {
	if _, err := r.db().Exec(`DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes the session only when it is already past its expiry,
// so a concurrent refresh of a still-valid session is never clobbered.
func (r SessionRepository) DeleteExpired(sessionID string, now time.Time) error {
	_, err := r.db().Exec(
		`DELETE FROM sessions WHERE id = ? AND expires_at <= ?`,
		sessionID, now,
	)
	if err != nil {
		return fmt.Errorf("delete expired session: %w", err)
	}
	return nil
}
