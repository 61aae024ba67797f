package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"trailporter/internal/config"
	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
)

type ResetTokenRepository struct {
	DB *sql.DB
}

func (r ResetTokenRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r ResetTokenRepository) Create(t models.PasswordResetToken) error {
	_, err := r.db().Exec(
		`INSERT INTO password_reset_tokens (id, user_id, expires_at) VALUES (?, ?, ?)`,
		t.ID, t.UserID, t.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

func (r ResetTokenRepository) Get(tokenID string) (models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db().QueryRow(
		`SELECT id, user_id, expires_at FROM password_reset_tokens WHERE id = ? LIMIT 1`,
		tokenID,
	).Scan(&t.ID, &t.UserID, &t.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PasswordResetToken{}, domain.NotFoundError{Resource: "reset token"}
	}
	if err != nil {
		return models.PasswordResetToken{}, fmt.Errorf("get reset token: %w", err)
	}
	return t, nil
}

// DeleteByUser invalidates every outstanding token of the user, so consuming
// one token retires the rest.
func (r ResetTokenRepository) DeleteByUser(userID string) error {
	if _, err := r.db().Exec(`DELETE FROM password_reset_tokens WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete reset tokens: %w", err)
	}
	return nil
}
