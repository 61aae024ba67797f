package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"trailporter/internal/config"
	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r UserRepository) GetByUsername(username string) (models.User, error) {
	var u models.User
	var role string
	err := r.db().QueryRow(
		`SELECT id, username, password_hash, role FROM users WHERE username = ? LIMIT 1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by username: %w", err)
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r UserRepository) GetByID(id string) (models.User, error) {
	var u models.User
	var role string
	err := r.db().QueryRow(
		`SELECT id, username, password_hash, role FROM users WHERE id = ? LIMIT 1`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by id: %w", err)
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r UserRepository) ExistsByUsername(username string) (bool, error) {
	var one int
	err := r.db().QueryRow(
		`SELECT 1 FROM users WHERE username = ? LIMIT 1`, username,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return true, nil
}

func (r UserRepository) Create(u models.User) error {
	_, err := r.db().Exec(
		`INSERT INTO users (id, username, password_hash, role) VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, string(u.Role),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r UserRepository) UpdatePassword(userID, passwordHash string) error {
	res, err := r.db().Exec(
		`UPDATE users SET password_hash = ? WHERE id = ?`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
