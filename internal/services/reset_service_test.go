package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"trailporter/internal/domain"
	"trailporter/internal/repositories"
)

func errNoRows() error { return sql.ErrNoRows }

func TestConsumeResetTokenUpdatesPasswordAndRetiresTokens(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expires := time.Now().UTC().Add(time.Hour)
	mock.ExpectQuery("FROM password_reset_tokens WHERE id").
		WithArgs("tok1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "expires_at"}).
			AddRow("tok1", "u1", expires))
	mock.ExpectExec("UPDATE users SET password_hash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM password_reset_tokens WHERE user_id").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	svc := ResetService{
		Users:  repositories.UserRepository{DB: db},
		Tokens: repositories.ResetTokenRepository{DB: db},
	}

	if err := svc.Consume("tok1", "newpassword"); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConsumeRejectsExpiredToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	expired := time.Now().UTC().Add(-time.Minute)
	mock.ExpectQuery("FROM password_reset_tokens WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "expires_at"}).
			AddRow("tok1", "u1", expired))

	svc := ResetService{Tokens: repositories.ResetTokenRepository{DB: db}}

	err = svc.Consume("tok1", "newpassword")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestConsumeRejectsShortPassword(t *testing.T) {
	svc := ResetService{}
	if err := svc.Consume("tok1", "abc"); !domain.IsValidation(err) {
		t.Fatalf("short password should fail validation, got %v", err)
	}
}

func TestRequestUnknownAddressReportsSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE username").
		WillReturnError(sql.ErrNoRows)

	svc := ResetService{Users: repositories.UserRepository{DB: db}}

	if err := svc.Request("nobody@example.com"); err != nil {
		t.Fatalf("unknown address must not surface an error, got %v", err)
	}
}
