package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stripe/stripe-go/v82"

	"trailporter/internal/repositories"
)

func bookingRow() *sqlmock.Rows {
	departure := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "user_id", "status", "stripe_session_id",
		"first_name", "last_name", "other_names", "email", "phone",
		"departure_date", "direction", "departure_stage_id", "destination_stage_id",
		"num_bags", "num_transfers", "total_price", "created_at",
	}).AddRow(
		"bk1", "", "pending", "cs_test_123",
		"Ana", "Silva", "", "ana@example.com", "",
		departure, "NS", "PC", "OD",
		3, 4, 80, departure.AddDate(0, 0, -10),
	)
}

func TestCheckoutCompletedIssuesTokenForExistingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs("bk1").
		WillReturnRows(bookingRow())
	// payer email from the Stripe session wins over the form email
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("payer@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role"}).
			AddRow("u1", "payer@example.com", "x", "customer"))
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// existing accounts still get a claim token
	mock.ExpectExec("INSERT INTO password_reset_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := WebhookService{
		Bookings: repositories.BookingRepository{DB: db},
		Users:    repositories.UserRepository{DB: db},
		Reset: ResetService{
			Users:  repositories.UserRepository{DB: db},
			Tokens: repositories.ResetTokenRepository{DB: db},
		},
	}

	sess := stripe.CheckoutSession{
		Metadata:        map[string]string{"bookingId": "bk1"},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Email: "payer@example.com"},
	}
	if err := svc.handleCheckoutCompleted(sess); err != nil {
		t.Fatalf("webhook processing failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutCompletedFallsBackToBookingEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM bookings WHERE id").
		WithArgs("bk1").
		WillReturnRows(bookingRow())
	mock.ExpectQuery("FROM users WHERE username").
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role"}).
			AddRow("u1", "ana@example.com", "x", "customer"))
	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO password_reset_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := WebhookService{
		Bookings: repositories.BookingRepository{DB: db},
		Users:    repositories.UserRepository{DB: db},
		Reset: ResetService{
			Users:  repositories.UserRepository{DB: db},
			Tokens: repositories.ResetTokenRepository{DB: db},
		},
	}

	sess := stripe.CheckoutSession{Metadata: map[string]string{"bookingId": "bk1"}}
	if err := svc.handleCheckoutCompleted(sess); err != nil {
		t.Fatalf("webhook processing failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
