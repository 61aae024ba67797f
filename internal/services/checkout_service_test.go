package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stripe/stripe-go/v82"

	"trailporter/internal/domain"
	"trailporter/internal/payments"
	"trailporter/internal/repositories"
)

type stubProvider struct {
	lastParams payments.CheckoutParams
}

func (p *stubProvider) CreateCheckoutSession(_ context.Context, params payments.CheckoutParams) (*stripe.CheckoutSession, error) {
	p.lastParams = params
	return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.test/cs_test_123"}, nil
}

func (p *stubProvider) RetrieveCheckoutSession(_ context.Context, id string) (*stripe.CheckoutSession, error) {
	return &stripe.CheckoutSession{ID: id}, nil
}

const validPayload = `{
	"basicDetails": {
		"firstName": "Ana", "lastName": "Silva",
		"email": "ana@example.com", "phone": "+351 900 000 000"
	},
	"aboutTrip": {
		"departureDate": "2026-06-01",
		"departure": "PC", "destination": "OD",
		"direction": "north_south", "bags": 3
	},
	"route": [["PC","VM"],["VM","AL"],["AL","ZM"],["ZM","OD"]]
}`

func TestCheckoutRejectsAmountMismatch(t *testing.T) {
	svc := CheckoutService{Provider: &stubProvider{}}

	// PC -> OD is 4 transfers with 3 bags: 4*15 + 4*1*5 = 80
	_, err := svc.Start(context.Background(), 20, validPayload)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for wrong amount, got %v", err)
	}
}

func TestCheckoutStartHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM users").
		WithArgs("ana@example.com").
		WillReturnError(errNoRows())
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectBegin()
	for i := 0; i < 4; i++ {
		mock.ExpectExec("INSERT INTO booking_segments").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()
	mock.ExpectExec("UPDATE bookings SET stripe_session_id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	provider := &stubProvider{}
	svc := CheckoutService{
		Bookings: repositories.BookingRepository{DB: db},
		Segments: repositories.SegmentRepository{DB: db},
		Checks: ChecksService{
			Users:    repositories.UserRepository{DB: db},
			Capacity: CapacityService{MaxPerDay: -1},
		},
		Provider: provider,
	}

	url, err := svc.Start(context.Background(), 80, validPayload)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if url != "https://checkout.stripe.test/cs_test_123" {
		t.Fatalf("unexpected redirect url %q", url)
	}
	if provider.lastParams.AmountEUR != 80 || provider.lastParams.Email != "ana@example.com" {
		t.Fatalf("provider got wrong params: %+v", provider.lastParams)
	}
	if provider.lastParams.BookingID == "" {
		t.Fatal("booking id missing from session metadata params")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutRejectsTakenEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	svc := CheckoutService{
		Checks: ChecksService{
			Users:    repositories.UserRepository{DB: db},
			Capacity: CapacityService{MaxPerDay: -1},
		},
		Provider: &stubProvider{},
	}

	_, err = svc.Start(context.Background(), 80, validPayload)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for registered email, got %v", err)
	}
}
