package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"trailporter/internal/config"
	"trailporter/internal/http/middleware"
	"trailporter/internal/ratelimit"
	"trailporter/internal/services"
)

func gateRouter(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	limiter := ratelimit.NewMemoryLimiter(limit, time.Minute)
	t.Cleanup(limiter.Stop)
	r.POST("/api/booking/check", middleware.RateLimit(limiter), BookingCheck)
	return r
}

func postCheck(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/booking/check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		db.Close()
	})
	return mock
}

func TestBookingCheckRateLimited(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("SELECT 1 FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	r := gateRouter(t, 1)

	if w := postCheck(r, `{"type":"email","email":"new@example.com"}`); w.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d: %s", w.Code, w.Body.String())
	}
	if w := postCheck(r, `{"type":"email","email":"new@example.com"}`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", w.Code)
	}
}

func TestBookingCheckUnknownType(t *testing.T) {
	r := gateRouter(t, 100)

	if w := postCheck(r, `{"type":"phase-of-moon"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown type should 400, got %d", w.Code)
	}
	if w := postCheck(r, `not json`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body should 400, got %d", w.Code)
	}
}

func TestBookingCheckRegisteredEmail(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("SELECT 1 FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	r := gateRouter(t, 100)

	w := postCheck(r, `{"type":"email","email":"taken@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("gate reports failures in-body with 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), services.EmailAlreadyRegisteredMessage) {
		t.Fatalf("expected registered-email message, got %s", w.Body.String())
	}
}

func TestBookingCheckAvailability(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery("FROM booking_segments").
		WillReturnRows(sqlmock.NewRows([]string{"day", "count"}))

	prev := config.App.MaxTransfersPerDay
	config.App.MaxTransfersPerDay = 5
	t.Cleanup(func() { config.App.MaxTransfersPerDay = prev })

	r := gateRouter(t, 100)

	w := postCheck(r, `{"type":"availability","departureDate":"2026-06-01","route":[["PC","VM"],["VM","AL"]]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("availability request should pass, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected ok result, got %s", w.Body.String())
	}
}

func TestBookingCheckAvailabilityBadInput(t *testing.T) {
	r := gateRouter(t, 100)

	w := postCheck(r, `{"type":"availability","departureDate":"2026-06-01","route":[["PC","XX"]]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid segment should 400, got %d", w.Code)
	}

	w = postCheck(r, `{"type":"availability","departureDate":"June 1st","route":[["PC","VM"]]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed date should 400, got %d", w.Code)
	}
}
