package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trailporter/internal/config"
	"trailporter/internal/db"
	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const bookingColumns = `id, COALESCE(user_id, ''), status, COALESCE(stripe_session_id, ''),
	COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(other_names, ''),
	COALESCE(email, ''), COALESCE(phone, ''),
	departure_date, COALESCE(direction, ''),
	COALESCE(departure_stage_id, ''), COALESCE(destination_stage_id, ''),
	num_bags, num_transfers, total_price, created_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.Status, &b.StripeSessionID,
		&b.FirstName, &b.LastName, &b.OtherNames,
		&b.Email, &b.Phone,
		&b.DepartureDate, &b.Direction,
		&b.DepartureStageID, &b.DestinationStageID,
		&b.NumBags, &b.NumTransfers, &b.TotalPrice, &b.CreatedAt,
	)
	return b, err
}

func (r BookingRepository) Create(b models.Booking) error {
	_, err := r.db().Exec(
		`INSERT INTO bookings
			(id, user_id, status, first_name, last_name, other_names, email, phone,
			 departure_date, direction, departure_stage_id, destination_stage_id,
			 num_bags, num_transfers, total_price)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, db.NullIfEmpty(b.UserID), string(b.Status),
		b.FirstName, b.LastName, b.OtherNames, b.Email, b.Phone,
		b.DepartureDate, b.Direction, b.DepartureStageID, b.DestinationStageID,
		b.NumBags, b.NumTransfers, b.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r BookingRepository) GetByID(id string) (models.Booking, error) {
	b, err := scanBooking(r.db().QueryRow(
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ? LIMIT 1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r BookingRepository) GetByStripeSession(sessionID string) (models.Booking, error) {
	b, err := scanBooking(r.db().QueryRow(
		`SELECT `+bookingColumns+` FROM bookings WHERE stripe_session_id = ? LIMIT 1`, sessionID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("get booking by session: %w", err)
	}
	return b, nil
}

func (r BookingRepository) SetStripeSession(bookingID, sessionID string) error {
	res, err := r.db().Exec(
		`UPDATE bookings SET stripe_session_id = ?, updated_at = ? WHERE id = ?`,
		sessionID, time.Now().UTC(), bookingID,
	)
	if err != nil {
		return fmt.Errorf("set stripe session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// MarkPaid flips the booking to paid and attaches the owning user. Guests
// get their account created by the webhook before this runs.
func (r BookingRepository) MarkPaid(bookingID, userID string) error {
	res, err := r.db().Exec(
		`UPDATE bookings SET status = 'paid', user_id = ?, updated_at = ? WHERE id = ?`,
		userID, time.Now().UTC(), bookingID,
	)
	if err != nil {
		return fmt.Errorf("mark booking paid: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (r BookingRepository) Cancel(bookingID string) error {
	res, err := r.db().Exec(
		`UPDATE bookings SET status = 'cancelled', updated_at = ? WHERE id = ?`,
		time.Now().UTC(), bookingID,
	)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (r BookingRepository) ListByUser(userID string) ([]models.Booking, error) {
	rows, err := r.db().Query(
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = ? ORDER BY departure_date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

// List returns bookings, optionally filtered by status.
func (r BookingRepository) List(status string) ([]models.Booking, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		rows, err = r.db().Query(
			`SELECT `+bookingColumns+` FROM bookings WHERE status = ? ORDER BY departure_date DESC, created_at DESC`,
			status,
		)
	} else {
		rows, err = r.db().Query(
			`SELECT ` + bookingColumns + ` FROM bookings ORDER BY departure_date DESC, created_at DESC`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

// StatusSummary aggregates booking counts and value per status.
type StatusSummary struct {
	Status       string `json:"status"`
	BookingCount int    `json:"bookingCount"`
	TotalValue   int    `json:"totalValue"` // whole EUR
}

func (r BookingRepository) SummaryByStatus() ([]StatusSummary, error) {
	rows, err := r.db().Query(
		`SELECT status, COUNT(*), COALESCE(SUM(total_price), 0)
		 FROM bookings GROUP BY status ORDER BY status`,
	)
	if err != nil {
		return nil, fmt.Errorf("status summary: %w", err)
	}
	defer rows.Close()

	out := []StatusSummary{}
	for rows.Next() {
		var s StatusSummary
		if err := rows.Scan(&s.Status, &s.BookingCount, &s.TotalValue); err != nil {
			return nil, fmt.Errorf("scan status summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status summary: %w", err)
	}
	return out, nil
}

// RevenueSummary aggregates paid bookings per month for the owner dashboard.
type RevenueSummary struct {
	Month        string `json:"month"` // YYYY-MM
	BookingCount int    `json:"bookingCount"`
	TotalRevenue int    `json:"totalRevenue"` // whole EUR
}

func (r BookingRepository) SummaryByMonth() ([]RevenueSummary, error) {
	rows, err := r.db().Query(
		`SELECT DATE_FORMAT(departure_date, '%Y-%m') AS month, COUNT(*), COALESCE(SUM(total_price), 0)
		 FROM bookings WHERE status = 'paid'
		 GROUP BY month ORDER BY month DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("revenue summary: %w", err)
	}
	defer rows.Close()

	out := []RevenueSummary{}
	for rows.Next() {
		var s RevenueSummary
		if err := rows.Scan(&s.Month, &s.BookingCount, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}
	return out, nil
}
