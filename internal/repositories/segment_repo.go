package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"trailporter/internal/config"
	"trailporter/internal/db"
	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
	"trailporter/internal/utils"
)

type SegmentRepository struct {
	DB *sql.DB
}

func (r SegmentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r SegmentRepository) CreateBatch(segments []models.BookingSegment) error {
	if len(segments) == 0 {
		return nil
	}
	tx, err := r.db().Begin()
	if err != nil {
		return fmt.Errorf("begin segment batch: %w", err)
	}
	for _, s := range segments {
		_, err := tx.Exec(
			`INSERT INTO booking_segments
				(id, booking_id, segment_index, from_stage_id, to_stage_id, travel_date)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, s.BookingID, s.SegmentIndex, s.FromStageID, s.ToStageID, s.TravelDate,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert segment %d: %w", s.SegmentIndex, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit segment batch: %w", err)
	}
	return nil
}

func (r SegmentRepository) ListByBooking(bookingID string) ([]models.BookingSegment, error) {
	rows, err := r.db().Query(
		`SELECT id, booking_id, segment_index, from_stage_id, to_stage_id, travel_date,
			COALESCE(start_hotel_id, ''), COALESCE(end_hotel_id, ''), COALESCE(hotel_notes, '')
		 FROM booking_segments WHERE booking_id = ? ORDER BY segment_index`,
		bookingID,
	)
	if err != nil {
		return nil, fmt.Errorf("list segments: %w", err)
	}
	defer rows.Close()

	out := []models.BookingSegment{}
	for rows.Next() {
		var s models.BookingSegment
		err := rows.Scan(&s.ID, &s.BookingID, &s.SegmentIndex, &s.FromStageID, &s.ToStageID,
			&s.TravelDate, &s.StartHotelID, &s.EndHotelID, &s.HotelNotes)
		if err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate segments: %w", err)
	}
	return out, nil
}

// CountByDateRange returns, for each date in [from, to], how many active
// transfers are already scheduled. Only pending and paid bookings count
// against the daily quota.
func (r SegmentRepository) CountByDateRange(from, to time.Time) (map[string]int, error) {
	rows, err := r.db().Query(
		`SELECT DATE_FORMAT(bs.travel_date, '%Y-%m-%d'), COUNT(*)
		 FROM booking_segments bs
		 JOIN bookings b ON b.id = bs.booking_id
		 WHERE bs.travel_date BETWEEN ? AND ?
		   AND b.status IN ('pending', 'paid')
		 GROUP BY bs.travel_date`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("count segments by date: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("scan date count: %w", err)
		}
		counts[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate date counts: %w", err)
	}
	return counts, nil
}

// ManifestEntry is one transfer a driver runs on a given day.
type ManifestEntry struct {
	BookingID   string `json:"bookingId"`
	GuestName   string `json:"guestName"`
	GuestPhone  string `json:"guestPhone"`
	FromStageID string `json:"fromStageId"`
	ToStageID   string `json:"toStageId"`
	NumBags     int    `json:"numBags"`
	StartHotel  string `json:"startHotel,omitempty"`
	EndHotel    string `json:"endHotel,omitempty"`
	HotelNotes  string `json:"hotelNotes,omitempty"`
}

// ManifestForDate lists the paid transfers for one travel day, with hotel
// names resolved for pickup and dropoff.
func (r SegmentRepository) ManifestForDate(date time.Time) ([]ManifestEntry, error) {
	rows, err := r.db().Query(
		`SELECT b.id, CONCAT(b.first_name, ' ', b.last_name), COALESCE(b.phone, ''),
			bs.from_stage_id, bs.to_stage_id, b.num_bags,
			COALESCE(hs.name, ''), COALESCE(he.name, ''), COALESCE(bs.hotel_notes, '')
		 FROM booking_segments bs
		 JOIN bookings b ON b.id = bs.booking_id
		 LEFT JOIN hotels hs ON hs.id = bs.start_hotel_id
		 LEFT JOIN hotels he ON he.id = bs.end_hotel_id
		 WHERE bs.travel_date = ? AND b.status = 'paid'
		 ORDER BY bs.from_stage_id, b.last_name`,
		utils.DateKey(date),
	)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	defer rows.Close()

	out := []ManifestEntry{}
	for rows.Next() {
		var e ManifestEntry
		err := rows.Scan(&e.BookingID, &e.GuestName, &e.GuestPhone,
			&e.FromStageID, &e.ToStageID, &e.NumBags,
			&e.StartHotel, &e.EndHotel, &e.HotelNotes)
		if err != nil {
			return nil, fmt.Errorf("scan manifest row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate manifest: %w", err)
	}
	return out, nil
}

// AssignHotels records pickup/dropoff hotels and free-form notes for one
// segment. Empty ids clear the assignment.
func (r SegmentRepository) AssignHotels(segmentID, startHotelID, endHotelID, notes string) error {
	res, err := r.db().Exec(
		`UPDATE booking_segments SET start_hotel_id = ?, end_hotel_id = ?, hotel_notes = ? WHERE id = ?`,
		db.NullIfEmpty(startHotelID), db.NullIfEmpty(endHotelID), db.NullIfEmpty(notes), segmentID,
	)
	if err != nil {
		return fmt.Errorf("assign hotels: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "booking segment"}
	}
	return nil
}
