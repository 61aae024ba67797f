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

type HotelRepository struct {
	DB *sql.DB
}

func (r HotelRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

func (r HotelRepository) Create(h models.Hotel) error {
	_, err := r.db().Exec(
		`INSERT INTO hotels (id, location_id, name, contact_info) VALUES (?, ?, ?, ?)`,
		h.ID, h.LocationID, h.Name, h.ContactInfo,
	)
	if err != nil {
		return fmt.Errorf("insert hotel: %w", err)
	}
	return nil
}

func (r HotelRepository) GetByID(id string) (models.Hotel, error) {
	var h models.Hotel
	err := r.db().QueryRow(
		`SELECT id, location_id, name, COALESCE(contact_info, ''), created_at FROM hotels WHERE id = ? LIMIT 1`,
		id,
	).Scan(&h.ID, &h.LocationID, &h.Name, &h.ContactInfo, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Hotel{}, domain.NotFoundError{Resource: "hotel"}
	}
	if err != nil {
		return models.Hotel{}, fmt.Errorf("get hotel: %w", err)
	}
	return h, nil
}

// List returns hotels, optionally filtered to one stage.
func (r HotelRepository) List(locationID string) ([]models.Hotel, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if locationID != "" {
		rows, err = r.db().Query(
			`SELECT id, location_id, name, COALESCE(contact_info, ''), created_at FROM hotels WHERE location_id = ? ORDER BY name`,
			locationID,
		)
	} else {
		rows, err = r.db().Query(
			`SELECT id, location_id, name, COALESCE(contact_info, ''), created_at FROM hotels ORDER BY location_id, name`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	out := []models.Hotel{}
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.LocationID, &h.Name, &h.ContactInfo, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hotels: %w", err)
	}
	return out, nil
}

func (r HotelRepository) Update(h models.Hotel) error {
	res, err := r.db().Exec(
		`UPDATE hotels SET location_id = ?, name = ?, contact_info = ?, updated_at = ? WHERE id = ?`,
		h.LocationID, h.Name, h.ContactInfo, time.Now().UTC(), h.ID,
	)
	if err != nil {
		return fmt.Errorf("update hotel: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "hotel"}
	}
	return nil
}

func (r HotelRepository) Delete(id string) error {
	res, err := r.db().Exec(`DELETE FROM hotels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete hotel: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "hotel"}
	}
	return nil
}
