package db

import "database/sql"

// EnsureSchema creates the tables this service needs when they are absent.
// Statements are idempotent so repeated startups are safe.
func EnsureSchema(conn *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(36) PRIMARY KEY,
	username VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'customer'
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS sessions (
	id VARCHAR(64) PRIMARY KEY,
	user_id VARCHAR(36) NOT NULL,
	expires_at DATETIME NOT NULL,
	KEY idx_sessions_user (user_id),
	CONSTRAINT fk_sessions_user FOREIGN KEY (user_id) REFERENCES users(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS password_reset_tokens (
	id VARCHAR(36) PRIMARY KEY,
	user_id VARCHAR(36) NOT NULL,
	expires_at DATETIME NOT NULL,
	KEY idx_reset_tokens_user (user_id),
	CONSTRAINT fk_reset_tokens_user FOREIGN KEY (user_id) REFERENCES users(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS hotels (
	id VARCHAR(36) PRIMARY KEY,
	location_id VARCHAR(8) NOT NULL,
	name VARCHAR(255) NOT NULL,
	contact_info VARCHAR(512),
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NULL,
	KEY idx_hotels_location (location_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS bookings (
	id VARCHAR(36) PRIMARY KEY,
	user_id VARCHAR(36) NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	stripe_session_id VARCHAR(255),
	first_name VARCHAR(255),
	last_name VARCHAR(255),
	other_names VARCHAR(512),
	email VARCHAR(255),
	phone VARCHAR(100),
	departure_date DATE,
	direction VARCHAR(20),
	departure_stage_id VARCHAR(8),
	destination_stage_id VARCHAR(8),
	num_bags INT NOT NULL DEFAULT 0,
	num_transfers INT NOT NULL DEFAULT 0,
	total_price INT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NULL,
	KEY idx_bookings_user (user_id),
	KEY idx_bookings_status (status),
	CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
		`CREATE TABLE IF NOT EXISTS booking_segments (
	id VARCHAR(36) PRIMARY KEY,
	booking_id VARCHAR(36) NOT NULL,
	segment_index INT NOT NULL,
	from_stage_id VARCHAR(8) NOT NULL,
	to_stage_id VARCHAR(8) NOT NULL,
	travel_date DATE NOT NULL,
	start_hotel_id VARCHAR(36) NULL,
	end_hotel_id VARCHAR(36) NULL,
	hotel_notes VARCHAR(1024),
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_booking_segment (booking_id, segment_index),
	KEY idx_segments_travel_date (travel_date),
	CONSTRAINT fk_segments_booking FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range ddl {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
