package db

import (
	"context"
	"database/sql"
	"fmt"
)

type table struct {
	name string
	ddl  string
}

// tables are created in order; later ones reference earlier ones.
var tables = []table{
	{"users", `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'staff',
	status VARCHAR(50) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"customers", `
CREATE TABLE IF NOT EXISTS customers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NULL,
	phone VARCHAR(100) NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"hotels", `
CREATE TABLE IF NOT EXISTS hotels (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	location VARCHAR(255) NULL,
	star_rating INT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"itineraries", `
CREATE TABLE IF NOT EXISTS itineraries (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL DEFAULT '',
	start_date DATE NULL,
	duration INT NOT NULL DEFAULT 0,
	transfer_mode VARCHAR(20) NOT NULL DEFAULT 'none',
	budget DECIMAL(14,2) NULL,
	adults INT NOT NULL DEFAULT 0,
	children INT NOT NULL DEFAULT 0,
	customer_id BIGINT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_customer (customer_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"itinerary_days", `
CREATE TABLE IF NOT EXISTS itinerary_days (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	itinerary_id BIGINT NOT NULL,
	day_number INT NOT NULL,
	day_date DATE NULL,
	hotel_id BIGINT NULL,
	room_type VARCHAR(100) NULL,
	meal_plan VARCHAR(100) NULL,
	room_quantity INT NULL,
	room_unit_price DECIMAL(14,2) NULL,
	room_price DECIMAL(14,2) NULL,
	cab_type VARCHAR(100) NULL,
	cab_route VARCHAR(255) NULL,
	cab_description TEXT NULL,
	cab_quantity INT NULL,
	cab_unit_price DECIMAL(14,2) NULL,
	cab_price DECIMAL(14,2) NULL,
	notes TEXT NULL,
	UNIQUE KEY uniq_itinerary_day (itinerary_id, day_number),
	KEY idx_hotel (hotel_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"activities", `
CREATE TABLE IF NOT EXISTS activities (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	day_id BIGINT NOT NULL,
	title VARCHAR(255) NOT NULL,
	description TEXT NULL,
	location VARCHAR(255) NULL,
	time_start VARCHAR(10) NULL,
	time_end VARCHAR(10) NULL,
	is_transfer TINYINT(1) NOT NULL DEFAULT 0,
	sort_order INT NOT NULL DEFAULT 0,
	UNIQUE KEY uniq_day_sort (day_id, sort_order)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"itinerary_pricing_options", `
CREATE TABLE IF NOT EXISTS itinerary_pricing_options (
	itinerary_id BIGINT PRIMARY KEY,
	options JSON NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	customer_id BIGINT NOT NULL,
	itinerary_id BIGINT NOT NULL,
	total_amount DECIMAL(14,2) NOT NULL DEFAULT 0,
	status VARCHAR(30) NOT NULL DEFAULT 'Pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_status (status),
	KEY idx_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"payments", `
CREATE TABLE IF NOT EXISTS payments (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	amount DECIMAL(14,2) NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'Pending',
	method VARCHAR(50) NOT NULL DEFAULT '',
	payment_date DATETIME NOT NULL,
	payment_type VARCHAR(20) NULL,
	reference VARCHAR(100) NULL,
	notes TEXT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_booking (booking_id),
	KEY idx_payment_date (payment_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
	{"agency_settings", `
CREATE TABLE IF NOT EXISTS agency_settings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	company_name VARCHAR(255) NOT NULL,
	currency_symbol VARCHAR(10) NOT NULL DEFAULT 'Rs.',
	address VARCHAR(500) NULL,
	phone VARCHAR(100) NULL,
	email VARCHAR(255) NULL,
	footer_note VARCHAR(500) NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`},
}

// TableNames lists every table EnsureSchema manages, in creation order.
func TableNames() []string {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.name)
	}
	return out
}

// EnsureSchema creates whichever managed tables are missing and returns
// their names.
func EnsureSchema(ctx context.Context, db *sql.DB) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("db not available")
	}
	created := []string{}
	for _, t := range tables {
		if HasTable(db, t.name) {
			continue
		}
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return created, fmt.Errorf("create %s: %w", t.name, err)
		}
		created = append(created, t.name)
	}
	return created, nil
}
