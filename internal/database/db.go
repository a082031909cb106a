package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/planet-stamp-roulette/internal/utils"
)

// dsn builds the MySQL connection string.
// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent.
// clientFoundRows=true makes RowsAffected report matched rows instead of
// changed rows; without it a no-op UPDATE (resetting a quantity to its
// current value) affects zero rows and looks like a missing prize.
func dsn(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		auth, host, port, name)
}

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the campaign tables when they do not exist yet and seeds
// the bootstrap admin account.  Prize rows are provisioned out of band
// before the event; the schema only guarantees the tables are in place.
func Migrate(ctx context.Context, db *sql.DB, bcryptCost int) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prizes (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name VARCHAR(255) NOT NULL,
			total_quantity INT NOT NULL,
			remaining_quantity INT NOT NULL,
			PRIMARY KEY (id),
			UNIQUE KEY uq_prizes_name (name)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS participants (
			user_id VARCHAR(255) NOT NULL,
			stamps JSON NULL,
			prize_won_id BIGINT UNSIGNED NULL,
			is_redeemed TINYINT(1) NOT NULL DEFAULT 0,
			redeem_code VARCHAR(16) NULL,
			registration_date DATETIME NOT NULL,
			PRIMARY KEY (user_id),
			CONSTRAINT fk_participants_prize FOREIGN KEY (prize_won_id) REFERENCES prizes (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS admins (
			username VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			PRIMARY KEY (username)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS redemptions (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_id VARCHAR(255) NOT NULL,
			prize_id BIGINT UNSIGNED NOT NULL,
			prize_name VARCHAR(255) NOT NULL,
			redemption_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return seedAdmin(ctx, db, bcryptCost)
}

// seedAdmin inserts the bootstrap admin/admin account when it is absent.
// This mirrors the campaign's first-startup behavior; the credential is a
// convenience for staff and should be rotated before going live.
func seedAdmin(ctx context.Context, db *sql.DB, bcryptCost int) error {
	var n int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admins WHERE username = 'admin'`).Scan(&n); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if n > 0 {
		return nil
	}
	hash, err := utils.HashPassword("admin", bcryptCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ('admin', ?)`, hash); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Println("seeded default admin account (username: admin)")
	return nil
}
