package store

import (
	"database/sql"
	"log/slog"
	"time"
)

// Facilitator is an account with access to the admin views.
type Facilitator struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateFacilitator inserts a new facilitator account.
func (s *Store) CreateFacilitator(username, passwordHash string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO facilitators (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, time.Now(),
	)
	if err != nil {
		slog.Error("failed to create facilitator", "username", username, "error", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	slog.Info("created facilitator", "id", id, "username", username)
	return id, nil
}

// GetFacilitator returns a facilitator by username, or nil.
func (s *Store) GetFacilitator(username string) (*Facilitator, error) {
	var f Facilitator
	err := s.db.QueryRow(
		`SELECT id, username, password_hash, created_at FROM facilitators WHERE username = ?`, username,
	).Scan(&f.ID, &f.Username, &f.PasswordHash, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FacilitatorCount returns the number of facilitator accounts.
func (s *Store) FacilitatorCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM facilitators`).Scan(&count)
	return count, err
}
