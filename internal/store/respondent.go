package store

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/everinsight/discprofile/internal/model"
)

// UpsertRespondent creates or updates a profile keyed by the
// normalized e-mail address and returns its row ID.
func (s *Store) UpsertRespondent(r model.Respondent) (int64, error) {
	email := r.Key()
	res, err := s.db.Exec(
		`INSERT INTO respondents (email, first_name, last_name, job_title, company, bio, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			job_title = excluded.job_title,
			company = excluded.company,
			bio = excluded.bio`,
		email, r.FirstName, r.LastName, r.JobTitle, r.Company, r.Bio, time.Now(),
	)
	if err != nil {
		slog.Error("failed to upsert respondent", "email", email, "error", err)
		return 0, err
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		return id, nil
	}
	existing, err := s.GetRespondentByEmail(email)
	if err != nil || existing == nil {
		return 0, err
	}
	return existing.ID, nil
}

// GetRespondentByEmail returns the profile for a normalized e-mail,
// or nil when none exists.
func (s *Store) GetRespondentByEmail(email string) (*model.Respondent, error) {
	var r model.Respondent
	err := s.db.QueryRow(
		`SELECT id, email, first_name, last_name, job_title, company, bio, created_at
		 FROM respondents WHERE email = ?`, model.NormalizeKey(email),
	).Scan(&r.ID, &r.Email, &r.FirstName, &r.LastName, &r.JobTitle, &r.Company, &r.Bio, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRespondents returns all profiles ordered by creation.
func (s *Store) ListRespondents() ([]model.Respondent, error) {
	rows, err := s.db.Query(
		`SELECT id, email, first_name, last_name, job_title, company, bio, created_at
		 FROM respondents ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var respondents []model.Respondent
	for rows.Next() {
		var r model.Respondent
		if err := rows.Scan(&r.ID, &r.Email, &r.FirstName, &r.LastName, &r.JobTitle, &r.Company, &r.Bio, &r.CreatedAt); err != nil {
			return nil, err
		}
		respondents = append(respondents, r)
	}
	return respondents, rows.Err()
}

// RespondentCount returns the number of stored profiles.
func (s *Store) RespondentCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM respondents`).Scan(&count)
	return count, err
}
