// internal/directory/postgres.go
package directory

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const selectLawyers = `
	SELECT id, name, specialization, location, experience, rating,
	       consultation_fee, bio, languages, email, phone, verified, created_at
	FROM lawyers`

// PostgresDirectory reads lawyer profiles from the lawyers table.
type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) GetAllProfiles(ctx context.Context) ([]models.LawyerProfile, error) {
	return d.query(ctx, "list_lawyers", selectLawyers+` ORDER BY created_at, id`)
}

func (d *PostgresDirectory) GetByID(ctx context.Context, id string) (*models.LawyerProfile, error) {
	row := d.db.QueryRowContext(ctx, selectLawyers+` WHERE id = $1`, id)
	p, err := scanLawyer(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewLawyerNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("get_lawyer", err)
	}
	return p, nil
}

// List pushes the rating filter into SQL and applies the rest in memory,
// since fees are stored as display strings.
func (d *PostgresDirectory) List(ctx context.Context, filter models.LawyerFilter) ([]models.LawyerProfile, error) {
	profiles, err := d.query(ctx, "list_lawyers", selectLawyers+` WHERE rating >= $1 ORDER BY rating DESC, id`, filter.MinRating)
	if err != nil {
		return nil, err
	}
	return filterProfiles(profiles, filter), nil
}

func (d *PostgresDirectory) Create(ctx context.Context, p *models.LawyerProfile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO lawyers (id, name, specialization, location, experience, rating,
		                     consultation_fee, bio, languages, email, phone, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.Specialization, p.Location, p.Experience, p.Rating,
		p.ConsultationFee, p.Bio, pq.Array(p.Languages), p.Email, p.Phone, p.Verified, p.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23505" {
			return errors.NewValidationError("lawyer " + p.ID + " already exists")
		}
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

func (d *PostgresDirectory) query(ctx context.Context, op, q string, args ...interface{}) ([]models.LawyerProfile, error) {
	rows, err := d.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError(op, err)
	}
	defer rows.Close()

	profiles := []models.LawyerProfile{}
	for rows.Next() {
		p, err := scanLawyer(rows)
		if err != nil {
			return nil, errors.NewDatabaseQueryFailedError(op, err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseQueryFailedError(op, err)
	}
	return profiles, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLawyer(s rowScanner) (*models.LawyerProfile, error) {
	var (
		p         models.LawyerProfile
		bio       sql.NullString
		email     sql.NullString
		phone     sql.NullString
		languages pq.StringArray
	)
	if err := s.Scan(
		&p.ID, &p.Name, &p.Specialization, &p.Location, &p.Experience, &p.Rating,
		&p.ConsultationFee, &bio, &languages, &email, &phone, &p.Verified, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Bio = bio.String
	p.Email = email.String
	p.Phone = phone.String
	p.Languages = []string(languages)
	return &p, nil
}
