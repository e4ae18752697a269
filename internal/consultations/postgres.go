// internal/consultations/postgres.go
package consultations

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"
	"strings"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"
)

const consultationColumns = `id, user_id, user_email, user_phone, lawyer_id, lawyer_name, type,
	scheduled_at, description, fee, status, payment_status, payment_id, meeting_link, notes,
	created_at, updated_at, cancelled_at`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Consultation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consultations (`+consultationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		c.ID, c.UserID, c.UserEmail, c.UserPhone, c.LawyerID, c.LawyerName, string(c.Type),
		c.ScheduledAt, c.Description, c.Fee, string(c.Status), c.PaymentStatus, c.PaymentID,
		c.MeetingLink, c.Notes, c.CreatedAt, c.UpdatedAt, c.CancelledAt,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Consultation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+consultationColumns+` FROM consultations WHERE id = $1`, id)
	c, err := scanConsultation(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewConsultationNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("get_consultation", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter models.ConsultationFilter) ([]models.Consultation, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.LawyerID != "" {
		args = append(args, filter.LawyerID)
		where = append(where, "lawyer_id = $"+strconv.Itoa(len(args)))
	}

	q := `SELECT ` + consultationColumns + ` FROM consultations`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("list_consultations", err)
	}
	defer rows.Close()

	out := []models.Consultation{}
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, errors.NewDatabaseQueryFailedError("list_consultations", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseQueryFailedError("list_consultations", err)
	}
	return out, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Consultation) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE consultations
		SET status = $2, notes = $3, scheduled_at = $4, updated_at = $5, cancelled_at = $6
		WHERE id = $1`,
		c.ID, string(c.Status), c.Notes, c.ScheduledAt, c.UpdatedAt, c.CancelledAt,
	)
	if err != nil {
		return errors.NewDatabaseQueryFailedError("update_consultation", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewConsultationNotFoundError(c.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConsultation(s rowScanner) (*models.Consultation, error) {
	var (
		c           models.Consultation
		ctype       string
		status      string
		email       sql.NullString
		phone       sql.NullString
		description sql.NullString
		paymentID   sql.NullString
		notes       sql.NullString
		cancelledAt sql.NullTime
	)
	err := s.Scan(
		&c.ID, &c.UserID, &email, &phone, &c.LawyerID, &c.LawyerName, &ctype,
		&c.ScheduledAt, &description, &c.Fee, &status, &c.PaymentStatus, &paymentID,
		&c.MeetingLink, &notes, &c.CreatedAt, &c.UpdatedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}
	c.Type = models.ConsultationType(ctype)
	c.Status = models.ConsultationStatus(status)
	c.UserEmail = email.String
	c.UserPhone = phone.String
	c.Description = description.String
	c.PaymentID = paymentID.String
	c.Notes = notes.String
	if cancelledAt.Valid {
		t := cancelledAt.Time
		c.CancelledAt = &t
	}
	return &c, nil
}
