// internal/directory/postgres_test.go
package directory

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lawyerColumns = []string{
	"id", "name", "specialization", "location", "experience", "rating",
	"consultation_fee", "bio", "languages", "email", "phone", "verified", "created_at",
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func lawyerRows() *sqlmock.Rows {
	created := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(lawyerColumns).
		AddRow("lw-1", "Adv. Priya Sharma", "Property & Rental Law", "Delhi", "8 years", 4.9, "₹2500", "Tenancy disputes", "{English,Hindi}", "priya@example.com", nil, true, created).
		AddRow("lw-2", "Adv. Rajesh Kumar", "Criminal Law", "Mumbai", "15 years", 4.8, "₹3000", nil, "{}", nil, nil, true, created)
}

func TestPostgresDirectory_GetAllProfiles(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM lawyers ORDER BY created_at, id").WillReturnRows(lawyerRows())

	profiles, err := NewPostgresDirectory(db).GetAllProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "lw-1", profiles[0].ID)
	assert.Equal(t, []string{"English", "Hindi"}, profiles[0].Languages)
	assert.Equal(t, "Tenancy disputes", profiles[0].Bio)
	assert.Equal(t, "", profiles[1].Bio)
	assert.Equal(t, 4.8, profiles[1].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDirectory_GetAllProfiles_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM lawyers").WillReturnError(stderrors.New("connection reset"))

	_, err := NewPostgresDirectory(db).GetAllProfiles(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDatabaseQueryFailed, errors.AsStandardError(err).Code)
}

func TestPostgresDirectory_GetByID(t *testing.T) {
	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		wantCode errors.ErrorCode
	}{
		{"found", lawyerRows(), ""},
		{"not found", sqlmock.NewRows(lawyerColumns), errors.ErrCodeLawyerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			mock.ExpectQuery("SELECT (.+) FROM lawyers WHERE id = \\$1").
				WithArgs("lw-1").
				WillReturnRows(tt.rows)

			p, err := NewPostgresDirectory(db).GetByID(context.Background(), "lw-1")
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.AsStandardError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Adv. Priya Sharma", p.Name)
		})
	}
}

func TestPostgresDirectory_List(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM lawyers WHERE rating >= \\$1").
		WithArgs(4.5).
		WillReturnRows(lawyerRows())

	profiles, err := NewPostgresDirectory(db).List(context.Background(), models.LawyerFilter{MinRating: 4.5, MaxFee: 2800})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "lw-1", profiles[0].ID)
}

func TestPostgresDirectory_Create(t *testing.T) {
	t.Run("inserts with generated id", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec("INSERT INTO lawyers").
			WithArgs(sqlmock.AnyArg(), "Adv. New", "Cyber Law", "Pune", "2 years", 4.0, "₹1200", "",
				sqlmock.AnyArg(), "", "", false, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		p := &models.LawyerProfile{Name: "Adv. New", Specialization: "Cyber Law", Location: "Pune", Experience: "2 years", Rating: 4.0, ConsultationFee: "₹1200"}
		require.NoError(t, NewPostgresDirectory(db).Create(context.Background(), p))
		assert.NotEmpty(t, p.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation is a validation error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec("INSERT INTO lawyers").WillReturnError(&pq.Error{Code: "23505"})

		err := NewPostgresDirectory(db).Create(context.Background(), &models.LawyerProfile{ID: "lw-1"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeValidationFailed, errors.AsStandardError(err).Code)
	})

	t.Run("other failures are insert errors", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec("INSERT INTO lawyers").WillReturnError(stderrors.New("disk full"))

		err := NewPostgresDirectory(db).Create(context.Background(), &models.LawyerProfile{ID: "lw-9"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeDatabaseInsertFailed, errors.AsStandardError(err).Code)
	})
}
