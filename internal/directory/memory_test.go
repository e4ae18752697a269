// internal/directory/memory_test.go
package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestProfiles() []models.LawyerProfile {
	return []models.LawyerProfile{
		{ID: "lw-1", Name: "Adv. Priya Sharma", Specialization: "Property & Rental Law", Location: "Delhi", Experience: "8 years", Rating: 4.9, ConsultationFee: "₹2500"},
		{ID: "lw-2", Name: "Adv. Rajesh Kumar", Specialization: "Criminal Law", Location: "Mumbai", Experience: "15 years", Rating: 4.8, ConsultationFee: "₹3000"},
		{ID: "lw-3", Name: "Adv. Anita Desai", Specialization: "Family Law", Location: "New Delhi", Experience: "6 years", Rating: 4.1, ConsultationFee: "₹2000"},
	}
}

func TestMemoryDirectory_GetAllPreservesOrder(t *testing.T) {
	d := NewMemoryDirectory(createTestProfiles())

	all, err := d.GetAllProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"lw-1", "lw-2", "lw-3"}, []string{all[0].ID, all[1].ID, all[2].ID})

	all[0].Name = "mutated"
	again, _ := d.GetAllProfiles(context.Background())
	assert.Equal(t, "Adv. Priya Sharma", again[0].Name)
}

func TestMemoryDirectory_DropsDuplicateIDs(t *testing.T) {
	profiles := append(createTestProfiles(), models.LawyerProfile{ID: "lw-1", Name: "dup"})
	d := NewMemoryDirectory(profiles)

	all, _ := d.GetAllProfiles(context.Background())
	assert.Len(t, all, 3)
}

func TestMemoryDirectory_GetByID(t *testing.T) {
	d := NewMemoryDirectory(createTestProfiles())

	p, err := d.GetByID(context.Background(), "lw-2")
	require.NoError(t, err)
	assert.Equal(t, "Criminal Law", p.Specialization)

	_, err = d.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLawyerNotFound, errors.AsStandardError(err).Code)
}

func TestMemoryDirectory_List(t *testing.T) {
	d := NewMemoryDirectory(createTestProfiles())

	tests := []struct {
		name   string
		filter models.LawyerFilter
		want   []string
	}{
		{"no filter", models.LawyerFilter{}, []string{"lw-1", "lw-2", "lw-3"}},
		{"specialization substring", models.LawyerFilter{Specialization: "criminal"}, []string{"lw-2"}},
		{"location substring", models.LawyerFilter{Location: "delhi"}, []string{"lw-1", "lw-3"}},
		{"min rating", models.LawyerFilter{MinRating: 4.5}, []string{"lw-1", "lw-2"}},
		{"max fee", models.LawyerFilter{MaxFee: 2500}, []string{"lw-1", "lw-3"}},
		{"combined", models.LawyerFilter{Location: "Delhi", MaxFee: 2000}, []string{"lw-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.List(context.Background(), tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMemoryDirectory_Create(t *testing.T) {
	d := NewMemoryDirectory(nil)

	p := &models.LawyerProfile{Name: "Adv. New", Specialization: "Cyber Law"}
	require.NoError(t, d.Create(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	err := d.Create(context.Background(), &models.LawyerProfile{ID: p.ID})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.AsStandardError(err).Code)

	all, _ := d.GetAllProfiles(context.Background())
	assert.Len(t, all, 1)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lawyers.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"lw-1","name":"A","rating":4.5,"consultationFee":"₹900"}]`), 0o600))

	profiles, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "₹900", profiles[0].ConsultationFee)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadSeedFile_ShippedSeed(t *testing.T) {
	profiles, err := LoadSeedFile("../../configs/lawyers.json")
	require.NoError(t, err)
	assert.NotEmpty(t, profiles)
	for _, p := range profiles {
		assert.NotEmpty(t, p.ID)
		assert.GreaterOrEqual(t, p.Rating, 0.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
	}
}
