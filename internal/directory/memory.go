// internal/directory/memory.go
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"

	"github.com/google/uuid"
)

// MemoryDirectory keeps profiles in insertion order. Reads return copies.
type MemoryDirectory struct {
	mu       sync.RWMutex
	profiles []models.LawyerProfile
	byID     map[string]int
}

func NewMemoryDirectory(profiles []models.LawyerProfile) *MemoryDirectory {
	d := &MemoryDirectory{byID: make(map[string]int, len(profiles))}
	for _, p := range profiles {
		if _, dup := d.byID[p.ID]; dup {
			continue
		}
		d.byID[p.ID] = len(d.profiles)
		d.profiles = append(d.profiles, p)
	}
	return d
}

// LoadSeedFile reads a JSON array of profiles.
func LoadSeedFile(path string) ([]models.LawyerProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	var profiles []models.LawyerProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return profiles, nil
}

func (d *MemoryDirectory) GetAllProfiles(_ context.Context) ([]models.LawyerProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.LawyerProfile, len(d.profiles))
	copy(out, d.profiles)
	return out, nil
}

func (d *MemoryDirectory) GetByID(_ context.Context, id string) (*models.LawyerProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	idx, ok := d.byID[id]
	if !ok {
		return nil, errors.NewLawyerNotFoundError(id)
	}
	p := d.profiles[idx]
	return &p, nil
}

func (d *MemoryDirectory) List(ctx context.Context, filter models.LawyerFilter) ([]models.LawyerProfile, error) {
	all, _ := d.GetAllProfiles(ctx)
	return filterProfiles(all, filter), nil
}

// Create stores a new profile, assigning an ID and creation time when missing.
func (d *MemoryDirectory) Create(_ context.Context, profile *models.LawyerProfile) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if _, exists := d.byID[profile.ID]; exists {
		return errors.NewValidationError(fmt.Sprintf("lawyer %s already exists", profile.ID))
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	d.byID[profile.ID] = len(d.profiles)
	d.profiles = append(d.profiles, *profile)
	return nil
}
