// internal/cases/memory.go
package cases

import (
	"context"
	"slices"
	"sync"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	cases map[string]models.Case
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{cases: make(map[string]models.Case)}
}

func (r *MemoryRepository) Create(_ context.Context, c *models.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.cases[c.ID]; exists {
		return errors.NewValidationError("case " + c.ID + " already exists")
	}
	r.cases[c.ID] = clone(c)
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cases[id]
	if !ok {
		return nil, errors.NewCaseNotFoundError(id)
	}
	out := clone(&c)
	return &out, nil
}

func (r *MemoryRepository) Save(_ context.Context, c *models.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cases[c.ID]; !ok {
		return errors.NewCaseNotFoundError(c.ID)
	}
	r.cases[c.ID] = clone(c)
	return nil
}

// clone copies the slices so stored cases never alias caller memory.
func clone(c *models.Case) models.Case {
	out := *c
	out.Timeline = slices.Clone(c.Timeline)
	out.Documents = slices.Clone(c.Documents)
	out.Communications = slices.Clone(c.Communications)
	out.Deadlines = slices.Clone(c.Deadlines)
	out.Insights.Indicators = slices.Clone(c.Insights.Indicators)
	return out
}
