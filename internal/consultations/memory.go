// internal/consultations/memory.go
package consultations

import (
	"context"
	"sync"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/models"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]models.Consultation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.Consultation)}
}

func (r *MemoryRepository) Create(_ context.Context, c *models.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[c.ID]; !exists {
		r.order = append(r.order, c.ID)
	}
	r.items[c.ID] = *c
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, errors.NewConsultationNotFoundError(id)
	}
	return &c, nil
}

func (r *MemoryRepository) List(_ context.Context, filter models.ConsultationFilter) ([]models.Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Consultation{}
	for _, id := range r.order {
		c := r.items[id]
		if filter.UserID != "" && c.UserID != filter.UserID {
			continue
		}
		if filter.LawyerID != "" && c.LawyerID != filter.LawyerID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, c *models.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return errors.NewConsultationNotFoundError(c.ID)
	}
	r.items[c.ID] = *c
	return nil
}
