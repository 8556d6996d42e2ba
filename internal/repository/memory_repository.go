package repository

import (
	"context"
	"sync"

	"github.com/org-structure-manager/internal/domain"
)

// MemoryStateRepository держит закодированный снимок в памяти процесса
type MemoryStateRepository struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{}
}

func (r *MemoryStateRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.data == nil {
		return nil, nil
	}
	return decodeSnapshot(r.data)
}

func (r *MemoryStateRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data
	return nil
}
