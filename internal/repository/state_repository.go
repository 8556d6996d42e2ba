package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/org-structure-manager/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateBlob - JSON документ состояния под именованным ключом
type StateBlob struct {
	Key       string    `gorm:"column:blob_key;primaryKey;type:varchar(200)"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName задаёт имя таблицы для GORM
func (StateBlob) TableName() string {
	return "state_blobs"
}

// StateRepository хранит снимок состояния в таблице state_blobs (PostgreSQL или SQLite)
type StateRepository struct {
	db  *gorm.DB
	key string
}

// NewStateRepository создаёт новый экземпляр репозитория
func NewStateRepository(db *gorm.DB, key string) *StateRepository {
	return &StateRepository{db: db, key: key}
}

func (r *StateRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	var blob StateBlob
	err := r.db.WithContext(ctx).Where("blob_key = ?", r.key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load state %q: %w", r.key, err)
	}
	return decodeSnapshot([]byte(blob.Payload))
}

func (r *StateRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	payload, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	blob := StateBlob{
		Key:       r.key,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to save state %q: %w", r.key, err)
	}
	return nil
}
