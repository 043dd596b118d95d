package outbox

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omc-erp/omc-backend/pkg/db/models"
)

const (
	// maxDLQErrorLen bounds the stored error message so a pathological
	// gateway response cannot bloat the row.
	maxDLQErrorLen = 1024

	defaultDLQListLimit = 50
)

// DLQRepository persists dead-lettered outbox events.
type DLQRepository struct {
	db *gorm.DB
}

func NewDLQRepository(db *gorm.DB) *DLQRepository {
	return &DLQRepository{db: db}
}

// InsertTx writes a DLQ row inside the caller's transaction so it commits
// atomically with the terminal attempt count on the source event.
func (r *DLQRepository) InsertTx(tx *gorm.DB, entry models.OutboxDLQ) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	if entry.ErrorMessage != nil && len(*entry.ErrorMessage) > maxDLQErrorLen {
		truncated := (*entry.ErrorMessage)[:maxDLQErrorLen]
		entry.ErrorMessage = &truncated
	}
	return tx.Create(&entry).Error
}

// FindByEventID returns the DLQ row for the given outbox event, or nil when
// the event was never dead-lettered.
func (r *DLQRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) (*models.OutboxDLQ, error) {
	var entry models.OutboxDLQ
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *DLQRepository) List(ctx context.Context, limit int) ([]models.OutboxDLQ, error) {
	if limit <= 0 {
		limit = defaultDLQListLimit
	}
	var rows []models.OutboxDLQ
	err := r.db.WithContext(ctx).
		Order("failed_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
