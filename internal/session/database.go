package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"optionlab/internal/models"
)

// DBStore keeps sessions in the sessions table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a session store backed by db.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Get loads an unexpired session row.
func (d *DBStore) Get(ctx context.Context, id string) (*Session, error) {
	var rec models.SessionRecord
	err := d.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, time.Now()).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(rec.Data), &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &s, nil
}

// Save upserts the session row.
func (d *DBStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	rec := models.SessionRecord{
		ID:        s.ID,
		Data:      string(data),
		ExpiresAt: s.ExpiresAt,
	}
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Delete removes the session row.
func (d *DBStore) Delete(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SessionRecord{}).Error
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (d *DBStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := d.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.SessionRecord{})
	return res.RowsAffected, res.Error
}
