package models

import "time"

// SessionRecord is the database-backed form of a login session. Data holds
// the JSON-encoded session payload.
type SessionRecord struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Data      string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name used by the session store and migrations.
func (SessionRecord) TableName() string { return "sessions" }
