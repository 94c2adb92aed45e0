package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"       json:"username"`
	PasswordHash string    `gorm:"not null"                   json:"-"`
	IsActive     bool      `gorm:"not null;default:true"      json:"is_active"`
	IsSuperuser  bool      `gorm:"not null;default:false"     json:"is_superuser"`
	CreatedAt    time.Time `                                  json:"-"`
	UpdatedAt    time.Time `                                  json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RevokedToken records a token id invalidated before its natural expiry.
// Rows are hard deleted by pruning once ExpiresAt has passed.
type RevokedToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"            json:"id"`
	JTI       string    `gorm:"size:36;not null;uniqueIndex"    json:"jti"`
	ExpiresAt time.Time `gorm:"not null;index"                  json:"expires_at"`
	CreatedAt time.Time `                                       json:"created_at"`
}

func (t *RevokedToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
