package entity

import (
	"time"

	"github.com/google/uuid"
)

type PasswordReset struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	Used      bool      `db:"used"`
}

// IsValid reports whether the token can still be redeemed at now.
func (p *PasswordReset) IsValid(now time.Time) bool {
	return !p.Used && now.Before(p.ExpiresAt)
}
