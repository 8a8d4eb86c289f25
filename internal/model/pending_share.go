package model

import "time"

// PendingShare remembers that an anonymous visitor followed a shared-category
// link, across the signup flow. The token is a random id carried in a cookie;
// the row is deleted when consumed, so a replayed cookie finds nothing.
type PendingShare struct {
	Token      string    `gorm:"primaryKey" json:"token"`
	CategoryID uint      `json:"categoryId"`
	ExpiresAt  time.Time `gorm:"index" json:"expiresAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Expired reports whether the token is past its lifetime at now.
func (p PendingShare) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
