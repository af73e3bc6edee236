package model

import "time"

// RevokedToken denylists a token id after logout. Rows become dead
// weight once the token itself expires and are purged periodically.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	JTI       string    `gorm:"column:jti;size:36;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}
