package model

import "time"

// User is a registered account. Password always holds a bcrypt hash,
// never the plaintext; the repository hashes it before any write.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100"`
	Email     string `gorm:"size:255;uniqueIndex"`
	Password  string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Todos     []Todo `gorm:"foreignKey:UserID"`
}
