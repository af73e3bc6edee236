package model

import "time"

// Todo is a single task record. UserID is nullable: records created
// before ownership was introduced have no owner and stay readable by
// any authenticated user.
type Todo struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"size:1000"`
	Done        bool   `gorm:"default:false"`
	UserID      *uint  `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
