package model

import "time"

// Book is read-only catalog state. The order core queries it to resolve the
// file behind a purchased download token and never mutates it.
type Book struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Author      string    `gorm:"type:varchar(255);not null" json:"author"`
	Price       int64     `gorm:"not null" json:"price"` // cents
	Description string    `gorm:"type:text" json:"description"`
	FileURL     string    `gorm:"type:text" json:"fileUrl,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
