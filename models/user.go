package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Fullname     string    `gorm:"not null" json:"fullname"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Orders       []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
