package models

import "time"

// User represents an account owning exercises and trainings.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Username    string    `json:"username" gorm:"uniqueIndex;type:varchar(150);not null"`
	FirstName   string    `json:"first_name" gorm:"type:varchar(150)"`
	LastName    string    `json:"last_name" gorm:"type:varchar(150)"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	IsActive    bool      `json:"-" gorm:"not null"`
	IsStaff     bool      `json:"-" gorm:"not null"`
	IsSuperuser bool      `json:"-" gorm:"not null"`
	DateJoined  time.Time `json:"date_joined" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
