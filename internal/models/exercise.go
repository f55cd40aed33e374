package models

import "time"

// Exercise is a user defined movement tied to one muscle group.
// (UserID, MuscleID, Name) is unique.
type Exercise struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_exercises_user_muscle_name"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	MuscleID  uint      `gorm:"not null;uniqueIndex:idx_exercises_user_muscle_name"`
	Muscle    *Muscle   `gorm:"constraint:OnDelete:CASCADE"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_exercises_user_muscle_name"`
	Note      *string   `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Exercise) TableName() string {
	return "exercises"
}

// MuscleName returns the name of the preloaded muscle, if any.
func (e *Exercise) MuscleName() MuscleName {
	if e.Muscle == nil {
		return ""
	}
	return e.Muscle.Name
}
