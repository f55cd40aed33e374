package models

import "time"

// Training is one logged session of an exercise.
// Datetime is set once on insert and never updated.
type Training struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE"`
	ExerciseID  uint      `gorm:"not null;index"`
	Exercise    *Exercise `gorm:"constraint:OnDelete:CASCADE"`
	Weight      float64   `gorm:"type:decimal(6,2);not null"`
	Sets        int       `gorm:"not null"`
	Repetitions int       `gorm:"not null"`
	Datetime    time.Time `gorm:"column:datetime;not null;index"`
}

func (Training) TableName() string {
	return "training"
}

// ExerciseStats aggregates the sessions of one exercise.
type ExerciseStats struct {
	ExerciseID    uint       `json:"exercise_id"`
	ExerciseName  string     `json:"exercise_name"`
	MuscleName    MuscleName `json:"muscle_name"`
	LowWeight     float64    `json:"low_weight"`
	HighWeight    float64    `json:"high_weight"`
	LastWeight    float64    `json:"last_weight"`
	TotalSessions int        `json:"total_sessions"`
}
