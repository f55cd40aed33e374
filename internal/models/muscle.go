package models

// MuscleName is one of the fixed muscle groups an exercise can target.
type MuscleName string

const (
	MuscleBack      MuscleName = "back"
	MuscleBiceps    MuscleName = "biceps"
	MuscleChest     MuscleName = "chest"
	MuscleTriceps   MuscleName = "triceps"
	MuscleShoulders MuscleName = "shoulders"
	MuscleAbs       MuscleName = "abs"
	MuscleLegs      MuscleName = "legs"
	MuscleGlutes    MuscleName = "glutes"
	MuscleArms      MuscleName = "arms"
)

// AllMuscles lists the muscle groups in seeding order.
var AllMuscles = []MuscleName{
	MuscleBack,
	MuscleBiceps,
	MuscleChest,
	MuscleTriceps,
	MuscleShoulders,
	MuscleAbs,
	MuscleLegs,
	MuscleGlutes,
	MuscleArms,
}

var muscleDisplayNames = map[MuscleName]string{
	MuscleBack:      "Back",
	MuscleBiceps:    "Biceps",
	MuscleChest:     "Chest",
	MuscleTriceps:   "Triceps",
	MuscleShoulders: "Shoulders",
	MuscleAbs:       "Abs",
	MuscleLegs:      "Legs",
	MuscleGlutes:    "Glutes",
	MuscleArms:      "Arms",
}

// Valid reports whether m belongs to the fixed set.
func (m MuscleName) Valid() bool {
	_, ok := muscleDisplayNames[m]
	return ok
}

// DisplayName returns the human readable name, or the raw value for unknown names.
func (m MuscleName) DisplayName() string {
	if name, ok := muscleDisplayNames[m]; ok {
		return name
	}
	return string(m)
}

// Muscle is a persisted muscle group row.
type Muscle struct {
	ID   uint       `json:"id" gorm:"primaryKey"`
	Name MuscleName `json:"name" gorm:"uniqueIndex;type:varchar(50);not null"`
}

func (Muscle) TableName() string {
	return "muscles"
}
