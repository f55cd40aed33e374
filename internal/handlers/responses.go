package handlers

import (
	"time"

	"fitlog/internal/models"
)

type muscleResponse struct {
	ID          uint              `json:"id"`
	Name        models.MuscleName `json:"name"`
	DisplayName string            `json:"display_name"`
}

func newMuscleResponse(m models.Muscle) muscleResponse {
	return muscleResponse{ID: m.ID, Name: m.Name, DisplayName: m.Name.DisplayName()}
}

type exerciseResponse struct {
	ID         uint              `json:"id"`
	Muscle     uint              `json:"muscle"`
	MuscleName models.MuscleName `json:"muscle_name"`
	Name       string            `json:"name"`
	Note       *string           `json:"note"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func newExerciseResponse(e *models.Exercise) exerciseResponse {
	return exerciseResponse{
		ID:         e.ID,
		Muscle:     e.MuscleID,
		MuscleName: e.MuscleName(),
		Name:       e.Name,
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

type trainingResponse struct {
	ID           uint              `json:"id"`
	Exercise     uint              `json:"exercise"`
	ExerciseName string            `json:"exercise_name"`
	MuscleName   models.MuscleName `json:"muscle_name"`
	Weight       float64           `json:"weight"`
	Sets         int               `json:"sets"`
	Repetitions  int               `json:"repetitions"`
	Datetime     time.Time         `json:"datetime"`
}

func newTrainingResponse(t *models.Training) trainingResponse {
	resp := trainingResponse{
		ID:          t.ID,
		Exercise:    t.ExerciseID,
		Weight:      t.Weight,
		Sets:        t.Sets,
		Repetitions: t.Repetitions,
		Datetime:    t.Datetime,
	}
	if t.Exercise != nil {
		resp.ExerciseName = t.Exercise.Name
		resp.MuscleName = t.Exercise.MuscleName()
	}
	return resp
}

func newTrainingResponses(trainings []models.Training) []trainingResponse {
	resp := make([]trainingResponse, 0, len(trainings))
	for i := range trainings {
		resp = append(resp, newTrainingResponse(&trainings[i]))
	}
	return resp
}
