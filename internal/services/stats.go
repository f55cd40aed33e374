package services

import (
	"sort"

	"fitlog/internal/models"
)

// ComputeStats aggregates trainings per exercise. The input must be ordered
// most recent first so that the first session seen provides the last weight.
// The result is sorted by exercise ID.
func ComputeStats(trainings []models.Training) []models.ExerciseStats {
	byExercise := make(map[uint]*models.ExerciseStats)
	for _, t := range trainings {
		st, ok := byExercise[t.ExerciseID]
		if !ok {
			st = &models.ExerciseStats{
				ExerciseID: t.ExerciseID,
				LowWeight:  t.Weight,
				HighWeight: t.Weight,
				LastWeight: t.Weight,
			}
			if t.Exercise != nil {
				st.ExerciseName = t.Exercise.Name
				st.MuscleName = t.Exercise.MuscleName()
			}
			byExercise[t.ExerciseID] = st
		}
		st.LowWeight = min(st.LowWeight, t.Weight)
		st.HighWeight = max(st.HighWeight, t.Weight)
		st.TotalSessions++
	}

	stats := make([]models.ExerciseStats, 0, len(byExercise))
	for _, st := range byExercise {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].ExerciseID < stats[j].ExerciseID })
	return stats
}
