package schedule

import (
	"fmt"
	"time"

	"github.com/verdant/plantcare/internal/domain"
)

// Suggestion proposes a reminder the user does not have yet.
type Suggestion struct {
	TaskType  domain.TaskType  `json:"task_type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Priority  domain.Priority  `json:"priority"`
	Frequency domain.Frequency `json:"frequency"`
	Reason    string           `json:"reason"`
}

const inspectionGap = 14 * 24 * time.Hour

// Suggest proposes reminders for a plant based on its attributes and the
// reminders already active for it. Pure: it never mutates its inputs.
func Suggest(plant domain.Plant, active []domain.Reminder, now time.Time) []Suggestion {
	covered := make(map[domain.TaskType]bool, len(active))
	for _, r := range active {
		if r.Enabled && r.State(now) != domain.StateCompleted {
			covered[r.TaskType] = true
		}
	}

	var out []Suggestion

	if !covered[domain.TaskWatering] {
		out = append(out, Suggestion{
			TaskType:  domain.TaskWatering,
			Title:     fmt.Sprintf("Water %s", plant.Name),
			Message:   fmt.Sprintf("%s is due for watering.", plant.Name),
			Priority:  domain.PriorityHigh,
			Frequency: domain.Frequency{Kind: domain.FrequencyTwiceWeekly},
			Reason:    "No watering schedule is set for this plant.",
		})
	}

	if !covered[domain.TaskFertilizing] && growingSeason(now) {
		out = append(out, Suggestion{
			TaskType:  domain.TaskFertilizing,
			Title:     fmt.Sprintf("Fertilize %s", plant.Name),
			Message:   fmt.Sprintf("Give %s some nutrients.", plant.Name),
			Priority:  domain.PriorityMedium,
			Frequency: domain.Frequency{Kind: domain.FrequencyMonthly},
			Reason:    "Plants benefit from monthly feeding during the growing season.",
		})
	}

	if !covered[domain.TaskPestInspection] && inspectionOverdue(plant, now) {
		reason := "This plant has never been inspected for pests."
		if plant.LastInspectionAt != nil {
			reason = fmt.Sprintf("Last pest inspection was %d days ago.",
				int(now.Sub(*plant.LastInspectionAt).Hours()/24))
		}
		out = append(out, Suggestion{
			TaskType:  domain.TaskPestInspection,
			Title:     fmt.Sprintf("Inspect %s for pests", plant.Name),
			Message:   fmt.Sprintf("Check %s's leaves and stems for pests.", plant.Name),
			Priority:  domain.PriorityMedium,
			Frequency: domain.Frequency{Kind: domain.FrequencyBiweekly},
			Reason:    reason,
		})
	}

	if plant.Edible && !covered[domain.TaskHarvest] && harvestSeason(now) {
		out = append(out, Suggestion{
			TaskType:  domain.TaskHarvest,
			Title:     fmt.Sprintf("Check %s for harvest", plant.Name),
			Message:   fmt.Sprintf("%s may have produce ready to pick.", plant.Name),
			Priority:  domain.PriorityLow,
			Frequency: domain.Frequency{Kind: domain.FrequencyWeekly},
			Reason:    "Edible plants should be checked weekly in harvest season.",
		})
	}

	return out
}

func inspectionOverdue(plant domain.Plant, now time.Time) bool {
	return plant.LastInspectionAt == nil || now.Sub(*plant.LastInspectionAt) > inspectionGap
}

func growingSeason(now time.Time) bool {
	m := now.Month()
	return m >= time.March && m <= time.September
}

func harvestSeason(now time.Time) bool {
	m := now.Month()
	return m >= time.July && m <= time.October
}
