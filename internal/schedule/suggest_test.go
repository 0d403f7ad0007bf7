package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
)

// july is 2024-07-01, inside both growing and harvest season.
var july = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func testPlant(edible bool) domain.Plant {
	return domain.Plant{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Cherry Tomato",
		Edible: edible,
	}
}

func suggestionTypes(suggestions []Suggestion) map[domain.TaskType]bool {
	types := make(map[domain.TaskType]bool, len(suggestions))
	for _, s := range suggestions {
		types[s.TaskType] = true
	}
	return types
}

func TestSuggestUncoveredPlant(t *testing.T) {
	got := Suggest(testPlant(true), nil, july)

	types := suggestionTypes(got)
	for _, want := range []domain.TaskType{
		domain.TaskWatering, domain.TaskFertilizing, domain.TaskPestInspection, domain.TaskHarvest,
	} {
		if !types[want] {
			t.Errorf("missing %s suggestion", want)
		}
	}
	for _, s := range got {
		if s.Reason == "" {
			t.Errorf("%s suggestion has no reason", s.TaskType)
		}
		if s.Frequency.Kind == "" {
			t.Errorf("%s suggestion has no frequency", s.TaskType)
		}
	}
}

func TestSuggestSkipsCoveredTypes(t *testing.T) {
	plant := testPlant(false)
	active := []domain.Reminder{
		{PlantID: plant.ID, TaskType: domain.TaskWatering, Enabled: true, Recurring: true,
			NextDueAt: july.AddDate(0, 0, 1)},
	}

	got := Suggest(plant, active, july)

	if suggestionTypes(got)[domain.TaskWatering] {
		t.Error("suggested watering despite an active watering reminder")
	}
}

func TestSuggestDisabledReminderDoesNotCover(t *testing.T) {
	plant := testPlant(false)
	inactive := []domain.Reminder{
		{PlantID: plant.ID, TaskType: domain.TaskWatering, Enabled: false,
			NextDueAt: july.AddDate(0, 0, 1)},
	}

	got := Suggest(plant, inactive, july)

	if !suggestionTypes(got)[domain.TaskWatering] {
		t.Error("disabled reminder should not suppress the watering suggestion")
	}
}

func TestSuggestInspectionAfterGap(t *testing.T) {
	plant := testPlant(false)
	recent := july.AddDate(0, 0, -3)
	plant.LastInspectionAt = &recent

	if suggestionTypes(Suggest(plant, nil, july))[domain.TaskPestInspection] {
		t.Error("suggested inspection only 3 days after the last one")
	}

	old := july.AddDate(0, 0, -30)
	plant.LastInspectionAt = &old
	if !suggestionTypes(Suggest(plant, nil, july))[domain.TaskPestInspection] {
		t.Error("no inspection suggestion 30 days after the last one")
	}
}

func TestSuggestHarvestOnlyForEdible(t *testing.T) {
	if suggestionTypes(Suggest(testPlant(false), nil, july))[domain.TaskHarvest] {
		t.Error("suggested harvest for a non-edible plant")
	}
}

func TestSuggestOutOfSeason(t *testing.T) {
	january := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	types := suggestionTypes(Suggest(testPlant(true), nil, january))
	if types[domain.TaskFertilizing] {
		t.Error("suggested fertilizing outside the growing season")
	}
	if types[domain.TaskHarvest] {
		t.Error("suggested harvest outside the harvest season")
	}
}
