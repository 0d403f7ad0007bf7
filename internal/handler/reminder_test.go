package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
	"github.com/verdant/plantcare/internal/notify"
	"github.com/verdant/plantcare/internal/service"
)

type memReminderStore struct {
	reminders map[uuid.UUID]domain.Reminder
}

func (m *memReminderStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Reminder, error) {
	r, ok := m.reminders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := r
	return &cp, nil
}

func (m *memReminderStore) ListByPlant(_ context.Context, plantID uuid.UUID) ([]domain.Reminder, error) {
	var out []domain.Reminder
	for _, r := range m.reminders {
		if r.PlantID == plantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReminderStore) ListDueBefore(_ context.Context, userID uuid.UUID, t time.Time) ([]domain.Reminder, error) {
	var out []domain.Reminder
	for _, r := range m.reminders {
		if r.UserID == userID && r.Enabled && !r.EffectiveDueAt().After(t) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReminderStore) Create(_ context.Context, r *domain.Reminder) error {
	m.reminders[r.ID] = *r
	return nil
}

func (m *memReminderStore) Update(_ context.Context, r *domain.Reminder) error {
	m.reminders[r.ID] = *r
	return nil
}

func (m *memReminderStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.reminders, id)
	return nil
}

type memPlantStore struct {
	plants map[uuid.UUID]domain.Plant
}

func (m *memPlantStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Plant, error) {
	p, ok := m.plants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := p
	return &cp, nil
}

type memSettingsStore struct{}

func (memSettingsStore) FindByUser(context.Context, uuid.UUID) (*domain.ReminderSettings, error) {
	return nil, domain.ErrNotFound
}

type noopCounter struct{}

func (noopCounter) CountActive(context.Context) (int, error) { return 0, nil }

type testServer struct {
	router *chi.Mux
	userID uuid.UUID
	plant  domain.Plant
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	userID := uuid.New()
	plant := domain.Plant{ID: uuid.New(), UserID: userID, Name: "Basil"}

	store := &memReminderStore{reminders: make(map[uuid.UUID]domain.Reminder)}
	plants := &memPlantStore{plants: map[uuid.UUID]domain.Plant{plant.ID: plant}}
	center := notify.NewMemoryCenter(notify.AuthAuthorized)
	projector := notify.NewProjector(center, noopCounter{})

	svc := service.NewReminderService(store, plants, memSettingsStore{}, projector, service.StaticWeather(false), 1)
	h := NewReminderHandler(svc, NewAppValidator())

	router := chi.NewRouter()
	// Stand-in for JWTAuth: inject the test user directly.
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), contextKeyUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	router.Post("/reminders", h.Create)
	router.Get("/reminders/{id}", h.Get)
	router.Post("/reminders/{id}/complete", h.Complete)
	router.Post("/reminders/{id}/snooze", h.Snooze)

	return &testServer{router: router, userID: userID, plant: plant}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *APIError {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Error == nil {
		t.Fatal("expected an error envelope")
	}
	return env.Error
}

func TestCreateReminder(t *testing.T) {
	ts := newTestServer(t)
	body := `{"plant_id":"` + ts.plant.ID.String() + `","task_type":"watering","title":"Water the basil","frequency_kind":"weekly","preferred_at":"08:30"}`

	rec := ts.do(t, http.MethodPost, "/reminders", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}

	var env struct {
		Data domain.Reminder `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Data.TaskType != domain.TaskWatering {
		t.Errorf("task type = %s, want watering", env.Data.TaskType)
	}
	if env.Data.PreferredAt != domain.NewClockTime(8, 30) {
		t.Errorf("preferred at = %s, want 08:30", env.Data.PreferredAt)
	}
	if env.Data.NextDueAt.IsZero() {
		t.Error("next due date not computed")
	}
}

func TestCreateReminderValidation(t *testing.T) {
	ts := newTestServer(t)
	plantID := ts.plant.ID.String()

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{
			"unknown frequency kind",
			`{"plant_id":"` + plantID + `","task_type":"watering","title":"x","frequency_kind":"fortnightly"}`,
			"validation_error",
		},
		{
			"custom frequency without interval",
			`{"plant_id":"` + plantID + `","task_type":"watering","title":"x","frequency_kind":"custom"}`,
			"validation_error",
		},
		{
			"custom interval below one day",
			`{"plant_id":"` + plantID + `","task_type":"watering","title":"x","frequency_kind":"custom","frequency_days":-2}`,
			"validation_error",
		},
		{
			"unknown task type",
			`{"plant_id":"` + plantID + `","task_type":"repotting","title":"x","frequency_kind":"weekly"}`,
			"validation_error",
		},
		{
			"missing title",
			`{"plant_id":"` + plantID + `","task_type":"watering","frequency_kind":"weekly"}`,
			"validation_error",
		},
		{
			"malformed preferred time",
			`{"plant_id":"` + plantID + `","task_type":"watering","title":"x","frequency_kind":"weekly","preferred_at":"8 o'clock"}`,
			"invalid_input",
		},
		{
			"malformed json",
			`{"plant_id":`,
			"invalid_input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/reminders", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body)
			}
			if apiErr := decodeError(t, rec); apiErr.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", apiErr.Code, tt.wantCode)
			}
		})
	}
}

func TestGetReminderNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/reminders/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if apiErr := decodeError(t, rec); apiErr.Code != "not_found" {
		t.Errorf("error code = %s, want not_found", apiErr.Code)
	}
}

func TestCompleteTwiceConflicts(t *testing.T) {
	ts := newTestServer(t)
	body := `{"plant_id":"` + ts.plant.ID.String() + `","task_type":"watering","title":"Water","frequency_kind":"once"}`

	rec := ts.do(t, http.MethodPost, "/reminders", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}
	var env struct {
		Data domain.Reminder `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	path := "/reminders/" + env.Data.ID.String() + "/complete"
	if rec := ts.do(t, http.MethodPost, path, ""); rec.Code != http.StatusOK {
		t.Fatalf("first complete status = %d: %s", rec.Code, rec.Body)
	}
	rec = ts.do(t, http.MethodPost, path, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("second complete status = %d, want 409", rec.Code)
	}
}

func TestSnoozeRejectsBadDuration(t *testing.T) {
	ts := newTestServer(t)
	body := `{"plant_id":"` + ts.plant.ID.String() + `","task_type":"watering","title":"Water","frequency_kind":"weekly"}`

	rec := ts.do(t, http.MethodPost, "/reminders", body)
	var env struct {
		Data domain.Reminder `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = ts.do(t, http.MethodPost, "/reminders/"+env.Data.ID.String()+"/snooze", `{"duration":"soon"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if apiErr := decodeError(t, rec); apiErr.Code != "invalid_input" {
		t.Errorf("error code = %s, want invalid_input", apiErr.Code)
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	auth := service.NewAuthService("test-secret", time.Hour)
	userID := uuid.New()
	token, err := auth.GenerateToken(userID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	protected := JWTAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := GetUserID(r.Context())
		if !ok || got != userID {
			t.Errorf("user id = %v ok=%v, want %s", got, ok, userID)
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
