package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/langfuse"
	"github.com/healthsync/healthsync/pkg/pagination"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) UpdateWeight(ctx context.Context, id uuid.UUID, weightKG float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.WeightKG = &weightKG
	return nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// addUser stores a named user and returns its ID.
func (m *MockUserRepository) addUser(name string) uuid.UUID {
	u := &domain.User{ID: uuid.New(), Name: name}
	m.users[u.ID] = u
	return u.ID
}

// MockProgressRepository is a mock implementation of ProgressRepository
type MockProgressRepository struct {
	entries []domain.ProgressEntry
	err     error
}

func NewMockProgressRepository() *MockProgressRepository {
	return &MockProgressRepository{}
}

func (m *MockProgressRepository) Create(ctx context.Context, entry *domain.ProgressEntry) error {
	if m.err != nil {
		return m.err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

// List returns entries newest first, honouring the limit+1 contract.
func (m *MockProgressRepository) List(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) ([]domain.ProgressEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.ProgressEntry
	for _, e := range m.entries {
		if e.UserID == userID && (filter.From == nil || !e.Timestamp.Before(*filter.From)) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if len(result) > limit+1 {
		result = result[:limit+1]
	}
	return result, nil
}

func (m *MockProgressRepository) Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.ProgressEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.ProgressEntry
	for _, e := range m.entries {
		if e.UserID == userID && !e.Timestamp.Before(from) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}

func (m *MockProgressRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.ProgressEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.entries {
		e := &m.entries[i]
		if e.UserID == userID && e.ClientRequestID != nil && *e.ClientRequestID == clientRequestID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockProgressRepository) SetError(err error) {
	m.err = err
}

// MockSymptomLogRepository is a mock implementation of SymptomLogRepository
type MockSymptomLogRepository struct {
	logs []domain.SymptomLog
	err  error
}

func NewMockSymptomLogRepository() *MockSymptomLogRepository {
	return &MockSymptomLogRepository{}
}

func (m *MockSymptomLogRepository) Create(ctx context.Context, log *domain.SymptomLog) error {
	if m.err != nil {
		return m.err
	}
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *MockSymptomLogRepository) Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.SymptomLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SymptomLog
	for _, l := range m.logs {
		if l.UserID == userID && !l.Timestamp.Before(from) {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}

func (m *MockSymptomLogRepository) SetError(err error) {
	m.err = err
}

// MockMealLogRepository is a mock implementation of MealLogRepository
type MockMealLogRepository struct {
	meals []domain.MealLog
	err   error
}

func NewMockMealLogRepository() *MockMealLogRepository {
	return &MockMealLogRepository{}
}

func (m *MockMealLogRepository) Create(ctx context.Context, meal *domain.MealLog) error {
	if m.err != nil {
		return m.err
	}
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	m.meals = append(m.meals, *meal)
	return nil
}

func (m *MockMealLogRepository) Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.MealLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.MealLog
	for _, meal := range m.meals {
		if meal.UserID == userID && !meal.Timestamp.Before(from) {
			result = append(result, meal)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}

func (m *MockMealLogRepository) SetError(err error) {
	m.err = err
}

// MockMealPlanRepository is a mock implementation of MealPlanRepository
type MockMealPlanRepository struct {
	plans   []domain.MealPlan
	updates int
	err     error
}

func NewMockMealPlanRepository() *MockMealPlanRepository {
	return &MockMealPlanRepository{}
}

func (m *MockMealPlanRepository) Create(ctx context.Context, plan *domain.MealPlan) error {
	if m.err != nil {
		return m.err
	}
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = fixedNow
	}
	m.plans = append(m.plans, *plan)
	return nil
}

func (m *MockMealPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.plans {
		if m.plans[i].ID == id {
			plan := m.plans[i]
			return &plan, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockMealPlanRepository) List(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]domain.MealPlan, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.MealPlan
	for _, p := range m.plans {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() > result[j].ID.String()
	})
	if cursor != nil {
		for i, p := range result {
			if p.ID == cursor.ID {
				result = result[i+1:]
				break
			}
		}
	}
	if len(result) > limit+1 {
		result = result[:limit+1]
	}
	return result, nil
}

func (m *MockMealPlanRepository) Update(ctx context.Context, plan *domain.MealPlan) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.plans {
		if m.plans[i].ID == plan.ID {
			m.plans[i] = *plan
			m.updates++
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockAlertRepository is a mock implementation of AlertRepository
type MockAlertRepository struct {
	alerts []domain.HealthAlert
	err    error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{}
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *domain.HealthAlert) error {
	if m.err != nil {
		return m.err
	}
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	m.alerts = append(m.alerts, *alert)
	return nil
}

// List returns alerts newest first.
func (m *MockAlertRepository) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.HealthAlert, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.HealthAlert
	for i := len(m.alerts) - 1; i >= 0; i-- {
		a := m.alerts[i]
		if a.UserID == userID && (!unreadOnly || !a.IsRead) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *MockAlertRepository) MarkRead(ctx context.Context, userID, alertID uuid.UUID) (*domain.HealthAlert, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.alerts {
		if m.alerts[i].ID == alertID && m.alerts[i].UserID == userID {
			m.alerts[i].IsRead = true
			a := m.alerts[i]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockAlertRepository) SetError(err error) {
	m.err = err
}

// mockLLM records the prompts it receives.
type mockLLM struct {
	answer     string
	err        error
	lastSystem string
	lastUser   string
}

func (m *mockLLM) Complete(ctx context.Context, system, user string) (string, error) {
	m.lastSystem, m.lastUser = system, user
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockLLM) Name() string { return "mock" }

// mockLangfuse records traces and scores.
type mockLangfuse struct {
	traces []langfuse.TraceInput
	scores []langfuse.ScoreInput
	err    error
}

func (m *mockLangfuse) IsEnabled() bool { return true }

func (m *mockLangfuse) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.traces = append(m.traces, in)
	return "trace-1", m.err
}

func (m *mockLangfuse) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return m.err
}

func (m *mockLangfuse) Close(ctx context.Context) error { return nil }

// Helper functions
func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// fixedNow is the reference instant used by time-dependent tests.
var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return fixedNow.AddDate(0, 0, -n)
}
