package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

// MockProspectRepository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) List(ctx context.Context, status string, limit, offset int) ([]entity.Prospect, int, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]entity.Prospect), args.Int(1), args.Error(2)
}

func (m *MockProspectRepository) FindByID(ctx context.Context, id int64) (*entity.Prospect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Prospect), args.Error(1)
}

func (m *MockProspectRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockEventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) List(ctx context.Context, eventType string, limit, offset int) ([]entity.Event, int, error) {
	args := m.Called(ctx, eventType, limit, offset)
	return args.Get(0).([]entity.Event), args.Int(1), args.Error(2)
}

func (m *MockEventRepository) ListByProspect(ctx context.Context, prospectID int64) ([]entity.Event, error) {
	args := m.Called(ctx, prospectID)
	return args.Get(0).([]entity.Event), args.Error(1)
}

func (m *MockEventRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockEventRepository) LastEventAt(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func TestListProspectsClampsLimit(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	eventRepo := new(MockEventRepository)
	prospectRepo.On("List", mock.Anything, "connected", 100, 0).Return([]entity.Prospect{}, 0, nil)

	handler := NewProspectHandler(prospectRepo, eventRepo)

	req := httptest.NewRequest(http.MethodGet, "/prospects?status=connected&limit=9999", nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	prospectRepo.AssertExpectations(t)
}

func TestGetProspectReturnsDetailWithEvents(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	eventRepo := new(MockEventRepository)

	prospect := &entity.Prospect{ID: 7, LinkedInURL: "https://li/x", Status: entity.StatusConnected}
	prospectID := int64(7)
	prospectRepo.On("FindByID", mock.Anything, prospectID).Return(prospect, nil)
	eventRepo.On("ListByProspect", mock.Anything, prospectID).Return([]entity.Event{
		{ID: 1, ProspectID: &prospectID, EventType: entity.EventConnectionSent},
		{ID: 2, ProspectID: &prospectID, EventType: entity.EventConnectionAccepted},
	}, nil)

	handler := NewProspectHandler(prospectRepo, eventRepo)

	r := chi.NewRouter()
	r.Get("/prospects/{id}", handler.HandleGet)

	req := httptest.NewRequest(http.MethodGet, "/prospects/7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var detail ProspectDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, int64(7), detail.Prospect.ID)
	assert.Len(t, detail.Events, 2)
}

func TestGetProspectNotFound(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	eventRepo := new(MockEventRepository)
	prospectRepo.On("FindByID", mock.Anything, int64(99)).Return(nil, entity.ErrProspectNotFound)

	handler := NewProspectHandler(prospectRepo, eventRepo)

	r := chi.NewRouter()
	r.Get("/prospects/{id}", handler.HandleGet)

	req := httptest.NewRequest(http.MethodGet, "/prospects/99", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsProjection(t *testing.T) {
	prospectRepo := new(MockProspectRepository)
	eventRepo := new(MockEventRepository)

	prospectRepo.On("CountByStatus", mock.Anything).Return(map[string]int{
		entity.StatusQualified:      5,
		entity.StatusConnectionSent: 6,
		entity.StatusConnected:      2,
		entity.StatusExpired:        0,
		entity.StatusBlacklisted:    1,
	}, nil)
	eventRepo.On("CountAll", mock.Anything).Return(20, nil)
	last := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	eventRepo.On("LastEventAt", mock.Anything).Return(&last, nil)

	handler := NewStatsHandler(prospectRepo, eventRepo)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 14, stats.TotalProspects)
	assert.Equal(t, 20, stats.TotalEvents)
	assert.InDelta(t, 0.25, stats.AcceptanceRate, 1e-9)
	assert.Equal(t, last, *stats.LastWebhookReceived)
}

func TestListEventsUsesDefaults(t *testing.T) {
	eventRepo := new(MockEventRepository)
	eventRepo.On("List", mock.Anything, "", 100, 0).Return([]entity.Event{}, 0, nil)

	handler := NewEventHandler(eventRepo)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	eventRepo.AssertExpectations(t)
}
