package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sapore/internal/interfaces"
	"github.com/ternarybob/sapore/internal/models"
	"github.com/ternarybob/sapore/internal/services/assistant"
	"github.com/ternarybob/sapore/internal/services/recommend"
)

type fakePlacesService struct {
	places []models.Place
	err    error
}

func (f *fakePlacesService) NearbySearch(ctx context.Context, location models.Location, radius int) ([]models.Place, error) {
	return f.places, f.err
}

func (f *fakePlacesService) PlaceDetails(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	return &models.PlaceDetails{}, nil
}

type fakePreferenceStorage struct {
	profiles map[string]*models.PreferenceProfile
	err      error
}

func newFakePreferenceStorage() *fakePreferenceStorage {
	return &fakePreferenceStorage{profiles: make(map[string]*models.PreferenceProfile)}
}

func (f *fakePreferenceStorage) SaveProfile(ctx context.Context, profile *models.PreferenceProfile) error {
	if f.err != nil {
		return f.err
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakePreferenceStorage) GetProfile(ctx context.Context, userID string) (*models.PreferenceProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[userID], nil
}

func (f *fakePreferenceStorage) DeleteProfile(ctx context.Context, userID string) error {
	delete(f.profiles, userID)
	return nil
}

func (f *fakePreferenceStorage) CountProfiles(ctx context.Context) (int, error) {
	return len(f.profiles), nil
}

type fakeLLMService struct {
	reply string
	err   error
	got   []interfaces.Message
}

func (f *fakeLLMService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	f.got = messages
	return f.reply, f.err
}

func (f *fakeLLMService) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeLLMService) Close() error                          { return nil }

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRecommendationsHandler(t *testing.T) {
	placesService := &fakePlacesService{
		places: []models.Place{
			{
				PlaceID:  "p1",
				Name:     "Sakura Sushi",
				Location: models.Location{Lat: 35.6905, Lng: 139.6917},
				Rating:   floatPtr(4.5),
				Types:    []string{"restaurant", "japanese"},
			},
			{
				PlaceID:  "p2",
				Name:     "Blue Bottle Cafe",
				Location: models.Location{Lat: 35.6900, Lng: 139.6920},
				Rating:   floatPtr(4.0),
				Types:    []string{"cafe"},
			},
		},
	}

	handler := NewRecommendHandler(
		recommend.NewRecommender(arbor.NewLogger(), 10),
		placesService,
		newFakePreferenceStorage(),
		arbor.NewLogger(),
	)

	hour := 8
	rec := postJSON(t, handler.RecommendationsHandler, "/api/recommendations", RecommendRequest{
		Location: models.Location{Lat: 35.6895, Lng: 139.6917},
		Hour:     &hour,
		Weather:  models.WeatherRainy,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])

	// At 8am in the rain the cafe gets +30 context score and ranks first.
	recommendations := body["recommendations"].([]interface{})
	first := recommendations[0].(map[string]interface{})
	assert.Equal(t, "Blue Bottle Cafe", first["name"])
	assert.Equal(t, float64(30), first["context_score"])
}

func TestRecommendationsHandler_MissingLocation(t *testing.T) {
	handler := NewRecommendHandler(
		recommend.NewRecommender(arbor.NewLogger(), 10),
		&fakePlacesService{},
		newFakePreferenceStorage(),
		arbor.NewLogger(),
	)

	rec := postJSON(t, handler.RecommendationsHandler, "/api/recommendations", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendationsHandler_PlacesFailure(t *testing.T) {
	handler := NewRecommendHandler(
		recommend.NewRecommender(arbor.NewLogger(), 10),
		&fakePlacesService{err: fmt.Errorf("quota exceeded")},
		newFakePreferenceStorage(),
		arbor.NewLogger(),
	)

	rec := postJSON(t, handler.RecommendationsHandler, "/api/recommendations", RecommendRequest{
		Location: models.Location{Lat: 35.6895, Lng: 139.6917},
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestLearnHandler(t *testing.T) {
	storage := newFakePreferenceStorage()
	handler := NewRecommendHandler(
		recommend.NewRecommender(arbor.NewLogger(), 10),
		&fakePlacesService{},
		storage,
		arbor.NewLogger(),
	)

	rec := postJSON(t, handler.LearnHandler, "/api/preferences/learn", LearnRequest{
		UserID: "user-1",
		Place: models.Place{
			PlaceID:    "p1",
			Name:       "Sakura Sushi",
			Types:      []string{"restaurant", "japanese"},
			PriceLevel: intPtr(1),
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	profile := storage.profiles["user-1"]
	require.NotNil(t, profile)
	assert.Contains(t, profile.Preferences.CuisineTypes, "japanese")
	assert.Equal(t, models.PriceRangeLow, profile.Preferences.PriceRange)
}

func TestChatHandler(t *testing.T) {
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ProxyResponse{Response: "Sakura Sushi is my pick."})
	}))
	defer proxy.Close()

	sessions := assistant.NewSessionManager(arbor.NewLogger(), 15)
	dispatcher := assistant.NewDispatcher(assistant.NewExternalTransport(proxy.URL), arbor.NewLogger())
	handler := NewChatHandler(dispatcher, sessions, arbor.NewLogger())

	rec := postJSON(t, handler.ChatHandler, "/api/chat", ChatRequest{
		Message: "what do you recommend?",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Sakura Sushi is my pick.", body["response"])
	assert.NotEmpty(t, body["session_id"], "a session is allocated when none is given")
}

func TestChatHandler_MissingMessage(t *testing.T) {
	sessions := assistant.NewSessionManager(arbor.NewLogger(), 15)
	dispatcher := assistant.NewDispatcher(assistant.NewExternalTransport("http://127.0.0.1:1"), arbor.NewLogger())
	handler := NewChatHandler(dispatcher, sessions, arbor.NewLogger())

	rec := postJSON(t, handler.ChatHandler, "/api/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClearHandler(t *testing.T) {
	sessions := assistant.NewSessionManager(arbor.NewLogger(), 15)
	session := sessions.GetOrCreate("session-1")
	session.History.Append(models.RoleUser, "hello")

	dispatcher := assistant.NewDispatcher(assistant.NewExternalTransport("http://127.0.0.1:1"), arbor.NewLogger())
	handler := NewChatHandler(dispatcher, sessions, arbor.NewLogger())

	rec := postJSON(t, handler.ClearHandler, "/api/chat/clear", ClearRequest{SessionID: "session-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, sessions.Get("session-1"))
}

func TestProxyHandler(t *testing.T) {
	llm := &fakeLLMService{reply: "hello from the model"}
	handler := NewProxyHandler(llm, arbor.NewLogger())

	rec := postJSON(t, handler.ProxyHandler, "/api/ai-proxy", models.ProxyRequest{
		Messages: []models.ConversationTurn{
			{Role: models.RoleSystem, Content: "you are FoodieBot"},
			{Role: models.RoleUser, Content: "hi"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ProxyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello from the model", resp.Response)
	require.Len(t, llm.got, 2)
	assert.Equal(t, "system", llm.got[0].Role)
}

func TestProxyHandler_EmptyMessages(t *testing.T) {
	handler := NewProxyHandler(&fakeLLMService{}, arbor.NewLogger())

	rec := postJSON(t, handler.ProxyHandler, "/api/ai-proxy", models.ProxyRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProxyHandler_ModelFailure(t *testing.T) {
	handler := NewProxyHandler(&fakeLLMService{err: fmt.Errorf("rate limited")}, arbor.NewLogger())

	rec := postJSON(t, handler.ProxyHandler, "/api/ai-proxy", models.ProxyRequest{
		Messages: []models.ConversationTurn{{Role: models.RoleUser, Content: "hi"}},
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.ProxyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "rate limited")
}

func TestAPIHandler(t *testing.T) {
	sessions := assistant.NewSessionManager(arbor.NewLogger(), 15)
	handler := NewAPIHandler(sessions, nil, assistant.NewPlatformTransport("http://localhost:8080"), arbor.NewLogger())

	rec := httptest.NewRecorder()
	handler.VersionHandler(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["version"])

	rec = httptest.NewRecorder()
	handler.HealthHandler(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	sessions.GetOrCreate("s1")
	rec = httptest.NewRecorder()
	handler.StatusHandler(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, float64(1), body["sessions"])
	assert.Equal(t, "http://localhost:8080/api/ai-proxy", body["proxy_endpoint"])

	rec = httptest.NewRecorder()
	handler.NotFoundHandler(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
