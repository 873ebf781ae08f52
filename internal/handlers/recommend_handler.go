package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sapore/internal/interfaces"
	"github.com/ternarybob/sapore/internal/models"
	"github.com/ternarybob/sapore/internal/services/recommend"
)

// RecommendRequest is the payload for POST /api/recommendations
type RecommendRequest struct {
	Location    models.Location         `json:"location" validate:"required"`
	Radius      int                     `json:"radius,omitempty"`
	Preferences *models.UserPreferences `json:"preferences,omitempty"`
	UserID      string                  `json:"user_id,omitempty"`
	Hour        *int                    `json:"hour,omitempty" validate:"omitempty,min=0,max=23"`
	Weather     models.Weather          `json:"weather,omitempty"`
}

// LearnRequest is the payload for POST /api/preferences/learn
type LearnRequest struct {
	UserID string       `json:"user_id" validate:"required"`
	Place  models.Place `json:"place" validate:"required"`
}

// RecommendHandler handles recommendation HTTP requests
type RecommendHandler struct {
	recommender   *recommend.Recommender
	placesService interfaces.PlacesService
	preferences   interfaces.PreferenceStorage
	validate      *validator.Validate
	logger        arbor.ILogger
	now           func() time.Time
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(
	recommender *recommend.Recommender,
	placesService interfaces.PlacesService,
	preferences interfaces.PreferenceStorage,
	logger arbor.ILogger,
) *RecommendHandler {
	return &RecommendHandler{
		recommender:   recommender,
		placesService: placesService,
		preferences:   preferences,
		validate:      validator.New(),
		logger:        logger,
		now:           time.Now,
	}
}

// RecommendationsHandler handles POST /api/recommendations requests. It
// searches places near the given location, scores them against the user's
// preferences, and applies the contextual rerank for the current hour.
func (h *RecommendHandler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode recommendation request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	prefs := h.resolvePreferences(r, &req)

	places, err := h.placesService.NearbySearch(r.Context(), req.Location, req.Radius)
	if err != nil {
		h.logger.Error().Err(err).Msg("Nearby search failed")
		WriteError(w, http.StatusBadGateway, "Place search failed: "+err.Error())
		return
	}

	scored := h.recommender.Recommend(places, req.Location, prefs)

	hour := h.now().Hour()
	if req.Hour != nil {
		hour = *req.Hour
	}
	reranked := recommend.Rerank(scored, hour, req.Weather)

	h.logger.Info().
		Int("places_found", len(places)).
		Int("recommendations", len(reranked)).
		Int("hour", hour).
		Str("weather", string(req.Weather)).
		Msg("Recommendations generated")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"count":           len(reranked),
		"recommendations": reranked,
	})
}

// resolvePreferences uses the request preferences when present, falling back
// to the user's stored profile, then to empty preferences.
func (h *RecommendHandler) resolvePreferences(r *http.Request, req *RecommendRequest) models.UserPreferences {
	if req.Preferences != nil {
		return *req.Preferences
	}

	if req.UserID != "" && h.preferences != nil {
		profile, err := h.preferences.GetProfile(r.Context(), req.UserID)
		if err != nil {
			h.logger.Warn().Err(err).Str("user_id", req.UserID).Msg("Failed to load preference profile")
		} else if profile != nil {
			return profile.Preferences
		}
	}

	return models.UserPreferences{}
}

// LearnHandler handles POST /api/preferences/learn requests. It folds the
// selected place into the user's stored preference profile.
func (h *RecommendHandler) LearnHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req LearnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode learn request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	var prefs models.UserPreferences
	profile, err := h.preferences.GetProfile(r.Context(), req.UserID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to load preference profile")
		WriteError(w, http.StatusInternalServerError, "Failed to load preferences")
		return
	}
	if profile != nil {
		prefs = profile.Preferences
	}

	updated := recommend.LearnPreferences(prefs, req.Place)

	if err := h.preferences.SaveProfile(r.Context(), &models.PreferenceProfile{
		ID:          req.UserID,
		Preferences: updated,
	}); err != nil {
		h.logger.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to save preference profile")
		WriteError(w, http.StatusInternalServerError, "Failed to save preferences")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"preferences": updated,
	})
}
