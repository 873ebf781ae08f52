package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sapore/internal/models"
)

const (
	transportFailureFormat = "AI service temporarily unavailable: %v"
	genericFailureMessage  = "Sorry, something went wrong while answering. Please try again."

	defaultTransportTimeout = 60 * time.Second
)

// Transport sends an assembled proxy request and returns the assistant's
// reply text.
type Transport interface {
	Send(ctx context.Context, request *models.ProxyRequest) (string, error)
	Endpoint() string
}

// HTTPTransport posts proxy requests to a single endpoint. The external
// variant accepts either a response or a result field in the reply body;
// the platform variant accepts response only.
type HTTPTransport struct {
	endpoint string
	external bool
	client   *http.Client
}

// NewExternalTransport targets a user-configured absolute proxy URL.
func NewExternalTransport(endpoint string) *HTTPTransport {
	return &HTTPTransport{
		endpoint: endpoint,
		external: true,
		client:   &http.Client{Timeout: defaultTransportTimeout},
	}
}

// NewPlatformTransport targets the platform's own proxy endpoint.
func NewPlatformTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/ai-proxy",
		external: false,
		client:   &http.Client{Timeout: defaultTransportTimeout},
	}
}

// ResolveTransport picks the transport once, at construction time: an
// external proxy URL when configured, the platform endpoint otherwise.
func ResolveTransport(proxyURL, platformBaseURL string) Transport {
	if proxyURL != "" {
		return NewExternalTransport(proxyURL)
	}
	return NewPlatformTransport(platformBaseURL)
}

// Endpoint returns the resolved target URL.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Send posts the request and extracts the reply text. Error bodies are
// surfaced as errors, never as replies.
func (t *HTTPTransport) Send(ctx context.Context, request *models.ProxyRequest) (string, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to encode proxy request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create proxy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxy request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read proxy response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var proxyResp models.ProxyResponse
		if json.Unmarshal(body, &proxyResp) == nil && proxyResp.Error != "" {
			return "", fmt.Errorf("%s", proxyResp.Error)
		}
		if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
			return "", fmt.Errorf("%s", trimmed)
		}
		return "", fmt.Errorf("proxy returned status %d", resp.StatusCode)
	}

	var proxyResp models.ProxyResponse
	if err := json.Unmarshal(body, &proxyResp); err != nil {
		return "", fmt.Errorf("failed to decode proxy response: %w", err)
	}
	if proxyResp.Error != "" {
		return "", fmt.Errorf("%s", proxyResp.Error)
	}

	if proxyResp.Response != "" {
		return proxyResp.Response, nil
	}
	if t.external && proxyResp.Result != "" {
		return proxyResp.Result, nil
	}
	return "", nil
}

// Dispatcher runs a full chat turn against the configured transport.
// Failures are always converted to human-readable reply strings so the
// conversation keeps flowing; callers never see an error.
type Dispatcher struct {
	transport Transport
	logger    arbor.ILogger
	now       func() time.Time
}

// NewDispatcher creates a dispatcher bound to a transport.
func NewDispatcher(transport Transport, logger arbor.ILogger) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		logger:    logger,
		now:       time.Now,
	}
}

// Respond executes one conversational turn: render the recommendation
// context, build the system prompt, append the user turn, send the history
// to the transport, and record the reply. Turns for the same session are
// serialized; a new turn cancels the session's previous in-flight call.
func (d *Dispatcher) Respond(ctx context.Context, session *Session, message string, recommendations []models.ScoredPlace, userLocation *models.Location, selected *models.SelectedRestaurant) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().
				Str("session_id", session.ID).
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("Chat turn panicked")
			reply = genericFailureMessage
		}
	}()

	session.cancelInFlight()

	session.mu.Lock()
	defer session.mu.Unlock()

	callCtx, cancel := context.WithCancel(ctx)
	session.setCancel(cancel)
	defer func() {
		session.clearCancel()
		cancel()
	}()

	contextText := BuildContext(recommendations, userLocation, selected)
	systemPrompt := BuildSystemPrompt(contextText, d.now())

	session.History.Append(models.RoleUser, message)

	turns := session.History.Snapshot()
	messages := make([]models.ConversationTurn, 0, len(turns)+1)
	messages = append(messages, models.ConversationTurn{Role: models.RoleSystem, Content: systemPrompt})
	messages = append(messages, turns...)

	request := &models.ProxyRequest{
		Messages: messages,
		Metadata: models.ProxyMetadata{
			HasRecommendations:    len(recommendations) > 0,
			HasUserLocation:       userLocation != nil,
			HasSelectedRestaurant: selected != nil,
			ConversationLength:    session.History.Len(),
		},
	}

	response, err := d.transport.Send(callCtx, request)
	if err != nil {
		d.logger.Warn().
			Str("session_id", session.ID).
			Str("endpoint", d.transport.Endpoint()).
			Err(err).
			Msg("Proxy transport failed")
		response = fmt.Sprintf(transportFailureFormat, err)
	}

	session.History.Append(models.RoleAssistant, response)
	session.touch()

	return response
}
