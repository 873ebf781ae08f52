package models

import "time"

// Role identifies the sender of a conversation turn
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one role-tagged message in a chat session
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ProxyMetadata carries request flags for the proxy backend. The actual
// context is already embedded in the system message; these are for logging.
type ProxyMetadata struct {
	HasRecommendations    bool `json:"hasRecommendations"`
	HasUserLocation       bool `json:"hasUserLocation"`
	HasSelectedRestaurant bool `json:"hasSelectedRestaurant"`
	ConversationLength    int  `json:"conversationLength"`
}

// ProxyRequest is the JSON body posted to the assistant proxy endpoint
type ProxyRequest struct {
	Messages []ConversationTurn `json:"messages" validate:"required,min=1"`
	Metadata ProxyMetadata      `json:"metadata"`
}

// ProxyResponse is the proxy endpoint's JSON body. The platform endpoint
// answers with Response; external proxies may answer with Result instead.
// Error is populated on non-2xx responses.
type ProxyResponse struct {
	Response string `json:"response,omitempty"`
	Result   string `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PreferenceProfile is the stored form of a user's learned preferences
type PreferenceProfile struct {
	ID          string          `badgerhold:"key" json:"id"`
	Preferences UserPreferences `json:"preferences"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
