package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrSessionExpired signals that the server rejected a previously valid
// credential. The session store has already been cleared when this is
// returned; the caller must re-authenticate.
var ErrSessionExpired = errors.New("session expired, login required")

// APIError carries a structured error response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// Property is the client view of a listing with parsed payloads.
type Property struct {
	ID       string `json:"id"`
	AgentID  string `json:"agent_id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Status   string `json:"status"`
	Location struct {
		Address   string  `json:"address"`
		City      string  `json:"city"`
		Latitude  float64 `json:"lat"`
		Longitude float64 `json:"lng"`
	} `json:"location"`
	Images   []string `json:"images"`
	Features []string `json:"features"`
}

// Conversation is the client view of a conversation.
type Conversation struct {
	ID           string    `json:"id"`
	PropertyID   *string   `json:"property_id,omitempty"`
	Participants []string  `json:"participants"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message is the client view of a message. Mine reports whether the stored
// profile sent it, for left/right alignment in a UI.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

// Mine reports whether the message was sent by the session user.
func (m Message) Mine(session *Session) bool {
	return session != nil && m.SenderID == session.User.ID
}

// Client talks to the realty service, attaching the stored bearer token to
// protected calls and clearing the session when the server rejects it.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *SessionStore
}

// New builds a client around a base URL and session store.
func New(baseURL string, sessions *SessionStore) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		sessions: sessions,
	}
}

// Sessions exposes the underlying store.
func (c *Client) Sessions() *SessionStore {
	return c.sessions
}

type authPayload struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Register creates an account and persists the returned session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &payload, false); err != nil {
		return nil, err
	}
	return c.saveSession(payload)
}

// Login authenticates and persists the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &payload, false); err != nil {
		return nil, err
	}
	return c.saveSession(payload)
}

// Me fetches the profile behind the stored token.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Properties lists public listings. No credential involved.
func (c *Client) Properties(ctx context.Context) ([]Property, error) {
	var properties []Property
	if err := c.do(ctx, http.MethodGet, "/api/properties", nil, &properties, false); err != nil {
		return nil, err
	}
	return properties, nil
}

// Conversations lists the session user's conversations.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &conversations, true); err != nil {
		return nil, err
	}
	return conversations, nil
}

// Messages fetches a conversation's history.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	var messages []Message
	path := "/api/conversations/" + conversationID + "/messages"
	if err := c.do(ctx, http.MethodGet, path, nil, &messages, true); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage appends a message to a conversation.
func (c *Client) SendMessage(ctx context.Context, conversationID, body string) (*Message, error) {
	var msg Message
	path := "/api/conversations/" + conversationID + "/messages"
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"body": body}, &msg, true); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) saveSession(payload authPayload) (*Session, error) {
	session := &Session{Token: payload.Token, User: payload.User}
	if err := c.sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	hadSession := false
	if authenticated {
		session := c.sessions.Current()
		if session == nil {
			return ErrSessionExpired
		}
		hadSession = true
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// the server no longer accepts this credential; forget it so the
		// caller is forced back through login
		if hadSession {
			_ = c.sessions.Clear()
			return ErrSessionExpired
		}
	}

	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Code: "UNKNOWN", Message: resp.Status}
		if envelope.Error != nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out != nil && envelope.Data != nil {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}
