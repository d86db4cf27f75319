package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// API is the slice of the chat backend a widget needs. The server
// multiplexes all of it through one action endpoint; tests substitute
// a fake.
type API interface {
	GetConversations(ctx context.Context) ([]models.ConversationView, error)
	GetMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	SendMessage(ctx context.Context, conversationID, text string) (*models.Message, error)
	CreateConversation(ctx context.Context, participantID string, role models.Role) (*models.Conversation, error)
	MarkRead(ctx context.Context, conversationID string) error
}

// HTTPClient talks to the multiplexed POST /api/chat endpoint.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a client for the chat endpoint at baseURL,
// authenticating every call with the given session token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type actionRequest struct {
	Action          string      `json:"action"`
	ConversationID  string      `json:"conversationId,omitempty"`
	Text            string      `json:"text,omitempty"`
	ParticipantID   string      `json:"participantId,omitempty"`
	ParticipantRole models.Role `json:"participantRole,omitempty"`
}

type actionResponse struct {
	Success       bool                      `json:"success"`
	Error         string                    `json:"error"`
	Conversations []models.ConversationView `json:"conversations"`
	Messages      []models.Message          `json:"messages"`
	Message       *models.Message           `json:"message"`
	Conversation  *models.Conversation      `json:"conversation"`
}

func (c *HTTPClient) do(ctx context.Context, req actionRequest) (*actionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var resp actionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", req.Action, err)
	}
	if !resp.Success {
		if resp.Error == "" {
			resp.Error = httpResp.Status
		}
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

// GetConversations fetches the user's conversation list.
func (c *HTTPClient) GetConversations(ctx context.Context) ([]models.ConversationView, error) {
	resp, err := c.do(ctx, actionRequest{Action: "get_conversations"})
	if err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// GetMessages fetches one conversation's messages, oldest first.
func (c *HTTPClient) GetMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	resp, err := c.do(ctx, actionRequest{Action: "get_messages", ConversationID: conversationID})
	if err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SendMessage appends a message and returns the server-assigned record.
func (c *HTTPClient) SendMessage(ctx context.Context, conversationID, text string) (*models.Message, error) {
	resp, err := c.do(ctx, actionRequest{Action: "send_message", ConversationID: conversationID, Text: text})
	if err != nil {
		return nil, err
	}
	return resp.Message, nil
}

// CreateConversation returns the conversation with participantID,
// creating it if needed.
func (c *HTTPClient) CreateConversation(ctx context.Context, participantID string, role models.Role) (*models.Conversation, error) {
	resp, err := c.do(ctx, actionRequest{Action: "create_conversation", ParticipantID: participantID, ParticipantRole: role})
	if err != nil {
		return nil, err
	}
	return resp.Conversation, nil
}

// MarkRead marks every incoming message in the conversation read.
func (c *HTTPClient) MarkRead(ctx context.Context, conversationID string) error {
	_, err := c.do(ctx, actionRequest{Action: "mark_read", ConversationID: conversationID})
	return err
}
