package chatclient

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/logger"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// State of a chat widget
type State int

const (
	StateClosed State = iota
	StateConversationsList
	StateActiveConversation
)

// DisplayMessage is a message as rendered in the widget. While a send
// is in flight the entry is pending and identified by a
// client-generated temporary id instead of a server id.
type DisplayMessage struct {
	models.Message
	TempID  string `json:"tempId,omitempty"`
	Pending bool   `json:"pending,omitempty"`
}

// Config configures one widget instance.
type Config struct {
	API    API
	UserID primitive.ObjectID
	Role   models.Role

	// AdminContact is the fixed support identity pinned into the sidebar
	// for non-admin users without a round trip.
	AdminContact models.Participant

	// PollInterval defaults to 5 seconds.
	PollInterval time.Duration
	// RequestTimeout bounds each poll tick. Defaults to PollInterval.
	RequestTimeout time.Duration

	// Notify, when set, receives transient user-facing error messages
	// (failed send, failed conversation creation). Background poll
	// failures are logged, never surfaced.
	Notify func(message string)
}

// Widget is the view-model of one open chat widget: a conversation
// sidebar, one active conversation, a compose draft and a poll loop
// that keeps both fresh. All liveness is client-driven polling; each
// tick is an independent cancellable unit of work so a slow response
// never blocks the next tick.
type Widget struct {
	api      API
	userID   primitive.ObjectID
	role     models.Role
	admin    models.Participant
	interval time.Duration
	timeout  time.Duration
	notify   func(string)
	log      *logger.Logger

	mu            sync.Mutex
	state         State
	conversations []models.ConversationView
	activeID      string
	messages      []DisplayMessage
	draft         string

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWidget creates a widget in the Closed state.
func NewWidget(cfg Config) *Widget {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = interval
	}
	notify := cfg.Notify
	if notify == nil {
		notify = func(string) {}
	}
	return &Widget{
		api:      cfg.API,
		userID:   cfg.UserID,
		role:     cfg.Role,
		admin:    cfg.AdminContact,
		interval: interval,
		timeout:  timeout,
		notify:   notify,
		log:      logger.New("chatclient"),
		state:    StateClosed,
	}
}

// Open moves the widget to the conversations list, fetches it once and
// starts the poll loop. Opening an already-open widget is a no-op.
func (w *Widget) Open(ctx context.Context) error {
	w.mu.Lock()
	if w.state != StateClosed {
		w.mu.Unlock()
		return nil
	}
	w.state = StateConversationsList

	pollCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.mu.Unlock()

	w.refreshConversations(ctx)
	go w.pollLoop(pollCtx)
	return nil
}

// Select makes conversationID the active conversation, fetches its
// messages and marks them read.
func (w *Widget) Select(ctx context.Context, conversationID string) error {
	w.mu.Lock()
	if w.state == StateClosed {
		w.mu.Unlock()
		return nil
	}
	w.state = StateActiveConversation
	w.activeID = conversationID
	w.messages = nil
	w.mu.Unlock()

	w.refreshMessages(ctx, conversationID)

	if err := w.api.MarkRead(ctx, conversationID); err != nil {
		w.log.Warn("mark read failed for %s: %v", conversationID, err)
	}
	w.refreshConversations(ctx)
	return nil
}

// Close stops the poll loop and resets the widget.
func (w *Widget) Close() {
	w.mu.Lock()
	if w.state == StateClosed {
		w.mu.Unlock()
		return
	}
	w.state = StateClosed
	w.activeID = ""
	w.messages = nil
	w.conversations = nil
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Send appends an optimistic entry for text, clears the draft and
// issues the send. On success the temporary entry is swapped for the
// server record; on failure it is removed and the draft restored.
func (w *Widget) Send(ctx context.Context, text string) error {
	w.mu.Lock()
	if w.state != StateActiveConversation {
		w.mu.Unlock()
		return nil
	}
	conversationID := w.activeID

	tempID := uuid.NewString()
	convOID, _ := primitive.ObjectIDFromHex(conversationID)
	w.messages = append(w.messages, DisplayMessage{
		Message: models.Message{
			ConversationID: convOID,
			SenderID:       w.userID,
			SenderRole:     w.role,
			Text:           text,
			MessageType:    models.MessageTypeText,
			CreatedAt:      time.Now(),
		},
		TempID:  tempID,
		Pending: true,
	})
	w.draft = ""
	w.mu.Unlock()

	msg, err := w.api.SendMessage(ctx, conversationID, text)
	if err != nil {
		w.rollbackSend(tempID, text)
		w.notify("Message failed to send")
		return err
	}

	w.confirmSend(tempID, msg)
	return nil
}

// ContactSupport opens (or creates) the conversation with the pinned
// admin contact and selects it. Only meaningful for non-admin users.
func (w *Widget) ContactSupport(ctx context.Context) error {
	conv, err := w.api.CreateConversation(ctx, w.admin.Email, models.RoleAdmin)
	if err != nil {
		w.notify("Could not reach support")
		return err
	}
	return w.Select(ctx, conv.ID.Hex())
}

// AdminContact returns the pinned support identity. No round trip is
// involved; the identity is fixed configuration.
func (w *Widget) AdminContact() models.Participant {
	return w.admin
}

// State returns the widget's current state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Conversations returns a snapshot of the sidebar.
func (w *Widget) Conversations() []models.ConversationView {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.ConversationView, len(w.conversations))
	copy(out, w.conversations)
	return out
}

// Messages returns a snapshot of the active conversation's messages.
func (w *Widget) Messages() []DisplayMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]DisplayMessage, len(w.messages))
	copy(out, w.messages)
	return out
}

// Draft returns the compose box text.
func (w *Widget) Draft() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// SetDraft replaces the compose box text.
func (w *Widget) SetDraft(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = text
}

// pollLoop re-fetches the active conversation and the sidebar on a
// fixed interval until the widget closes.
func (w *Widget) pollLoop(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick runs one poll as its own timed unit of work.
func (w *Widget) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	w.mu.Lock()
	state, activeID := w.state, w.activeID
	w.mu.Unlock()

	if state == StateActiveConversation {
		w.refreshMessages(tickCtx, activeID)
	}
	if state != StateClosed {
		w.refreshConversations(tickCtx)
	}
}

// refreshConversations replaces the sidebar wholesale. A failed poll
// keeps the last successfully-fetched state on screen.
func (w *Widget) refreshConversations(ctx context.Context) {
	views, err := w.api.GetConversations(ctx)
	if err != nil {
		w.log.Debug("conversation poll failed: %v", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return
	}
	w.conversations = views
}

// refreshMessages replaces the active message list wholesale with the
// server's response, carrying pending optimistic entries over the
// replacement. Last write wins; there is no merge.
func (w *Widget) refreshMessages(ctx context.Context, conversationID string) {
	fetched, err := w.api.GetMessages(ctx, conversationID)
	if err != nil {
		w.log.Debug("message poll failed for %s: %v", conversationID, err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// A slow response for a conversation that is no longer active is
	// simply dropped.
	if w.activeID != conversationID || w.state != StateActiveConversation {
		return
	}

	replaced := make([]DisplayMessage, 0, len(fetched)+1)
	for _, m := range fetched {
		replaced = append(replaced, DisplayMessage{Message: m})
	}
	// Pending sends survive the replacement; they may transiently
	// duplicate a server copy until the send's own reconciliation
	// removes them.
	for _, m := range w.messages {
		if m.Pending {
			replaced = append(replaced, m)
		}
	}
	w.messages = replaced
}

// confirmSend swaps the optimistic entry for the server record,
// matching by temporary id. If a poll already delivered the server
// copy, the temporary entry is just removed.
func (w *Widget) confirmSend(tempID string, msg *models.Message) {
	w.mu.Lock()
	defer w.mu.Unlock()

	serverCopyPresent := false
	for _, m := range w.messages {
		if !m.Pending && m.ID == msg.ID {
			serverCopyPresent = true
			break
		}
	}

	kept := w.messages[:0]
	for _, m := range w.messages {
		if m.TempID != tempID {
			kept = append(kept, m)
			continue
		}
		if !serverCopyPresent {
			kept = append(kept, DisplayMessage{Message: *msg})
		}
	}
	w.messages = kept
}

// rollbackSend removes the optimistic entry and restores the draft.
func (w *Widget) rollbackSend(tempID, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	kept := w.messages[:0]
	for _, m := range w.messages {
		if m.TempID != tempID {
			kept = append(kept, m)
		}
	}
	w.messages = kept
	w.draft = text
}
