package chat

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/database"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// fakeStore is an in-memory stand-in for the Mongo store, good enough
// to exercise the services' read-modify-write sequences.
type fakeStore struct {
	users    map[string]*models.User
	convs    []*models.StoredConversation
	messages []*models.Message

	rejectNormalizedInsert bool
	rejectLegacyInsert     bool
	failFinds              bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*models.User{}}
}

func (f *fakeStore) addUser(name, email string, role models.Role) *models.User {
	u := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	f.users[u.ID.Hex()] = u
	return u
}

// --- UserStore ---

func (f *fakeStore) CreateUser(_ context.Context, name, email, _ string, role models.Role) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, database.ErrUserAlreadyExists
		}
	}
	return f.addUser(name, email, role), nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, database.ErrUserNotFound
}

func (f *fakeStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f.users[id.Hex()]; ok {
		return u, nil
	}
	return nil, database.ErrUserNotFound
}

func (f *fakeStore) UpdateLastSeen(_ context.Context, id primitive.ObjectID) error {
	if u, ok := f.users[id.Hex()]; ok {
		u.LastSeen = time.Now()
		return nil
	}
	return database.ErrUserNotFound
}

func (f *fakeStore) GetAllUsers(_ context.Context, exclude primitive.ObjectID) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.ID != exclude {
			out = append(out, u)
		}
	}
	return out, nil
}

// --- ConversationStore ---

func (f *fakeStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.StoredConversation, error) {
	for _, c := range f.convs {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, database.ErrConversationNotFound
}

func (f *fakeStore) FindNormalizedByUser(_ context.Context, userID primitive.ObjectID) ([]models.StoredConversation, error) {
	if f.failFinds {
		return nil, errors.New("store unreachable")
	}
	var out []models.StoredConversation
	for _, c := range f.convs {
		for _, p := range c.Participants {
			if p.UserID == userID {
				out = append(out, *c)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) FindLegacyByUser(_ context.Context, userID primitive.ObjectID) ([]models.StoredConversation, error) {
	if f.failFinds {
		return nil, errors.New("store unreachable")
	}
	var out []models.StoredConversation
	for _, c := range f.convs {
		if c.User1 == userID || c.User2 == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) FindNormalizedBetween(_ context.Context, a, b primitive.ObjectID) (*models.StoredConversation, error) {
	for _, c := range f.convs {
		if hasParticipant(c.Participants, a) && hasParticipant(c.Participants, b) {
			return c, nil
		}
	}
	return nil, database.ErrConversationNotFound
}

func (f *fakeStore) FindLegacyBetween(_ context.Context, a, b primitive.ObjectID) (*models.StoredConversation, error) {
	for _, c := range f.convs {
		if (c.User1 == a && c.User2 == b) || (c.User1 == b && c.User2 == a) {
			return c, nil
		}
	}
	return nil, database.ErrConversationNotFound
}

func (f *fakeStore) InsertNormalized(_ context.Context, conv *models.Conversation) (*models.Conversation, error) {
	if f.rejectNormalizedInsert {
		return nil, errors.New("document failed validation")
	}
	conv.ID = primitive.NewObjectID()
	isActive := conv.IsActive
	f.convs = append(f.convs, &models.StoredConversation{
		ID:           conv.ID,
		Participants: conv.Participants,
		UnreadCounts: conv.UnreadCounts,
		LastMessage:  conv.LastMessage,
		IsActive:     &isActive,
		CreatedAt:    conv.CreatedAt,
		UpdatedAt:    conv.UpdatedAt,
	})
	return conv, nil
}

func (f *fakeStore) InsertLegacy(_ context.Context, conv *models.LegacyConversation) (*models.LegacyConversation, error) {
	if f.rejectLegacyInsert {
		return nil, errors.New("document failed validation")
	}
	conv.ID = primitive.NewObjectID()
	active := conv.Active
	f.convs = append(f.convs, &models.StoredConversation{
		ID:         conv.ID,
		User1:      conv.User1,
		User1Role:  conv.User1Role,
		User1Name:  conv.User1Name,
		User1Email: conv.User1Email,
		User2:      conv.User2,
		User2Role:  conv.User2Role,
		User2Name:  conv.User2Name,
		User2Email: conv.User2Email,
		Active:     &active,
		CreatedAt:  conv.CreatedAt,
		UpdatedAt:  conv.UpdatedAt,
	})
	return conv, nil
}

func (f *fakeStore) RecordMessage(_ context.Context, conversationID primitive.ObjectID, summary models.MessageSummary, recipientID primitive.ObjectID) error {
	for _, c := range f.convs {
		if c.ID == conversationID {
			c.LastMessage = &summary
			c.UpdatedAt = time.Now()
			if c.UnreadCounts == nil {
				c.UnreadCounts = map[string]int{}
			}
			c.UnreadCounts[recipientID.Hex()]++
			return nil
		}
	}
	return database.ErrConversationNotFound
}

func (f *fakeStore) ResetUnread(_ context.Context, conversationID, userID primitive.ObjectID) error {
	for _, c := range f.convs {
		if c.ID == conversationID {
			if c.UnreadCounts == nil {
				c.UnreadCounts = map[string]int{}
			}
			c.UnreadCounts[userID.Hex()] = 0
			return nil
		}
	}
	return database.ErrConversationNotFound
}

// --- MessageStore ---

func (f *fakeStore) Insert(_ context.Context, msg *models.Message) (*models.Message, error) {
	msg.ID = primitive.NewObjectID()
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeStore) ListByConversation(_ context.Context, conversationID primitive.ObjectID) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID && !m.Deleted {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStore) MarkAllRead(_ context.Context, conversationID, userID primitive.ObjectID, at time.Time) error {
	for _, m := range f.messages {
		if m.ConversationID != conversationID || m.SenderID == userID || m.IsReadBy(userID) {
			continue
		}
		m.ReadBy = append(m.ReadBy, models.ReadReceipt{UserID: userID, ReadAt: at})
	}
	return nil
}

func hasParticipant(participants []models.Participant, id primitive.ObjectID) bool {
	for _, p := range participants {
		if p.UserID == id {
			return true
		}
	}
	return false
}

// unreadFor recomputes the unread invariant from the message log:
// messages in the conversation sent by someone else with no read
// receipt for the user.
func (f *fakeStore) unreadFor(conversationID, userID primitive.ObjectID) int {
	n := 0
	for _, m := range f.messages {
		if m.ConversationID == conversationID && m.SenderID != userID && !m.IsReadBy(userID) {
			n++
		}
	}
	return n
}

func (f *fakeStore) storedUnread(conversationID, userID primitive.ObjectID) int {
	for _, c := range f.convs {
		if c.ID == conversationID {
			return c.UnreadCounts[userID.Hex()]
		}
	}
	return 0
}
