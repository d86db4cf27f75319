package chat

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/config"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/database"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/logger"
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// ConversationService creates, looks up and lists conversations,
// bridging the two on-disk schema shapes.
type ConversationService struct {
	conversations database.ConversationStore
	users         database.UserStore
	cfg           *config.Config
	log           *logger.Logger
}

// NewConversationService creates a new conversation service
func NewConversationService(conversations database.ConversationStore, users database.UserStore, cfg *config.Config) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		users:         users,
		cfg:           cfg,
		log:           logger.New("chat.conversations"),
	}
}

// List returns the user's conversations across both schema shapes,
// newest activity first, with the caller's unread count and the other
// side attached. Store failures degrade to an empty list so the
// sidebar renders instead of erroring.
func (s *ConversationService) List(ctx context.Context, userID primitive.ObjectID) ([]models.ConversationView, error) {
	normalized, err := s.conversations.FindNormalizedByUser(ctx, userID)
	if err != nil {
		s.log.Error("listing normalized conversations for %s: %v", userID.Hex(), err)
		return []models.ConversationView{}, nil
	}

	legacy, err := s.conversations.FindLegacyByUser(ctx, userID)
	if err != nil {
		s.log.Error("listing legacy conversations for %s: %v", userID.Hex(), err)
		legacy = nil
	}

	// Normalized results first so dedup keeps them over their legacy
	// duplicates.
	combined := NormalizeAll(append(normalized, legacy...))

	seen := make(map[string]bool, len(combined))
	deduped := combined[:0]
	for _, conv := range combined {
		key := conv.ID.Hex()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, conv)
	}

	// Missing updatedAt decodes to the zero time, which sorts oldest.
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].UpdatedAt.After(deduped[j].UpdatedAt)
	})

	views := make([]models.ConversationView, 0, len(deduped))
	for _, conv := range deduped {
		views = append(views, models.ConversationView{
			Conversation:      conv,
			UnreadCount:       conv.UnreadCounts[userID.Hex()],
			OtherParticipants: conv.OtherParticipants(userID),
		})
	}
	return views, nil
}

// Create returns the conversation between the current user and the
// resolved participant, creating it if none exists. Calling it twice
// for the same pair yields the same conversation. participantRole is
// a client hint only; the stored role snapshot always comes from the
// resolved user record.
func (s *ConversationService) Create(ctx context.Context, currentUserID primitive.ObjectID, participantIdentifier string, participantRole models.Role) (*models.Conversation, error) {
	current, err := s.users.GetUserByID(ctx, currentUserID)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	other, err := s.resolveParticipant(ctx, participantIdentifier)
	if err != nil {
		return nil, err
	}

	if existing, err := s.findExisting(ctx, current.ID, other.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	return s.insert(ctx, current, other)
}

// ResolveAdminContact returns the platform's support account, creating
// it on first use. It is the single place admin identity is handled.
func (s *ConversationService) ResolveAdminContact(ctx context.Context) (*models.User, error) {
	admin, err := s.users.GetUserByEmail(ctx, s.cfg.AdminEmail)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, database.ErrUserNotFound) {
		return nil, err
	}

	s.log.Info("support account %s missing, creating it", s.cfg.AdminEmail)
	admin, err = s.users.CreateUser(ctx, s.cfg.AdminName, s.cfg.AdminEmail, "", models.RoleAdmin)
	if err != nil {
		// Another request may have created it between the lookup and the
		// insert.
		if errors.Is(err, database.ErrUserAlreadyExists) {
			return s.users.GetUserByEmail(ctx, s.cfg.AdminEmail)
		}
		return nil, err
	}
	return admin, nil
}

func (s *ConversationService) resolveParticipant(ctx context.Context, identifier string) (*models.User, error) {
	if s.cfg.IsAdminAlias(identifier) {
		return s.ResolveAdminContact(ctx)
	}

	var user *models.User
	var err error
	if oid, idErr := primitive.ObjectIDFromHex(identifier); idErr == nil {
		user, err = s.users.GetUserByID(ctx, oid)
	} else {
		user, err = s.users.GetUserByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// findExisting searches both schema shapes for a conversation between
// the two users: normalized participant-list first, then the legacy
// two-field shape in both orderings.
func (s *ConversationService) findExisting(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	stored, err := s.conversations.FindNormalizedBetween(ctx, a, b)
	if err != nil && !errors.Is(err, database.ErrConversationNotFound) {
		return nil, err
	}
	if stored == nil {
		stored, err = s.conversations.FindLegacyBetween(ctx, a, b)
		if err != nil && !errors.Is(err, database.ErrConversationNotFound) {
			return nil, err
		}
	}
	if stored == nil {
		return nil, nil
	}

	conv, ok := Normalize(*stored)
	if !ok {
		return nil, nil
	}
	return &conv, nil
}

// insert writes the new conversation in the normalized shape, falling
// back once to the legacy shape if the store rejects it. This is the
// only automatic retry in the system.
func (s *ConversationService) insert(ctx context.Context, current, other *models.User) (*models.Conversation, error) {
	conv := &models.Conversation{
		Participants: []models.Participant{
			participantOf(current),
			participantOf(other),
		},
		UnreadCounts: map[string]int{},
		IsActive:     true,
		CreatedAt:    timeNow(),
		UpdatedAt:    timeNow(),
	}

	created, err := s.conversations.InsertNormalized(ctx, conv)
	if err == nil {
		return created, nil
	}
	s.log.Warn("normalized insert rejected, retrying with legacy shape: %v", err)

	legacy := &models.LegacyConversation{
		User1:      current.ID,
		User1Role:  current.Role,
		User1Name:  current.Name,
		User1Email: current.Email,
		User2:      other.ID,
		User2Role:  other.Role,
		User2Name:  other.Name,
		User2Email: other.Email,
		Active:     true,
		CreatedAt:  timeNow(),
		UpdatedAt:  timeNow(),
	}
	createdLegacy, err := s.conversations.InsertLegacy(ctx, legacy)
	if err != nil {
		s.log.Error("legacy insert rejected too: %v", err)
		return nil, ErrCreationFailed
	}

	normalized, _ := Normalize(legacyToStored(createdLegacy))
	return &normalized, nil
}

func participantOf(u *models.User) models.Participant {
	return models.Participant{
		UserID: u.ID,
		Role:   u.Role,
		Name:   u.Name,
		Email:  u.Email,
	}
}

func legacyToStored(l *models.LegacyConversation) models.StoredConversation {
	active := l.Active
	return models.StoredConversation{
		ID:         l.ID,
		User1:      l.User1,
		User1Role:  l.User1Role,
		User1Name:  l.User1Name,
		User1Email: l.User1Email,
		User2:      l.User2,
		User2Role:  l.User2Role,
		User2Name:  l.User2Name,
		User2Email: l.User2Email,
		Active:     &active,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
