package chat

import (
	"github.com/HamidTech-Ventures/Room-MatchPK-sub001/internal/models"
)

// Normalize maps a stored conversation of either schema shape into the
// normalized shape. A record is legacy iff it carries both user1 and
// user2; anything else is treated as already normalized.
//
// The second return value is false when the record must be dropped from
// result sets (a legacy record with no id). Callers tolerate fewer
// results than input records.
func Normalize(stored models.StoredConversation) (models.Conversation, bool) {
	if stored.IsLegacy() {
		return normalizeLegacy(stored)
	}

	conv := models.Conversation{
		ID:           stored.ID,
		Participants: stored.Participants,
		UnreadCounts: stored.UnreadCounts,
		LastMessage:  stored.LastMessage,
		CreatedAt:    stored.CreatedAt,
		UpdatedAt:    stored.UpdatedAt,
	}
	if stored.IsActive != nil {
		conv.IsActive = *stored.IsActive
	}
	if conv.UnreadCounts == nil {
		conv.UnreadCounts = map[string]int{}
	}
	return conv, true
}

func normalizeLegacy(stored models.StoredConversation) (models.Conversation, bool) {
	if stored.ID.IsZero() {
		return models.Conversation{}, false
	}

	conv := models.Conversation{
		ID: stored.ID,
		Participants: []models.Participant{
			{
				UserID: stored.User1,
				Role:   stored.User1Role,
				Name:   stored.User1Name,
				Email:  stored.User1Email,
			},
			{
				UserID: stored.User2,
				Role:   stored.User2Role,
				Name:   stored.User2Name,
				Email:  stored.User2Email,
			},
		},
		// Legacy records carry no unread state; that information is lost.
		UnreadCounts: map[string]int{},
		CreatedAt:    stored.CreatedAt,
		UpdatedAt:    stored.UpdatedAt,
	}
	if stored.Active != nil {
		conv.IsActive = *stored.Active
	}
	return conv, true
}

// NormalizeAll normalizes a batch, dropping unusable records.
func NormalizeAll(stored []models.StoredConversation) []models.Conversation {
	out := make([]models.Conversation, 0, len(stored))
	for _, s := range stored {
		if conv, ok := Normalize(s); ok {
			out = append(out, conv)
		}
	}
	return out
}
