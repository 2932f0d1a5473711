package model

import (
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/enum"
	"github.com/google/uuid"
)

type TriggerKind string

var (
	TriggerKindAccept   = enum.New(TriggerKind("accept"))
	TriggerKindReaction = enum.New(TriggerKind("reaction"))
	TriggerKindMessage  = enum.New(TriggerKind("message"))
	TriggerKindManual   = enum.New(TriggerKind("manual"))
)

// TriggerEvent is published by the gateway for every participant action the
// quest engine may care about.
type TriggerEvent struct {
	ID          string      `json:"id"`
	Kind        TriggerKind `json:"kind"`
	UserID      string      `json:"user_id"`
	DisplayName string      `json:"display_name"`
	IsBot       bool        `json:"is_bot"`
	QuestID     string      `json:"quest_id,omitempty"`
	Emoji       string      `json:"emoji,omitempty"`
	Text        string      `json:"text,omitempty"`
	GuildID     string      `json:"guild_id,omitempty"`
	ChannelID   string      `json:"channel_id,omitempty"`
	MessageID   string      `json:"message_id,omitempty"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

func NewTriggerEvent(kind TriggerKind, userID string) TriggerEvent {
	return TriggerEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
}
