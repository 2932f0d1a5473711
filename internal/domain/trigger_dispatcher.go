package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/model"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/pubsub"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
)

type TriggerDispatcher struct {
	questLifecycleDomain QuestLifecycleDomain
	notifier             *Notifier
}

func NewTriggerDispatcher(questLifecycleDomain QuestLifecycleDomain, notifier *Notifier) *TriggerDispatcher {
	return &TriggerDispatcher{
		questLifecycleDomain: questLifecycleDomain,
		notifier:             notifier,
	}
}

// Handle is the pubsub handler of trigger events. Every event runs exactly one
// engine operation and produces at most one notification.
func (d *TriggerDispatcher) Handle(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event model.TriggerEvent
	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to unmarshal trigger event: %v", err)
		return
	}

	if event.IsBot || event.UserID == "" {
		return
	}

	message, ok := d.dispatch(ctx, event)
	if !ok {
		return
	}

	err := d.notifier.Notify(ctx, Notification{
		UserID:    event.UserID,
		ChannelID: event.ChannelID,
		Message:   message,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot notify outcome of event %s: %v", event.ID, err)
	}

	xcontext.Logger(ctx).Debugf("Event %s of %s handled after %s", event.ID, event.Kind, time.Since(t))
}

func (d *TriggerDispatcher) dispatch(ctx context.Context, event model.TriggerEvent) (string, bool) {
	switch event.Kind {
	case model.TriggerKindAccept:
		result, err := d.questLifecycleDomain.Accept(ctx, &model.AcceptRequest{
			UserID:      event.UserID,
			DisplayName: event.DisplayName,
			QuestID:     event.QuestID,
		})
		if err != nil {
			if errorx.Is(err, errorx.QuestNotFound) {
				return QuestNotFoundMessage(event.QuestID), true
			}

			xcontext.Logger(ctx).Errorf("Cannot accept quest %s: %v", event.QuestID, err)
			return "", false
		}

		return AcceptMessage(result), true

	case model.TriggerKindReaction:
		req := &model.ReactionRequest{
			UserID:      event.UserID,
			DisplayName: event.DisplayName,
			Emoji:       event.Emoji,
		}
		if event.QuestID != "" {
			req.QuestIDs = []string{event.QuestID}
		}

		result, err := d.questLifecycleDomain.AttemptReactionCompletion(ctx, req)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot attempt reaction completion: %v", err)
			return "", false
		}

		return CompletionMessage(ctx, result)

	case model.TriggerKindMessage:
		result, err := d.questLifecycleDomain.AttemptTextCompletion(ctx, &model.TextRequest{
			UserID:      event.UserID,
			DisplayName: event.DisplayName,
			Text:        event.Text,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot attempt text completion: %v", err)
			return "", false
		}

		return CompletionMessage(ctx, result)

	case model.TriggerKindManual:
		result, err := d.questLifecycleDomain.CompleteManually(ctx, &model.ManualRequest{
			UserID:      event.UserID,
			DisplayName: event.DisplayName,
			QuestID:     event.QuestID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot complete quest %s manually: %v", event.QuestID, err)
			return "", false
		}

		return CompletionMessage(ctx, result)

	default:
		xcontext.Logger(ctx).Warnf("Unknown trigger kind %s", event.Kind)
		return "", false
	}
}
