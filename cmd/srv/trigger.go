package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/model"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/enum"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/kafka"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/pubsub"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) publishTrigger(cctx *cli.Context) error {
	kind, err := enum.ToEnum[model.TriggerKind](cctx.String("kind"))
	if err != nil {
		return err
	}

	event := model.NewTriggerEvent(kind, cctx.String("user"))
	event.DisplayName = cctx.String("name")
	event.QuestID = cctx.String("quest")
	event.Emoji = cctx.String("emoji")
	event.Text = cctx.String("text")
	event.ChannelID = cctx.String("channel")

	publisher, err := kafka.NewPublisher("quest-cli", xcontext.Configs(s.ctx).Kafka.Addrs)
	if err != nil {
		return err
	}
	defer publisher.Stop(s.ctx)

	return publishEvent(s.ctx, publisher, event)
}

func publishEvent(ctx context.Context, publisher pubsub.Publisher, event model.TriggerEvent) error {
	cfg := xcontext.Configs(ctx).Kafka
	topic, err := topicOf(cfg.AcceptTopic, cfg.ReactionTopic, cfg.MessageTopic, event.Kind)
	if err != nil {
		return err
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(event.UserID), Msg: b}); err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Published event %s to %s", event.ID, topic)
	return nil
}

// Manual completions travel with accepts, both name a quest explicitly.
func topicOf(acceptTopic, reactionTopic, messageTopic string, kind model.TriggerKind) (string, error) {
	switch kind {
	case model.TriggerKindAccept, model.TriggerKindManual:
		return acceptTopic, nil
	case model.TriggerKindReaction:
		return reactionTopic, nil
	case model.TriggerKindMessage:
		return messageTopic, nil
	default:
		return "", fmt.Errorf("invalid trigger kind %s", kind)
	}
}
