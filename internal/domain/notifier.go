package domain

import (
	"context"
	"errors"

	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/api/discord"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
)

type Notification struct {
	UserID string

	// ChannelID receives the public fallback. The configured quest channel is
	// used when it is empty.
	ChannelID string
	Message   string
}

type Notifier struct {
	discordEndpoint discord.IEndpoint
}

func NewNotifier(discordEndpoint discord.IEndpoint) *Notifier {
	return &Notifier{discordEndpoint: discordEndpoint}
}

// Notify sends the message privately, or publicly with a mention when the
// user does not accept direct messages.
func (n *Notifier) Notify(ctx context.Context, notification Notification) error {
	err := n.discordEndpoint.SendDirectMessage(ctx, notification.UserID, notification.Message)
	if err == nil {
		return nil
	}

	if !errors.Is(err, discord.ErrCannotSendDM) {
		xcontext.Logger(ctx).Errorf("Cannot send direct message to %s: %v", notification.UserID, err)
		return err
	}

	channelID := notification.ChannelID
	if channelID == "" {
		channelID = xcontext.Configs(ctx).Discord.QuestChannelID
	}

	if channelID == "" {
		xcontext.Logger(ctx).Warnf("No channel to notify %s publicly", notification.UserID)
		return err
	}

	err = n.discordEndpoint.SendChannelMessage(ctx, channelID, discord.Message{
		Content: fallbackMessage(notification.UserID, notification.Message),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send fallback message to channel %s: %v", channelID, err)
		return err
	}

	return nil
}
