package discord

import "context"

type IEndpoint interface {
	// SendDirectMessage fails with ErrCannotSendDM if the user does not accept
	// direct messages from the bot.
	SendDirectMessage(ctx context.Context, userID string, content string) error
	SendChannelMessage(ctx context.Context, channelID string, msg Message) error
}
