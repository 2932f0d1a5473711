package testutil

import (
	"context"
	"sync"

	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/api/discord"
)

type SentMessage struct {
	UserID    string
	ChannelID string
	Content   string
	Message   discord.Message
}

// MockDiscordEndpoint records every message. Without a func field, sending
// succeeds.
type MockDiscordEndpoint struct {
	SendDirectMessageFunc  func(ctx context.Context, userID, content string) error
	SendChannelMessageFunc func(ctx context.Context, channelID string, msg discord.Message) error

	mutex           sync.Mutex
	DirectMessages  []SentMessage
	ChannelMessages []SentMessage
}

func (e *MockDiscordEndpoint) SendDirectMessage(ctx context.Context, userID, content string) error {
	if e.SendDirectMessageFunc != nil {
		if err := e.SendDirectMessageFunc(ctx, userID, content); err != nil {
			return err
		}
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.DirectMessages = append(e.DirectMessages, SentMessage{UserID: userID, Content: content})
	return nil
}

func (e *MockDiscordEndpoint) SendChannelMessage(ctx context.Context, channelID string, msg discord.Message) error {
	if e.SendChannelMessageFunc != nil {
		if err := e.SendChannelMessageFunc(ctx, channelID, msg); err != nil {
			return err
		}
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.ChannelMessages = append(e.ChannelMessages, SentMessage{
		ChannelID: channelID,
		Content:   msg.Content,
		Message:   msg,
	})
	return nil
}
