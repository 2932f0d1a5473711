package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/api/discord"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/testutil"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func blockedDM(context.Context, string, string) error {
	return discord.ErrCannotSendDM
}

func TestNotifier_Notify(t *testing.T) {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)
	cfg.Discord.QuestChannelID = "quest-channel"
	ctx = xcontext.WithConfigs(ctx, cfg)

	testCases := []struct {
		name         string
		dmFunc       func(context.Context, string, string) error
		channelID    string
		wantErr      bool
		wantDM       int
		wantChannel  string
		wantFallback string
	}{
		{
			name:   "direct message",
			wantDM: 1,
		},
		{
			name:         "fallback to event channel",
			dmFunc:       blockedDM,
			channelID:    "general",
			wantChannel:  "general",
			wantFallback: "<@user1> Bravo (MP non reçu)",
		},
		{
			name:         "fallback to quest channel",
			dmFunc:       blockedDM,
			wantChannel:  "quest-channel",
			wantFallback: "<@user1> Bravo (MP non reçu)",
		},
		{
			name: "other error",
			dmFunc: func(context.Context, string, string) error {
				return errors.New("connection reset")
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			endpoint := &testutil.MockDiscordEndpoint{SendDirectMessageFunc: tc.dmFunc}
			err := NewNotifier(endpoint).Notify(ctx, Notification{
				UserID:    "user1",
				ChannelID: tc.channelID,
				Message:   "Bravo",
			})
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			require.Len(t, endpoint.DirectMessages, tc.wantDM)
			if tc.wantFallback == "" {
				require.Empty(t, endpoint.ChannelMessages)
				return
			}

			require.Len(t, endpoint.ChannelMessages, 1)
			require.Equal(t, tc.wantChannel, endpoint.ChannelMessages[0].ChannelID)
			require.Equal(t, tc.wantFallback, endpoint.ChannelMessages[0].Content)
		})
	}
}

func TestNotifier_Notify_NoChannel(t *testing.T) {
	endpoint := &testutil.MockDiscordEndpoint{SendDirectMessageFunc: blockedDM}

	err := NewNotifier(endpoint).Notify(testutil.MockContext(), Notification{UserID: "user1", Message: "Bravo"})
	require.ErrorIs(t, err, discord.ErrCannotSendDM)
	require.Empty(t, endpoint.ChannelMessages)
}
