package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/config"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/domain"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/api/discord"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/testutil"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type mockQuestLifecycleDomain struct {
	domain.QuestLifecycleDomain

	pickQuest func(context.Context, entity.Category) (catalog.QuestDefinition, error)
}

func (d *mockQuestLifecycleDomain) PickQuest(
	ctx context.Context, category entity.Category,
) (catalog.QuestDefinition, error) {
	return d.pickQuest(ctx, category)
}

func pickByCategory(quests map[entity.Category]string) *mockQuestLifecycleDomain {
	return &mockQuestLifecycleDomain{
		pickQuest: func(_ context.Context, category entity.Category) (catalog.QuestDefinition, error) {
			id, ok := quests[category]
			if !ok {
				return catalog.QuestDefinition{}, errorx.New(errorx.EmptyRotationPool, "empty")
			}

			return catalog.QuestDefinition{ID: id, Name: "Quest " + id, Category: category, Reward: 10}, nil
		},
	}
}

func contextWithQuestChannel() context.Context {
	ctx := testutil.MockContext()
	cfg := xcontext.Configs(ctx)
	cfg.Discord.QuestChannelID = "quest-channel"
	return xcontext.WithConfigs(ctx, cfg)
}

func TestPostQuestsCronJob_Do(t *testing.T) {
	ctx := contextWithQuestChannel()
	endpoint := &testutil.MockDiscordEndpoint{}

	cfg := config.Default().Schedule
	cfg.WeeklyCategories = []string{"interaction", "research", "riddle"}
	job, err := NewWeeklyPostQuestsCronJob(cfg, pickByCategory(map[entity.Category]string{
		entity.CategoryInteraction: "QI001",
		entity.CategoryRiddle:      "QE012",
	}), endpoint)
	require.NoError(t, err)

	// Research has nothing to post, the other categories are still posted.
	job.Do(ctx)

	posted := map[string]discord.Message{}
	for _, m := range endpoint.ChannelMessages {
		require.Equal(t, "quest-channel", m.ChannelID)
		posted[m.Message.Buttons[0].CustomID] = m.Message
	}

	require.Len(t, posted, 2)
	require.Contains(t, posted, "accept:QI001")
	require.Contains(t, posted, "accept:QE012")
	require.Contains(t, posted["accept:QE012"].Content, "Quest QE012")
	require.Contains(t, posted["accept:QE012"].Content, "10 Lumes")
}

func TestPostQuestsCronJob_Do_SendFailure(t *testing.T) {
	ctx := contextWithQuestChannel()

	var mutex sync.Mutex
	attempts := 0
	endpoint := &testutil.MockDiscordEndpoint{
		SendChannelMessageFunc: func(_ context.Context, _ string, msg discord.Message) error {
			mutex.Lock()
			defer mutex.Unlock()
			attempts++

			if msg.Buttons[0].CustomID == "accept:QD001" {
				return errors.New("unavailable")
			}
			return nil
		},
	}

	cfg := config.Default().Schedule
	cfg.DailyCategories = []string{"daily", "riddle"}
	job, err := NewDailyPostQuestsCronJob(cfg, pickByCategory(map[entity.Category]string{
		entity.CategoryDaily:  "QD001",
		entity.CategoryRiddle: "QE012",
	}), endpoint)
	require.NoError(t, err)

	job.Do(ctx)
	require.Equal(t, 2, attempts)
	require.Len(t, endpoint.ChannelMessages, 1)
	require.Equal(t, "accept:QE012", endpoint.ChannelMessages[0].Message.Buttons[0].CustomID)
}

func TestPostQuestsCronJob_Do_NoChannel(t *testing.T) {
	endpoint := &testutil.MockDiscordEndpoint{}
	job, err := NewDailyPostQuestsCronJob(config.Default().Schedule, pickByCategory(map[entity.Category]string{
		entity.CategoryDaily: "QD001",
	}), endpoint)
	require.NoError(t, err)

	job.Do(testutil.MockContext())
	require.Empty(t, endpoint.ChannelMessages)
}

func TestNewPostQuestsCronJob_InvalidConfig(t *testing.T) {
	d := pickByCategory(nil)
	endpoint := &testutil.MockDiscordEndpoint{}

	cfg := config.Default().Schedule
	cfg.DailyAt = "9h"
	_, err := NewDailyPostQuestsCronJob(cfg, d, endpoint)
	require.Error(t, err)

	cfg = config.Default().Schedule
	cfg.DailyCategories = []string{"daily", "bonus"}
	_, err = NewDailyPostQuestsCronJob(cfg, d, endpoint)
	require.True(t, errorx.Is(err, errorx.InvalidCategory))

	cfg = config.Default().Schedule
	cfg.WeeklyDay = 9
	_, err = NewWeeklyPostQuestsCronJob(cfg, d, endpoint)
	require.Error(t, err)
}

func TestPostQuestsCronJob_Next(t *testing.T) {
	d := pickByCategory(nil)
	endpoint := &testutil.MockDiscordEndpoint{}

	daily, err := NewDailyPostQuestsCronJob(config.Default().Schedule, d, endpoint)
	require.NoError(t, err)
	next := daily.Next()
	require.True(t, next.After(time.Now()))
	require.LessOrEqual(t, time.Until(next), 24*time.Hour)
	require.Equal(t, 9, next.Hour())
	require.False(t, daily.RunNow())

	weekly, err := NewWeeklyPostQuestsCronJob(config.Default().Schedule, d, endpoint)
	require.NoError(t, err)
	next = weekly.Next()
	require.Equal(t, time.Monday, next.Weekday())
	require.Equal(t, 10, next.Hour())
	require.LessOrEqual(t, time.Until(next), 7*24*time.Hour)
}
