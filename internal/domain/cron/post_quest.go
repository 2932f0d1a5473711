package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/config"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/domain"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/api/discord"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/dateutil"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

const acceptButtonLabel = "Accepter"

// PostQuestsCronJob publishes one quest listing per category. Categories are
// independent, a failed post does not undo the others.
type PostQuestsCronJob struct {
	name                 string
	categories           []entity.Category
	next                 func(now time.Time) time.Time
	questLifecycleDomain domain.QuestLifecycleDomain
	discordEndpoint      discord.IEndpoint
}

func NewDailyPostQuestsCronJob(
	cfg config.ScheduleConfigs,
	questLifecycleDomain domain.QuestLifecycleDomain,
	discordEndpoint discord.IEndpoint,
) (*PostQuestsCronJob, error) {
	clock, err := dateutil.ParseClock(cfg.DailyAt)
	if err != nil {
		return nil, err
	}

	categories, err := parseCategories(cfg.DailyCategories)
	if err != nil {
		return nil, err
	}

	return &PostQuestsCronJob{
		name:                 "daily quest post",
		categories:           categories,
		next:                 func(now time.Time) time.Time { return dateutil.NextDaily(now, clock) },
		questLifecycleDomain: questLifecycleDomain,
		discordEndpoint:      discordEndpoint,
	}, nil
}

func NewWeeklyPostQuestsCronJob(
	cfg config.ScheduleConfigs,
	questLifecycleDomain domain.QuestLifecycleDomain,
	discordEndpoint discord.IEndpoint,
) (*PostQuestsCronJob, error) {
	clock, err := dateutil.ParseClock(cfg.WeeklyAt)
	if err != nil {
		return nil, err
	}

	if cfg.WeeklyDay < time.Sunday || cfg.WeeklyDay > time.Saturday {
		return nil, fmt.Errorf("invalid weekly day %d", cfg.WeeklyDay)
	}

	categories, err := parseCategories(cfg.WeeklyCategories)
	if err != nil {
		return nil, err
	}

	return &PostQuestsCronJob{
		name:       "weekly quest post",
		categories: categories,
		next: func(now time.Time) time.Time {
			return dateutil.NextWeekly(now, cfg.WeeklyDay, clock)
		},
		questLifecycleDomain: questLifecycleDomain,
		discordEndpoint:      discordEndpoint,
	}, nil
}

func (job *PostQuestsCronJob) Name() string {
	return job.name
}

func (job *PostQuestsCronJob) Do(ctx context.Context) {
	channelID := xcontext.Configs(ctx).Discord.QuestChannelID
	if channelID == "" {
		xcontext.Logger(ctx).Errorf("No quest channel configured for %s", job.name)
		return
	}

	var g errgroup.Group
	for _, category := range job.categories {
		category := category
		g.Go(func() error {
			return job.post(ctx, channelID, category)
		})
	}

	if err := g.Wait(); err != nil {
		xcontext.Logger(ctx).Warnf("Some posts of %s failed: %v", job.name, err)
	}
}

func (job *PostQuestsCronJob) post(ctx context.Context, channelID string, category entity.Category) error {
	quest, err := job.questLifecycleDomain.PickQuest(ctx, category)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pick quest of %s: %v", category, err)
		return err
	}

	err = job.discordEndpoint.SendChannelMessage(ctx, channelID, discord.Message{
		Content: domain.ListingMessage(ctx, quest),
		Buttons: []discord.Button{{
			Label:    acceptButtonLabel,
			CustomID: domain.AcceptButtonID(quest.ID),
			Style:    discord.ButtonSuccess,
		}},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot post quest %s: %v", quest.ID, err)
		return err
	}

	xcontext.Logger(ctx).Infof("Posted quest %s of %s", quest.ID, category)
	return nil
}

func (job *PostQuestsCronJob) RunNow() bool {
	return false
}

func (job *PostQuestsCronJob) Next() time.Time {
	return job.next(time.Now())
}

func parseCategories(names []string) ([]entity.Category, error) {
	categories := []entity.Category{}
	for _, name := range names {
		category, err := entity.ParseCategory(name)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	return categories, nil
}
