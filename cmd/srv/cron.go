package main

import (
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/domain/cron"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadCore()
	s.loadEndpoint()

	ctx, stop := s.withSignal()
	defer stop()
	s.watchCatalogReload(ctx)

	schedule := xcontext.Configs(s.ctx).Schedule
	dailyJob, err := cron.NewDailyPostQuestsCronJob(schedule, s.questLifecycleDomain, s.discordEndpoint)
	if err != nil {
		return err
	}

	weeklyJob, err := cron.NewWeeklyPostQuestsCronJob(schedule, s.questLifecycleDomain, s.discordEndpoint)
	if err != nil {
		return err
	}

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(dailyJob)
	cronJobManager.Register(weeklyJob)

	cronJobManager.Start(ctx)
	return nil
}
