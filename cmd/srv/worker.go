package main

import (
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/domain"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/kafka"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startWorker(*cli.Context) error {
	s.loadCore()
	s.loadEndpoint()

	ctx, stop := s.withSignal()
	defer stop()
	s.watchCatalogReload(ctx)

	cfg := xcontext.Configs(s.ctx).Kafka
	dispatcher := domain.NewTriggerDispatcher(s.questLifecycleDomain, domain.NewNotifier(s.discordEndpoint))
	subscriber, err := kafka.NewSubscriber(cfg.GroupID, cfg.Addrs, cfg.Topics(), dispatcher.Handle)
	if err != nil {
		return err
	}
	defer subscriber.Stop(s.ctx)

	subscriber.Subscribe(ctx)
	xcontext.Logger(s.ctx).Infof("Worker is consuming %v", cfg.Topics())

	<-ctx.Done()
	xcontext.Logger(s.ctx).Infof("Worker stopped")
	return nil
}
