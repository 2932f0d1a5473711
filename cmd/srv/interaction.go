package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/domain"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/discord"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startInteraction(*cli.Context) error {
	s.loadCore()

	cfg := xcontext.Configs(s.ctx)
	publicKey, err := discord.ParsePublicKey(cfg.Discord.PublicKey)
	if err != nil {
		return fmt.Errorf("invalid discord public key: %w", err)
	}

	ctx, stop := s.withSignal()
	defer stop()
	s.watchCatalogReload(ctx)

	mux := http.NewServeMux()
	mux.Handle("/interactions", domain.NewInteractionHandler(publicKey, s.questLifecycleDomain))

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Interaction.Host, cfg.Interaction.Port),
		Handler: mux,

		// Requests inherit configs, logger and database.
		BaseContext: func(net.Listener) context.Context { return s.ctx },
	}

	go func() {
		<-ctx.Done()
		if err := httpServer.Shutdown(context.Background()); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting interaction server on %s", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Interaction server stopped")
	return nil
}
