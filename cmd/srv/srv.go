package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/config"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/domain"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/domain/rotation"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/repository"
	"github.com/Lyttaaa/Maitre-des-qu-tes/migration"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/api/discord"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/idutil"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/logger"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	redisClient     xredis.Client
	questCatalog    *catalog.Catalog
	discordEndpoint discord.IEndpoint

	acceptedQuestRepo       repository.AcceptedQuestRepository
	completedQuestRepo      repository.CompletedQuestRepository
	walletRepo              repository.WalletRepository
	interactionProgressRepo repository.InteractionProgressRepository
	rewardTransactionRepo   repository.RewardTransactionRepository
	rotationRepo            repository.RotationRepository

	selector             *rotation.Selector
	questLifecycleDomain domain.QuestLifecycleDomain
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	s.ctx = cctx.Context
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: 10 * time.Second})
	return nil
}

// withSignal returns a context cancelled on SIGINT or SIGTERM.
func (s *srv) withSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.DSN, // data source name
			DefaultStringSize:         256,     // default size for string fields
			DisableDatetimePrecision:  true,    // disable datetime precision, which not supported before MySQL 5.6
			DontSupportRenameIndex:    true,    // drop & create when rename index, rename index not supported before MySQL 5.7, MariaDB
			DontSupportRenameColumn:   true,    // `change` when rename column, rename column not supported before MySQL 8, MariaDB
			SkipInitializeWithVersion: false,   // auto configure based on currently MySQL version
		})
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		panic(fmt.Sprintf("invalid database driver %s", cfg.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		panic(err)
	}

	if cfg.Driver != "mysql" {
		// sqlite allows a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadCatalog() {
	source, err := catalog.NewSource(xcontext.Configs(s.ctx).Catalog)
	if err != nil {
		panic(err)
	}

	s.questCatalog = catalog.New(source)
	if err := s.questCatalog.Load(s.ctx); err != nil {
		panic(err)
	}
}

// watchCatalogReload reloads the catalog on SIGHUP. A failed reload keeps the
// previous catalog.
func (s *srv) watchCatalogReload(ctx context.Context) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	go func() {
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				if err := s.questCatalog.Load(s.ctx); err != nil {
					xcontext.Logger(s.ctx).Warnf("Keep previous catalog: %v", err)
				}
			}
		}
	}()
}

func (s *srv) loadEndpoint() {
	s.discordEndpoint = discord.New(xcontext.Configs(s.ctx).Discord)
}

func (s *srv) loadRepos() {
	s.acceptedQuestRepo = repository.NewAcceptedQuestRepository()
	s.completedQuestRepo = repository.NewCompletedQuestRepository()
	s.walletRepo = repository.NewWalletRepository()
	s.interactionProgressRepo = repository.NewInteractionProgressRepository()
	s.rewardTransactionRepo = repository.NewRewardTransactionRepository()
	if s.redisClient != nil {
		s.rotationRepo = repository.NewRotationRepository(s.redisClient)
	}
}

func (s *srv) loadDomains() {
	idGenerator, err := idutil.NewSnowflakeGenerator(xcontext.Configs(s.ctx).NodeID)
	if err != nil {
		panic(err)
	}

	s.selector = rotation.NewSelector(s.rotationRepo)
	s.questLifecycleDomain = domain.NewQuestLifecycleDomain(
		s.questCatalog,
		s.acceptedQuestRepo,
		s.completedQuestRepo,
		s.walletRepo,
		s.interactionProgressRepo,
		s.rewardTransactionRepo,
		s.selector,
		idGenerator,
	)
}

// loadCore wires everything the quest engine needs.
func (s *srv) loadCore() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadCatalog()
	s.loadRepos()
	s.loadDomains()
}
