package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/Lyttaaa/Maitre-des-qu-tes/config"
	"github.com/Lyttaaa/Maitre-des-qu-tes/migration"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/logger"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xredis"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context holding default configs, a silent logger and
// a fresh in-memory database with every table migrated.
func MockContext() context.Context {
	// Every connection of a named shared-cache database sees the same data. A
	// single connection serializes transactions the way row locks would.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, config.Default())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// MockRedis starts an in-memory redis server living as long as the test.
func MockRedis(t *testing.T) xredis.Client {
	server := miniredis.RunT(t)
	client := xredis.New(server.Addr())
	t.Cleanup(func() { client.Close() })
	return client
}
