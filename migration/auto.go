package migration

import (
	"context"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.AcceptedQuest{},
		&entity.CompletedQuest{},
		&entity.Wallet{},
		&entity.InteractionProgress{},
		&entity.RewardTransaction{},
	)
}
