package repository

import (
	"context"
	"errors"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/common"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const maxRotationRetries = 20

var ErrRotationContention = errors.New("too many concurrent rotation updates")

// ChooseFunc receives the ids already shown in the current cycle. It returns
// the chosen id and whether the cycle restarts with it.
type ChooseFunc func(shown []string) (pick string, reset bool, err error)

type RotationRepository interface {
	// Advance reads the shown set, calls choose and stores the result as one
	// atomic step. It is retried when another pick of the same category
	// commits in between, so choose may be called more than once.
	Advance(ctx context.Context, category entity.Category, choose ChooseFunc) (string, error)
	Members(ctx context.Context, category entity.Category) ([]string, error)
	Clear(ctx context.Context, category entity.Category) error
}

type rotationRepository struct {
	redisClient xredis.Client
}

func NewRotationRepository(redisClient xredis.Client) *rotationRepository {
	return &rotationRepository{redisClient: redisClient}
}

func (r *rotationRepository) Advance(
	ctx context.Context, category entity.Category, choose ChooseFunc,
) (string, error) {
	key := common.RedisKeyRotation(category)

	for i := 0; i < maxRotationRetries; i++ {
		var picked string
		err := r.redisClient.Watch(ctx, func(tx *redis.Tx) error {
			shown, err := tx.SMembers(ctx, key).Result()
			if err != nil {
				return err
			}

			pick, reset, err := choose(shown)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				if reset {
					pipe.Del(ctx, key)
				}
				pipe.SAdd(ctx, key, pick)
				return nil
			})
			if err != nil {
				return err
			}

			picked = pick
			return nil
		}, key)

		if err == nil {
			return picked, nil
		}

		if !errors.Is(err, redis.TxFailedErr) {
			return "", err
		}
	}

	return "", ErrRotationContention
}

func (r *rotationRepository) Members(ctx context.Context, category entity.Category) ([]string, error) {
	return r.redisClient.SMembers(ctx, common.RedisKeyRotation(category))
}

func (r *rotationRepository) Clear(ctx context.Context, category entity.Category) error {
	return r.redisClient.Del(ctx, common.RedisKeyRotation(category))
}
