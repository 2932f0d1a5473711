package rotation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/repository"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func quests(category entity.Category, prefix string, n int) []catalog.QuestDefinition {
	var result []catalog.QuestDefinition
	for i := 1; i <= n; i++ {
		result = append(result, catalog.QuestDefinition{
			ID:       fmt.Sprintf("%s%03d", prefix, i),
			Name:     fmt.Sprintf("Quest %d", i),
			Category: category,
		})
	}
	return result
}

func newSelector(t *testing.T, seed int64) *Selector {
	repo := repository.NewRotationRepository(testutil.MockRedis(t))
	return NewSelector(repo, WithRand(rand.New(rand.NewSource(seed))))
}

func TestSelector_Exhaustive(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			ctx := context.Background()
			selector := newSelector(t, seed)
			pool := quests(entity.CategoryResearch, "QR", 6)

			seen := map[string]int{}
			for i := 0; i < len(pool); i++ {
				q, err := selector.Pick(ctx, entity.CategoryResearch, pool)
				require.NoError(t, err)
				seen[q.ID]++
			}

			require.Len(t, seen, len(pool))
			for id, n := range seen {
				require.Equal(t, 1, n, id)
			}

			// The next pick starts a new cycle holding only that pick.
			q, err := selector.Pick(ctx, entity.CategoryResearch, pool)
			require.NoError(t, err)

			shown, err := selector.Shown(ctx, entity.CategoryResearch)
			require.NoError(t, err)
			require.Equal(t, []string{q.ID}, shown)
		})
	}
}

func TestSelector_EmptyPool(t *testing.T) {
	selector := newSelector(t, 1)

	_, err := selector.Pick(context.Background(), entity.CategoryRiddle, nil)
	require.True(t, errorx.Is(err, errorx.EmptyRotationPool))
}

func TestSelector_IndependentCategories(t *testing.T) {
	ctx := context.Background()
	selector := newSelector(t, 7)
	daily := quests(entity.CategoryDaily, "QD", 3)
	riddles := quests(entity.CategoryRiddle, "QE", 2)

	first, err := selector.Pick(ctx, entity.CategoryDaily, daily)
	require.NoError(t, err)
	second, err := selector.Pick(ctx, entity.CategoryDaily, daily)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	// Exhaust the riddles and start their next cycle.
	for i := 0; i < 3; i++ {
		_, err := selector.Pick(ctx, entity.CategoryRiddle, riddles)
		require.NoError(t, err)
	}

	riddleShown, err := selector.Shown(ctx, entity.CategoryRiddle)
	require.NoError(t, err)
	require.Len(t, riddleShown, 1)

	dailyShown, err := selector.Shown(ctx, entity.CategoryDaily)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{first.ID, second.ID}, dailyShown)

	// The last daily quest is the only one left.
	third, err := selector.Pick(ctx, entity.CategoryDaily, daily)
	require.NoError(t, err)
	require.NotContains(t, []string{first.ID, second.ID}, third.ID)
}

func TestSelector_IgnoresQuestsRemovedFromCatalog(t *testing.T) {
	ctx := context.Background()
	selector := newSelector(t, 3)

	_, err := selector.Pick(ctx, entity.CategoryDaily, quests(entity.CategoryDaily, "QX", 2))
	require.NoError(t, err)

	// The catalog was reloaded with other quests.
	pool := quests(entity.CategoryDaily, "QD", 2)
	a, err := selector.Pick(ctx, entity.CategoryDaily, pool)
	require.NoError(t, err)
	b, err := selector.Pick(ctx, entity.CategoryDaily, pool)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

func TestSelector_ConcurrentPicks(t *testing.T) {
	ctx := context.Background()
	selector := newSelector(t, 11)
	pool := quests(entity.CategoryInteraction, "QI", 5)

	var mutex sync.Mutex
	seen := map[string]bool{}
	errs := []error{}
	wg := sync.WaitGroup{}
	for i := 0; i < len(pool); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := selector.Pick(ctx, entity.CategoryInteraction, pool)

			mutex.Lock()
			defer mutex.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			seen[q.ID] = true
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Len(t, seen, len(pool))
}

func TestSelector_Reset(t *testing.T) {
	ctx := context.Background()
	selector := newSelector(t, 5)
	pool := quests(entity.CategoryRiddle, "QE", 2)

	_, err := selector.Pick(ctx, entity.CategoryRiddle, pool)
	require.NoError(t, err)
	require.NoError(t, selector.Reset(ctx, entity.CategoryRiddle))

	shown, err := selector.Shown(ctx, entity.CategoryRiddle)
	require.NoError(t, err)
	require.Empty(t, shown)
}
