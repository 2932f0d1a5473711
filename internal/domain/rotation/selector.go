package rotation

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/repository"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"golang.org/x/exp/slices"
)

// Selector shows every quest of a category once before showing any of them
// again. Each category has its own cycle.
type Selector struct {
	rotationRepo repository.RotationRepository

	mutex sync.Mutex
	rand  *rand.Rand
}

type Option func(*Selector)

func WithRand(r *rand.Rand) Option {
	return func(s *Selector) {
		s.rand = r
	}
}

func NewSelector(rotationRepo repository.RotationRepository, opts ...Option) *Selector {
	s := &Selector{
		rotationRepo: rotationRepo,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Pick chooses uniformly among the eligible quests not shown yet in the
// current cycle. When all of them were shown, the cycle restarts and the pick
// is drawn from the whole pool.
func (s *Selector) Pick(
	ctx context.Context, category entity.Category, eligible []catalog.QuestDefinition,
) (catalog.QuestDefinition, error) {
	if len(eligible) == 0 {
		return catalog.QuestDefinition{}, errorx.New(errorx.EmptyRotationPool,
			"No quest to pick in category %s", category)
	}

	var picked catalog.QuestDefinition
	_, err := s.rotationRepo.Advance(ctx, category, func(shown []string) (string, bool, error) {
		candidates := remaining(eligible, shown)
		reset := len(candidates) == 0
		if reset {
			candidates = eligible
		}

		picked = candidates[s.intn(len(candidates))]
		return picked.ID, reset, nil
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot advance rotation of %s: %v", category, err)
		return catalog.QuestDefinition{}, errorx.Unknown
	}

	return picked, nil
}

// Shown returns the quest ids of the current cycle, sorted.
func (s *Selector) Shown(ctx context.Context, category entity.Category) ([]string, error) {
	shown, err := s.rotationRepo.Members(ctx, category)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rotation of %s: %v", category, err)
		return nil, errorx.Unknown
	}

	sort.Strings(shown)
	return shown, nil
}

func (s *Selector) Reset(ctx context.Context, category entity.Category) error {
	if err := s.rotationRepo.Clear(ctx, category); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset rotation of %s: %v", category, err)
		return errorx.Unknown
	}

	return nil
}

func (s *Selector) intn(n int) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.rand.Intn(n)
}

func remaining(eligible []catalog.QuestDefinition, shown []string) []catalog.QuestDefinition {
	var result []catalog.QuestDefinition
	for _, q := range eligible {
		if !slices.Contains(shown, q.ID) {
			result = append(result, q)
		}
	}

	return result
}
