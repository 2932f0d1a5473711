package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/domain/questclaim"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/model"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/repository"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/idutil"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type QuestLifecycleDomain interface {
	Accept(context.Context, *model.AcceptRequest) (*model.AcceptResult, error)
	AttemptReactionCompletion(context.Context, *model.ReactionRequest) (*model.CompletionResult, error)
	AttemptTextCompletion(context.Context, *model.TextRequest) (*model.CompletionResult, error)
	CompleteManually(context.Context, *model.ManualRequest) (*model.CompletionResult, error)
	CurrentStatus(ctx context.Context, userID string) (*model.StatusReport, error)
	WalletBalance(ctx context.Context, userID string) (uint64, error)
	RewardHistory(ctx context.Context, userID string, limit int) ([]entity.RewardTransaction, error)
	PickQuest(context.Context, entity.Category) (catalog.QuestDefinition, error)
}

// QuestCatalog is the read side of the quest catalog.
type QuestCatalog interface {
	Lookup(id string) (catalog.QuestDefinition, error)
	ByCategory(category entity.Category) []catalog.QuestDefinition
	All() []catalog.QuestDefinition
}

type QuestSelector interface {
	Pick(ctx context.Context, category entity.Category, eligible []catalog.QuestDefinition) (catalog.QuestDefinition, error)
}

type questLifecycleDomain struct {
	catalog                 QuestCatalog
	acceptedQuestRepo       repository.AcceptedQuestRepository
	completedQuestRepo      repository.CompletedQuestRepository
	walletRepo              repository.WalletRepository
	interactionProgressRepo repository.InteractionProgressRepository
	rewardTransactionRepo   repository.RewardTransactionRepository
	selector                QuestSelector
	idGenerator             idutil.Generator
}

func NewQuestLifecycleDomain(
	questCatalog QuestCatalog,
	acceptedQuestRepo repository.AcceptedQuestRepository,
	completedQuestRepo repository.CompletedQuestRepository,
	walletRepo repository.WalletRepository,
	interactionProgressRepo repository.InteractionProgressRepository,
	rewardTransactionRepo repository.RewardTransactionRepository,
	selector QuestSelector,
	idGenerator idutil.Generator,
) *questLifecycleDomain {
	return &questLifecycleDomain{
		catalog:                 questCatalog,
		acceptedQuestRepo:       acceptedQuestRepo,
		completedQuestRepo:      completedQuestRepo,
		walletRepo:              walletRepo,
		interactionProgressRepo: interactionProgressRepo,
		rewardTransactionRepo:   rewardTransactionRepo,
		selector:                selector,
		idGenerator:             idGenerator,
	}
}

func (d *questLifecycleDomain) Accept(
	ctx context.Context, req *model.AcceptRequest,
) (*model.AcceptResult, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found user id")
	}

	quest, err := d.catalog.Lookup(req.QuestID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	_, err = d.acceptedQuestRepo.Get(ctx, req.UserID, quest.ID)
	if err == nil {
		return &model.AcceptResult{Status: model.AcceptStatusAlreadyAccepted, Quest: quest}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get accepted quest: %v", err)
		return nil, errorx.Unknown
	}

	if !quest.Repeatable {
		completed, err := d.completedQuestRepo.Exists(ctx, req.UserID, quest.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check completed quest: %v", err)
			return nil, errorx.Unknown
		}

		if completed {
			return &model.AcceptResult{
				Status: model.AcceptStatusAlreadyCompletedNonRepeatable,
				Quest:  quest,
			}, nil
		}
	}

	inserted, err := d.acceptedQuestRepo.Add(ctx, &entity.AcceptedQuest{
		UserID:   req.UserID,
		QuestID:  quest.ID,
		Category: quest.Category,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add accepted quest: %v", err)
		return nil, errorx.Unknown
	}

	if !inserted {
		return &model.AcceptResult{Status: model.AcceptStatusAlreadyAccepted, Quest: quest}, nil
	}

	if err := d.walletRepo.UpsertDisplayName(ctx, req.UserID, req.DisplayName); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert wallet display name: %v", err)
		return nil, errorx.Unknown
	}

	if needsProgressCursor(quest) {
		err := d.interactionProgressRepo.Upsert(ctx, &entity.InteractionProgress{
			UserID:           req.UserID,
			QuestID:          quest.ID,
			Step:             1,
			AwaitingReaction: false,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create interaction progress: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit accept transaction: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.Logger(ctx).Debugf("User %s accepted quest %s", req.UserID, quest.ID)
	return &model.AcceptResult{
		Status:       model.AcceptStatusAccepted,
		Quest:        quest,
		Instructions: instructionsOf(quest),
	}, nil
}

func (d *questLifecycleDomain) AttemptReactionCompletion(
	ctx context.Context, req *model.ReactionRequest,
) (*model.CompletionResult, error) {
	if req.Emoji == "" {
		return model.NoMatchResult(), nil
	}

	return d.attempt(ctx, req.UserID, req.DisplayName, questclaim.Reaction(req.Emoji), req.QuestIDs)
}

func (d *questLifecycleDomain) AttemptTextCompletion(
	ctx context.Context, req *model.TextRequest,
) (*model.CompletionResult, error) {
	if req.Text == "" {
		return model.NoMatchResult(), nil
	}

	return d.attempt(ctx, req.UserID, req.DisplayName, questclaim.Text(req.Text), nil)
}

func (d *questLifecycleDomain) CompleteManually(
	ctx context.Context, req *model.ManualRequest,
) (*model.CompletionResult, error) {
	quest, err := d.catalog.Lookup(req.QuestID)
	if err != nil {
		return nil, err
	}

	return d.complete(ctx, req.UserID, req.DisplayName, quest)
}

// attempt scans the accepted quests of the user in catalog order and applies
// the first one the signal satisfies. At most one quest moves per signal.
func (d *questLifecycleDomain) attempt(
	ctx context.Context, userID, displayName string, signal questclaim.Signal, candidates []string,
) (*model.CompletionResult, error) {
	accepted, err := d.acceptedQuestRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get accepted quests: %v", err)
		return nil, errorx.Unknown
	}

	if len(accepted) == 0 {
		return model.NoMatchResult(), nil
	}

	candidateIDs := make([]string, 0, len(candidates))
	for _, id := range candidates {
		candidateIDs = append(candidateIDs, catalog.NormalizeID(id))
	}

	acceptedIDs := make(map[string]bool, len(accepted))
	for _, a := range accepted {
		acceptedIDs[a.QuestID] = true
	}

	progresses, err := d.interactionProgressRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get interaction progresses: %v", err)
		return nil, errorx.Unknown
	}

	steps := make(map[string]int, len(progresses))
	for _, p := range progresses {
		steps[p.QuestID] = p.Step
	}

	for _, quest := range d.catalog.All() {
		if !acceptedIDs[quest.ID] {
			continue
		}

		if len(candidateIDs) > 0 && !slices.Contains(candidateIDs, quest.ID) {
			continue
		}

		processor, err := questclaim.NewProcessor(quest.Trigger)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot create processor of quest %s: %v", quest.ID, err)
			continue
		}

		step, ok := steps[quest.ID]
		if !ok {
			step = 1
		}

		action := processor.GetActionForClaim(ctx, signal, step)
		switch {
		case action.Is(questclaim.Complete):
			result, err := d.complete(ctx, userID, displayName, quest)
			if err != nil {
				return nil, err
			}

			if result.Status == model.CompletionStatusCompleted {
				return result, nil
			}

		case action.Is(questclaim.AdvanceStep):
			result, err := d.advance(ctx, userID, quest, step)
			if err != nil {
				return nil, err
			}

			if result.Status == model.CompletionStatusStepAdvanced {
				return result, nil
			}

		default:
			if msg := action.Message(); msg != "" {
				xcontext.Logger(ctx).Debugf("Quest %s does not match: %s", quest.ID, msg)
			}
		}
	}

	return model.NoMatchResult(), nil
}

// complete moves the quest from accepted to completed and pays the reward.
// Removing the accepted row is the claim: when another event already removed
// it, nothing else happens.
func (d *questLifecycleDomain) complete(
	ctx context.Context, userID, displayName string, quest catalog.QuestDefinition,
) (*model.CompletionResult, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	removed, err := d.acceptedQuestRepo.Remove(ctx, userID, quest.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot remove accepted quest: %v", err)
		return nil, errorx.Unknown
	}

	if !removed {
		return model.NoMatchResult(), nil
	}

	if err := d.completedQuestRepo.Add(ctx, userID, quest.ID, quest.Category); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add completed quest: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.walletRepo.Credit(ctx, userID, displayName, quest.Reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit wallet: %v", err)
		return nil, errorx.Unknown
	}

	err = d.rewardTransactionRepo.Create(ctx, &entity.RewardTransaction{
		SnowFlakeBase: entity.SnowFlakeBase{ID: d.idGenerator.Generate()},
		UserID:        userID,
		QuestID:       quest.ID,
		Amount:        quest.Reward,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward transaction: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.interactionProgressRepo.Delete(ctx, userID, quest.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete interaction progress: %v", err)
		return nil, errorx.Unknown
	}

	wallet, err := d.walletRepo.Get(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get wallet: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit completion transaction: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.Logger(ctx).Debugf("User %s completed quest %s (+%d)", userID, quest.ID, quest.Reward)
	return &model.CompletionResult{
		Status:  model.CompletionStatusCompleted,
		Quest:   quest,
		Reward:  quest.Reward,
		Balance: wallet.Balance,
	}, nil
}

func (d *questLifecycleDomain) advance(
	ctx context.Context, userID string, quest catalog.QuestDefinition, step int,
) (*model.CompletionResult, error) {
	next, ok := quest.Trigger.StepAt(step + 1)
	if !ok {
		return model.NoMatchResult(), nil
	}

	advanced, err := d.interactionProgressRepo.Advance(ctx, userID, quest.ID, step, next.IsReaction())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot advance interaction progress: %v", err)
		return nil, errorx.Unknown
	}

	if !advanced {
		return model.NoMatchResult(), nil
	}

	return &model.CompletionResult{
		Status:       model.CompletionStatusStepAdvanced,
		Quest:        quest,
		Step:         step + 1,
		NextStepHint: next.Hint,
	}, nil
}

func (d *questLifecycleDomain) CurrentStatus(ctx context.Context, userID string) (*model.StatusReport, error) {
	accepted, err := d.acceptedQuestRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get accepted quests: %v", err)
		return nil, errorx.Unknown
	}

	completed, err := d.completedQuestRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get completed quests: %v", err)
		return nil, errorx.Unknown
	}

	report := &model.StatusReport{}
	for _, category := range entity.Categories {
		status := model.CategoryStatus{Category: category}
		for _, a := range accepted {
			if a.Category == category {
				status.InProgress = append(status.InProgress, d.displayLine(a.QuestID))
			}
		}

		for _, c := range completed {
			if c.Category == category {
				status.Completed = append(status.Completed, d.displayLine(c.QuestID))
			}
		}

		report.Categories = append(report.Categories, status)
	}

	return report, nil
}

func (d *questLifecycleDomain) WalletBalance(ctx context.Context, userID string) (uint64, error) {
	if err := d.walletRepo.Provision(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot provision wallet: %v", err)
		return 0, errorx.Unknown
	}

	wallet, err := d.walletRepo.Get(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get wallet: %v", err)
		return 0, errorx.Unknown
	}

	return wallet.Balance, nil
}

func (d *questLifecycleDomain) RewardHistory(
	ctx context.Context, userID string, limit int,
) ([]entity.RewardTransaction, error) {
	transactions, err := d.rewardTransactionRepo.GetByUserID(ctx, userID, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward transactions: %v", err)
		return nil, errorx.Unknown
	}

	return transactions, nil
}

func (d *questLifecycleDomain) PickQuest(
	ctx context.Context, category entity.Category,
) (catalog.QuestDefinition, error) {
	return d.selector.Pick(ctx, category, d.catalog.ByCategory(category))
}

// displayLine falls back to the bare id for quests no longer in the catalog.
func (d *questLifecycleDomain) displayLine(questID string) string {
	quest, err := d.catalog.Lookup(questID)
	if err != nil {
		return questID
	}

	return fmt.Sprintf("%s · %s", quest.ID, quest.Name)
}

func needsProgressCursor(quest catalog.QuestDefinition) bool {
	return quest.Trigger.Type == entity.TriggerMultiStep || quest.Category == entity.CategoryInteraction
}

func instructionsOf(quest catalog.QuestDefinition) model.Instructions {
	switch {
	case quest.Trigger.Type == entity.TriggerMultiStep:
		first, _ := quest.Trigger.StepAt(1)
		return model.Instructions{
			Kind:     model.InstructionSteps,
			Summary:  quest.Presentation.Summary,
			StepHint: first.Hint,
			Emojis:   first.Emojis,
		}

	case quest.Category == entity.CategoryRiddle || quest.Presentation.Riddle != "":
		riddle := quest.Presentation.Riddle
		if riddle == "" {
			riddle = quest.Presentation.Summary
		}

		return model.Instructions{Kind: model.InstructionRiddle, Riddle: riddle}

	default:
		return model.Instructions{
			Kind:    model.InstructionDescription,
			Summary: quest.Presentation.Summary,
			Detail:  quest.Presentation.Detail,
			Emojis:  quest.Trigger.Emojis,
		}
	}
}
