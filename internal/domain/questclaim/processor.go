package questclaim

import (
	"context"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/textutil"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
)

// Reaction Processor
type reactionProcessor struct {
	trigger catalog.Trigger
}

func newReactionProcessor(trigger catalog.Trigger) *reactionProcessor {
	return &reactionProcessor{trigger: trigger}
}

func (p *reactionProcessor) GetActionForClaim(ctx context.Context, signal Signal, _ int) ActionForClaim {
	if !signal.IsReaction() {
		return NoMatch
	}

	if !p.trigger.HasEmoji(signal.Emoji) {
		return NoMatch.WithMessage("Emoji %s is not expected", signal.Emoji)
	}

	return Complete
}

// Text Processor
type textProcessor struct {
	answer string
}

func newTextProcessor(trigger catalog.Trigger) *textProcessor {
	return &textProcessor{answer: trigger.Answer}
}

func (p *textProcessor) GetActionForClaim(ctx context.Context, signal Signal, _ int) ActionForClaim {
	if signal.IsReaction() || signal.Text == "" {
		return NoMatch
	}

	if !textutil.Match(signal.Text, p.answer) {
		return NoMatch.WithMessage("Wrong answer")
	}

	return Complete
}

// Multi-step Processor
type multiStepProcessor struct {
	trigger catalog.Trigger
}

func newMultiStepProcessor(trigger catalog.Trigger) *multiStepProcessor {
	return &multiStepProcessor{trigger: trigger}
}

func (p *multiStepProcessor) GetActionForClaim(ctx context.Context, signal Signal, step int) ActionForClaim {
	current, ok := p.trigger.StepAt(step)
	if !ok {
		xcontext.Logger(ctx).Warnf("Cursor step %d is out of %d steps", step, len(p.trigger.Steps))
		return NoMatch.WithMessage("Invalid step %d", step)
	}

	var matched bool
	if current.IsReaction() {
		matched = signal.IsReaction() && current.HasEmoji(signal.Emoji)
	} else {
		matched = !signal.IsReaction() && signal.Text != "" && textutil.Match(signal.Text, current.Answer)
	}

	if !matched {
		return NoMatch
	}

	if step == len(p.trigger.Steps) {
		return Complete
	}

	return AdvanceStep
}

// Manual Processor
//
// Manual quests are only completed by a moderator, never by a signal.
type manualProcessor struct{}

func (manualProcessor) GetActionForClaim(context.Context, Signal, int) ActionForClaim {
	return NoMatch
}
