package questclaim

import (
	"context"
	"fmt"
)

type ActionForClaim interface {
	Name() string
	Message() string
	Is(ActionForClaim) bool
	WithMessage(m string, a ...any) ActionForClaim
}

type actionForClaim struct {
	name    string
	message string
}

func (a actionForClaim) Name() string {
	return a.name
}

func (a actionForClaim) Message() string {
	return a.message
}

func (a actionForClaim) WithMessage(m string, args ...any) ActionForClaim {
	a.message = fmt.Sprintf(m, args...)
	return a
}

func (a actionForClaim) Is(another ActionForClaim) bool {
	return a.Name() == another.Name()
}

var (
	Complete    = actionForClaim{name: "complete"}
	AdvanceStep = actionForClaim{name: "advance_step"}
	NoMatch     = actionForClaim{name: "no_match"}
)

// Signal is something a participant did which may satisfy a trigger. Exactly
// one of Emoji and Text is set.
type Signal struct {
	Emoji string
	Text  string
}

func Reaction(emoji string) Signal {
	return Signal{Emoji: emoji}
}

func Text(text string) Signal {
	return Signal{Text: text}
}

func (s Signal) IsReaction() bool {
	return s.Emoji != ""
}

// Processor decides what a signal does to one accepted quest. The step is the
// 1-based cursor of the participant, only meaningful for multi-step quests.
type Processor interface {
	GetActionForClaim(ctx context.Context, signal Signal, step int) ActionForClaim
}
