package catalog

import (
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"golang.org/x/exp/slices"
)

// QuestDefinition is immutable once loaded.
type QuestDefinition struct {
	ID           string
	Name         string
	Category     entity.Category
	Trigger      Trigger
	Reward       uint64
	Repeatable   bool
	Presentation Presentation
}

type Trigger struct {
	Type entity.TriggerType

	// Emojis is a set kept in catalog order.
	Emojis []string
	Answer string
	Steps  []Step
}

func (t Trigger) HasEmoji(emoji string) bool {
	return slices.Contains(t.Emojis, emoji)
}

// Step is one stage of a multi-step quest. A step with emojis completes by
// reaction, otherwise by text answer.
type Step struct {
	Hint   string
	Emojis []string
	Answer string
}

func (s Step) IsReaction() bool {
	return len(s.Emojis) > 0
}

func (s Step) HasEmoji(emoji string) bool {
	return slices.Contains(s.Emojis, emoji)
}

// StepAt returns the step with 1-based index n.
func (t Trigger) StepAt(n int) (Step, bool) {
	if n < 1 || n > len(t.Steps) {
		return Step{}, false
	}

	return t.Steps[n-1], true
}

type Presentation struct {
	Summary string
	Detail  string
	Riddle  string
	Extra   map[string]any
}
