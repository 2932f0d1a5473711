package model

import (
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/enum"
)

type AcceptStatus string

var (
	AcceptStatusAccepted                      = enum.New(AcceptStatus("accepted"))
	AcceptStatusAlreadyAccepted               = enum.New(AcceptStatus("already_accepted"))
	AcceptStatusAlreadyCompletedNonRepeatable = enum.New(AcceptStatus("already_completed_non_repeatable"))
)

type CompletionStatus string

var (
	CompletionStatusCompleted    = enum.New(CompletionStatus("completed"))
	CompletionStatusStepAdvanced = enum.New(CompletionStatus("step_advanced"))
	CompletionStatusNoMatch      = enum.New(CompletionStatus("no_match"))
)

type InstructionKind string

var (
	InstructionRiddle      = enum.New(InstructionKind("riddle"))
	InstructionSteps       = enum.New(InstructionKind("steps"))
	InstructionDescription = enum.New(InstructionKind("description"))
)

type AcceptRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	QuestID     string `json:"quest_id"`
}

// Instructions carries what the participant needs to progress on a freshly
// accepted quest.
type Instructions struct {
	Kind     InstructionKind `json:"kind"`
	Summary  string          `json:"summary,omitempty"`
	Detail   string          `json:"detail,omitempty"`
	Riddle   string          `json:"riddle,omitempty"`
	StepHint string          `json:"step_hint,omitempty"`
	Emojis   []string        `json:"emojis,omitempty"`
}

type AcceptResult struct {
	Status       AcceptStatus
	Quest        catalog.QuestDefinition
	Instructions Instructions
}

type ReactionRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Emoji       string `json:"emoji"`

	// QuestIDs optionally restricts the candidates, e.g. to the quest whose
	// listing received the reaction.
	QuestIDs []string `json:"quest_ids"`
}

type TextRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Text        string `json:"text"`
}

type ManualRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	QuestID     string `json:"quest_id"`
}

type CompletionResult struct {
	Status CompletionStatus
	Quest  catalog.QuestDefinition

	// Reward and Balance are set when the quest is completed.
	Reward  uint64
	Balance uint64

	// Step and NextStepHint are set when a multi-step quest advanced.
	Step         int
	NextStepHint string
}

func NoMatchResult() *CompletionResult {
	return &CompletionResult{Status: CompletionStatusNoMatch}
}

type CategoryStatus struct {
	Category   entity.Category
	InProgress []string
	Completed  []string
}

type StatusReport struct {
	Categories []CategoryStatus
}

// IsEmpty reports whether the participant has never accepted any quest.
func (r StatusReport) IsEmpty() bool {
	for _, c := range r.Categories {
		if len(c.InProgress) > 0 || len(c.Completed) > 0 {
			return false
		}
	}

	return true
}
