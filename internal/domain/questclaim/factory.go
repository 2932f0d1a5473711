package questclaim

import (
	"fmt"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/catalog"
	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
)

// Processor Factory
func NewProcessor(trigger catalog.Trigger) (Processor, error) {
	switch trigger.Type {
	case entity.TriggerReaction:
		return newReactionProcessor(trigger), nil

	case entity.TriggerText:
		return newTextProcessor(trigger), nil

	case entity.TriggerMultiStep:
		return newMultiStepProcessor(trigger), nil

	case entity.TriggerManual:
		return manualProcessor{}, nil

	default:
		return nil, fmt.Errorf("invalid trigger type %s", trigger.Type)
	}
}
