package catalog

import (
	"fmt"
	"strings"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/mitchellh/mapstructure"
)

// rawEntry mirrors the hand-written catalog. Both the english keys and the
// french keys of older catalogs are accepted.
type rawEntry struct {
	ID        string `mapstructure:"id"`
	Name      string `mapstructure:"name"`
	Nom       string `mapstructure:"nom"`
	Category  string `mapstructure:"category"`
	Categorie string `mapstructure:"categorie"`

	Reward     *int64 `mapstructure:"reward"`
	Recompense *int64 `mapstructure:"recompense"`

	Type    string    `mapstructure:"type"`
	Emoji   []string  `mapstructure:"emoji"`
	Emojis  []string  `mapstructure:"emojis"`
	Answer  string    `mapstructure:"answer"`
	Reponse string    `mapstructure:"reponse"`
	Steps   []rawStep `mapstructure:"steps"`
	Etapes  []rawStep `mapstructure:"etapes"`

	Summary     string `mapstructure:"summary"`
	Description string `mapstructure:"description"`
	Detail      string `mapstructure:"detail"`
	Objectif    string `mapstructure:"objectif"`
	Riddle      string `mapstructure:"riddle"`
	Enigme      string `mapstructure:"enigme"`

	Extra map[string]any `mapstructure:",remain"`
}

type rawStep struct {
	Hint    string   `mapstructure:"hint"`
	Indice  string   `mapstructure:"indice"`
	Emoji   []string `mapstructure:"emoji"`
	Answer  string   `mapstructure:"answer"`
	Reponse string   `mapstructure:"reponse"`
}

func decodeEntry(section string, data map[string]any) (QuestDefinition, error) {
	var raw rawEntry
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return QuestDefinition{}, err
	}

	if err := decoder.Decode(data); err != nil {
		return QuestDefinition{}, err
	}

	quest := QuestDefinition{
		ID:   NormalizeID(raw.ID),
		Name: strings.TrimSpace(firstNonEmpty(raw.Name, raw.Nom)),
		Presentation: Presentation{
			Summary: firstNonEmpty(raw.Summary, raw.Description),
			Detail:  firstNonEmpty(raw.Detail, raw.Objectif),
			Riddle:  firstNonEmpty(raw.Riddle, raw.Enigme),
			Extra:   raw.Extra,
		},
	}

	if quest.ID == "" {
		return QuestDefinition{}, fmt.Errorf("entry %q of %s has no id", quest.Name, section)
	}

	if quest.Name == "" {
		return QuestDefinition{}, fmt.Errorf("quest %s has no name", quest.ID)
	}

	category := firstNonEmpty(raw.Category, raw.Categorie, section)
	quest.Category, err = entity.ParseCategory(category)
	if err != nil {
		return QuestDefinition{}, fmt.Errorf("quest %s: %w", quest.ID, err)
	}
	quest.Repeatable = quest.Category.Repeatable()

	reward := raw.Reward
	if reward == nil {
		reward = raw.Recompense
	}

	if reward != nil {
		if *reward < 0 {
			return QuestDefinition{}, fmt.Errorf("quest %s has a negative reward", quest.ID)
		}
		quest.Reward = uint64(*reward)
	}

	quest.Trigger, err = decodeTrigger(raw)
	if err != nil {
		return QuestDefinition{}, fmt.Errorf("quest %s: %w", quest.ID, err)
	}

	return quest, nil
}

func decodeTrigger(raw rawEntry) (Trigger, error) {
	trigger := Trigger{
		Emojis: emojiSet(append(raw.Emoji, raw.Emojis...)),
		Answer: strings.TrimSpace(firstNonEmpty(raw.Answer, raw.Reponse)),
	}

	steps := raw.Steps
	if len(steps) == 0 {
		steps = raw.Etapes
	}

	for i, s := range steps {
		step := Step{
			Hint:   firstNonEmpty(s.Hint, s.Indice),
			Emojis: emojiSet(s.Emoji),
			Answer: strings.TrimSpace(firstNonEmpty(s.Answer, s.Reponse)),
		}

		if !step.IsReaction() && step.Answer == "" {
			return Trigger{}, fmt.Errorf("step %d has neither emoji nor answer", i+1)
		}

		trigger.Steps = append(trigger.Steps, step)
	}

	if raw.Type == "" {
		trigger.Type = inferTriggerType(trigger)
	} else {
		t, err := entity.ParseTriggerType(raw.Type)
		if err != nil {
			return Trigger{}, fmt.Errorf("unknown trigger type %q", raw.Type)
		}
		trigger.Type = t
	}

	switch trigger.Type {
	case entity.TriggerReaction:
		if len(trigger.Emojis) == 0 {
			return Trigger{}, fmt.Errorf("reaction trigger without emoji")
		}
	case entity.TriggerText:
		if trigger.Answer == "" {
			return Trigger{}, fmt.Errorf("text trigger without answer")
		}
	case entity.TriggerMultiStep:
		if len(trigger.Steps) == 0 {
			return Trigger{}, fmt.Errorf("multistep trigger without steps")
		}
	}

	return trigger, nil
}

func inferTriggerType(t Trigger) entity.TriggerType {
	switch {
	case len(t.Steps) > 0:
		return entity.TriggerMultiStep
	case len(t.Emojis) > 0:
		return entity.TriggerReaction
	case t.Answer != "":
		return entity.TriggerText
	default:
		return entity.TriggerManual
	}
}

func emojiSet(emojis []string) []string {
	var set []string
	seen := map[string]bool{}
	for _, e := range emojis {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}

		seen[e] = true
		set = append(set, e)
	}

	return set
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
