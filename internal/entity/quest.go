package entity

import (
	"strings"

	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/enum"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/textutil"
)

type Category string

var (
	CategoryDaily       = enum.New(Category("daily"), "daily", "quotidienne", "quotidiennes", "journaliere", "journalieres")
	CategoryInteraction = enum.New(Category("interaction"), "interaction", "interactions")
	CategoryResearch    = enum.New(Category("research"), "research", "recherche", "recherches")
	CategoryRiddle      = enum.New(Category("riddle"), "riddle", "riddles", "enigme", "enigmes")
)

// Categories lists every category in reporting order.
var Categories = []Category{CategoryDaily, CategoryInteraction, CategoryResearch, CategoryRiddle}

// Repeatable reports whether a quest of this category can be completed more
// than once by the same participant.
func (c Category) Repeatable() bool {
	return c == CategoryDaily
}

func (c Category) String() string {
	return enum.ToString(c)
}

// ParseCategory accepts any casing, accents and surrounding spaces. A title
// such as "Quêtes quotidiennes" resolves through its last word.
func ParseCategory(s string) (Category, error) {
	normalized := textutil.Normalize(s)
	if c, err := enum.ToEnum[Category](normalized); err == nil {
		return c, nil
	}

	if words := strings.Fields(normalized); len(words) > 1 {
		if c, err := enum.ToEnum[Category](words[len(words)-1]); err == nil {
			return c, nil
		}
	}

	return "", errorx.New(errorx.InvalidCategory, "Invalid category %q", s)
}

type TriggerType string

var (
	TriggerReaction  = enum.New(TriggerType("reaction"), "reaction", "emoji")
	TriggerText      = enum.New(TriggerType("text"), "text", "texte", "answer", "reponse", "enigme")
	TriggerMultiStep = enum.New(TriggerType("multistep"), "multistep", "multi_step", "steps", "etapes", "interaction")
	TriggerManual    = enum.New(TriggerType("manual"), "manual", "manuel", "manuelle")
)

func ParseTriggerType(s string) (TriggerType, error) {
	return enum.ToEnum[TriggerType](textutil.Normalize(s))
}
