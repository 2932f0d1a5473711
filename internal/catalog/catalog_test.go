package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
Quêtes quotidiennes:
  - id: qd001
    nom: Saluer la lune
    recompense: 10
    type: reaction
    emoji: "🌙"
  - id: QD002
    nom: Partager une image
    recompense: 20
    type: reaction
    emoji: ["📷", "🖼️", "📷"]
enigme:
  - id: QE012
    name: L'étoile cachée
    reward: 15
    type: text
    answer: lumen
    riddle: Je brille sans être soleil.
interaction:
  - id: QI001
    name: Parler au gardien
    reward: 30
    npc: Gardien
    steps:
      - hint: Dis bonjour au gardien
        answer: bonjour
      - hint: Montre-lui la clé
        emoji: "🗝️"
`

type funcSource func(ctx context.Context) ([]byte, error)

func (f funcSource) Read(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

func loadCatalog(t *testing.T, doc string) *Catalog {
	c := New(BytesSource(doc))
	require.NoError(t, c.Load(context.Background()))
	return c
}

func ids(quests []QuestDefinition) []string {
	var result []string
	for _, q := range quests {
		result = append(result, q.ID)
	}
	return result
}

func TestCatalog_Load(t *testing.T) {
	c := loadCatalog(t, testCatalog)

	require.Equal(t, []string{"QD001", "QD002", "QE012", "QI001"}, ids(c.All()))

	daily, err := c.Lookup("QD002")
	require.NoError(t, err)
	require.Equal(t, "Partager une image", daily.Name)
	require.Equal(t, entity.CategoryDaily, daily.Category)
	require.True(t, daily.Repeatable)
	require.Equal(t, uint64(20), daily.Reward)
	require.Equal(t, entity.TriggerReaction, daily.Trigger.Type)
	require.Equal(t, []string{"📷", "🖼️"}, daily.Trigger.Emojis)

	single, err := c.Lookup("QD001")
	require.NoError(t, err)
	require.Equal(t, []string{"🌙"}, single.Trigger.Emojis)

	riddle, err := c.Lookup("qe012")
	require.NoError(t, err)
	require.Equal(t, entity.CategoryRiddle, riddle.Category)
	require.False(t, riddle.Repeatable)
	require.Equal(t, entity.TriggerText, riddle.Trigger.Type)
	require.Equal(t, "lumen", riddle.Trigger.Answer)
	require.Equal(t, "Je brille sans être soleil.", riddle.Presentation.Riddle)

	multi, err := c.Lookup(" qi001 ")
	require.NoError(t, err)
	require.Equal(t, entity.TriggerMultiStep, multi.Trigger.Type)
	require.Len(t, multi.Trigger.Steps, 2)
	require.False(t, multi.Trigger.Steps[0].IsReaction())
	require.True(t, multi.Trigger.Steps[1].IsReaction())
	require.Equal(t, "Gardien", multi.Presentation.Extra["npc"])

	require.Equal(t, []string{"QD001", "QD002"}, ids(c.ByCategory(entity.CategoryDaily)))
	require.Empty(t, c.ByCategory(entity.CategoryResearch))

	_, err = c.Lookup("QX999")
	require.True(t, errorx.Is(err, errorx.QuestNotFound))
}

func TestCatalog_LoadJSON(t *testing.T) {
	c := loadCatalog(t, `{"recherche": [{"id": "qr001", "name": "Trouver la carte", "reward": 5, "type": "manual"}]}`)

	quest, err := c.Lookup("QR001")
	require.NoError(t, err)
	require.Equal(t, entity.CategoryResearch, quest.Category)
	require.Equal(t, entity.TriggerManual, quest.Trigger.Type)
}

func TestCatalog_LoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ""},
		{name: "invalid yaml", doc: "daily: ["},
		{name: "not a mapping", doc: "- id: QD001"},
		{name: "section is not a list", doc: "daily: nothing"},
		{name: "missing id", doc: "daily:\n  - name: a\n    emoji: x"},
		{name: "missing name", doc: "daily:\n  - id: a\n    emoji: x"},
		{name: "unknown category", doc: "weekly:\n  - id: a\n    name: a\n    emoji: x"},
		{name: "unknown trigger type", doc: "daily:\n  - id: a\n    name: a\n    type: dance"},
		{name: "reaction without emoji", doc: "daily:\n  - id: a\n    name: a\n    type: reaction"},
		{name: "text without answer", doc: "daily:\n  - id: a\n    name: a\n    type: text"},
		{name: "multistep without steps", doc: "daily:\n  - id: a\n    name: a\n    type: multistep"},
		{name: "empty step", doc: "daily:\n  - id: a\n    name: a\n    steps:\n      - hint: b"},
		{name: "negative reward", doc: "daily:\n  - id: a\n    name: a\n    reward: -5\n    emoji: x"},
		{name: "duplicated id", doc: "daily:\n  - id: a\n    name: a\n    emoji: x\nriddle:\n  - id: A\n    name: b\n    answer: y"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := New(BytesSource(tc.doc)).Load(context.Background())
			require.True(t, errorx.Is(err, errorx.CatalogLoad), "got %v", err)
		})
	}
}

func TestCatalog_LoadMissingFile(t *testing.T) {
	c := New(FileSource{Path: filepath.Join(t.TempDir(), "quests.yaml")})
	err := c.Load(context.Background())
	require.True(t, errorx.Is(err, errorx.CatalogLoad))
	require.Empty(t, c.All())
}

func TestCatalog_Reload(t *testing.T) {
	doc := testCatalog
	var readErr error
	c := New(funcSource(func(ctx context.Context) ([]byte, error) {
		return []byte(doc), readErr
	}))
	require.NoError(t, c.Load(context.Background()))

	doc = "riddle:\n  - id: QE100\n    name: Nouvelle énigme\n    answer: ombre\n"
	require.NoError(t, c.Load(context.Background()))
	require.Equal(t, []string{"QE100"}, ids(c.All()))
	_, err := c.Lookup("QD001")
	require.True(t, errorx.Is(err, errorx.QuestNotFound))

	// A failed reload keeps the previous index.
	readErr = errors.New("disk error")
	require.Error(t, c.Load(context.Background()))
	require.Equal(t, []string{"QE100"}, ids(c.All()))
}
