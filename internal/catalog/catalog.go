package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/Lyttaaa/Maitre-des-qu-tes/internal/entity"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/errorx"
	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Catalog indexes the quest definitions of a source. Readers always see a
// complete index, a reload replaces it at once.
type Catalog struct {
	source Source
	index  atomic.Pointer[index]
}

type index struct {
	all        []QuestDefinition
	byID       map[string]QuestDefinition
	byCategory map[entity.Category][]QuestDefinition
}

func New(source Source) *Catalog {
	return &Catalog{source: source}
}

func (c *Catalog) Load(ctx context.Context) error {
	data, err := c.source.Read(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read quest catalog: %v", err)
		return errorx.New(errorx.CatalogLoad, "Cannot read quest catalog: %v", err)
	}

	quests, err := Parse(data)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot parse quest catalog: %v", err)
		return errorx.New(errorx.CatalogLoad, "Invalid quest catalog: %v", err)
	}

	c.index.Store(newIndex(quests))
	xcontext.Logger(ctx).Infof("Loaded %d quests from catalog", len(quests))
	return nil
}

// Lookup is case-insensitive.
func (c *Catalog) Lookup(id string) (QuestDefinition, error) {
	if idx := c.index.Load(); idx != nil {
		if quest, ok := idx.byID[NormalizeID(id)]; ok {
			return quest, nil
		}
	}

	return QuestDefinition{}, errorx.New(errorx.QuestNotFound, "Not found quest %s", id)
}

func (c *Catalog) ByCategory(category entity.Category) []QuestDefinition {
	idx := c.index.Load()
	if idx == nil {
		return nil
	}

	return slices.Clone(idx.byCategory[category])
}

// All returns every quest, sections in document order and entries in list
// order.
func (c *Catalog) All() []QuestDefinition {
	idx := c.index.Load()
	if idx == nil {
		return nil
	}

	return slices.Clone(idx.all)
}

func newIndex(quests []QuestDefinition) *index {
	idx := &index{
		all:        quests,
		byID:       make(map[string]QuestDefinition, len(quests)),
		byCategory: make(map[entity.Category][]QuestDefinition),
	}

	for _, q := range quests {
		idx.byID[q.ID] = q
		idx.byCategory[q.Category] = append(idx.byCategory[q.Category], q)
	}

	return idx
}

// Parse decodes a catalog document: a mapping of section name to a list of
// quest entries. JSON documents are accepted as well.
func Parse(data []byte) ([]QuestDefinition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("the document must map sections to lists of quests")
	}

	var quests []QuestDefinition
	seen := map[string]bool{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		section := root.Content[i].Value

		var entries []map[string]any
		if err := root.Content[i+1].Decode(&entries); err != nil {
			return nil, fmt.Errorf("section %s: %w", section, err)
		}

		for _, entry := range entries {
			quest, err := decodeEntry(section, entry)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", section, err)
			}

			if seen[quest.ID] {
				return nil, fmt.Errorf("duplicated quest id %s", quest.ID)
			}

			seen[quest.ID] = true
			quests = append(quests, quest)
		}
	}

	return quests, nil
}

// NormalizeID returns the form ids are stored under. Ids are
// case-insensitive.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
