// Package knowledge implements the ingredient knowledge base: an in-memory,
// insertion-ordered table of canonical halal classifications loaded once from
// an embedded data file. The table is immutable after load, so lookups need
// no locking.
package knowledge

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/halalcheck/halalcheck/internal/islamic"
)

//go:embed data/ingredients.json
var dataFS embed.FS

const dataFile = "data/ingredients.json"

// Base is the ingredient knowledge base. Entries keep their data file order:
// substring and fuzzy resolution break ties in favor of earlier entries.
type Base struct {
	once    sync.Once
	loadErr error
	order   []string
	entries map[string]islamic.IngredientClassification
}

// New creates an unloaded knowledge base. Call Load before use; every lookup
// also loads lazily, so New never fails.
func New() *Base {
	return &Base{
		entries: make(map[string]islamic.IngredientClassification),
	}
}

// Load populates the table from the embedded data file. It is idempotent:
// repeated calls are no-ops once the first load has run.
func (b *Base) Load() error {
	b.once.Do(func() {
		b.loadErr = b.load()
	})
	return b.loadErr
}

func (b *Base) load() error {
	data, err := dataFS.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("read knowledge data: %w", err)
	}

	var entries []islamic.IngredientClassification
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse knowledge data: %w", err)
	}

	for _, entry := range entries {
		key := Normalize(entry.Name)
		if key == "" {
			return fmt.Errorf("knowledge entry with empty name")
		}
		if entry.Status == islamic.StatusHaram && len(entry.References) == 0 {
			return fmt.Errorf("haram entry %q has no references", entry.Name)
		}
		if _, exists := b.entries[key]; exists {
			return fmt.Errorf("duplicate knowledge entry %q", key)
		}
		b.order = append(b.order, key)
		b.entries[key] = entry
	}

	return nil
}

// Normalize lowercases and trims an ingredient name for table keying.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Classification resolves an ingredient name: exact normalized match first,
// then bidirectional substring match in table order, then the precautionary
// unknown classification. It never fails: unknown ingredients come back as
// MASHBOOH with verification required, never as HALAL.
func (b *Base) Classification(name string) islamic.IngredientClassification {
	if err := b.Load(); err != nil {
		return Unknown(name)
	}

	key := Normalize(name)

	if entry, ok := b.entries[key]; ok {
		return clone(entry)
	}

	for _, stored := range b.order {
		if strings.Contains(stored, key) || strings.Contains(key, stored) {
			return clone(b.entries[stored])
		}
	}

	return Unknown(name)
}

// Exact returns the entry for an exact normalized name, if present.
func (b *Base) Exact(name string) (islamic.IngredientClassification, bool) {
	if err := b.Load(); err != nil {
		return islamic.IngredientClassification{}, false
	}
	entry, ok := b.entries[Normalize(name)]
	if !ok {
		return islamic.IngredientClassification{}, false
	}
	return clone(entry), true
}

// Entries returns all classifications in table order.
func (b *Base) Entries() []islamic.IngredientClassification {
	if err := b.Load(); err != nil {
		return nil
	}
	entries := make([]islamic.IngredientClassification, 0, len(b.order))
	for _, key := range b.order {
		entries = append(entries, clone(b.entries[key]))
	}
	return entries
}

// clone copies an entry's slice fields so callers appending references or
// alternatives never write into the table's backing arrays.
func clone(entry islamic.IngredientClassification) islamic.IngredientClassification {
	if len(entry.References) > 0 {
		entry.References = append([]islamic.Reference(nil), entry.References...)
	}
	if len(entry.Alternatives) > 0 {
		entry.Alternatives = append([]string(nil), entry.Alternatives...)
	}
	return entry
}

// Search returns entries whose name or category contains the query,
// case-insensitively, in table order.
func (b *Base) Search(query string) []islamic.IngredientClassification {
	query = Normalize(query)
	if query == "" {
		return nil
	}

	var matches []islamic.IngredientClassification
	for _, entry := range b.Entries() {
		if strings.Contains(Normalize(entry.Name), query) ||
			strings.Contains(strings.ToLower(entry.Category), query) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// ByStatus returns entries with the given status in table order.
func (b *Base) ByStatus(status islamic.Status) []islamic.IngredientClassification {
	var matches []islamic.IngredientClassification
	for _, entry := range b.Entries() {
		if entry.Status == status {
			matches = append(matches, entry)
		}
	}
	return matches
}

// ByCategory returns entries in the given category, case-insensitively.
func (b *Base) ByCategory(category string) []islamic.IngredientClassification {
	category = strings.ToLower(strings.TrimSpace(category))
	var matches []islamic.IngredientClassification
	for _, entry := range b.Entries() {
		if strings.ToLower(entry.Category) == category {
			matches = append(matches, entry)
		}
	}
	return matches
}

// Size returns the number of loaded entries.
func (b *Base) Size() int {
	if err := b.Load(); err != nil {
		return 0
	}
	return len(b.order)
}

// Unknown builds the precautionary classification for an unrecognized
// ingredient: MASHBOOH at confidence 10 with verification required.
func Unknown(name string) islamic.IngredientClassification {
	return islamic.IngredientClassification{
		Name:       name,
		Status:     islamic.StatusMashbooh,
		Category:   "Unknown",
		Confidence: 10,
		Reasoning:  "Ingredient not found in knowledge base; treated as doubtful until verified.",
		References: []islamic.Reference{
			{
				Source:      islamic.SourceHadith,
				Citation:    "Sahih Muslim 1599",
				Translation: "Leave that which makes you doubt for that which does not make you doubt.",
				School:      islamic.MadhabGeneral,
			},
		},
		RequiresVerification: true,
	}
}
