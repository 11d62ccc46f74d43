package knowledge_test

import (
	"testing"

	"github.com/halalcheck/halalcheck/internal/islamic"
	"github.com/halalcheck/halalcheck/internal/islamic/knowledge"
)

func loadedBase(t *testing.T) *knowledge.Base {
	t.Helper()
	base := knowledge.New()
	if err := base.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return base
}

func TestLoadIdempotent(t *testing.T) {
	base := loadedBase(t)
	size := base.Size()

	if err := base.Load(); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if base.Size() != size {
		t.Errorf("size changed after reload: %d, want %d", base.Size(), size)
	}
}

func TestExactMatch(t *testing.T) {
	base := loadedBase(t)

	tests := []struct {
		name       string
		query      string
		wantStatus islamic.Status
	}{
		{"known halal", "water", islamic.StatusHalal},
		{"case insensitive", "WATER", islamic.StatusHalal},
		{"padded", "  Pork Gelatin  ", islamic.StatusHaram},
		{"mashbooh additive", "cochineal", islamic.StatusMashbooh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := base.Exact(tt.query)
			if !ok {
				t.Fatalf("Exact(%q) not found", tt.query)
			}
			if c.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", c.Status, tt.wantStatus)
			}
		})
	}
}

func TestClassificationSubstring(t *testing.T) {
	base := loadedBase(t)

	// table name contained in query
	c := base.Classification("pure cane sugar syrup")
	if c.Status != islamic.StatusHalal {
		t.Errorf("status = %s, want HALAL", c.Status)
	}
	if c.Confidence <= 10 {
		t.Errorf("confidence = %d, want a table match, not the unknown fallback", c.Confidence)
	}
}

func TestClassificationUnknown(t *testing.T) {
	base := loadedBase(t)

	c := base.Classification("xanthozine-47")

	if c.Status != islamic.StatusMashbooh {
		t.Errorf("status = %s, want MASHBOOH", c.Status)
	}
	if c.Confidence != 10 {
		t.Errorf("confidence = %d, want 10", c.Confidence)
	}
	if !c.RequiresVerification {
		t.Error("unknown ingredient must require verification")
	}
	if len(c.References) == 0 {
		t.Error("unknown classification carries the precautionary reference")
	}
}

func TestHaramEntriesCarryReferences(t *testing.T) {
	base := loadedBase(t)

	for _, entry := range base.ByStatus(islamic.StatusHaram) {
		if len(entry.References) == 0 {
			t.Errorf("HARAM entry %q has no references", entry.Name)
		}
	}
}

func TestClassificationCopiesSlices(t *testing.T) {
	base := loadedBase(t)

	first := base.Classification("pork gelatin")
	if len(first.References) == 0 {
		t.Fatal("pork gelatin classification has no references")
	}

	first.References[0].Citation = "mutated"
	first.References = append(first.References, islamic.Reference{Citation: "appended"})

	second := base.Classification("pork gelatin")
	if second.References[0].Citation == "mutated" {
		t.Error("mutating a returned classification altered the table entry")
	}
	if len(second.References) != len(first.References)-1 {
		t.Errorf("table entry has %d references after caller append, want %d",
			len(second.References), len(first.References)-1)
	}

	entry, ok := base.Exact("pork gelatin")
	if !ok {
		t.Fatal("Exact(pork gelatin) not found")
	}
	entry.References[0].Citation = "mutated again"
	if c := base.Classification("pork gelatin"); c.References[0].Citation == "mutated again" {
		t.Error("mutating an Exact result altered the table entry")
	}
}

func TestSearch(t *testing.T) {
	base := loadedBase(t)

	results := base.Search("gelatin")
	if len(results) < 2 {
		t.Fatalf("Search(gelatin) = %d results, want at least 2", len(results))
	}
}

func TestByCategory(t *testing.T) {
	base := loadedBase(t)

	oils := base.ByCategory("Plant Oils")
	if len(oils) == 0 {
		t.Fatal("no Plant Oils entries")
	}
	for _, entry := range oils {
		if entry.Status != islamic.StatusHalal {
			t.Errorf("plant oil %q status = %s, want HALAL", entry.Name, entry.Status)
		}
	}
}
