package madhab_test

import (
	"testing"

	"github.com/halalcheck/halalcheck/internal/islamic"
	"github.com/halalcheck/halalcheck/internal/islamic/madhab"
)

func TestConsensusLevels(t *testing.T) {
	r := madhab.New()

	tests := []struct {
		ingredient string
		level      islamic.ConsensusLevel
		rulings    int
	}{
		{"cochineal", islamic.ConsensusMajority, 4},
		{"pork gelatin", islamic.ConsensusUnanimous, 4},
		{"vanilla extract", islamic.ConsensusMajority, 4},
		{"mechanically slaughtered chicken", islamic.ConsensusUnanimous, 4},
	}

	for _, tt := range tests {
		got := r.Consensus(tt.ingredient)
		if got.Level != tt.level {
			t.Errorf("Consensus(%q).Level = %s, want %s", tt.ingredient, got.Level, tt.level)
		}
		if len(got.Rulings) != tt.rulings {
			t.Errorf("Consensus(%q) returned %d rulings, want %d", tt.ingredient, len(got.Rulings), tt.rulings)
		}
		if got.Recommendation == "" {
			t.Errorf("Consensus(%q) missing recommendation", tt.ingredient)
		}
	}
}

func TestConsensusUnclear(t *testing.T) {
	r := madhab.New()

	got := r.Consensus("xanthan gum")
	if got.Level != islamic.ConsensusUnclear {
		t.Errorf("level = %s, want unclear", got.Level)
	}
	if len(got.Rulings) != 0 {
		t.Errorf("unclear consensus carried %d rulings, want none", len(got.Rulings))
	}
	if got.Recommendation == "" {
		t.Error("unclear consensus must still recommend consulting a scholar")
	}
}

func TestRulingSchoolSpecific(t *testing.T) {
	r := madhab.New()

	ref := r.Ruling("carmine coloring", islamic.MadhabHanafi)
	if ref == nil {
		t.Fatal("expected a Hanafi ruling for carmine")
	}
	if ref.School != islamic.MadhabHanafi {
		t.Errorf("reference school = %s, want %s", ref.School, islamic.MadhabHanafi)
	}
	if ref.Citation == "" {
		t.Error("reference missing citation")
	}

	shafi := r.Ruling("carmine coloring", islamic.MadhabShafi)
	if shafi == nil {
		t.Fatal("expected a Shafi ruling for carmine")
	}
	if shafi.Citation == ref.Citation {
		t.Error("schools share a citation; expected distinct positions")
	}
}

func TestRulingNilCases(t *testing.T) {
	r := madhab.New()

	if ref := r.Ruling("xanthan gum", islamic.MadhabHanafi); ref != nil {
		t.Errorf("unmatched ingredient ruling = %+v, want nil", ref)
	}
	if ref := r.Ruling("cochineal", islamic.MadhabGeneral); ref != nil {
		t.Errorf("general school ruling = %+v, want nil", ref)
	}
	if ref := r.Ruling("   ", islamic.MadhabHanafi); ref != nil {
		t.Errorf("blank ingredient ruling = %+v, want nil", ref)
	}
}
