package extraction_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/halalcheck/halalcheck/internal/extraction"
)

func TestExtractHeaderPatterns(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     []string
	}{
		{
			name:     "english",
			text:     "Net weight 200g\nIngredients: water, sugar, citric acid\n\nBest before 2027",
			language: "en",
			want:     []string{"water", "sugar", "citric acid"},
		},
		{
			name:     "polish",
			text:     "Składniki: woda, cukier, kwas cytrynowy",
			language: "pl",
			want:     []string{"woda", "cukier", "kwas cytrynowy"},
		},
		{
			name:     "french",
			text:     "Ingrédients: eau, sucre, arôme naturel",
			language: "fr",
			want:     []string{"eau", "sucre", "arôme naturel"},
		},
		{
			name:     "german",
			text:     "Zutaten: Wasser, Zucker, Zitronensäure",
			language: "de",
			want:     []string{"Wasser", "Zucker", "Zitronensäure"},
		},
		{
			name:     "arabic",
			text:     "المكونات: ماء, سكر, ملح",
			language: "ar",
			want:     []string{"ماء", "سكر", "ملح"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := extraction.Extract(tt.text)
			if err != nil {
				t.Fatalf("extract failed: %v", err)
			}
			if result.Method != extraction.MethodPattern {
				t.Errorf("method = %s, want pattern", result.Method)
			}
			if result.Language != tt.language {
				t.Errorf("language = %q, want %q", result.Language, tt.language)
			}
			if !slices.Equal(result.Ingredients, tt.want) {
				t.Errorf("ingredients = %v, want %v", result.Ingredients, tt.want)
			}
		})
	}
}

func TestExtractHeuristic(t *testing.T) {
	text := "Premium Gummy Bears\nglucose syrup, sugar, gelatin, citric acid, natural flavors\nMade in a facility that processes nuts"

	result, err := extraction.Extract(text)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if result.Method != extraction.MethodHeuristic {
		t.Errorf("method = %s, want heuristic", result.Method)
	}
	if len(result.Ingredients) != 5 {
		t.Errorf("got %d ingredients, want 5: %v", len(result.Ingredients), result.Ingredients)
	}
	if result.Confidence >= 90 {
		t.Errorf("heuristic confidence = %d, want below pattern confidence", result.Confidence)
	}
}

func TestExtractNoIngredients(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"prose", "This product is made with care.\nStore in a cool dry place."},
		{"single comma", "one, two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := extraction.Extract(tt.text); !errors.Is(err, extraction.ErrNoIngredients) {
				t.Errorf("err = %v, want ErrNoIngredients", err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"water, sugar, salt.", []string{"water", "sugar", "salt"}},
		{"water; sugar; salt", []string{"water", "sugar", "salt"}},
		{"tomato (80%), onion 10%, basil", []string{"tomato", "onion", "basil"}},
		{"wheat flour (62,5%), palm oil", []string{"wheat flour", "palm oil"}},
		{" , ,, ", nil},
	}

	for _, tt := range tests {
		if got := extraction.SplitList(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
