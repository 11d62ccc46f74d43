// Package extraction locates and splits ingredient lists inside raw text
// extracted from label documents. Section-header patterns cover the
// languages the platform sees in practice; when no header matches, a
// comma-density heuristic picks the most list-like line.
package extraction

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoIngredients is returned when neither pattern nor heuristic extraction
// finds an ingredient list in the text.
var ErrNoIngredients = errors.New("no ingredient list found in text")

// Method records how the ingredient list was located.
type Method string

// Extraction methods.
const (
	MethodPattern   Method = "pattern"
	MethodHeuristic Method = "heuristic"
)

// Result is an extracted ingredient list with provenance metadata.
type Result struct {
	Ingredients []string `json:"ingredients"`
	Method      Method   `json:"method"`
	Language    string   `json:"language,omitempty"`
	Confidence  int      `json:"confidence"`
}

// headerPattern matches an ingredient section header in one language and
// captures the list that follows it, up to a blank line or a terminating
// section marker.
type headerPattern struct {
	language string
	re       *regexp.Regexp
}

var headerPatterns = []headerPattern{
	{"en", regexp.MustCompile(`(?is)ingredients?\s*[:\-]\s*(.+?)(?:\n\s*\n|\.\s*\n|$)`)},
	{"ar", regexp.MustCompile(`(?is)(?:المكونات|المحتويات)\s*[:\-]?\s*(.+?)(?:\n\s*\n|$)`)},
	{"pl", regexp.MustCompile(`(?is)sk[łl]adniki\s*[:\-]\s*(.+?)(?:\n\s*\n|\.\s*\n|$)`)},
	{"fr", regexp.MustCompile(`(?is)ingr[ée]dients?\s*[:\-]\s*(.+?)(?:\n\s*\n|\.\s*\n|$)`)},
	{"it", regexp.MustCompile(`(?is)ingredienti\s*[:\-]\s*(.+?)(?:\n\s*\n|\.\s*\n|$)`)},
	{"de", regexp.MustCompile(`(?is)zutaten\s*[:\-]\s*(.+?)(?:\n\s*\n|\.\s*\n|$)`)},
}

// minHeuristicCommas is the comma count below which a line is not considered
// a candidate ingredient list.
const minHeuristicCommas = 2

// Extract locates the ingredient list in raw extracted text. Header patterns
// are tried in declaration order; the heuristic fallback selects the line
// with the highest comma density.
func Extract(text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoIngredients
	}

	for _, pattern := range headerPatterns {
		matches := pattern.re.FindStringSubmatch(text)
		if len(matches) < 2 {
			continue
		}
		ingredients := SplitList(matches[1])
		if len(ingredients) == 0 {
			continue
		}
		return &Result{
			Ingredients: ingredients,
			Method:      MethodPattern,
			Language:    pattern.language,
			Confidence:  90,
		}, nil
	}

	return heuristic(text)
}

func heuristic(text string) (*Result, error) {
	var bestLine string
	bestCommas := minHeuristicCommas - 1

	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		commas := strings.Count(line, ",")
		if commas > bestCommas {
			bestLine = line
			bestCommas = commas
		}
	}

	if bestLine == "" {
		return nil, ErrNoIngredients
	}

	ingredients := SplitList(bestLine)
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	return &Result{
		Ingredients: ingredients,
		Method:      MethodHeuristic,
		Confidence:  50,
	}, nil
}

// SplitList splits a raw ingredient segment on commas and semicolons,
// trimming whitespace, trailing periods, and percentage annotations.
var percentAnnotation = regexp.MustCompile(`\s*\(?\d+([.,]\d+)?\s*%\)?`)

func SplitList(segment string) []string {
	segment = strings.ReplaceAll(segment, ";", ",")
	segment = strings.ReplaceAll(segment, "\n", " ")

	var ingredients []string
	for _, part := range strings.Split(segment, ",") {
		part = percentAnnotation.ReplaceAllString(part, "")
		part = strings.Trim(strings.TrimSpace(part), ".")
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ingredients = append(ingredients, part)
	}
	return ingredients
}
