package formatting_test

import (
	"errors"
	"testing"

	"github.com/halalcheck/halalcheck/pkg/formatting"
)

type classification struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func TestParse(t *testing.T) {
	t.Run("direct JSON", func(t *testing.T) {
		got, err := formatting.Parse[classification](`{"name":"pectin","status":"HALAL"}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Name != "pectin" || got.Status != "HALAL" {
			t.Errorf("Parse = %+v, want {Name:pectin Status:HALAL}", got)
		}
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		input := "```json\n{\"name\":\"rennet\",\"status\":\"MASHBOOH\"}\n```"
		got, err := formatting.Parse[classification](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Name != "rennet" || got.Status != "MASHBOOH" {
			t.Errorf("Parse = %+v, want {Name:rennet Status:MASHBOOH}", got)
		}
	})

	t.Run("markdown fenced with surrounding text", func(t *testing.T) {
		input := "Here is the classification:\n```json\n{\"name\":\"lard\",\"status\":\"HARAM\"}\n```\nDone."
		got, err := formatting.Parse[classification](input)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Status != "HARAM" {
			t.Errorf("Status = %q, want HARAM", got.Status)
		}
	})

	t.Run("invalid content returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[classification]("not json at all")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("empty string returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[classification]("")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("parses into slice type", func(t *testing.T) {
		got, err := formatting.Parse[[]classification](`[{"name":"water","status":"HALAL"},{"name":"lard","status":"HARAM"}]`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if len(got) != 2 || got[1].Status != "HARAM" {
			t.Errorf("got = %+v, want two classifications ending HARAM", got)
		}
	})
}
