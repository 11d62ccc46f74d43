package storage_test

import (
	"strings"
	"testing"

	"github.com/halalcheck/halalcheck/pkg/storage"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := storage.Config{ConnectionString: "test-connection"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ContainerName != "documents" {
		t.Errorf("container_name: got %s, want documents", cfg.ContainerName)
	}
	if cfg.MaxListSize != 50 {
		t.Errorf("max_list_size: got %d, want 50", cfg.MaxListSize)
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_CONTAINER", "labels")
	t.Setenv("TEST_CONN", "override-connection")
	t.Setenv("TEST_MAX_LIST", "120")

	env := &storage.Env{
		ContainerName:    "TEST_CONTAINER",
		ConnectionString: "TEST_CONN",
		MaxListSize:      "TEST_MAX_LIST",
	}

	cfg := storage.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ContainerName != "labels" {
		t.Errorf("container_name: got %s, want labels", cfg.ContainerName)
	}
	if cfg.ConnectionString != "override-connection" {
		t.Errorf("connection_string: got %s, want override-connection", cfg.ConnectionString)
	}
	if cfg.MaxListSize != 120 {
		t.Errorf("max_list_size: got %d, want 120", cfg.MaxListSize)
	}
}

func TestFinalizeValidation(t *testing.T) {
	cfg := storage.Config{ContainerName: "docs"}
	err := cfg.Finalize(nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "connection_string required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFinalizeCapsListSize(t *testing.T) {
	cfg := storage.Config{ConnectionString: "conn", MaxListSize: 10000}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if cfg.MaxListSize != storage.MaxListCap {
		t.Errorf("max_list_size: got %d, want cap %d", cfg.MaxListSize, storage.MaxListCap)
	}
}

func TestMerge(t *testing.T) {
	base := storage.Config{
		ContainerName:    "documents",
		ConnectionString: "base-conn",
	}

	overlay := storage.Config{ConnectionString: "overlay-conn"}
	base.Merge(&overlay)

	if base.ContainerName != "documents" {
		t.Errorf("container_name should remain documents, got %s", base.ContainerName)
	}
	if base.ConnectionString != "overlay-conn" {
		t.Errorf("connection_string: got %s, want overlay-conn", base.ConnectionString)
	}
}

func TestParseMaxResults(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int32
		wantErr bool
	}{
		{"empty uses fallback", "", 50, false},
		{"valid below fallback", "25", 25, false},
		{"clamped to fallback", "200", 50, false},
		{"zero invalid", "0", 0, true},
		{"negative invalid", "-5", 0, true},
		{"non-numeric invalid", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.ParseMaxResults(tt.value, 50)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMaxResults(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMaxResults(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}
