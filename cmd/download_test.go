package cmd

import (
	"path/filepath"
	"testing"

	"github.com/rlsinstaller/rls-installer/internals/downloadmgr"
)

func TestTargetFor(t *testing.T) {
	dir := filepath.Join("mods")
	tests := []struct {
		name      string
		url       string
		modID     string
		wantFile  string
		wantModID string
	}{
		{"zip in path", "https://example.com/files/rls_career.zip", "", "rls_career.zip", "rls_career"},
		{"escaped name", "https://example.com/RLS%20Career%20Overhaul.zip", "", "RLS Career Overhaul.zip", "rls_career_overhaul"},
		{"query is ignored", "https://example.com/dl/rls_traffic.zip?token=abc", "", "rls_traffic.zip", "rls_traffic"},
		{"explicit mod id", "https://example.com/rls_career.zip", "career", "rls_career.zip", "career"},
		{"no archive name", "https://example.com/download?id=42", "rls_maps", "rls_maps.zip", "rls_maps"},
		{"derived from non archive", "https://example.com/get/RlsParts", "", "rls_parts.zip", "rls_parts"},
		{"nothing usable", "https://example.com/", "", "mod.zip", "mod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, modID := targetFor(tt.url, dir, tt.modID)
			if target != filepath.Join(dir, tt.wantFile) {
				t.Errorf("target = %q, want %q", target, filepath.Join(dir, tt.wantFile))
			}
			if modID != tt.wantModID {
				t.Errorf("modID = %q, want %q", modID, tt.wantModID)
			}
		})
	}
}

func TestPlainProgress(t *testing.T) {
	var lines []string
	sink := plainProgress(func(s string) { lines = append(lines, s) })

	total := uint64(1000)
	for _, pct := range []uint8{0, 1, 5, 10, 11, 50, 99, 100} {
		pct := pct
		sink.EmitProgress(downloadmgr.ProgressEvent{
			Downloaded: uint64(pct) * 10,
			Total:      &total,
			Progress:   &pct,
		})
	}
	// one line per started decile: 0, 10, 50, 90, 100
	if len(lines) != 5 {
		t.Errorf("got %d lines: %q", len(lines), lines)
	}
}
