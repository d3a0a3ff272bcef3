package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePage(t *testing.T, dir, slug, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, slug+".md"), []byte(content), 0644)
	if err != nil {
		t.Fatalf("failed to write page: %v", err)
	}
}

func TestInfoPageWithFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "info", `---
title: About this dashboard
lastUpdated: 2026-08-01
---

Some **bold** prose.
`)

	page, err := NewInfoService(dir).Page("info")
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	if page.Title != "About this dashboard" {
		t.Errorf("got title %q, want %q", page.Title, "About this dashboard")
	}
	if page.LastUpdated != "August 1, 2026" {
		t.Errorf("got last updated %q, want %q", page.LastUpdated, "August 1, 2026")
	}
	if !strings.Contains(page.Content, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered, got %q", page.Content)
	}
}

func TestInfoPageTitleFromSlug(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "usage-guide", "Plain prose, no frontmatter.\n")

	page, err := NewInfoService(dir).Page("usage-guide")
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	if page.Title != "Usage Guide" {
		t.Errorf("got title %q, want %q", page.Title, "Usage Guide")
	}
	if page.LastUpdated == "" {
		t.Error("missing frontmatter date should fall back to the file mtime")
	}
}

func TestInfoPageMissing(t *testing.T) {
	_, err := NewInfoService(t.TempDir()).Page("nope")
	if err == nil {
		t.Error("missing page should be an error")
	}
}
