package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefinition(t *testing.T) {
	raw := `
topics:
  - slug: objections
    title: Возражения
    icon: objections.svg
subtopics:
  - slug: objections-basics
    title: Основы
    topic: objections
lessons:
  - slug: objections-basics-video
    title: Основы
    topic: objections
    subtopic: objections-basics
    section: SPRINT
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("LoadDefinition() error = %v", err)
	}

	if len(def.Topics) != 1 || def.Topics[0].Slug != "objections" {
		t.Errorf("topics = %+v", def.Topics)
	}
	if len(def.Subtopics) != 1 || def.Subtopics[0].Topic != "objections" {
		t.Errorf("subtopics = %+v", def.Subtopics)
	}
	if len(def.Lessons) != 1 || def.Lessons[0].Section != "SPRINT" {
		t.Errorf("lessons = %+v", def.Lessons)
	}
}

func TestLoadDefinition_MissingFile(t *testing.T) {
	if _, err := LoadDefinition(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadDefinition_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("topics: {not: [a, list"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadDefinition(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
