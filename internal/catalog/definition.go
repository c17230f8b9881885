// Package catalog syncs the persisted topic/subtopic/lesson hierarchy to
// a canonical definition set: upsert everything, then prune what fell out
// of the set, children before parents.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TopicDef describes one canonical topic.
type TopicDef struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// SubtopicDef describes one canonical subtopic. Topic names the parent by
// slug and must match a topic in the same definition.
type SubtopicDef struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Topic       string `yaml:"topic"`
}

// LessonDef describes one canonical lesson. Both parent slugs are
// optional.
type LessonDef struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Topic       string `yaml:"topic"`
	Subtopic    string `yaml:"subtopic"`
	Section     string `yaml:"section"`
}

// Definition is the full canonical catalog.
type Definition struct {
	Topics    []TopicDef    `yaml:"topics"`
	Subtopics []SubtopicDef `yaml:"subtopics"`
	Lessons   []LessonDef   `yaml:"lessons"`
}

// LoadDefinition reads a canonical catalog from a YAML file.
func LoadDefinition(path string) (Definition, error) {
	var def Definition

	data, err := os.ReadFile(path)
	if err != nil {
		return def, fmt.Errorf("read catalog definition: %w", err)
	}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return def, fmt.Errorf("parse catalog definition: %w", err)
	}

	return def, nil
}
