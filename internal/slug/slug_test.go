package slug

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Closing Deals", "closing-deals"},
		{"cyrillic with punctuation", "Привет, Мир!", "привет-мир"},
		{"mixed separators", "  a  -- b\t c ", "a-b-c"},
		{"digits survive", "Sprint 2 Review", "sprint-2-review"},
		{"compatibility decomposition lowercased", "объект №5", "объект-no5"},
		{"already a slug", "needs-basics", "needs-basics"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{"Закрытие сделки", "Hello, World!", "a--b  c", "объект №5"}
	for _, input := range inputs {
		once := Slugify(input)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q != %q", input, twice, once)
		}
	}
}

func TestEnsureUnique_FreeSlug(t *testing.T) {
	lookup := func(string) (bool, error) { return false, nil }

	got, err := EnsureUnique(lookup, "Closing")
	if err != nil {
		t.Fatalf("EnsureUnique() error = %v", err)
	}
	if got != "closing" {
		t.Errorf("EnsureUnique() = %q, want %q", got, "closing")
	}
}

func TestEnsureUnique_ProbesPastTaken(t *testing.T) {
	taken := map[string]bool{"closing": true, "closing-2": true}
	lookup := func(s string) (bool, error) { return taken[s], nil }

	got, err := EnsureUnique(lookup, "Closing")
	if err != nil {
		t.Fatalf("EnsureUnique() error = %v", err)
	}
	if got != "closing-3" {
		t.Errorf("EnsureUnique() = %q, want %q", got, "closing-3")
	}
}

func TestEnsureUnique_EmptyBaseFallsBack(t *testing.T) {
	taken := map[string]bool{"item": true}
	lookup := func(s string) (bool, error) { return taken[s], nil }

	got, err := EnsureUnique(lookup, "???")
	if err != nil {
		t.Fatalf("EnsureUnique() error = %v", err)
	}
	if got != "item-2" {
		t.Errorf("EnsureUnique() = %q, want %q", got, "item-2")
	}
}
