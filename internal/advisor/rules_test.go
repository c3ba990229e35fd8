package advisor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRule_Matches(t *testing.T) {
	rule := Rule{
		Question: []string{"tipo", "aplicaci"},
		Option:   []string{"web", "móvil"},
	}

	tests := []struct {
		name     string
		question string
		option   string
		want     bool
	}{
		{"both question terms and option term", "qué tipo de aplicación necesitas?", "web", true},
		{"second option alternative", "qué tipo de aplicación necesitas?", "móvil", true},
		{"missing one question term", "qué tipo de proyecto?", "web", false},
		{"no option term", "qué tipo de aplicación necesitas?", "escritorio", false},
		{"option term embedded", "tipo de aplicación", "aplicación web moderna", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.Matches(tt.question, tt.option); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.question, tt.option, got, tt.want)
			}
		})
	}
}

func TestRule_AccentTolerantSubstrings(t *testing.T) {
	rule := Rule{
		Question: []string{"mbito"},
		Option:   []string{"b2b"},
	}
	if !rule.Matches("ámbito principal del proyecto?", "b2b") {
		t.Errorf("expected 'mbito' to match accented prompt")
	}
	if !rule.Matches("ambito principal del proyecto?", "b2b") {
		t.Errorf("expected 'mbito' to match unaccented prompt")
	}
}

func TestDefaultRules_CoverKnownTriggers(t *testing.T) {
	rules := DefaultRules()
	if len(rules) == 0 {
		t.Fatal("expected built-in rules")
	}

	fired := 0
	for _, r := range rules {
		if r.Matches("qué tipo de aplicación necesitas?", "web") {
			fired++
			for _, add := range r.Adds {
				if add.Text == "" {
					t.Errorf("rule add with empty text")
				}
			}
		}
	}
	if fired != 1 {
		t.Errorf("expected exactly one web rule to fire, got %d", fired)
	}
}

func TestLoadRules(t *testing.T) {
	yamlDoc := `rules:
  - question: ["tipo", "aplicaci"]
    option: ["web"]
    adds:
      - category: frontend
        text: React
      - category: backend
        text: Node.js
  - question: ["seguridad"]
    option: ["cifrado"]
    adds:
      - category: security
        text: Cifrado extremo a extremo
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Adds[0].Category != CategoryFrontend || rules[0].Adds[0].Text != "React" {
		t.Errorf("unexpected first add: %+v", rules[0].Adds[0])
	}
	if !rules[1].Matches("nivel de seguridad?", "cifrado extremo") {
		t.Errorf("expected loaded rule to match")
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing rules file")
	}
}
