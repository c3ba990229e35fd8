package advisor

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"React frontend", CategoryFrontend},
		{"Vue.js", CategoryFrontend},
		{"HTML5/CSS3", CategoryFrontend},
		{"Node.js (Express)", CategoryBackend},
		{"Django (Python)", CategoryBackend},
		{"Java (Spring)", CategoryBackend},
		{"PostgreSQL", CategoryDatabase},
		{"MongoDB / Firebase", CategoryDatabase},
		{"Microservicios + Kubernetes", CategoryArchitecture},
		{"Monolito modulable como arquitectura inicial", CategoryArchitecture},
		{"Metodología ágil (Scrum)", CategoryMethodology},
		{"OAuth2, SSO, cumplimiento de normativas", CategorySecurity},
		{"Cifrado extremo a extremo", CategorySecurity},
		{"Integración con Stripe/PayPal SDKs", CategoryBackend},
		{"Texto sin tecnología reconocible", CategoryOther},
		{"x", CategoryOther},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestClassify_Totality(t *testing.T) {
	// Every non-empty string lands in exactly one of the seven buckets.
	inputs := []string{"", "a", "?????", "1234", "ñandú", "REACT y también SQL"}
	valid := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		valid[c] = true
	}
	for _, in := range inputs {
		got := Classify(in)
		if !valid[got] {
			t.Errorf("Classify(%q) returned unknown category %q", in, got)
		}
	}
}

func TestClassify_FirstCategoryWinsOnAmbiguity(t *testing.T) {
	// Matches both the frontend and database keyword lists; frontend is
	// checked first.
	if got := Classify("React sobre PostgreSQL"); got != CategoryFrontend {
		t.Errorf("expected frontend to win, got %q", got)
	}
	// Backend before database.
	if got := Classify("Node.js y MySQL"); got != CategoryBackend {
		t.Errorf("expected backend to win, got %q", got)
	}
}
