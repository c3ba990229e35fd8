package flowtree

import (
	"encoding/json"
	"strings"
	"testing"
)

// buildTree assembles a small two-phase tree by hand:
//
//	root
//	├── phase1
//	│   └── q1_1 ── o1_1 ── r1_1
//	│            └─ o1_2
//	└── phase2
//	    └── q2_2
func buildTree() *Tree {
	root := NewNode("root", "root", KindRoot)

	p1 := NewNode("phase1", "FASE 1: Contexto", KindPhase)
	p1.Phase = 1
	root.AddChild(p1)

	q1 := NewNode("q1_1", "Tipo de aplicación?", KindQuestion)
	q1.Phase = 1
	p1.AddChild(q1)

	o1 := NewNode("o1_1", "WEB", KindOption)
	o1.Phase = 1
	q1.AddChild(o1)
	r1 := NewNode("r1_1", "Aplicación Web", KindRecommendation)
	r1.Phase = 1
	o1.AddChild(r1)

	o2 := NewNode("o1_2", "MOVIL", KindOption)
	o2.Phase = 1
	q1.AddChild(o2)

	p2 := NewNode("phase2", "FASE 2: Datos", KindPhase)
	p2.Phase = 2
	root.AddChild(p2)

	q2 := NewNode("q2_2", "Volumen de datos?", KindQuestion)
	q2.Phase = 2
	p2.AddChild(q2)

	return New(root)
}

func TestTree_NodeLookup(t *testing.T) {
	tree := buildTree()
	if n := tree.Node("o1_2"); n == nil || n.Text != "MOVIL" {
		t.Errorf("expected o1_2 MOVIL, got %+v", n)
	}
	if n := tree.Node("missing"); n != nil {
		t.Errorf("expected nil for unknown id, got %+v", n)
	}
}

func TestTree_ParentIndex(t *testing.T) {
	tree := buildTree()

	parent := tree.Parent("o1_1")
	if parent == nil || parent.ID != "q1_1" {
		t.Fatalf("expected parent of o1_1 to be q1_1, got %+v", parent)
	}
	if parent.Kind != KindQuestion {
		t.Errorf("option parent must be a question, got %q", parent.Kind)
	}

	if p := tree.Parent("root"); p != nil {
		t.Errorf("expected nil parent for root, got %+v", p)
	}
	if p := tree.Parent("missing"); p != nil {
		t.Errorf("expected nil parent for unknown id, got %+v", p)
	}
}

func TestTree_ParentChainReachesRoot(t *testing.T) {
	tree := buildTree()

	// Walk upward from the deepest recommendation; the chain must reach the
	// root and keep the recommendation inside its declared phase.
	rec := tree.Node("r1_1")
	steps := 0
	for n := rec; n != nil; n = tree.Parent(n.ID) {
		if n.Kind == KindPhase && rec.Phase != n.Phase {
			t.Errorf("recommendation phase %d crosses phase boundary %d", rec.Phase, n.Phase)
		}
		steps++
		if steps > 10 {
			t.Fatal("parent chain does not terminate")
		}
	}
	if steps != 5 {
		t.Errorf("expected chain of 5 nodes (rec..root), got %d", steps)
	}
}

func TestTree_Phases(t *testing.T) {
	tree := buildTree()
	phases := tree.Phases()
	if len(phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(phases))
	}
	if phases[0].ID != "phase1" || phases[1].ID != "phase2" {
		t.Errorf("expected insertion order phase1, phase2; got %q, %q", phases[0].ID, phases[1].ID)
	}
}

func TestTree_QuestionsInPhase(t *testing.T) {
	tree := buildTree()

	qs := tree.QuestionsInPhase(1)
	if len(qs) != 1 || qs[0].ID != "q1_1" {
		t.Fatalf("expected q1_1 in phase 1, got %+v", qs)
	}
	qs = tree.QuestionsInPhase(2)
	if len(qs) != 1 || qs[0].ID != "q2_2" {
		t.Fatalf("expected q2_2 in phase 2, got %+v", qs)
	}
	if qs := tree.QuestionsInPhase(9); len(qs) != 0 {
		t.Errorf("expected no questions in phase 9, got %d", len(qs))
	}
}

func TestOptionLabel(t *testing.T) {
	tree := buildTree()

	// Recommendation children take precedence over the branch label.
	if got := OptionLabel(tree.Node("o1_1")); got != "Aplicación Web" {
		t.Errorf("expected recommendation text as label, got %q", got)
	}
	// Without recommendation children the branch label is kept.
	if got := OptionLabel(tree.Node("o1_2")); got != "MOVIL" {
		t.Errorf("expected branch label fallback, got %q", got)
	}

	// Multiple recommendation children join with " / ".
	opt := NewNode("oX", "X", KindOption)
	opt.AddChild(NewNode("rA", "React", KindRecommendation))
	opt.AddChild(NewNode("rB", "Vue.js", KindRecommendation))
	if got := OptionLabel(opt); got != "React / Vue.js" {
		t.Errorf("expected joined label, got %q", got)
	}
}

func TestNode_MarshalJSON(t *testing.T) {
	tree := buildTree()
	data, err := json.Marshal(tree.Root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(data)

	if strings.Contains(s, "null") {
		t.Errorf("leaf children must serialize as [], got: %s", s)
	}
	if !strings.Contains(s, `"type":"phase"`) {
		t.Errorf("expected type field in serialized node, got: %s", s)
	}
	// Root has no phase number; the field is omitted.
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round-trip failed: %v", err)
	}
	if _, ok := decoded["phase"]; ok {
		t.Errorf("root must not carry a phase field")
	}
}

func TestTree_DuplicateIDsFirstWins(t *testing.T) {
	root := NewNode("root", "root", KindRoot)
	a := NewNode("dup", "first", KindRecommendation)
	b := NewNode("dup", "second", KindRecommendation)
	root.AddChild(a)
	root.AddChild(b)

	tree := New(root)
	if got := tree.Node("dup"); got == nil || got.Text != "first" {
		t.Errorf("expected first occurrence to win, got %+v", got)
	}
}
