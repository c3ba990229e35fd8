package flowtree

import "encoding/json"

// Kind discriminates the node variants of a parsed flow.
type Kind string

const (
	KindRoot           Kind = "root"
	KindPhase          Kind = "phase"
	KindQuestion       Kind = "question"
	KindOption         Kind = "option"
	KindRecommendation Kind = "recommendation"
)

// Node is a single node in the decision tree. The parser builds the tree
// once per flow document; it is never mutated afterward.
type Node struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Kind     Kind           `json:"type"`
	Phase    int            `json:"phase,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Children []*Node        `json:"children"`
}

// NewNode creates a node of the given kind.
func NewNode(id, text string, kind Kind) *Node {
	return &Node{ID: id, Text: text, Kind: kind}
}

// AddChild appends a child; insertion order is display order.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// MarshalJSON keeps children as [] rather than null on leaves, so the
// serialized shape is stable for API consumers.
func (n *Node) MarshalJSON() ([]byte, error) {
	type alias Node
	a := (*alias)(n)
	if a.Children == nil {
		a = &alias{
			ID:       n.ID,
			Text:     n.Text,
			Kind:     n.Kind,
			Phase:    n.Phase,
			Metadata: n.Metadata,
			Children: []*Node{},
		}
	}
	return json.Marshal(a)
}

// Walk visits every node in document order (depth-first, children in
// insertion order). Traversal stops when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Tree wraps a root node with lookup indexes built once at construction.
// Ids are expected unique; on a duplicate id the first node in document
// order wins, matching the parser's first-match contract.
type Tree struct {
	Root    *Node
	byID    map[string]*Node
	parents map[string]string
}

// New indexes a parsed root node. The tree must not be mutated afterward;
// concurrent readers are then safe without locking.
func New(root *Node) *Tree {
	t := &Tree{
		Root:    root,
		byID:    make(map[string]*Node),
		parents: make(map[string]string),
	}
	root.Walk(func(n *Node) bool {
		if _, ok := t.byID[n.ID]; !ok {
			t.byID[n.ID] = n
		}
		for _, c := range n.Children {
			if _, ok := t.parents[c.ID]; !ok {
				t.parents[c.ID] = n.ID
			}
		}
		return true
	})
	return t
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id string) *Node {
	return t.byID[id]
}

// Parent returns the parent of the node with the given id, or nil for the
// root and for unknown ids.
func (t *Tree) Parent(id string) *Node {
	pid, ok := t.parents[id]
	if !ok {
		return nil
	}
	return t.byID[pid]
}

// Phases returns the direct phase children of the root in insertion order.
func (t *Tree) Phases() []*Node {
	var phases []*Node
	for _, c := range t.Root.Children {
		if c.Kind == KindPhase {
			phases = append(phases, c)
		}
	}
	return phases
}

// QuestionsInPhase collects every question node of the given phase in
// document order.
func (t *Tree) QuestionsInPhase(phase int) []*Node {
	var questions []*Node
	t.Root.Walk(func(n *Node) bool {
		if n.Kind == KindQuestion && n.Phase == phase {
			questions = append(questions, n)
		}
		return true
	})
	return questions
}

// OptionLabel returns the presentable text for an option: the " / "-joined
// texts of its recommendation children when it has any, else the option's
// own branch label. The dialect's internal label can stay terse while the
// attached text carries the user-facing phrase.
func OptionLabel(opt *Node) string {
	var parts []string
	for _, c := range opt.Children {
		if c.Kind == KindRecommendation {
			parts = append(parts, c.Text)
		}
	}
	if len(parts) == 0 {
		return opt.Text
	}
	label := parts[0]
	for _, p := range parts[1:] {
		label += " / " + p
	}
	return label
}
