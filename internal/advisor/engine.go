package advisor

import (
	"strings"

	"github.com/dgallion1/stackadvisor/internal/flowtree"
)

// Answer is one selected option, as collected by the questionnaire client.
// AnswerID is resolved against option node ids at evaluation time.
type Answer struct {
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
	Phase      int    `json:"phase"`
}

// Recommendations maps every category to an ordered, de-duplicated list.
// All seven keys are always present.
type Recommendations map[Category][]string

func newRecommendations() Recommendations {
	recs := make(Recommendations, len(Categories))
	for _, cat := range Categories {
		recs[cat] = []string{}
	}
	return recs
}

// defaultRecommendations is the global fallback when no selected option
// carries attached recommendation text.
var defaultRecommendations = []string{
	"React o Vue.js para el frontend",
	"Node.js o Django para el backend",
	"PostgreSQL como base de datos",
	"Monolito modulable como arquitectura inicial",
	"Metodología ágil con ciclos cortos (Scrum)",
	"HTTPS y OAuth2 desde el inicio",
}

// Engine derives categorized recommendations from a decision tree and a set
// of answers. It holds no mutable state: every Evaluate call is an
// independent pure function over (tree, answers), safe to run concurrently.
type Engine struct {
	tree  *flowtree.Tree
	rules []Rule
}

// NewEngine creates an engine over an immutable tree. A nil rules slice
// selects the built-in enrichment table.
func NewEngine(tree *flowtree.Tree, rules []Rule) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{tree: tree, rules: rules}
}

// Evaluate resolves each answer against the tree, classifies the attached
// recommendation texts and layers on the enrichment table. Unresolvable
// answer ids contribute nothing; the engine degrades to fewer
// recommendations, never errors.
func (e *Engine) Evaluate(answers []Answer) Recommendations {
	// Direct collection: recommendation children of each selected option,
	// in answer order then child order. A node-level category annotation
	// takes precedence over keyword classification.
	type collected struct {
		text string
		cat  Category
	}
	var items []collected
	for _, ans := range answers {
		opt := e.tree.Node(ans.AnswerID)
		if opt == nil {
			continue
		}
		for _, child := range opt.Children {
			if child.Kind != flowtree.KindRecommendation {
				continue
			}
			it := collected{text: child.Text}
			if c, ok := child.Metadata["category"].(string); ok {
				it.cat = Category(c)
			}
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		for _, d := range defaultRecommendations {
			items = append(items, collected{text: d})
		}
	}

	recs := newRecommendations()
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.text] {
			continue
		}
		seen[it.text] = true
		cat := it.cat
		if _, ok := recs[cat]; !ok {
			cat = Classify(it.text)
		}
		recs[cat] = append(recs[cat], it.text)
	}

	// Enrichment: keyed on the option label and its parent question prompt.
	for _, ans := range answers {
		opt := e.tree.Node(ans.AnswerID)
		if opt == nil {
			continue
		}
		question := e.tree.Parent(opt.ID)
		if question == nil || question.Kind != flowtree.KindQuestion {
			// No locatable parent question: enrichment is skipped, the
			// direct collection above still applies.
			continue
		}
		questionLow := strings.ToLower(question.Text)
		optionLow := strings.ToLower(opt.Text)
		for _, rule := range e.rules {
			if !rule.Matches(questionLow, optionLow) {
				continue
			}
			for _, add := range rule.Adds {
				if _, ok := recs[add.Category]; !ok {
					// Unknown category in an external table.
					continue
				}
				recs[add.Category] = append(recs[add.Category], add.Text)
			}
		}
	}

	for cat, list := range recs {
		recs[cat] = dedupe(list)
	}
	return recs
}

// dedupe collapses to first occurrence, preserving order.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
