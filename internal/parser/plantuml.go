package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/stackadvisor/internal/flowtree"
)

// Line patterns of the restricted activity-diagram dialect. Matching is a
// substring search, so surrounding arrow syntax or indentation is ignored.
var (
	partitionRe = regexp.MustCompile(`(?i)partition\s*"([^"]+)"`)
	phaseNumRe  = regexp.MustCompile(`(?i)FASE\s*(\d+)`)
	// Accepts both ':¿Texto?;' and ':Pregunta 1: Texto?;'.
	questionRe = regexp.MustCompile(`(?i):\s*(?:Pregunta\s*\d*\s*:)?\s*(¿?\s*.+?\?)\s*;`)
	ifThenRe   = regexp.MustCompile(`(?i)if\s*\(([^)]+)\)\s*then\s*\(([^)]+)\)`)
	// Label-only continuation variant: 'elseif (LABEL)' with no then-clause.
	elseifRe = regexp.MustCompile(`(?i)elseif\s*\(([^)]+)\)`)
	actionRe = regexp.MustCompile(`:\s*([^;]+);`)
)

// Control keywords whose action lines carry no content. Tested as
// case-insensitive prefixes of the action text.
var controlPrefixes = []string{"inicio", "start", "stop", "end", "title", "endif"}

// flowState is the cursor state of a single parse pass: where newly
// recognized nodes attach, and the running id counters. Counters are global
// across the pass; ids embed the phase number active at creation.
type flowState struct {
	root *flowtree.Node

	currentPhase    *flowtree.Node
	currentQuestion *flowtree.Node
	currentOption   *flowtree.Node

	phaseNum int
	qCount   int
	optCount int
	recCount int
}

func newFlowState() *flowState {
	return &flowState{root: flowtree.NewNode("root", "root", flowtree.KindRoot)}
}

// ParseFlow converts dialect text into a decision tree. Unrecognized lines
// are skipped, never rejected; identical text always yields an isomorphic
// tree with the same ids.
func ParseFlow(text string) *flowtree.Node {
	s := newFlowState()
	for _, raw := range strings.Split(text, "\n") {
		s.processLine(raw)
	}
	return s.root
}

// processLine classifies one line and attaches at most one node. Match
// order mirrors the dialect: partition, question, branch, generic action.
func (s *flowState) processLine(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "'") {
		return
	}

	if m := partitionRe.FindStringSubmatch(line); m != nil {
		s.openPhase(strings.TrimSpace(m[1]))
		return
	}

	if m := questionRe.FindStringSubmatch(line); m != nil {
		s.addQuestion(strings.TrimSpace(m[1]))
		return
	}

	if m := ifThenRe.FindStringSubmatch(line); m != nil {
		// The branch label, not the condition, names the option.
		s.addOption(strings.TrimSpace(m[2]))
		return
	}

	if m := elseifRe.FindStringSubmatch(line); m != nil {
		s.addOption(strings.TrimSpace(m[1]))
		return
	}

	if m := actionRe.FindStringSubmatch(line); m != nil {
		s.addRecommendation(strings.TrimSpace(m[1]))
		return
	}
}

func (s *flowState) openPhase(title string) {
	// An explicit FASE N token pins the phase number; two partitions naming
	// the same FASE N collide on the same id, deliberately undisambiguated.
	if m := phaseNumRe.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			s.phaseNum = n
		}
	} else {
		s.phaseNum++
	}
	phase := flowtree.NewNode(fmt.Sprintf("phase%d", s.phaseNum), title, flowtree.KindPhase)
	phase.Phase = s.phaseNum
	s.root.AddChild(phase)
	s.currentPhase = phase
	s.currentQuestion = nil
	s.currentOption = nil
}

func (s *flowState) addQuestion(text string) {
	text = strings.TrimSpace(strings.TrimPrefix(text, "¿"))
	s.qCount++
	q := flowtree.NewNode(fmt.Sprintf("q%d_%d", s.phaseNum, s.qCount), text, flowtree.KindQuestion)
	q.Phase = s.phaseNum
	if s.currentPhase != nil {
		s.currentPhase.AddChild(q)
	} else {
		s.root.AddChild(q)
	}
	s.currentQuestion = q
	s.currentOption = nil
}

func (s *flowState) addOption(label string) {
	// Branch lines outside any question are dropped.
	if s.currentQuestion == nil {
		return
	}
	s.optCount++
	opt := flowtree.NewNode(fmt.Sprintf("o%d_%d", s.phaseNum, s.optCount), label, flowtree.KindOption)
	opt.Phase = s.phaseNum
	s.currentQuestion.AddChild(opt)
	s.currentOption = opt
}

func (s *flowState) addRecommendation(text string) {
	low := strings.ToLower(text)
	for _, prefix := range controlPrefixes {
		if strings.HasPrefix(low, prefix) {
			return
		}
	}
	s.recCount++
	rec := flowtree.NewNode(fmt.Sprintf("r%d_%d", s.phaseNum, s.recCount), text, flowtree.KindRecommendation)
	rec.Phase = s.phaseNum
	// Free-standing action text is a phase- or tree-level default, so it
	// falls back up the cursor chain instead of being dropped.
	switch {
	case s.currentOption != nil:
		s.currentOption.AddChild(rec)
	case s.currentQuestion != nil:
		s.currentQuestion.AddChild(rec)
	case s.currentPhase != nil:
		s.currentPhase.AddChild(rec)
	default:
		s.root.AddChild(rec)
	}
}

// PlantUMLParser handles flow documents written directly in the dialect.
type PlantUMLParser struct{}

func (p *PlantUMLParser) Parse(r io.Reader, filename string) (*flowtree.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return flowtree.New(ParseFlow(string(src))), nil
}
