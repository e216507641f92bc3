package rules

import (
	"math"
	"sort"

	"github.com/luamend/luamend/pkg/ast"
	"github.com/luamend/luamend/pkg/eval"
	"github.com/luamend/luamend/pkg/rewrite"
	"github.com/luamend/luamend/pkg/visit"
)

// RemoveRedeclaredKeysRuleName is the configuration name of the rule.
const RemoveRedeclaredKeysRuleName = "remove_redeclared_keys"

const tableVariablePrefix = "__LUAMEND_REMOVE_REDECLARED_KEYS_tbl"

func init() {
	rewrite.Register(RemoveRedeclaredKeysRuleName, func() rewrite.Rule {
		return rewrite.Flawless(NewRemoveRedeclaredKeys())
	})
}

// RemoveRedeclaredKeys resolves table constructor entries that collide on
// the same effective key, keeping the later declaration as the runtime
// would.
//
// When every colliding key folds to a concrete value and dropping or
// reordering entries cannot change observable side effects, the literal is
// compacted in place: a contiguous run starting at index 1 is emitted
// positionally, other resolved indices keep explicit syntax. Otherwise the
// literal becomes an immediately-invoked function that builds a base table
// from the provably safe prefix and applies the remaining entries through
// indexed assignments in original source order, preserving left-to-right,
// exactly-once evaluation.
type RemoveRedeclaredKeys struct{}

// NewRemoveRedeclaredKeys returns the rule. It accepts no configuration.
func NewRemoveRedeclaredKeys() *RemoveRedeclaredKeys {
	return &RemoveRedeclaredKeys{}
}

// Name implements rewrite.FlawlessRule.
func (r *RemoveRedeclaredKeys) Name() string { return RemoveRedeclaredKeysRuleName }

// Description implements rewrite.FlawlessRule.
func (r *RemoveRedeclaredKeys) Description() string {
	return "Removes table constructor entries shadowed by a later declaration of the same key."
}

// ConfigKeys implements rewrite.FlawlessRule.
func (r *RemoveRedeclaredKeys) ConfigKeys() []string { return nil }

// Configure implements rewrite.FlawlessRule.
func (r *RemoveRedeclaredKeys) Configure(properties rewrite.Properties) error {
	return rewrite.VerifyNoProperties(properties)
}

// Properties implements rewrite.FlawlessRule.
func (r *RemoveRedeclaredKeys) Properties() rewrite.Properties {
	return rewrite.Properties{}
}

// ApplyFlawless implements rewrite.FlawlessRule.
func (r *RemoveRedeclaredKeys) ApplyFlawless(block *ast.Block, ctx *rewrite.Context) {
	builder := newRuntimeVariableBuilder(
		tableVariablePrefix+"{name}{hash}", RemoveRedeclaredKeysRuleName, ctx.OriginalSource)
	p := &redeclaredKeysProcessor{tableVariable: builder.Build("")}
	visit.Block(block, p)
}

type redeclaredKeysProcessor struct {
	visit.NoopProcessor
	evaluator     eval.Evaluator
	tableVariable string

	// skipNextTable suppresses reprocessing of the base literal moved
	// inside a freshly built immediately-invoked function, which the
	// traversal is about to descend into.
	skipNextTable bool
}

func (p *redeclaredKeysProcessor) ProcessExpression(e *ast.Expression) {
	table, ok := (*e).(*ast.TableExpression)
	if !ok {
		return
	}
	if p.skipNextTable {
		p.skipNextTable = false
		return
	}
	if replacement := p.rewriteTable(table); replacement != nil {
		*e = replacement
		p.skipNextTable = true
	}
}

// tableKey identifies an effective table constructor key: a positive
// integer index or a string (named fields and string keys collide).
type tableKey struct {
	isInt bool
	n     int
	s     string
}

func intKey(n int) tableKey { return tableKey{isInt: true, n: n} }

func stringKey(s string) tableKey { return tableKey{s: s} }

// maxExactIntegerKey is the largest float64 up to which every integer is
// exactly representable. Larger folded keys are never resolved: distinct
// source keys could collapse to the same float, and converting them to int
// would overflow.
const maxExactIntegerKey = float64(1 << 53)

// tableScan is the result of the left-to-right entry scan.
type tableScan struct {
	claims   map[tableKey]int // effective key -> last claiming entry position
	evicted  map[int]bool     // entry positions shadowed by a later claim
	numIndex int              // positional slots consumed before the barrier
	barrier  int              // position of the first Unknown key, or -1
	// firstConflict is the first position that claims an already claimed
	// key or stakes an integer claim through explicit syntax; it bounds
	// the literal prefix kept when the rewrite needs a function wrapper.
	firstConflict int
}

func (p *redeclaredKeysProcessor) scan(entries []ast.TableEntry) tableScan {
	s := tableScan{
		claims:        make(map[tableKey]int),
		evicted:       make(map[int]bool),
		barrier:       -1,
		firstConflict: -1,
	}
	claim := func(key tableKey, pos int) {
		if prev, ok := s.claims[key]; ok {
			s.evicted[prev] = true
			if s.firstConflict < 0 {
				s.firstConflict = pos
			}
		}
		s.claims[key] = pos
	}

	for i, entry := range entries {
		switch en := entry.(type) {
		case *ast.ValueEntry:
			s.numIndex++
			claim(intKey(s.numIndex), i)
		case *ast.FieldEntry:
			claim(stringKey(en.Field), i)
		case *ast.IndexEntry:
			switch key := p.evaluator.Evaluate(en.Key).(type) {
			case eval.Number:
				f := float64(key)
				if f > 0 && f <= maxExactIntegerKey && f == math.Trunc(f) {
					if s.firstConflict < 0 {
						s.firstConflict = i
					}
					claim(intKey(int(f)), i)
				}
				// Non-positive, fractional or inexactly-representable
				// numeric keys are never positional and never tracked.
			case eval.String:
				claim(stringKey(string(key)), i)
			case eval.Unknown:
				s.barrier = i
				return s
			}
			// Concrete nil or boolean keys are left untouched.
		}
	}
	return s
}

// rewriteTable returns a replacement expression when the literal must
// become an immediately-invoked function, nil otherwise (the literal was
// either left alone or compacted in place).
func (p *redeclaredKeysProcessor) rewriteTable(table *ast.TableExpression) ast.Expression {
	entries := table.Entries
	s := p.scan(entries)

	if s.barrier >= 0 {
		return p.buildWrapper(entries, s.barrier)
	}

	compacted, order := p.compact(entries, s)
	if compacted == nil {
		return nil
	}
	if p.safeToReorder(entries, s.evicted, order) {
		table.Entries = compacted
		return nil
	}
	return p.buildWrapper(entries, s.firstConflict)
}

// compact rebuilds the entry list from the surviving claims: the
// contiguous integer run starting at 1 becomes positional, other entries
// keep their syntax and relative order. Returns nil when nothing changes.
// order lists, for each kept entry, its original position.
func (p *redeclaredKeysProcessor) compact(entries []ast.TableEntry, s tableScan) ([]ast.TableEntry, []int) {
	var intKeys []int
	intWinner := make(map[int]int)
	for key, pos := range s.claims {
		if key.isInt {
			intKeys = append(intKeys, key.n)
			intWinner[key.n] = pos
		}
	}
	sort.Ints(intKeys)

	var out []ast.TableEntry
	var order []int
	changed := len(s.evicted) > 0

	inRun := make(map[int]bool) // winner positions emitted in the leading run
	for _, k := range intKeys {
		// Integer claims stay contiguous from 1 up to at most one slot
		// past the positional count, so emitting them in key order yields
		// a valid positional run.
		if k > s.numIndex+1 {
			break
		}
		pos := intWinner[k]
		inRun[pos] = true
		order = append(order, pos)
		if en, ok := entries[pos].(*ast.IndexEntry); ok {
			out = append(out, &ast.ValueEntry{Value: en.Value})
			changed = true
		} else {
			out = append(out, entries[pos])
		}
	}

	for i, entry := range entries {
		if inRun[i] || s.evicted[i] {
			continue
		}
		if _, isValue := entry.(*ast.ValueEntry); isValue {
			// Every surviving positional entry sits in the leading run.
			continue
		}
		out = append(out, entry)
		order = append(order, i)
	}

	if !changed {
		for i := range out {
			if order[i] != i {
				changed = true
				break
			}
		}
	}
	if !changed && len(out) == len(entries) {
		return nil, nil
	}
	return out, order
}

// safeToReorder reports whether dropping the evicted entries and emitting
// the kept ones in the given order preserves the observable side-effect
// sequence: evicted values must be effect-free and the kept side-effecting
// entries must stay in their original relative order.
func (p *redeclaredKeysProcessor) safeToReorder(entries []ast.TableEntry, evicted map[int]bool, order []int) bool {
	for pos := range evicted {
		if p.entryHasSideEffects(entries[pos]) {
			return false
		}
	}
	last := -1
	for _, pos := range order {
		if !p.entryHasSideEffects(entries[pos]) {
			continue
		}
		if pos < last {
			return false
		}
		last = pos
	}
	return true
}

func (p *redeclaredKeysProcessor) entryHasSideEffects(entry ast.TableEntry) bool {
	switch en := entry.(type) {
	case *ast.ValueEntry:
		return p.evaluator.HasSideEffects(en.Value)
	case *ast.IndexEntry:
		return p.evaluator.HasSideEffects(en.Key) || p.evaluator.HasSideEffects(en.Value)
	case *ast.FieldEntry:
		return p.evaluator.HasSideEffects(en.Value)
	}
	return true
}

// buildWrapper turns the literal into `(function() local tbl = {prefix}
// ... return tbl end)()`: entries before cut stay a literal, entries from
// cut on are applied through assignments in source order. Runtime
// semantics are identical entry by entry, so any cut is sound; cut is the
// first entry that cannot provably stay in the literal.
func (p *redeclaredKeysProcessor) buildWrapper(entries []ast.TableEntry, cut int) ast.Expression {
	if cut < 0 {
		cut = 0
	}
	base := make([]ast.TableEntry, cut)
	copy(base, entries[:cut])

	tableRef := func() ast.Expression { return &ast.Identifier{Name: p.tableVariable} }

	stmts := []ast.Statement{&ast.LocalAssignStatement{
		Variables: []*ast.TypedIdentifier{{Name: p.tableVariable}},
		Values:    []ast.Expression{&ast.TableExpression{Entries: base}},
	}}

	position := 0
	for _, entry := range base {
		if _, isValue := entry.(*ast.ValueEntry); isValue {
			position++
		}
	}

	for _, entry := range entries[cut:] {
		var target ast.Variable
		var value ast.Expression
		switch en := entry.(type) {
		case *ast.ValueEntry:
			position++
			target = &ast.IndexExpression{
				Prefix: tableRef(),
				Index:  &ast.NumberExpression{Value: float64(position)},
			}
			value = en.Value
		case *ast.IndexEntry:
			target = &ast.IndexExpression{Prefix: tableRef(), Index: en.Key}
			value = en.Value
		case *ast.FieldEntry:
			target = &ast.FieldExpression{Prefix: tableRef(), Field: en.Field}
			value = en.Value
		}
		stmts = append(stmts, &ast.AssignStatement{
			Variables: []ast.Variable{target},
			Values:    []ast.Expression{value},
		})
	}

	body := &ast.Block{
		Statements: stmts,
		Last:       &ast.ReturnStatement{Expressions: []ast.Expression{tableRef()}},
	}
	return &ast.FunctionCall{
		Prefix: &ast.ParentheseExpression{
			Expression: &ast.FunctionExpression{Block: body},
		},
	}
}
