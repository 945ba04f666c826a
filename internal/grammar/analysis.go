package grammar

import "github.com/dekarrin/firparse/internal/util"

// endOfInput is the pseudo-terminal that always appears in FOLLOW of the
// (unaugmented) start symbol, representing end of input. It is the same
// name the lexer gives its end-of-input token class; a meta-grammar
// terminal written as "$" would share this name, since the meta-grammar
// reader accepts it.
const endOfInput = "$"

type nodeKind int

const (
	nFirst nodeKind = iota
	nFollow
	nTerminal
)

type gnode struct {
	kind nodeKind
	name string
}

// analysis is the FIRST/FOLLOW dependency graph: a directed edge u->v
// means "everything v's set contains belongs to u's set too". Terminal
// nodes are the sinks; FIRST(X) and FOLLOW(X) are computed by a single
// reachability walk from node{nFirst,X} or node{nFollow,X} down to the
// terminal nodes it can reach, rather than the usual per-set fixed-point
// iteration. Reachability results are memoized per node since the same
// sub-walk is requested repeatedly across different start symbols.
type analysis struct {
	nullable map[string]bool
	edges    map[gnode][]gnode
	cache    map[gnode]util.StringSet
}

func (g *Grammar) ensureAnalysis() *analysis {
	if g.analysis != nil {
		return g.analysis
	}
	a := &analysis{
		nullable: g.computeNullable(),
		edges:    map[gnode][]gnode{},
		cache:    map[gnode]util.StringSet{},
	}
	g.buildFirstEdges(a)
	g.buildFollowEdges(a)
	g.analysis = a
	return a
}

func (g *Grammar) computeNullable() map[string]bool {
	null := map[string]bool{}
	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			if null[r.NonTerminal] {
				continue
			}
			for _, p := range r.Productions {
				allNullable := true
				for _, sym := range p {
					if g.IsTerminal(sym) || !null[sym] {
						allNullable = false
						break
					}
				}
				if allNullable {
					null[r.NonTerminal] = true
					changed = true
					break
				}
			}
		}
	}
	return null
}

func (a *analysis) addEdge(from, to gnode) {
	a.edges[from] = append(a.edges[from], to)
}

func (g *Grammar) buildFirstEdges(a *analysis) {
	for _, r := range g.rules {
		from := gnode{nFirst, r.NonTerminal}
		for _, p := range r.Productions {
			for _, sym := range p {
				if g.IsTerminal(sym) {
					a.addEdge(from, gnode{nTerminal, sym})
					break
				}
				a.addEdge(from, gnode{nFirst, sym})
				if !a.nullable[sym] {
					break
				}
			}
		}
	}
}

func (g *Grammar) buildFollowEdges(a *analysis) {
	a.addEdge(gnode{nFollow, g.StartSymbol()}, gnode{nTerminal, endOfInput})

	for _, r := range g.rules {
		for _, p := range r.Productions {
			for i, sym := range p {
				if g.IsTerminal(sym) {
					continue
				}
				from := gnode{nFollow, sym}
				rest := p[i+1:]
				reachedEnd := true
				for _, y := range rest {
					if g.IsTerminal(y) {
						a.addEdge(from, gnode{nTerminal, y})
						reachedEnd = false
						break
					}
					a.addEdge(from, gnode{nFirst, y})
					if !a.nullable[y] {
						reachedEnd = false
						break
					}
				}
				if reachedEnd {
					a.addEdge(from, gnode{nFollow, r.NonTerminal})
				}
			}
		}
	}
}

// reachableTerminals performs the memoized DFS described on analysis.
// onStack guards against the cycles that mutually-recursive nonterminals
// introduce (e.g. FIRST(A) depending on FIRST(B) depending on FIRST(A)):
// a node currently being expanded contributes nothing further to itself.
func (a *analysis) reachableTerminals(start gnode) util.StringSet {
	if cached, ok := a.cache[start]; ok {
		return cached
	}

	result := util.NewStringSet()
	onStack := map[gnode]bool{}

	var visit func(n gnode)
	visit = func(n gnode) {
		if n.kind == nTerminal {
			result.Add(n.name)
			return
		}
		if onStack[n] {
			return
		}
		if cached, ok := a.cache[n]; ok {
			result.AddAll(cached)
			return
		}
		onStack[n] = true
		for _, next := range a.edges[n] {
			visit(next)
		}
		onStack[n] = false
	}

	visit(start)
	a.cache[start] = result
	return result
}

// Nullable reports whether sym can derive the empty string.
func (g *Grammar) Nullable(sym string) bool {
	if g.IsTerminal(sym) {
		return false
	}
	return g.ensureAnalysis().nullable[sym]
}

// FIRST returns the set of terminals (and, if sym is nullable,
// optionally $ is never included here — see Nullable) that can begin a
// string derived from sym. If sym is itself a terminal, FIRST(sym) is
// the singleton {sym}.
func (g *Grammar) FIRST(sym string) util.StringSet {
	if g.IsTerminal(sym) {
		return util.NewStringSet([]string{sym})
	}
	return g.ensureAnalysis().reachableTerminals(gnode{nFirst, sym}).Copy()
}

// FOLLOW returns the set of terminals (including the end-of-input
// pseudo-terminal "$" where applicable) that can immediately follow sym
// in some sentential form derivable from the start symbol.
func (g *Grammar) FOLLOW(sym string) util.StringSet {
	return g.ensureAnalysis().reachableTerminals(gnode{nFollow, sym}).Copy()
}

// FirstOfSequence computes FIRST of a whole symbol sequence: the union
// of FIRST of each leading symbol up to and including the first
// non-nullable one, folding in the sequence's own nullability.
func (g *Grammar) FirstOfSequence(seq []string) (set util.StringSet, nullable bool) {
	set = util.NewStringSet()
	nullable = true
	for _, sym := range seq {
		set.AddAll(g.FIRST(sym))
		if !g.Nullable(sym) {
			nullable = false
			break
		}
	}
	return set, nullable
}
