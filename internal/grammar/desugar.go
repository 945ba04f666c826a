package grammar

import "github.com/dekarrin/firparse/internal/ebnf"

// job is one pending (name, expr) pair still needing to be lowered into
// plain productions under name.
type job struct {
	name string
	expr ebnf.Expr
}

// Desugar turns the rules parsed from an EBNF meta-grammar file into a
// pure context-free Grammar: every Alt/Seq/Star/Opt/Group is eliminated
// by introducing a fresh non-terminal per distinct compound
// sub-expression, named deterministically from that sub-expression's
// printed form (e.g. `<"a" , "b">`), so two identical sub-expressions
// anywhere in the source always collapse onto the same fresh rule.
// Star is expanded into the standard left-recursive pair
// `X -> X inner | ε`; Opt into `X -> inner | ε`; Group simply re-queues
// its contents under the same name it was about to receive, since a
// Group carries no semantics of its own beyond controlling precedence
// in the source text. Productions are deduplicated by (LHS, RHS) so a
// grammar that repeats itself doesn't grow a duplicate alternative.
func Desugar(rules []ebnf.Rule) (*Grammar, error) {
	g := NewGrammar()

	freshNames := map[string]string{}
	queued := map[string]bool{}
	dedup := map[string]bool{}
	var queue []job

	for _, r := range rules {
		queue = append(queue, job{name: r.Name, expr: r.Expr})
	}

	var lower func(e ebnf.Expr) string
	lower = func(e ebnf.Expr) string {
		switch v := e.(type) {
		case ebnf.Term:
			g.AddTerm(v.Name)
			return v.Name
		case ebnf.Nonterm:
			return v.Name
		default:
			printed := e.String()
			if fresh, ok := freshNames[printed]; ok {
				return fresh
			}
			fresh := "<" + printed + ">"
			freshNames[printed] = fresh
			if !queued[fresh] {
				queued[fresh] = true
				queue = append(queue, job{name: fresh, expr: e})
			}
			return fresh
		}
	}

	lowerSeq := func(items []ebnf.Expr) Production {
		prod := make(Production, 0, len(items))
		for _, it := range items {
			prod = append(prod, lower(it))
		}
		return prod
	}

	addProd := func(name string, p Production) {
		key := name + "\x00" + p.String()
		if dedup[key] {
			return
		}
		dedup[key] = true
		g.AddRule(name, p)
	}

	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]

		switch e := j.expr.(type) {
		case ebnf.Alt:
			for _, item := range e.Items {
				if seq, ok := item.(ebnf.Seq); ok {
					addProd(j.name, lowerSeq(seq.Items))
				} else {
					addProd(j.name, Production{lower(item)})
				}
			}
		case ebnf.Seq:
			addProd(j.name, lowerSeq(e.Items))
		case ebnf.Star:
			inner := lower(e.Inner)
			addProd(j.name, Production{j.name, inner})
			addProd(j.name, Epsilon)
		case ebnf.Opt:
			inner := lower(e.Inner)
			addProd(j.name, Production{inner})
			addProd(j.name, Epsilon)
		case ebnf.Group:
			// a Group carries no semantics beyond its Inner; reprocess
			// the same target name against the unwrapped expression.
			queue = append([]job{{name: j.name, expr: e.Inner}}, queue...)
		case ebnf.Term:
			g.AddTerm(e.Name)
			addProd(j.name, Production{e.Name})
		case ebnf.Nonterm:
			addProd(j.name, Production{e.Name})
		}
	}

	return g, nil
}
