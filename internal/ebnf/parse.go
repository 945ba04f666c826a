package ebnf

import "fmt"

// parser is a recursive-descent parser over the token stream produced by
// scanner. Grammar (informal):
//
//	file   = { rule } ;
//	rule   = NAME "=" expr ";" ;
//	expr   = seq { "|" seq } ;
//	seq    = term { "," term } ;
//	term   = STRING | NAME | "{" expr "}" | "[" expr "]" | "(" expr ")" ;
type parser struct {
	sc  *scanner
	cur token
}

func newParser(src string) (*parser, error) {
	sc := newScanner(src)
	p := &parser{sc: sc}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	t, err := p.sc.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

// ParseMetaGrammar parses an EBNF-notation source text into an ordered
// list of Rules. Order is preserved: the first rule declared is the
// grammar's start rule. Returns *UnrecognizedTokenError for both lexical
// failures and structural (unexpected-token) failures, the latter with
// Msg set; callers wrap it into fperrors.MetaGrammarError.
func ParseMetaGrammar(src string) ([]Rule, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	var rules []Rule
	for p.cur.kind != tEOF {
		r, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func (p *parser) parseRule() (Rule, error) {
	if p.cur.kind != tName {
		return Rule{}, p.unexpected("a rule name")
	}
	name := p.cur.text
	if err := p.advance(); err != nil {
		return Rule{}, err
	}

	if p.cur.kind != tEquals {
		return Rule{}, p.unexpected(`"="`)
	}
	if err := p.advance(); err != nil {
		return Rule{}, err
	}

	expr, err := p.parseExpr()
	if err != nil {
		return Rule{}, err
	}

	if p.cur.kind != tSemi {
		return Rule{}, p.unexpected(`";"`)
	}
	if err := p.advance(); err != nil {
		return Rule{}, err
	}

	return Rule{Name: name, Expr: expr}, nil
}

func (p *parser) parseExpr() (Expr, error) {
	first, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	items := []Expr{first}
	for p.cur.kind == tPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseSeq()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return Alt{Items: items}, nil
}

func (p *parser) parseSeq() (Expr, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	items := []Expr{first}
	for p.cur.kind == tComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return Seq{Items: items}, nil
}

func (p *parser) parseTerm() (Expr, error) {
	switch p.cur.kind {
	case tString:
		e := Term{Name: p.cur.text}
		return e, p.advance()
	case tName:
		e := Nonterm{Name: p.cur.text}
		return e, p.advance()
	case tLBrace:
		return p.parseDelim(tRBrace, func(inner Expr) Expr { return Star{Inner: inner} })
	case tLBrack:
		return p.parseDelim(tRBrack, func(inner Expr) Expr { return Opt{Inner: inner} })
	case tLParen:
		return p.parseDelim(tRParen, func(inner Expr) Expr { return Group{Inner: inner} })
	default:
		return nil, p.unexpected("a terminal, nonterminal, or one of { [ (")
	}
}

func (p *parser) parseDelim(close tokKind, wrap func(Expr) Expr) (Expr, error) {
	if err := p.advance(); err != nil { // consume opening delimiter
		return nil, err
	}
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != close {
		return nil, p.unexpected(closeName(close))
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return wrap(inner), nil
}

func closeName(k tokKind) string {
	switch k {
	case tRBrace:
		return `"}"`
	case tRBrack:
		return `"]"`
	case tRParen:
		return `")"`
	default:
		return "closing delimiter"
	}
}

func (p *parser) unexpected(want string) error {
	got := tokenDesc(p.cur)
	return &UnrecognizedTokenError{
		Start: p.cur.start,
		End:   p.cur.end,
		Msg:   fmt.Sprintf("expected %s, found %s", want, got),
	}
}

func tokenDesc(t token) string {
	switch t.kind {
	case tEOF:
		return "end of input"
	case tName:
		return fmt.Sprintf("name %q", t.text)
	case tString:
		return fmt.Sprintf("string %q", t.text)
	case tEquals:
		return `"="`
	case tSemi:
		return `";"`
	case tPipe:
		return `"|"`
	case tComma:
		return `","`
	case tLBrace:
		return `"{"`
	case tRBrace:
		return `"}"`
	case tLBrack:
		return `"["`
	case tRBrack:
		return `"]"`
	case tLParen:
		return `"("`
	case tRParen:
		return `")"`
	default:
		return "unknown token"
	}
}
