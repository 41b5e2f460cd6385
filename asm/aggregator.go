package asm

import "strconv"

// HLKind identifies the kind of a high-level token produced by the
// TokenAggregator.
type HLKind int

const (
	HLInvalid HLKind = iota
	HLEOF
	HLNewline
	HLIndirectionStart
	HLIndirectionEnd
	HLNumber
	HLLiteral
	HLSpecifier
	HLLabel
	HLIdentifier
)

var hlKindNames = map[HLKind]string{
	HLInvalid:          "INVALID",
	HLEOF:              "EOF",
	HLNewline:          "NEWLINE",
	HLIndirectionStart: "INDIRECTION_START",
	HLIndirectionEnd:   "INDIRECTION_END",
	HLNumber:           "NUMBER",
	HLLiteral:          "LITERAL",
	HLSpecifier:        "SPECIFIER",
	HLLabel:            "LABEL",
	HLIdentifier:       "IDENTIFIER",
}

func (k HLKind) String() string {
	if name, ok := hlKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// HLToken is a high-level token: a NUMBER/LITERAL carries its parsed
// value in Numeric, a LABEL/SPECIFIER/IDENTIFIER carries its name in
// Text, and an INVALID carries whatever raw text triggered it.
type HLToken struct {
	Kind    HLKind
	Text    string
	Numeric uint64
	Pos     Position
}

// TokenAggregator wraps a Scanner and folds its primitive Tokens into
// HLTokens, collapsing two-token patterns (`.identifier`, `identifier:`,
// `#number`) into single tokens and discarding comments. It holds at
// most one token of scanner look-ahead, pushed back when a two-token
// pattern does not match.
type TokenAggregator struct {
	scanner   *Scanner
	lookahead *Token
}

// NewTokenAggregator wraps scanner.
func NewTokenAggregator(scanner *Scanner) *TokenAggregator {
	return &TokenAggregator{scanner: scanner}
}

// readPrimitive returns the next primitive token, preferring a pushed
// back look-ahead over reading the scanner.
func (a *TokenAggregator) readPrimitive() Token {
	if a.lookahead != nil {
		tok := *a.lookahead
		a.lookahead = nil
		return tok
	}
	return a.scanner.Next()
}

// pushBack stashes tok so the next readPrimitive call returns it again.
// Only one token of look-ahead is ever outstanding at a time.
func (a *TokenAggregator) pushBack(tok Token) {
	a.lookahead = &tok
}

// Next returns the next HLToken. A non-nil error is returned only for
// NumberOverflow; every other primitive token, however malformed,
// folds into some HLToken without signalling failure, per the
// scanner's never-fail contract carried up into the aggregator.
func (a *TokenAggregator) Next() (HLToken, *Error) {
	tok := a.readPrimitive()

	switch tok.Type {
	case Comment:
		return a.Next()

	case Invalid:
		return HLToken{Kind: HLInvalid, Text: tok.Value, Pos: tok.Pos}, nil
	case EOF:
		return HLToken{Kind: HLEOF, Pos: tok.Pos}, nil
	case Newline:
		return HLToken{Kind: HLNewline, Pos: tok.Pos}, nil
	case LBracket:
		return HLToken{Kind: HLIndirectionStart, Pos: tok.Pos}, nil
	case RBracket:
		return HLToken{Kind: HLIndirectionEnd, Pos: tok.Pos}, nil

	case Number:
		n, err := parseDecimal(tok.Value)
		if err != nil {
			return HLToken{Kind: HLInvalid, Text: tok.Value, Pos: tok.Pos},
				newError(ErrorNumberOverflow, tok.Pos, "%q exceeds 64-bit range", tok.Value)
		}
		return HLToken{Kind: HLNumber, Numeric: n, Pos: tok.Pos}, nil

	case Dot:
		next := a.readPrimitive()
		if next.Type == Identifier {
			return HLToken{Kind: HLSpecifier, Text: next.Value, Pos: tok.Pos}, nil
		}
		a.pushBack(next)
		return HLToken{Kind: HLInvalid, Text: ".", Pos: tok.Pos}, nil

	case Identifier:
		next := a.readPrimitive()
		if next.Type == Colon {
			return HLToken{Kind: HLLabel, Text: tok.Value, Pos: tok.Pos}, nil
		}
		a.pushBack(next)
		return HLToken{Kind: HLIdentifier, Text: tok.Value, Pos: tok.Pos}, nil

	case Pound:
		next := a.readPrimitive()
		if next.Type == Number {
			n, err := parseDecimal(next.Value)
			if err != nil {
				return HLToken{Kind: HLInvalid, Text: next.Value, Pos: tok.Pos},
					newError(ErrorNumberOverflow, next.Pos, "%q exceeds 64-bit range", next.Value)
			}
			return HLToken{Kind: HLLiteral, Numeric: n, Pos: tok.Pos}, nil
		}
		a.pushBack(next)
		return HLToken{Kind: HLInvalid, Text: "#", Pos: tok.Pos}, nil

	default:
		return HLToken{Kind: HLInvalid, Text: tok.Value, Pos: tok.Pos}, nil
	}
}

// parseDecimal parses an unsigned decimal literal over the full 64-bit
// range, per spec.md §4.8.
func parseDecimal(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
