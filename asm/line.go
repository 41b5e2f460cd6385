package asm

// TokenBuffer is a reference-counted, immutable-after-construction run
// of HLTokens making up one logical source line. Copying a TokenBuffer
// shares the underlying slice; the value exists only so callers can
// hold onto a line's tokens after the line reader moves on, without
// each holder re-reading or re-allocating.
//
// Go's garbage collector reclaims the backing slice once every copy is
// dropped, so there is no explicit release step; refs exists to mirror
// the spec's "destruction releases storage only when the last
// reference drops" contract for callers that want to reason about
// sharing explicitly (e.g. tests asserting two buffers share storage).
type TokenBuffer struct {
	tokens []HLToken
	refs   *int
}

func newTokenBuffer(tokens []HLToken) TokenBuffer {
	refs := 1
	return TokenBuffer{tokens: tokens, refs: &refs}
}

// Tokens returns the buffer's tokens. The returned slice must not be
// mutated; it may be shared with other copies of the same TokenBuffer.
func (b TokenBuffer) Tokens() []HLToken {
	return b.tokens
}

// Len reports the number of tokens in the buffer.
func (b TokenBuffer) Len() int {
	return len(b.tokens)
}

// Clone returns a copy of b that shares the same backing storage and
// increments the shared reference count.
func (b TokenBuffer) Clone() TokenBuffer {
	if b.refs != nil {
		(*b.refs)++
	}
	return b
}

// RefCount reports the shared reference count: one for the buffer
// ReadLine returned, plus one for each Clone of it or of its clones.
// The count is never decremented, and plain value copies are not
// counted.
func (b TokenBuffer) RefCount() int {
	if b.refs == nil {
		return 0
	}
	return *b.refs
}

// LineReader pulls HLTokens from a TokenAggregator and groups them
// into one TokenBuffer per non-empty source line, per spec.md §4.9.
type LineReader struct {
	agg *TokenAggregator
	eof bool
}

// NewLineReader wraps agg.
func NewLineReader(agg *TokenAggregator) *LineReader {
	return &LineReader{agg: agg}
}

// ReadLine returns the next non-empty line's tokens. A line is
// terminated by NEWLINE or EOF; a NEWLINE with nothing buffered ahead
// of it (a blank line) is silently skipped rather than producing an
// empty TokenBuffer. ok is false once there is nothing left to read:
// an empty buffer coincident with EOF signals end of stream.
func (r *LineReader) ReadLine() (buf TokenBuffer, err *Error, ok bool) {
	if r.eof {
		return TokenBuffer{}, nil, false
	}

	var line []HLToken
	for {
		tok, tokErr := r.agg.Next()
		if tokErr != nil {
			err = tokErr
		}

		if tok.Kind == HLEOF {
			r.eof = true
			if len(line) == 0 {
				return TokenBuffer{}, err, false
			}
			return newTokenBuffer(line), err, true
		}

		if tok.Kind == HLNewline {
			if len(line) == 0 {
				continue // blank line, keep reading
			}
			return newTokenBuffer(line), err, true
		}

		line = append(line, tok)
	}
}
