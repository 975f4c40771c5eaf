package token

import "fmt"

// Span is a byte-accurate source range, attached to every token and AST node.
type Span struct {
	Offset int // byte offset of the first byte
	Length int // byte length
	Line   int // 1-based
	Column int // 1-based, in bytes
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	start := s.Offset
	if other.Offset < start {
		start = other.Offset
	}
	end := s.Offset + s.Length
	if otherEnd := other.Offset + other.Length; otherEnd > end {
		end = otherEnd
	}
	first := s
	if other.Offset < s.Offset {
		first = other
	}
	return Span{
		Offset: start,
		Length: end - start,
		Line:   first.Line,
		Column: first.Column,
	}
}
