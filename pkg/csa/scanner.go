package csa

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse is returned, wrapped in a *ParseError, for any input that is not
// a valid CSA record.
var ErrParse = errors.New("csa: could not parse input")

// ParseError locates the furthest point the parser reached before failing.
type ParseError struct {
	Offset   int
	Line     int
	Column   int
	Expected []string
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("csa: parse error at line %d, column %d", e.Line, e.Column)
	}
	return fmt.Sprintf("csa: parse error at line %d, column %d: expected %s",
		e.Line, e.Column, strings.Join(e.Expected, " or "))
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// scanner is a read cursor over an immutable input. Recognizers either
// consume a prefix and report true, or leave pos untouched and report false.
type scanner struct {
	src string
	pos int

	// furthest failed expectation, for error reporting only
	failPos  int
	expected []string
}

func newScanner(src string) *scanner {
	return &scanner{src: src, failPos: -1}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) rest() string {
	return s.src[s.pos:]
}

// fail records that what was expected at the current position.
func (s *scanner) fail(what string) {
	switch {
	case s.pos > s.failPos:
		s.failPos = s.pos
		s.expected = append(s.expected[:0], what)
	case s.pos == s.failPos:
		for _, e := range s.expected {
			if e == what {
				return
			}
		}
		s.expected = append(s.expected, what)
	}
}

func (s *scanner) parseError() *ParseError {
	off := s.failPos
	if off < 0 {
		off = s.pos
	}
	line, col := 1, 1
	for i := 0; i < off && i < len(s.src); i++ {
		if s.src[i] == '\n' || (s.src[i] == '\r' && (i+1 >= len(s.src) || s.src[i+1] != '\n')) {
			line++
			col = 1
			continue
		}
		col++
	}
	expected := make([]string, len(s.expected))
	copy(expected, s.expected)
	return &ParseError{Offset: off, Line: line, Column: col, Expected: expected}
}

func (s *scanner) literal(lit string) bool {
	if strings.HasPrefix(s.rest(), lit) {
		s.pos += len(lit)
		return true
	}
	s.fail(strconv.Quote(lit))
	return false
}

func isSeparator(c byte) bool {
	return c == '\r' || c == '\n' || c == ','
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// digits consumes exactly n ASCII digits.
func (s *scanner) digits(n int) (int, bool) {
	if len(s.src)-s.pos < n {
		s.fail(fmt.Sprintf("%d digits", n))
		return 0, false
	}
	value := 0
	for i := 0; i < n; i++ {
		c := s.src[s.pos+i]
		if !isDigit(c) {
			s.fail(fmt.Sprintf("%d digits", n))
			return 0, false
		}
		value = value*10 + int(c-'0')
	}
	s.pos += n
	return value, true
}

// ranged consumes n digits whose value must lie in [lo, hi].
func (s *scanner) ranged(n, lo, hi int, what string) (int, bool) {
	start := s.pos
	v, ok := s.digits(n)
	if !ok {
		return 0, false
	}
	if v < lo || v > hi {
		s.pos = start
		s.fail(what)
		return 0, false
	}
	return v, true
}

// number consumes one or more digits of any width.
func (s *scanner) number() (int64, bool) {
	end := s.pos
	for end < len(s.src) && isDigit(s.src[end]) {
		end++
	}
	if end == s.pos {
		s.fail("number")
		return 0, false
	}
	v, err := strconv.ParseInt(s.src[s.pos:end], 10, 64)
	if err != nil {
		s.fail("number")
		return 0, false
	}
	s.pos = end
	return v, true
}

// numberUpTo is number with an upper bound on the value.
func (s *scanner) numberUpTo(limit int64, what string) (int64, bool) {
	start := s.pos
	v, ok := s.number()
	if !ok {
		return 0, false
	}
	if v > limit {
		s.pos = start
		s.fail(what)
		return 0, false
	}
	return v, true
}

// text consumes everything up to the next separator. It never fails.
func (s *scanner) text() string {
	end := s.pos
	for end < len(s.src) && !isSeparator(s.src[end]) {
		end++
	}
	t := s.src[s.pos:end]
	s.pos = end
	return t
}

// lineSep consumes a run of separator characters as one unit.
func (s *scanner) lineSep() bool {
	start := s.pos
	for s.pos < len(s.src) && isSeparator(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		s.fail("line separator")
		return false
	}
	return true
}

// endOfLine is a line separator or the end of input.
func (s *scanner) endOfLine() bool {
	if s.eof() {
		return true
	}
	return s.lineSep()
}

// atLineEnd peeks for a separator or the end of input without consuming.
func (s *scanner) atLineEnd() bool {
	return s.eof() || isSeparator(s.src[s.pos])
}

// comment consumes one comment line. Commas do not end a comment.
func (s *scanner) comment() bool {
	start := s.pos
	if !s.literal("'") {
		return false
	}
	for s.pos < len(s.src) && s.src[s.pos] != '\r' && s.src[s.pos] != '\n' {
		s.pos++
	}
	if !s.endOfLine() {
		s.pos = start
		return false
	}
	return true
}

func (s *scanner) skipComments() {
	for s.comment() {
	}
}

func (s *scanner) color() (Color, bool) {
	if !s.eof() {
		switch s.src[s.pos] {
		case '+':
			s.pos++
			return Black, true
		case '-':
			s.pos++
			return White, true
		}
	}
	s.fail(`"+" or "-"`)
	return Black, false
}

func (s *scanner) square() (Square, bool) {
	if len(s.src)-s.pos < 2 || !isDigit(s.src[s.pos]) || !isDigit(s.src[s.pos+1]) {
		s.fail("square")
		return Square{}, false
	}
	sq := Square{File: int(s.src[s.pos] - '0'), Rank: int(s.src[s.pos+1] - '0')}
	s.pos += 2
	return sq, true
}

func (s *scanner) pieceType() (PieceType, bool) {
	if len(s.src)-s.pos >= 2 {
		if pt, ok := piecesByCode[s.src[s.pos:s.pos+2]]; ok {
			s.pos += 2
			return pt, true
		}
	}
	s.fail("piece code")
	return NoPiece, false
}

// squarePiece consumes a square followed by a piece code.
func (s *scanner) squarePiece() (Square, PieceType, bool) {
	start := s.pos
	sq, ok := s.square()
	if !ok {
		return Square{}, NoPiece, false
	}
	pt, ok := s.pieceType()
	if !ok {
		s.pos = start
		return Square{}, NoPiece, false
	}
	return sq, pt, true
}
