package csa

import (
	"fmt"
	"time"
)

// coordinateMove parses sign, origin, destination and piece, e.g. "+2726FU".
// Nothing about the move's legality is checked.
func (s *scanner) coordinateMove() (Action, bool) {
	start := s.pos
	c, ok := s.color()
	if !ok {
		return Action{}, false
	}
	from, ok := s.square()
	if !ok {
		s.pos = start
		return Action{}, false
	}
	to, ok := s.square()
	if !ok {
		s.pos = start
		return Action{}, false
	}
	pt, ok := s.pieceType()
	if !ok {
		s.pos = start
		return Action{}, false
	}
	return NewMove(c, from, to, pt), true
}

// specialMove parses "%" and a keyword. The keyword runs to the next
// separator and must equal one of the known keywords exactly.
func (s *scanner) specialMove() (Action, bool) {
	start := s.pos
	if !s.literal("%") {
		return Action{}, false
	}
	kind, ok := specialsByKeyword[s.text()]
	if !ok {
		s.pos = start + 1
		s.fail("special move keyword")
		s.pos = start
		return Action{}, false
	}
	return NewSpecial(kind), true
}

func (s *scanner) action() (Action, bool) {
	if a, ok := s.coordinateMove(); ok {
		return a, true
	}
	return s.specialMove()
}

// elapsed parses a "T<seconds>" annotation.
func (s *scanner) elapsed() (time.Duration, bool) {
	start := s.pos
	if !s.literal("T") {
		return 0, false
	}
	secs, ok := s.numberUpTo(maxSeconds, "seconds in range")
	if !ok {
		s.pos = start
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// moveRecord parses one ply, the optional elapsed time on the following
// line, and the terminating separator.
func (s *scanner) moveRecord() (MoveRecord, bool) {
	start := s.pos
	a, ok := s.action()
	if !ok {
		return MoveRecord{}, false
	}
	rec := MoveRecord{Action: a}
	mark := s.pos
	if s.lineSep() {
		if d, ok := s.elapsed(); ok && s.atLineEnd() {
			rec.Time = &d
		} else {
			s.pos = mark
		}
	}
	if !s.endOfLine() {
		s.pos = start
		return MoveRecord{}, false
	}
	return rec, true
}

// moves parses zero or more plies, each optionally preceded by comments.
func (s *scanner) moves() []MoveRecord {
	var out []MoveRecord
	for {
		s.skipComments()
		rec, ok := s.moveRecord()
		if !ok {
			return out
		}
		out = append(out, rec)
	}
}

// ParseAction parses a single ply such as "+7776FU" or "%TORYO".
func ParseAction(text string) (Action, error) {
	s := newScanner(text)
	a, ok := s.action()
	if !ok || !s.eof() {
		return Action{}, fmt.Errorf("invalid action %q: %w", text, s.parseError())
	}
	return a, nil
}
