package csa

import "fmt"

var versions = []string{"2.2", "2.1", "2"}

// version parses a "V2", "V2.1" or "V2.2" line. Any other version string
// does not match.
func (s *scanner) version() bool {
	start := s.pos
	if !s.literal("V") {
		return false
	}
	v := s.text()
	for _, known := range versions {
		if v == known {
			if s.endOfLine() {
				return true
			}
			break
		}
	}
	s.pos = start + 1
	s.fail("version 2, 2.1 or 2.2")
	s.pos = start
	return false
}

// player parses an "N+name" or "N-name" line for the given side.
func (s *scanner) player(c Color) (string, bool) {
	start := s.pos
	if !s.literal("N" + c.Sign()) {
		return "", false
	}
	name := s.text()
	if !s.endOfLine() {
		s.pos = start
		return "", false
	}
	return name, true
}

// attribute parses a "$KEY:VALUE" line without its terminator.
func (s *scanner) attribute() (GameAttribute, bool) {
	start := s.pos
	if !s.literal("$") {
		return GameAttribute{}, false
	}
	end := s.pos
	for end < len(s.src) && s.src[end] != ':' && !isSeparator(s.src[end]) {
		end++
	}
	if end == s.pos {
		s.fail("attribute key")
		s.pos = start
		return GameAttribute{}, false
	}
	key := s.src[s.pos:end]
	s.pos = end
	if !s.literal(":") {
		s.pos = start
		return GameAttribute{}, false
	}
	return classifyAttribute(key, s.text()), true
}

// classifyAttribute decides whether value is a timestamp, a time limit or
// plain text. The whole value must match for the typed forms.
func classifyAttribute(key, value string) GameAttribute {
	attr := GameAttribute{Key: key, Kind: AttributeText, Text: value}
	sub := newScanner(value)
	if t, ok := sub.timestamp(); ok && sub.eof() {
		attr.Kind = AttributeTime
		attr.Time = t
		return attr
	}
	sub = newScanner(value)
	if tl, ok := sub.timeLimit(); ok && sub.eof() {
		attr.Kind = AttributeTimeLimit
		attr.TimeLimit = tl
	}
	return attr
}

// ParseAttribute parses a single header line such as "$EVENT:name".
func ParseAttribute(line string) (GameAttribute, error) {
	s := newScanner(line)
	attr, ok := s.attribute()
	if !ok || !s.eof() {
		return GameAttribute{}, fmt.Errorf("invalid attribute %q: %w", line, s.parseError())
	}
	return attr, nil
}

func (s *scanner) attributes() []GameAttribute {
	var out []GameAttribute
	for {
		s.skipComments()
		mark := s.pos
		attr, ok := s.attribute()
		if !ok || !s.endOfLine() {
			s.pos = mark
			return out
		}
		out = append(out, attr)
	}
}

// record runs the whole grammar in its fixed order.
func (s *scanner) record() (*GameRecord, bool) {
	rec := &GameRecord{}

	s.skipComments()
	s.version()

	s.skipComments()
	if name, ok := s.player(Black); ok {
		rec.BlackPlayer = &name
	}
	s.skipComments()
	if name, ok := s.player(White); ok {
		rec.WhitePlayer = &name
	}

	for _, attr := range s.attributes() {
		rec.applyAttribute(attr)
	}

	pos, ok := s.position()
	if !ok {
		return nil, false
	}
	rec.StartPosition = pos

	rec.Moves = s.moves()
	s.skipComments()
	return rec, true
}

// Parse reads a CSA record. Input following the last recognised ply or
// comment is ignored.
func Parse(input string) (*GameRecord, error) {
	s := newScanner(input)
	rec, ok := s.record()
	if !ok {
		return nil, s.parseError()
	}
	return rec, nil
}

// ParseStrict is Parse, but fails unless the whole input was consumed.
func ParseStrict(input string) (*GameRecord, error) {
	s := newScanner(input)
	rec, ok := s.record()
	if !ok {
		return nil, s.parseError()
	}
	if !s.eof() {
		if s.failPos < s.pos {
			s.failPos = -1
			s.expected = nil
			s.fail("end of input")
		}
		return nil, s.parseError()
	}
	return rec, nil
}
