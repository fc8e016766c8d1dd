package csa

// handicap parses "PI" followed by any number of square+piece pairs. A bare
// PI yields an empty, non-nil list.
func (s *scanner) handicap() ([]HandicapPiece, bool) {
	if !s.literal("PI") {
		return nil, false
	}
	pieces := []HandicapPiece{}
	for {
		sq, pt, ok := s.squarePiece()
		if !ok {
			break
		}
		pieces = append(pieces, HandicapPiece{Square: sq, Piece: pt})
	}
	return pieces, true
}

// cell parses one three-character grid cell. The last cell of a row may be
// a placeholder with its trailing space stripped.
func (s *scanner) cell(last bool) (Cell, bool) {
	start := s.pos
	if c, ok := s.color(); ok {
		pt, ok := s.pieceType()
		if !ok {
			s.pos = start
			return Cell{}, false
		}
		return Cell{Color: c, Piece: pt}, true
	}
	if s.literal(" *") {
		if s.literal(" ") {
			return Cell{}, true
		}
		if last && s.atLineEnd() {
			return Cell{}, true
		}
	}
	s.pos = start
	s.fail("board cell")
	return Cell{}, false
}

// gridRow always consumes exactly nine cells.
func (s *scanner) gridRow() ([9]Cell, bool) {
	var row [9]Cell
	start := s.pos
	for i := range row {
		c, ok := s.cell(i == len(row)-1)
		if !ok {
			s.pos = start
			return row, false
		}
		row[i] = c
	}
	return row, true
}

// grid parses the nine P1..P9 rows including their line terminators.
func (s *scanner) grid() (*Board, bool) {
	start := s.pos
	var b Board
	for r := range b {
		marker := "P" + string(rune('1'+r))
		if !s.literal(marker) {
			s.pos = start
			return nil, false
		}
		row, ok := s.gridRow()
		if !ok || !s.endOfLine() {
			s.pos = start
			return nil, false
		}
		b[r] = row
	}
	return &b, true
}

// placement parses one "P+" or "P-" line body.
func (s *scanner) placement() ([]Placement, bool) {
	start := s.pos
	if !s.literal("P") {
		return nil, false
	}
	c, ok := s.color()
	if !ok {
		s.pos = start
		return nil, false
	}
	var out []Placement
	for {
		sq, pt, ok := s.squarePiece()
		if !ok {
			break
		}
		out = append(out, Placement{Color: c, Square: sq, Piece: pt})
	}
	return out, true
}

// sideToMove parses the mandatory single-sign line.
func (s *scanner) sideToMove() (Color, bool) {
	start := s.pos
	c, ok := s.color()
	if !ok {
		return Black, false
	}
	if !s.endOfLine() {
		s.pos = start
		return Black, false
	}
	return c, true
}

// position parses handicap, grid, placements and side to move in that
// order, each optionally preceded by comment lines.
func (s *scanner) position() (Position, bool) {
	start := s.pos
	var pos Position

	s.skipComments()
	mark := s.pos
	if h, ok := s.handicap(); ok && s.endOfLine() {
		pos.Handicap = h
	} else {
		s.pos = mark
	}

	s.skipComments()
	if g, ok := s.grid(); ok {
		pos.Grid = g
	}

	for {
		s.skipComments()
		mark = s.pos
		pl, ok := s.placement()
		if !ok || !s.endOfLine() {
			s.pos = mark
			break
		}
		pos.Placements = append(pos.Placements, pl...)
	}

	s.skipComments()
	c, ok := s.sideToMove()
	if !ok {
		s.pos = start
		return Position{}, false
	}
	pos.SideToMove = c
	return pos, true
}
