package csa

import (
	"errors"
	"fmt"
	"strings"
)

// Hand counts pieces in hand by base piece type.
type Hand [numPieceTypes]int

// Setup is a concrete position: every cell resolved, hands counted.
type Setup struct {
	Board Board
	Hands [2]Hand
	Turn  Color
}

var standardBackRank = [9]PieceType{Lance, Knight, Silver, Gold, King, Gold, Silver, Knight, Lance}

// StandardBoard returns the even-game starting layout.
func StandardBoard() Board {
	var b Board
	for i, pt := range standardBackRank {
		b[0][i] = Cell{Color: White, Piece: pt}
		b[8][i] = Cell{Color: Black, Piece: pt}
		b[2][i] = Cell{Color: White, Piece: Pawn}
		b[6][i] = Cell{Color: Black, Piece: Pawn}
	}
	b[1][1] = Cell{Color: White, Piece: Rook}
	b[1][7] = Cell{Color: White, Piece: Bishop}
	b[7][1] = Cell{Color: Black, Piece: Bishop}
	b[7][7] = Cell{Color: Black, Piece: Rook}
	return b
}

// fullSet is the number of each base piece in a complete set, both sides.
var fullSet = map[PieceType]int{
	Pawn: 18, Lance: 4, Knight: 4, Silver: 4, Gold: 4, Bishop: 2, Rook: 2,
}

// Setup resolves the written position into a concrete board.
//
// The base layout is the grid when present, otherwise the standard layout
// minus the handicap pieces when a PI line was present. With neither, the
// base is empty if there are placements and standard otherwise. Placements
// are then added; a 00 square puts the piece in hand and 00AL gives that
// side every piece not yet on the board or in a hand, kings excepted.
func (p *Position) Setup() (Setup, error) {
	var st Setup
	st.Turn = p.SideToMove

	switch {
	case p.Grid != nil:
		st.Board = *p.Grid
	case p.Handicap != nil:
		st.Board = StandardBoard()
		for _, h := range p.Handicap {
			if !h.Square.OnBoard() {
				return Setup{}, fmt.Errorf("handicap square %s is off the board", h.Square)
			}
			if st.Board.At(h.Square).Empty() {
				return Setup{}, fmt.Errorf("handicap square %s is already empty", h.Square)
			}
			st.Board.Set(h.Square, Cell{})
		}
	case len(p.Placements) == 0:
		st.Board = StandardBoard()
	}

	for _, pl := range p.Placements {
		switch {
		case pl.Square.Hand() && pl.Piece == All:
			st.giveRemaining(pl.Color)
		case pl.Square.Hand():
			if pl.Piece == King || pl.Piece.Promoted() {
				return Setup{}, fmt.Errorf("cannot hold %s in hand", pl.Piece)
			}
			st.Hands[pl.Color][pl.Piece]++
		case pl.Square.OnBoard():
			if pl.Piece == All {
				return Setup{}, fmt.Errorf("AL placed on board square %s", pl.Square)
			}
			st.Board.Set(pl.Square, Cell{Color: pl.Color, Piece: pl.Piece})
		default:
			return Setup{}, fmt.Errorf("placement square %s is off the board", pl.Square)
		}
	}
	return st, nil
}

func (st *Setup) giveRemaining(c Color) {
	used := make(map[PieceType]int, len(fullSet))
	for _, row := range st.Board {
		for _, cell := range row {
			if !cell.Empty() {
				used[cell.Piece.Base()]++
			}
		}
	}
	for _, hand := range st.Hands {
		for pt, n := range hand {
			used[PieceType(pt)] += n
		}
	}
	for pt, total := range fullSet {
		if left := total - used[pt]; left > 0 {
			st.Hands[c][pt] += left
		}
	}
}

// Apply plays a onto the setup. Special declarations leave it unchanged.
// Only what is needed to move the pieces is checked; a move that breaks the
// rules of shogi but can be carried out is applied as written.
func (st *Setup) Apply(a Action) error {
	if a.Kind != ActionMove {
		return nil
	}
	if !a.To.OnBoard() {
		return fmt.Errorf("destination %s is off the board", a.To)
	}
	if a.From.Hand() {
		return st.applyDrop(a)
	}
	if !a.From.OnBoard() {
		return fmt.Errorf("origin %s is off the board", a.From)
	}
	moving := st.Board.At(a.From)
	if moving.Empty() {
		return fmt.Errorf("no piece at %s", a.From)
	}
	if moving.Color != a.Color {
		return fmt.Errorf("piece at %s belongs to %s", a.From, moving.Color)
	}
	if captured := st.Board.At(a.To); !captured.Empty() {
		if captured.Color == a.Color {
			return errors.New("capturing own piece")
		}
		if base := captured.Piece.Base(); base != King {
			st.Hands[a.Color][base]++
		}
	}
	st.Board.Set(a.From, Cell{})
	st.Board.Set(a.To, Cell{Color: a.Color, Piece: a.Piece})
	st.Turn = a.Color.Opponent()
	return nil
}

func (st *Setup) applyDrop(a Action) error {
	if a.Piece <= NoPiece || a.Piece >= King || st.Hands[a.Color][a.Piece] == 0 {
		return fmt.Errorf("no %s in hand", a.Piece)
	}
	if !st.Board.At(a.To).Empty() {
		return errors.New("drop destination occupied")
	}
	st.Hands[a.Color][a.Piece]--
	st.Board.Set(a.To, Cell{Color: a.Color, Piece: a.Piece})
	st.Turn = a.Color.Opponent()
	return nil
}

// SFENAt returns the SFEN of the position after the first ply plies.
func (r *GameRecord) SFENAt(ply int) (string, error) {
	if ply < 0 || ply > len(r.Moves) {
		return "", fmt.Errorf("move out of range: %d", ply)
	}
	st, err := r.StartPosition.Setup()
	if err != nil {
		return "", err
	}
	for i := 0; i < ply; i++ {
		if err := st.Apply(r.Moves[i].Action); err != nil {
			return "", fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return st.SFEN(ply + 1), nil
}

var sfenLetters = map[PieceType]string{
	Pawn: "P", Lance: "L", Knight: "N", Silver: "S", Gold: "G", Bishop: "B", Rook: "R", King: "K",
	ProPawn: "+P", ProLance: "+L", ProKnight: "+N", ProSilver: "+S", Horse: "+B", Dragon: "+R",
}

var sfenPieces = map[byte]PieceType{
	'P': Pawn, 'L': Lance, 'N': Knight, 'S': Silver, 'G': Gold, 'B': Bishop, 'R': Rook, 'K': King,
}

var handOrder = []PieceType{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// SFEN renders the setup with the given move number.
func (st *Setup) SFEN(moveNumber int) string {
	rows := make([]string, 0, 9)
	for _, row := range st.Board {
		rows = append(rows, rowToSFEN(row))
	}
	turn := "b"
	if st.Turn == White {
		turn = "w"
	}
	hand := st.handsSFEN()
	if hand == "" {
		hand = "-"
	}
	return fmt.Sprintf("%s %s %s %d", strings.Join(rows, "/"), turn, hand, moveNumber)
}

func rowToSFEN(row [9]Cell) string {
	var b strings.Builder
	empty := 0
	flushEmpty := func() {
		if empty > 0 {
			b.WriteString(fmt.Sprintf("%d", empty))
			empty = 0
		}
	}
	for _, c := range row {
		if c.Empty() {
			empty++
			continue
		}
		flushEmpty()
		text := sfenLetters[c.Piece]
		if c.Color == White {
			text = strings.ToLower(text)
		}
		b.WriteString(text)
	}
	flushEmpty()
	return b.String()
}

func (st *Setup) handsSFEN() string {
	var b strings.Builder
	for _, c := range []Color{Black, White} {
		for _, pt := range handOrder {
			count := st.Hands[c][pt]
			if count == 0 {
				continue
			}
			if count > 1 {
				b.WriteString(fmt.Sprintf("%d", count))
			}
			letter := sfenLetters[pt]
			if c == White {
				letter = strings.ToLower(letter)
			}
			b.WriteString(letter)
		}
	}
	return b.String()
}

// ParseSFEN reads the board, turn and hand fields of an SFEN string.
func ParseSFEN(sfen string) (Setup, error) {
	fields := strings.Fields(sfen)
	if len(fields) < 3 {
		return Setup{}, fmt.Errorf("invalid sfen: %s", sfen)
	}
	var st Setup
	switch fields[1] {
	case "b":
		st.Turn = Black
	case "w":
		st.Turn = White
	default:
		return Setup{}, fmt.Errorf("invalid sfen turn: %s", fields[1])
	}
	if err := parseBoardSFEN(fields[0], &st.Board); err != nil {
		return Setup{}, err
	}
	if err := parseHandsSFEN(fields[2], &st.Hands); err != nil {
		return Setup{}, err
	}
	return st, nil
}

func parseBoardSFEN(board string, b *Board) error {
	ranks := strings.Split(board, "/")
	if len(ranks) != 9 {
		return fmt.Errorf("invalid board ranks: %d", len(ranks))
	}
	for r, text := range ranks {
		col := 0
		for i := 0; i < len(text); i++ {
			ch := text[i]
			if ch >= '1' && ch <= '9' {
				col += int(ch - '0')
				continue
			}
			promoted := false
			if ch == '+' {
				promoted = true
				i++
				if i >= len(text) {
					return errors.New("dangling promotion marker")
				}
				ch = text[i]
			}
			color := Black
			if ch >= 'a' && ch <= 'z' {
				color = White
				ch -= 'a' - 'A'
			}
			pt, ok := sfenPieces[ch]
			if !ok {
				return fmt.Errorf("unknown sfen piece %c", ch)
			}
			if promoted {
				if pt = promote(pt); pt == NoPiece {
					return fmt.Errorf("piece %c cannot promote", ch)
				}
			}
			if col >= 9 {
				return errors.New("too many files in rank")
			}
			b[r][col] = Cell{Color: color, Piece: pt}
			col++
		}
		if col != 9 {
			return fmt.Errorf("rank %d does not have 9 files", r+1)
		}
	}
	return nil
}

func promote(pt PieceType) PieceType {
	switch pt {
	case Pawn:
		return ProPawn
	case Lance:
		return ProLance
	case Knight:
		return ProKnight
	case Silver:
		return ProSilver
	case Bishop:
		return Horse
	case Rook:
		return Dragon
	default:
		return NoPiece
	}
}

func parseHandsSFEN(hand string, hands *[2]Hand) error {
	if hand == "-" {
		return nil
	}
	count := 0
	for i := 0; i < len(hand); i++ {
		ch := hand[i]
		if ch >= '0' && ch <= '9' {
			count = count*10 + int(ch-'0')
			continue
		}
		if count == 0 {
			count = 1
		}
		color := Black
		if ch >= 'a' && ch <= 'z' {
			color = White
			ch -= 'a' - 'A'
		}
		pt, ok := sfenPieces[ch]
		if !ok || pt == King {
			return fmt.Errorf("unknown hand piece %c", ch)
		}
		hands[color][pt] += count
		count = 0
	}
	if count != 0 {
		return errors.New("trailing hand count")
	}
	return nil
}

// Position converts the setup back to a writable position: a full grid
// plus one 00 placement per piece in hand.
func (st *Setup) Position() Position {
	grid := st.Board
	p := Position{Grid: &grid, SideToMove: st.Turn}
	for _, c := range []Color{Black, White} {
		for _, pt := range handOrder {
			for i := 0; i < st.Hands[c][pt]; i++ {
				p.Placements = append(p.Placements, Placement{Color: c, Square: Square{}, Piece: pt})
			}
		}
	}
	return p
}
