package csa

import (
	"fmt"
	"time"
)

type Color int

const (
	Black Color = iota
	White
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// Sign is the one-character marker used for c in CSA text.
func (c Color) Sign() string {
	if c == White {
		return "-"
	}
	return "+"
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType enumerates the CSA piece codes. The zero value marks an empty
// board cell and has no code of its own.
type PieceType int

const (
	NoPiece PieceType = iota
	Pawn
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	ProPawn
	ProLance
	ProKnight
	ProSilver
	Horse
	Dragon
	All

	numPieceTypes = int(All) + 1
)

var pieceCodes = [numPieceTypes]string{
	NoPiece:   "",
	Pawn:      "FU",
	Lance:     "KY",
	Knight:    "KE",
	Silver:    "GI",
	Gold:      "KI",
	Bishop:    "KA",
	Rook:      "HI",
	King:      "OU",
	ProPawn:   "TO",
	ProLance:  "NY",
	ProKnight: "NK",
	ProSilver: "NG",
	Horse:     "UM",
	Dragon:    "RY",
	All:       "AL",
}

var piecesByCode = func() map[string]PieceType {
	m := make(map[string]PieceType, numPieceTypes)
	for pt, code := range pieceCodes {
		if code != "" {
			m[code] = PieceType(pt)
		}
	}
	return m
}()

// ParsePieceType maps a two-letter CSA code to its piece type.
func ParsePieceType(code string) (PieceType, error) {
	pt, ok := piecesByCode[code]
	if !ok {
		return NoPiece, fmt.Errorf("unknown piece code %q", code)
	}
	return pt, nil
}

// Code returns the two-letter CSA code, or "" for NoPiece and unknown values.
func (pt PieceType) Code() string {
	if pt < 0 || int(pt) >= numPieceTypes {
		return ""
	}
	return pieceCodes[pt]
}

func (pt PieceType) String() string {
	if code := pt.Code(); code != "" {
		return code
	}
	return fmt.Sprintf("PieceType(%d)", int(pt))
}

// Promoted reports whether pt is a promoted form.
func (pt PieceType) Promoted() bool {
	return pt >= ProPawn && pt <= Dragon
}

// Base strips promotion: Dragon becomes Rook, ProPawn becomes Pawn.
func (pt PieceType) Base() PieceType {
	switch pt {
	case ProPawn:
		return Pawn
	case ProLance:
		return Lance
	case ProKnight:
		return Knight
	case ProSilver:
		return Silver
	case Horse:
		return Bishop
	case Dragon:
		return Rook
	default:
		return pt
	}
}

// Square is a (file, rank) pair. File and rank 0 together mean "in hand".
type Square struct {
	File int
	Rank int
}

func NewSquare(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// Hand reports whether s is the 00 square used for pieces in hand.
func (s Square) Hand() bool {
	return s.File == 0 && s.Rank == 0
}

// OnBoard reports whether s addresses one of the 81 board cells.
func (s Square) OnBoard() bool {
	return s.File >= 1 && s.File <= 9 && s.Rank >= 1 && s.Rank <= 9
}

func (s Square) String() string {
	return fmt.Sprintf("%d%d", s.File, s.Rank)
}

// Cell is one board square. The zero value is an empty cell.
type Cell struct {
	Color Color
	Piece PieceType
}

func (c Cell) Empty() bool {
	return c.Piece == NoPiece
}

// Board is a full 9x9 grid in CSA row order: Board[0] is the P1 row and
// Board[r][0] is file 9.
type Board [9][9]Cell

// At returns the cell at s, or an empty cell when s is off the board.
func (b *Board) At(s Square) Cell {
	if !s.OnBoard() {
		return Cell{}
	}
	return b[s.Rank-1][9-s.File]
}

// Set stores c at s. Squares off the board are ignored.
func (b *Board) Set(s Square, c Cell) {
	if !s.OnBoard() {
		return
	}
	b[s.Rank-1][9-s.File] = c
}

// HandicapPiece is one piece removed from the standard layout by a PI line.
type HandicapPiece struct {
	Square Square
	Piece  PieceType
}

// Placement is one piece added by a P+ or P- line.
type Placement struct {
	Color  Color
	Square Square
	Piece  PieceType
}

// Position is the starting position as written in the record. Handicap is
// nil when no PI line was present and empty when PI listed no pieces.
type Position struct {
	Handicap   []HandicapPiece
	Grid       *Board
	Placements []Placement
	SideToMove Color
}

type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionToryo
	ActionMatta
	ActionTsumi
	ActionError
	ActionKachi
	ActionChudan
	ActionFuzumi
	ActionJishogi
	ActionHikiwake
	ActionSennichite
	ActionTimeUp
	ActionIllegalMove
	ActionBlackIllegalAction
	ActionWhiteIllegalAction
	ActionMaxMoves

	numActionKinds = int(ActionMaxMoves) + 1
)

var specialKeywords = [numActionKinds]string{
	ActionMove:               "",
	ActionToryo:              "TORYO",
	ActionMatta:              "MATTA",
	ActionTsumi:              "TSUMI",
	ActionError:              "ERROR",
	ActionKachi:              "KACHI",
	ActionChudan:             "CHUDAN",
	ActionFuzumi:             "FUZUMI",
	ActionJishogi:            "JISHOGI",
	ActionHikiwake:           "HIKIWAKE",
	ActionSennichite:         "SENNICHITE",
	ActionTimeUp:             "TIME_UP",
	ActionIllegalMove:        "ILLEGAL_MOVE",
	ActionBlackIllegalAction: "+ILLEGAL_ACTION",
	ActionWhiteIllegalAction: "-ILLEGAL_ACTION",
	ActionMaxMoves:           "MAX_MOVES",
}

var specialsByKeyword = func() map[string]ActionKind {
	m := make(map[string]ActionKind, numActionKinds)
	for kind, kw := range specialKeywords {
		if kw != "" {
			m[kw] = ActionKind(kind)
		}
	}
	return m
}()

// Keyword is the text following % for special declarations.
func (k ActionKind) Keyword() string {
	if k < 0 || int(k) >= numActionKinds {
		return ""
	}
	return specialKeywords[k]
}

func (k ActionKind) String() string {
	if k == ActionMove {
		return "MOVE"
	}
	if kw := k.Keyword(); kw != "" {
		return kw
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is one ply. Color, From, To and Piece are meaningful only when
// Kind is ActionMove.
type Action struct {
	Kind  ActionKind
	Color Color
	From  Square
	To    Square
	Piece PieceType
}

func NewMove(c Color, from, to Square, pt PieceType) Action {
	return Action{Kind: ActionMove, Color: c, From: from, To: to, Piece: pt}
}

func NewSpecial(kind ActionKind) Action {
	return Action{Kind: kind}
}

func (a Action) IsMove() bool {
	return a.Kind == ActionMove
}

// String renders a in CSA notation, e.g. "+2726FU" or "%TORYO".
func (a Action) String() string {
	if a.Kind == ActionMove {
		return a.Color.Sign() + a.From.String() + a.To.String() + a.Piece.Code()
	}
	return "%" + a.Kind.Keyword()
}

// MoveRecord is one ply and the time spent on it, if recorded.
type MoveRecord struct {
	Action Action
	Time   *time.Duration
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// Time is a calendar date with an optional time of day. Dates are kept as
// written; 2024/02/30 is a valid Time.
type Time struct {
	Year  int
	Month int
	Day   int
	Clock *Clock
}

func (t Time) String() string {
	s := fmt.Sprintf("%04d/%02d/%02d", t.Year, t.Month, t.Day)
	if t.Clock != nil {
		s += fmt.Sprintf(" %02d:%02d:%02d", t.Clock.Hour, t.Clock.Minute, t.Clock.Second)
	}
	return s
}

// TimeLimit is the main time allotment plus byoyomi.
type TimeLimit struct {
	MainTime time.Duration
	Byoyomi  time.Duration
}

func (tl TimeLimit) String() string {
	minutes := int64(tl.MainTime / time.Minute)
	return fmt.Sprintf("%02d:%02d+%02d", minutes/60, minutes%60, int64(tl.Byoyomi/time.Second))
}

type AttributeKind int

const (
	AttributeText AttributeKind = iota
	AttributeTime
	AttributeTimeLimit
)

// GameAttribute is one $KEY:VALUE header line. Text always holds the raw
// value; Time or TimeLimit is set when Kind says the value parsed as one.
type GameAttribute struct {
	Key       string
	Kind      AttributeKind
	Text      string
	Time      Time
	TimeLimit TimeLimit
}

// GameRecord is a whole CSA record.
type GameRecord struct {
	BlackPlayer   *string
	WhitePlayer   *string
	Event         *string
	Site          *string
	StartTime     *Time
	EndTime       *Time
	TimeLimit     *TimeLimit
	Opening       *string
	StartPosition Position
	Moves         []MoveRecord
}

// Ending returns the last special declaration of the record, if any.
func (r *GameRecord) Ending() (ActionKind, bool) {
	for i := len(r.Moves) - 1; i >= 0; i-- {
		if k := r.Moves[i].Action.Kind; k != ActionMove {
			return k, true
		}
	}
	return ActionMove, false
}

func (r *GameRecord) applyAttribute(attr GameAttribute) {
	switch attr.Key {
	case "EVENT":
		r.Event = stringPtr(attr.Text)
	case "SITE":
		r.Site = stringPtr(attr.Text)
	case "OPENING":
		r.Opening = stringPtr(attr.Text)
	case "START_TIME":
		if attr.Kind == AttributeTime {
			t := attr.Time
			r.StartTime = &t
		}
	case "END_TIME":
		if attr.Kind == AttributeTime {
			t := attr.Time
			r.EndTime = &t
		}
	case "TIME_LIMIT":
		if attr.Kind == AttributeTimeLimit {
			tl := attr.TimeLimit
			r.TimeLimit = &tl
		}
	}
}

func stringPtr(s string) *string {
	return &s
}
