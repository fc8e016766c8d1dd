package csa

import (
	"errors"
	"fmt"
	"strings"
)

func usiSquare(s Square) string {
	return fmt.Sprintf("%d%c", s.File, byte('a'+s.Rank-1))
}

// USIMove converts a, played from st, to USI notation such as "7g7f",
// "8h2b+" or "P*5e". The promotion flag comes from comparing the piece on
// the origin square with the piece named by the move.
func (st *Setup) USIMove(a Action) (string, error) {
	if !a.IsMove() {
		return "", fmt.Errorf("%s has no USI form", a)
	}
	if !a.To.OnBoard() {
		return "", fmt.Errorf("destination %s is off the board", a.To)
	}
	if a.From.Hand() {
		letter, ok := sfenLetters[a.Piece]
		if !ok || a.Piece.Promoted() || a.Piece == King {
			return "", fmt.Errorf("cannot drop %s", a.Piece)
		}
		return letter + "*" + usiSquare(a.To), nil
	}
	moving := st.Board.At(a.From)
	if moving.Empty() {
		return "", fmt.Errorf("no piece at %s", a.From)
	}
	move := usiSquare(a.From) + usiSquare(a.To)
	if !moving.Piece.Promoted() && a.Piece.Promoted() {
		move += "+"
	}
	return move, nil
}

// USIPosition returns the USI "position" command reaching the position after
// the first ply plies: the starting SFEN followed by the moves played.
// Special declarations are skipped.
func (r *GameRecord) USIPosition(ply int) (string, error) {
	if ply < 0 || ply > len(r.Moves) {
		return "", fmt.Errorf("move out of range: %d", ply)
	}
	st, err := r.StartPosition.Setup()
	if err != nil {
		return "", err
	}
	cmd := "position sfen " + st.SFEN(1)
	var moves []string
	for i := 0; i < ply; i++ {
		a := r.Moves[i].Action
		if !a.IsMove() {
			continue
		}
		m, err := st.USIMove(a)
		if err != nil {
			return "", fmt.Errorf("move %d: %w", i+1, err)
		}
		if err := st.Apply(a); err != nil {
			return "", fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, m)
	}
	if len(moves) == 0 {
		return cmd, nil
	}
	return cmd + " moves " + strings.Join(moves, " "), nil
}

// ParseUSIMove converts a USI move back to a CSA action for the side to
// move in st.
func (st *Setup) ParseUSIMove(move string) (Action, error) {
	if len(move) < 4 {
		return Action{}, fmt.Errorf("invalid usi move: %s", move)
	}
	if move[1] == '*' {
		pt, ok := sfenPieces[move[0]]
		if !ok || pt == King || len(move) != 4 {
			return Action{}, fmt.Errorf("invalid usi drop: %s", move)
		}
		to, err := parseUSISquare(move[2:4])
		if err != nil {
			return Action{}, err
		}
		return NewMove(st.Turn, Square{}, to, pt), nil
	}
	from, err := parseUSISquare(move[0:2])
	if err != nil {
		return Action{}, err
	}
	to, err := parseUSISquare(move[2:4])
	if err != nil {
		return Action{}, err
	}
	moving := st.Board.At(from)
	if moving.Empty() {
		return Action{}, fmt.Errorf("no piece at %s", from)
	}
	pt := moving.Piece
	switch move[4:] {
	case "":
	case "+":
		if pt = promote(pt); pt == NoPiece {
			return Action{}, fmt.Errorf("%s cannot promote", moving.Piece)
		}
	default:
		return Action{}, fmt.Errorf("invalid usi move: %s", move)
	}
	return NewMove(st.Turn, from, to, pt), nil
}

func parseUSISquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, errors.New("invalid usi square")
	}
	file := int(text[0] - '0')
	rank := int(text[1]-'a') + 1
	s := NewSquare(file, rank)
	if !s.OnBoard() {
		return Square{}, fmt.Errorf("invalid usi square: %s", text)
	}
	return s, nil
}
