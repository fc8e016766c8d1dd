package csa

import (
	"strconv"
	"strings"
	"time"
)

// Compose renders r as canonical CSA V2.2 text that Parse reads back to an
// equal record. Free text is written as is; a comma or newline inside a name
// or attribute value is not escaped and will not survive a round trip.
// Durations are written in whole units: a TimeLimit main time is truncated to
// minutes, and byoyomi and per-ply times to seconds.
func Compose(r *GameRecord) string {
	var b strings.Builder
	b.WriteString("V2.2\n")

	if r.BlackPlayer != nil {
		writeLine(&b, "N+", *r.BlackPlayer)
	}
	if r.WhitePlayer != nil {
		writeLine(&b, "N-", *r.WhitePlayer)
	}

	if r.Event != nil {
		writeLine(&b, "$EVENT:", *r.Event)
	}
	if r.Site != nil {
		writeLine(&b, "$SITE:", *r.Site)
	}
	if r.StartTime != nil {
		writeLine(&b, "$START_TIME:", r.StartTime.String())
	}
	if r.EndTime != nil {
		writeLine(&b, "$END_TIME:", r.EndTime.String())
	}
	if r.TimeLimit != nil {
		writeLine(&b, "$TIME_LIMIT:", r.TimeLimit.String())
	}
	if r.Opening != nil {
		writeLine(&b, "$OPENING:", *r.Opening)
	}

	composePosition(&b, &r.StartPosition)

	for _, m := range r.Moves {
		writeLine(&b, m.Action.String(), "")
		if m.Time != nil {
			writeLine(&b, "T", strconv.FormatInt(int64(*m.Time/time.Second), 10))
		}
	}
	return b.String()
}

// String is Compose(r).
func (r *GameRecord) String() string {
	return Compose(r)
}

func writeLine(b *strings.Builder, prefix, body string) {
	b.WriteString(prefix)
	b.WriteString(body)
	b.WriteByte('\n')
}

func composePosition(b *strings.Builder, p *Position) {
	if p.Handicap != nil {
		b.WriteString("PI")
		for _, h := range p.Handicap {
			b.WriteString(h.Square.String())
			b.WriteString(h.Piece.Code())
		}
		b.WriteByte('\n')
	}

	if p.Grid != nil {
		for r, row := range p.Grid {
			b.WriteByte('P')
			b.WriteByte(byte('1' + r))
			for _, c := range row {
				b.WriteString(composeCell(c))
			}
			b.WriteByte('\n')
		}
	}

	for i := 0; i < len(p.Placements); {
		c := p.Placements[i].Color
		b.WriteString("P")
		b.WriteString(c.Sign())
		for ; i < len(p.Placements) && p.Placements[i].Color == c; i++ {
			b.WriteString(p.Placements[i].Square.String())
			b.WriteString(p.Placements[i].Piece.Code())
		}
		b.WriteByte('\n')
	}

	writeLine(b, p.SideToMove.Sign(), "")
}

func composeCell(c Cell) string {
	if c.Empty() {
		return " * "
	}
	return c.Color.Sign() + c.Piece.Code()
}
