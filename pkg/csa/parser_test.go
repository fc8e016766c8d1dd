package csa_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"csa/pkg/csa"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	text, err := csa.DecodeCSA(data)
	if err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return text
}

func secs(n int) *time.Duration {
	d := time.Duration(n) * time.Second
	return &d
}

func str(s string) *string {
	return &s
}

func TestParseExampleRecord(t *testing.T) {
	rec, err := csa.Parse(readFixture(t, "example.csa"))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	checks := []struct {
		name string
		got  *string
		want string
	}{
		{"black", rec.BlackPlayer, "NAKAHARA"},
		{"white", rec.WhitePlayer, "YONENAGA"},
		{"event", rec.Event, "13th World Computer Shogi Championship"},
		{"site", rec.Site, "KAZUSA ARC"},
		{"opening", rec.Opening, "YAGURA"},
	}
	for _, c := range checks {
		if c.got == nil || *c.got != c.want {
			t.Fatalf("unexpected %s: got %v want %s", c.name, c.got, c.want)
		}
	}

	wantStart := csa.Time{Year: 2003, Month: 5, Day: 3, Clock: &csa.Clock{Hour: 10, Minute: 30}}
	if rec.StartTime == nil || !reflect.DeepEqual(*rec.StartTime, wantStart) {
		t.Fatalf("unexpected start time: got %v want %v", rec.StartTime, wantStart)
	}
	wantEnd := csa.Time{Year: 2003, Month: 5, Day: 3, Clock: &csa.Clock{Hour: 11, Minute: 11, Second: 5}}
	if rec.EndTime == nil || !reflect.DeepEqual(*rec.EndTime, wantEnd) {
		t.Fatalf("unexpected end time: got %v want %v", rec.EndTime, wantEnd)
	}
	wantLimit := csa.TimeLimit{MainTime: 1500 * time.Second}
	if rec.TimeLimit == nil || *rec.TimeLimit != wantLimit {
		t.Fatalf("unexpected time limit: got %v want %v", rec.TimeLimit, wantLimit)
	}

	standard := csa.StandardBoard()
	wantPos := csa.Position{Grid: &standard, SideToMove: csa.Black}
	if !reflect.DeepEqual(rec.StartPosition, wantPos) {
		t.Fatalf("unexpected start position: got %+v", rec.StartPosition)
	}

	wantMoves := []csa.MoveRecord{
		{Action: csa.NewMove(csa.Black, csa.NewSquare(2, 7), csa.NewSquare(2, 6), csa.Pawn), Time: secs(12)},
		{Action: csa.NewMove(csa.White, csa.NewSquare(3, 3), csa.NewSquare(3, 4), csa.Pawn), Time: secs(6)},
		{Action: csa.NewSpecial(csa.ActionChudan)},
	}
	if !reflect.DeepEqual(rec.Moves, wantMoves) {
		t.Fatalf("unexpected moves: got %+v want %+v", rec.Moves, wantMoves)
	}
}

func TestParseStandardGrid(t *testing.T) {
	input := "P1-KY-KE-GI-KI-OU-KI-GI-KE-KY\n" +
		"P2 * -HI *  *  *  *  * -KA * \n" +
		"P3-FU-FU-FU-FU-FU-FU-FU-FU-FU\n" +
		"P4 *  *  *  *  *  *  *  *  * \n" +
		"P5 *  *  *  *  *  *  *  *  * \n" +
		"P6 *  *  *  *  *  *  *  *  * \n" +
		"P7+FU+FU+FU+FU+FU+FU+FU+FU+FU\n" +
		"P8 * +KA *  *  *  *  * +HI * \n" +
		"P9+KY+KE+GI+KI+OU+KI+GI+KE+KY\n" +
		"+\n"
	rec, err := csa.Parse(input)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	grid := rec.StartPosition.Grid
	if grid == nil {
		t.Fatal("expected a grid")
	}
	for file := 1; file <= 9; file++ {
		if got := grid.At(csa.NewSquare(file, 7)); got != (csa.Cell{Color: csa.Black, Piece: csa.Pawn}) {
			t.Fatalf("unexpected cell at %d7: got %+v", file, got)
		}
		if got := grid.At(csa.NewSquare(file, 3)); got != (csa.Cell{Color: csa.White, Piece: csa.Pawn}) {
			t.Fatalf("unexpected cell at %d3: got %+v", file, got)
		}
		for _, rank := range []int{4, 5, 6} {
			if got := grid.At(csa.NewSquare(file, rank)); !got.Empty() {
				t.Fatalf("expected empty cell at %d%d, got %+v", file, rank, got)
			}
		}
	}
	if *grid != csa.StandardBoard() {
		t.Fatalf("grid does not match the standard layout")
	}
	if got := grid.At(csa.NewSquare(2, 8)); got != (csa.Cell{Color: csa.Black, Piece: csa.Rook}) {
		t.Fatalf("unexpected cell at 28: got %+v", got)
	}
}

func TestParseGridToleratesTrimmedRows(t *testing.T) {
	input := "P1-KY-KE-GI-KI-OU-KI-GI-KE-KY\n" +
		"P2 * -HI *  *  *  *  * -KA *\n" +
		"P3-FU-FU-FU-FU-FU-FU-FU-FU-FU\n" +
		"P4 *  *  *  *  *  *  *  *  *\n" +
		"P5 *  *  *  *  *  *  *  *  *\n" +
		"P6 *  *  *  *  *  *  *  *  *\n" +
		"P7+FU+FU+FU+FU+FU+FU+FU+FU+FU\n" +
		"P8 * +KA *  *  *  *  * +HI *\n" +
		"P9+KY+KE+GI+KI+OU+KI+GI+KE+KY\n" +
		"-\n"
	rec, err := csa.Parse(input)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if rec.StartPosition.Grid == nil || *rec.StartPosition.Grid != csa.StandardBoard() {
		t.Fatalf("unexpected grid: %+v", rec.StartPosition.Grid)
	}
	if rec.StartPosition.SideToMove != csa.White {
		t.Fatalf("unexpected side to move: %v", rec.StartPosition.SideToMove)
	}
}

func TestParseGridRowWithWrongCellCount(t *testing.T) {
	short := "P1-KY-KE-GI-KI-OU-KI-GI-KE\n"
	long := "P1-KY-KE-GI-KI-OU-KI-GI-KE-KY-KY\n"
	rest := "P2 * -HI *  *  *  *  * -KA * \n" +
		"P3-FU-FU-FU-FU-FU-FU-FU-FU-FU\n" +
		"P4 *  *  *  *  *  *  *  *  * \n" +
		"P5 *  *  *  *  *  *  *  *  * \n" +
		"P6 *  *  *  *  *  *  *  *  * \n" +
		"P7+FU+FU+FU+FU+FU+FU+FU+FU+FU\n" +
		"P8 * +KA *  *  *  *  * +HI * \n" +
		"P9+KY+KE+GI+KI+OU+KI+GI+KE+KY\n" +
		"+\n"
	for _, first := range []string{short, long} {
		if _, err := csa.Parse(first + rest); !errors.Is(err, csa.ErrParse) {
			t.Fatalf("expected parse error for %q, got %v", first, err)
		}
	}
}

func TestParsePieceCodes(t *testing.T) {
	codes := map[string]csa.PieceType{
		"FU": csa.Pawn,
		"KY": csa.Lance,
		"KE": csa.Knight,
		"GI": csa.Silver,
		"KI": csa.Gold,
		"KA": csa.Bishop,
		"HI": csa.Rook,
		"OU": csa.King,
		"TO": csa.ProPawn,
		"NY": csa.ProLance,
		"NK": csa.ProKnight,
		"NG": csa.ProSilver,
		"UM": csa.Horse,
		"RY": csa.Dragon,
		"AL": csa.All,
	}
	for code, want := range codes {
		got, err := csa.ParsePieceType(code)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", code, err)
		}
		if got != want {
			t.Fatalf("unexpected piece for %s: got %v want %v", code, got, want)
		}
		if got.Code() != code {
			t.Fatalf("unexpected code for %v: got %s want %s", got, got.Code(), code)
		}
	}
	for _, bad := range []string{"", "F", "fu", "XX", "OK", "ALL", "  ", "* "} {
		if _, err := csa.ParsePieceType(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseTimeRanges(t *testing.T) {
	valid := []string{
		"2002/01/01", "2002/12/31", "2024/02/30", "0001/01/01",
		"2002/01/01 00:00:00", "2002/01/01 23:59:59", "2002/01/01 19:00:00",
	}
	for _, s := range valid {
		if _, err := csa.ParseTime(s); err != nil {
			t.Fatalf("expected %q to parse: %v", s, err)
		}
	}
	invalid := []string{
		"2002/00/01", "2002/13/01", "2002/01/00", "2002/01/32",
		"2002/01/01 24:00:00", "2002/01/01 25:00:00", "2002/01/01 00:60:00", "2002/01/01 00:00:60",
		"02/01/01", "2002-01-01",
	}
	for _, s := range invalid {
		_, err := csa.ParseTime(s)
		if !errors.Is(err, csa.ErrParse) {
			t.Fatalf("expected parse error for %q, got %v", s, err)
		}
	}

	got, err := csa.ParseTime("2002/01/01")
	if err != nil {
		t.Fatalf("failed to parse date: %v", err)
	}
	if got.Clock != nil || got.Year != 2002 || got.Month != 1 || got.Day != 1 {
		t.Fatalf("unexpected date: %+v", got)
	}
}

func TestParseTimeLimit(t *testing.T) {
	tests := []struct {
		in      string
		main    time.Duration
		byoyomi time.Duration
	}{
		{"00:25+00", 1500 * time.Second, 0},
		{"00:30+30", 1800 * time.Second, 30 * time.Second},
		{"00:00+30", 0, 30 * time.Second},
		{"1:05+120", time.Hour + 5*time.Minute, 120 * time.Second},
		{"100:00+0", 100 * time.Hour, 0},
	}
	for _, tt := range tests {
		got, err := csa.ParseTimeLimit(tt.in)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", tt.in, err)
		}
		if got.MainTime != tt.main || got.Byoyomi != tt.byoyomi {
			t.Fatalf("unexpected time limit for %s: got %+v", tt.in, got)
		}
	}
	for _, bad := range []string{"00:60+00", "00:5+00", ":25+00", "00:25", "00:25+"} {
		if _, err := csa.ParseTimeLimit(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseActions(t *testing.T) {
	specials := map[string]csa.ActionKind{
		"%TORYO":           csa.ActionToryo,
		"%MATTA":           csa.ActionMatta,
		"%TSUMI":           csa.ActionTsumi,
		"%ERROR":           csa.ActionError,
		"%KACHI":           csa.ActionKachi,
		"%CHUDAN":          csa.ActionChudan,
		"%FUZUMI":          csa.ActionFuzumi,
		"%JISHOGI":         csa.ActionJishogi,
		"%HIKIWAKE":        csa.ActionHikiwake,
		"%SENNICHITE":      csa.ActionSennichite,
		"%TIME_UP":         csa.ActionTimeUp,
		"%ILLEGAL_MOVE":    csa.ActionIllegalMove,
		"%+ILLEGAL_ACTION": csa.ActionBlackIllegalAction,
		"%-ILLEGAL_ACTION": csa.ActionWhiteIllegalAction,
		"%MAX_MOVES":       csa.ActionMaxMoves,
	}
	for text, kind := range specials {
		got, err := csa.ParseAction(text)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", text, err)
		}
		if got != csa.NewSpecial(kind) {
			t.Fatalf("unexpected action for %s: got %+v", text, got)
		}
		if got.String() != text {
			t.Fatalf("unexpected rendering: got %s want %s", got.String(), text)
		}
	}

	moves := map[string]csa.Action{
		"+2726FU": csa.NewMove(csa.Black, csa.NewSquare(2, 7), csa.NewSquare(2, 6), csa.Pawn),
		"-3334FU": csa.NewMove(csa.White, csa.NewSquare(3, 3), csa.NewSquare(3, 4), csa.Pawn),
		"+0055KA": csa.NewMove(csa.Black, csa.NewSquare(0, 0), csa.NewSquare(5, 5), csa.Bishop),
		"-5555OU": csa.NewMove(csa.White, csa.NewSquare(5, 5), csa.NewSquare(5, 5), csa.King),
		"+8822UM": csa.NewMove(csa.Black, csa.NewSquare(8, 8), csa.NewSquare(2, 2), csa.Horse),
	}
	for text, want := range moves {
		got, err := csa.ParseAction(text)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", text, err)
		}
		if got != want {
			t.Fatalf("unexpected action for %s: got %+v want %+v", text, got, want)
		}
	}

	for _, bad := range []string{"%TORYOX", "%TORY", "%", "%toryo", "+27FU", "*2726FU", "+2726XX"} {
		if _, err := csa.ParseAction(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseMovesWithAndWithoutTime(t *testing.T) {
	rec, err := csa.Parse("+\n+2726FU\nT5\n%CHUDAN\n")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(rec.Moves) != 2 {
		t.Fatalf("unexpected move count: got %d want 2", len(rec.Moves))
	}
	if rec.Moves[0].Time == nil || *rec.Moves[0].Time != 5*time.Second {
		t.Fatalf("unexpected first move time: %v", rec.Moves[0].Time)
	}
	if rec.Moves[1].Time != nil {
		t.Fatalf("unexpected second move time: %v", *rec.Moves[1].Time)
	}
	if rec.Moves[1].Action.Kind != csa.ActionChudan {
		t.Fatalf("unexpected second action: %v", rec.Moves[1].Action)
	}
}

func TestParseEmptyHandicap(t *testing.T) {
	rec, err := csa.Parse("PI\n+\n")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if rec.StartPosition.Handicap == nil || len(rec.StartPosition.Handicap) != 0 {
		t.Fatalf("expected an empty handicap list, got %#v", rec.StartPosition.Handicap)
	}

	rec, err = csa.Parse("PI82HI22KA\n-\n")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	want := []csa.HandicapPiece{
		{Square: csa.NewSquare(8, 2), Piece: csa.Rook},
		{Square: csa.NewSquare(2, 2), Piece: csa.Bishop},
	}
	if !reflect.DeepEqual(rec.StartPosition.Handicap, want) {
		t.Fatalf("unexpected handicap: got %+v want %+v", rec.StartPosition.Handicap, want)
	}
}

func TestParsePlacements(t *testing.T) {
	rec, err := csa.Parse(readFixture(t, "tsume.csa"))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	want := []csa.Placement{
		{Color: csa.White, Square: csa.NewSquare(5, 1), Piece: csa.King},
		{Color: csa.Black, Square: csa.NewSquare(5, 3), Piece: csa.Gold},
		{Color: csa.Black, Square: csa.NewSquare(0, 0), Piece: csa.Gold},
		{Color: csa.White, Square: csa.NewSquare(0, 0), Piece: csa.All},
	}
	if !reflect.DeepEqual(rec.StartPosition.Placements, want) {
		t.Fatalf("unexpected placements: got %+v want %+v", rec.StartPosition.Placements, want)
	}
	if rec.StartPosition.Handicap != nil || rec.StartPosition.Grid != nil {
		t.Fatalf("unexpected base layout: %+v", rec.StartPosition)
	}
	if len(rec.Moves) != 2 || rec.Moves[1].Action.Kind != csa.ActionTsumi {
		t.Fatalf("unexpected moves: %+v", rec.Moves)
	}
}

func TestParseHeaderVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(*csa.GameRecord) bool
	}{
		{
			name:  "no header",
			input: "+\n",
			check: func(r *csa.GameRecord) bool {
				return r.BlackPlayer == nil && r.WhitePlayer == nil && r.Event == nil && len(r.Moves) == 0
			},
		},
		{
			name:  "white player only",
			input: "V2\nN-gote\n-\n",
			check: func(r *csa.GameRecord) bool {
				return r.BlackPlayer == nil && r.WhitePlayer != nil && *r.WhitePlayer == "gote"
			},
		},
		{
			name:  "empty player name",
			input: "V2.1\nN+\n+\n",
			check: func(r *csa.GameRecord) bool {
				return r.BlackPlayer != nil && *r.BlackPlayer == ""
			},
		},
		{
			name:  "last attribute wins",
			input: "$EVENT:first\n$EVENT:second\n+\n",
			check: func(r *csa.GameRecord) bool {
				return r.Event != nil && *r.Event == "second"
			},
		},
		{
			name:  "unknown attribute dropped",
			input: "$MAX_MOVES:256\n$SITE:Tokyo\n+\n",
			check: func(r *csa.GameRecord) bool {
				return r.Site != nil && *r.Site == "Tokyo" && r.Event == nil
			},
		},
		{
			name:  "date-like event stays text",
			input: "$EVENT:2003/05/03\n+\n",
			check: func(r *csa.GameRecord) bool {
				return r.Event != nil && *r.Event == "2003/05/03"
			},
		},
		{
			name:  "start time without clock",
			input: "$START_TIME:2003/05/03\n+\n",
			check: func(r *csa.GameRecord) bool {
				return r.StartTime != nil && r.StartTime.Clock == nil && r.StartTime.Day == 3
			},
		},
		{
			name:  "malformed start time dropped",
			input: "$START_TIME:2003/13/03\n+\n",
			check: func(r *csa.GameRecord) bool {
				return r.StartTime == nil
			},
		},
		{
			name:  "comments everywhere",
			input: "'a\nV2.2\n'b, with comma\nN+x\n'c\nN-y\n'd\n$EVENT:e\n'e\nPI\n'f\n+\n'g\n+7776FU\n'h\n-3334FU\n'trailing\n",
			check: func(r *csa.GameRecord) bool {
				return *r.BlackPlayer == "x" && *r.WhitePlayer == "y" && *r.Event == "e" && len(r.Moves) == 2
			},
		},
		{
			name:  "comma separated moves",
			input: "+\n+2726FU,T12,-3334FU,T6\n",
			check: func(r *csa.GameRecord) bool {
				return len(r.Moves) == 2 && *r.Moves[0].Time == 12*time.Second && *r.Moves[1].Time == 6*time.Second
			},
		},
		{
			name:  "no trailing newline",
			input: "+\n+2726FU\nT3",
			check: func(r *csa.GameRecord) bool {
				return len(r.Moves) == 1 && *r.Moves[0].Time == 3*time.Second
			},
		},
		{
			name:  "crlf line endings",
			input: "V2.2\r\nN+a\r\n+\r\n+2726FU\r\n",
			check: func(r *csa.GameRecord) bool {
				return *r.BlackPlayer == "a" && len(r.Moves) == 1
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := csa.Parse(tt.input)
			if err != nil {
				t.Fatalf("failed to parse: %v", err)
			}
			if !tt.check(rec) {
				t.Fatalf("unexpected record: %+v", rec)
			}
		})
	}
}

func TestParseFailures(t *testing.T) {
	inputs := []string{
		"",
		"V2.2\n",
		"V2.3\n+\n",
		"V3.0\n+\n",
		"N+a\nN+b\n+\n",
		"*\n",
	}
	for _, input := range inputs {
		rec, err := csa.Parse(input)
		if err == nil {
			t.Fatalf("expected error for %q, got %+v", input, rec)
		}
		if !errors.Is(err, csa.ErrParse) {
			t.Fatalf("expected ErrParse for %q, got %v", input, err)
		}
		if rec != nil {
			t.Fatalf("expected no record on failure for %q", input)
		}
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := csa.Parse("V2.2\nN+a\n$EVENT:x\n*\n")
	var perr *csa.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Line != 4 || perr.Column != 1 {
		t.Fatalf("unexpected location: line %d column %d", perr.Line, perr.Column)
	}
	if len(perr.Expected) == 0 {
		t.Fatal("expected a description of what was expected")
	}
}

func TestParseIgnoresTrailingInput(t *testing.T) {
	input := "+\n+2726FU\nthis is not csa\n-3334FU\n"
	rec, err := csa.Parse(input)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(rec.Moves) != 1 {
		t.Fatalf("unexpected move count: got %d want 1", len(rec.Moves))
	}
	if _, err := csa.ParseStrict(input); !errors.Is(err, csa.ErrParse) {
		t.Fatalf("expected strict parse to fail, got %v", err)
	}
	if _, err := csa.ParseStrict("+\n+2726FU\n'done\n"); err != nil {
		t.Fatalf("unexpected strict parse error: %v", err)
	}
}

func TestParseAttribute(t *testing.T) {
	attr, err := csa.ParseAttribute("$START_TIME:2002/01/01 19:00:00")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if attr.Key != "START_TIME" || attr.Kind != csa.AttributeTime || attr.Time.Clock == nil || attr.Time.Clock.Hour != 19 {
		t.Fatalf("unexpected attribute: %+v", attr)
	}

	attr, err = csa.ParseAttribute("$TIME_LIMIT:00:30+30")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if attr.Kind != csa.AttributeTimeLimit || attr.TimeLimit.Byoyomi != 30*time.Second {
		t.Fatalf("unexpected attribute: %+v", attr)
	}

	attr, err = csa.ParseAttribute("$EVENT:event")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if attr.Kind != csa.AttributeText || attr.Text != "event" {
		t.Fatalf("unexpected attribute: %+v", attr)
	}

	for _, bad := range []string{"EVENT:x", "$:x", "$EVENT"} {
		if _, err := csa.ParseAttribute(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseRejectsOverflowingDurations(t *testing.T) {
	for _, bad := range []string{"3000000:00+0", "2562047:00+00", "00:30+9223372037", "99999999999999999999:00+0"} {
		if _, err := csa.ParseTimeLimit(bad); !errors.Is(err, csa.ErrParse) {
			t.Fatalf("expected parse error for %q, got %v", bad, err)
		}
	}
	tl, err := csa.ParseTimeLimit("2562046:59+9223372036")
	if err != nil {
		t.Fatalf("failed to parse largest time limit: %v", err)
	}
	if got := tl.String(); got != "2562046:59+9223372036" {
		t.Fatalf("unexpected time limit: got %s want 2562046:59+9223372036", got)
	}

	input := "+\n+7776FU\nT99999999999\n"
	if _, err := csa.ParseStrict(input); !errors.Is(err, csa.ErrParse) {
		t.Fatalf("expected strict parse to fail, got %v", err)
	}
	rec, err := csa.Parse(input)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(rec.Moves) != 1 || rec.Moves[0].Time != nil {
		t.Fatalf("unexpected moves: %+v", rec.Moves)
	}
	again, err := csa.Parse(csa.Compose(rec))
	if err != nil {
		t.Fatalf("failed to reparse: %v", err)
	}
	if !reflect.DeepEqual(rec, again) {
		t.Fatalf("round trip mismatch:\nfirst:  %+v\nsecond: %+v", rec, again)
	}

	rec, err = csa.ParseStrict("+\n+7776FU\nT9223372036\n")
	if err != nil {
		t.Fatalf("failed to parse largest elapsed time: %v", err)
	}
	if want := 9223372036 * time.Second; rec.Moves[0].Time == nil || *rec.Moves[0].Time != want {
		t.Fatalf("unexpected elapsed time: got %v want %v", rec.Moves[0].Time, want)
	}
}

func TestParseErrorLineWithCarriageReturns(t *testing.T) {
	for _, input := range []string{"V2.2\rN+a\r$EVENT:x\r*\r", "V2.2\r\nN+a\r\n$EVENT:x\r\n*\r\n"} {
		_, err := csa.Parse(input)
		var perr *csa.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *ParseError for %q, got %v", input, err)
		}
		if perr.Line != 4 || perr.Column != 1 {
			t.Fatalf("unexpected location for %q: line %d column %d", input, perr.Line, perr.Column)
		}
	}
}
