// csastats prints aggregate counts for a set of games, read either from a
// directory of CSA files or from a parquet file written by csa2parquet.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"csa/pkg/csa"
)

type stats struct {
	games    int
	plies    int
	timed    int
	endings  map[string]int
	openings map[string]int
	players  map[string]struct{}
}

func newStats() *stats {
	return &stats{
		endings:  make(map[string]int),
		openings: make(map[string]int),
		players:  make(map[string]struct{}),
	}
}

func (s *stats) Add(g csa.GameSummary) {
	s.games++
	s.plies += int(g.MoveCount)
	for _, m := range g.Moves {
		if m.ElapsedSec >= 0 {
			s.timed++
		}
	}
	ending := g.Ending
	if ending == "" {
		ending = "(none)"
	}
	s.endings[ending]++
	if g.Opening != "" {
		s.openings[g.Opening]++
	}
	for _, name := range []string{g.Black, g.White} {
		if name != "" {
			s.players[name] = struct{}{}
		}
	}
}

func main() {
	csaDir := flag.String("csa-dir", "", "input directory for CSA files")
	parquetPath := flag.String("parquet", "", "input parquet file")
	flag.Parse()

	if (*csaDir == "") == (*parquetPath == "") {
		fatal(fmt.Errorf("specify exactly one of -csa-dir or -parquet"))
	}

	st := newStats()
	failed := 0
	if *parquetPath != "" {
		records, err := csa.ReadParquet(*parquetPath, 4)
		if err != nil {
			fatal(err)
		}
		for _, record := range records {
			st.Add(record)
		}
	} else {
		files, err := csa.CollectCSA(*csaDir)
		if err != nil {
			fatal(err)
		}
		if len(files) == 0 {
			fatal(fmt.Errorf("no .csa files found in %s", *csaDir))
		}
		for _, path := range files {
			rec, err := csa.ReadFile(path, false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to parse %s: %v\n", path, err)
				failed++
				continue
			}
			st.Add(csa.Summarize(path, rec))
		}
	}

	fmt.Printf("failed files: %d\n", failed)
	fmt.Printf("games: %d\n", st.games)
	fmt.Printf("plies: %d (with time: %d)\n", st.plies, st.timed)
	fmt.Printf("unique players: %d\n", len(st.players))
	fmt.Println("endings:")
	printCounts(st.endings)
	if len(st.openings) > 0 {
		fmt.Println("openings:")
		printCounts(st.openings)
	}
}

func printCounts(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, key := range keys {
		fmt.Printf("%s,%d\n", key, counts[key])
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
