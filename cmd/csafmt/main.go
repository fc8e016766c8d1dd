// csafmt rewrites CSA records in canonical form.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"csa/pkg/csa"
)

func main() {
	write := flag.Bool("w", false, "write result to the source file instead of stdout")
	list := flag.Bool("l", false, "list files whose formatting differs from canonical form")
	strict := flag.Bool("strict", false, "reject files with trailing unparsed input")
	sfen := flag.Bool("sfen", false, "print the SFEN of the starting position instead")
	usi := flag.Bool("usi", false, "print the USI position command for the whole game instead")
	flag.Parse()

	if flag.NArg() == 0 {
		fatal(fmt.Errorf("usage: csafmt [-w] [-l] [-strict] [-sfen|-usi] file.csa..."))
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := formatFile(path, *write, *list, *strict, *sfen, *usi); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func formatFile(path string, write, list, strict, sfen, usi bool) error {
	rec, err := csa.ReadFile(path, strict)
	if err != nil {
		return err
	}
	if sfen {
		s, err := rec.SFENAt(0)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Println(s)
		return nil
	}
	if usi {
		cmd, err := rec.USIPosition(len(rec.Moves))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Println(cmd)
		return nil
	}

	out := csa.Compose(rec)
	if list {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.Equal(src, []byte(out)) {
			fmt.Println(path)
		}
		return nil
	}
	if write {
		return os.WriteFile(path, []byte(out), 0o644)
	}
	_, err = os.Stdout.WriteString(out)
	return err
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
