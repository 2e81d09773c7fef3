// Command formula parses complex-valued formulas, prints their syntax
// trees, and evaluates them, optionally feeding each result back into z as
// an iterated map. With no expression arguments it starts a line-editing
// REPL.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/zmath/formula"
)

const (
	prompt      = "f> "
	historyFile = ".formula_history"
)

func main() {
	log.SetFlags(0)
	var (
		echo bool
		iter int
	)
	given := map[int]complex128{}
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		idx, err := varIndex(strings.TrimSpace(d[0]))
		if err != nil {
			return err
		}
		v, err := strconv.ParseComplex(strings.TrimSpace(d[1]), 128)
		if err != nil {
			return err
		}
		given[idx] = v
		return nil
	}
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.IntVar(&iter, "iter", 0, "feed each result back into z this many extra times")
	flag.Parse()
	if iter < 0 {
		log.Fatalf("iterations (%d) must not be negative", iter)
	}

	if flag.NArg() == 0 {
		repl(given, echo, iter)
		return
	}
	var p formula.Parser
	for _, arg := range flag.Args() {
		if err := run(&p, arg, given, echo, iter); err != nil {
			log.Fatal(err)
		}
	}
}

// run parses and evaluates one expression with the given bindings, feeding
// the result back into z iter times.
func run(p *formula.Parser, src string, given map[int]complex128, echo bool, iter int) error {
	if err := p.Parse(src); err != nil {
		return err
	}
	if echo {
		fmt.Printf("%v : vars %v : %v precision\n", p, p.Vars(), p.Precision())
	}
	ev, err := formula.Compile(p, formula.Complex128Ops())
	if err != nil {
		return err
	}
	for idx, v := range given {
		ev.Set(idx, v)
	}
	r := ev.Eval()
	for k := 0; k < iter; k++ {
		ev.Set(0, r)
		r = ev.Eval()
	}
	fmt.Println(strconv.FormatComplex(r, 'g', -1, 128))
	return nil
}

// varIndex maps a variable name to its table index: c is -1, z is 0, and
// z<n> is n.
func varIndex(name string) (int, error) {
	switch {
	case name == "c":
		return -1, nil
	case name == "z":
		return 0, nil
	case strings.HasPrefix(name, "z"):
		n, err := strconv.Atoi(name[1:])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid variable name %q", name)
		}
		return n, nil
	}
	return 0, fmt.Errorf("invalid variable name %q", name)
}

func repl(given map[int]complex128, echo bool, iter int) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyFile
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
	}
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	var p formula.Parser
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return
		}
		if err != nil {
			log.Fatal(err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if err := run(&p, line, given, echo, iter); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
