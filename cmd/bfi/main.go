// Command bfi is the direct-execution front end (spec.md §4.3, §7): it
// reads a program file, parses and optimizes it, then runs the result
// against stdin and stdout.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"brainfuck/internal/errors"
	"brainfuck/internal/interpreter"
	"brainfuck/internal/optimizer"
	"brainfuck/internal/parser"
)

func main() {
	args := os.Args[1:]

	var stats bool
	var filename string
	for _, arg := range args {
		if arg == "-stats" || arg == "--stats" {
			stats = true
			continue
		}
		if filename == "" {
			filename = arg
		}
	}

	if filename == "" {
		fmt.Fprintln(os.Stderr, "Usage: bfi [-stats] <file.bf>")
		os.Exit(1)
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("could not read %s: %v", filename, err)
	}

	nodes, err := parser.Parse(source)
	if err != nil {
		if perr, ok := err.(*errors.ParseError); ok {
			fmt.Fprintf(os.Stderr, "%s: %s\n", filename, perr.Error())
			os.Exit(1)
		}
		log.Fatalf("parse error: %v", err)
	}

	nodes = optimizer.Optimize(nodes)
	chunk := interpreter.Flatten(nodes)

	result, err := interpreter.Run(chunk, os.Stdin, os.Stdout)
	if err != nil {
		if ioerr, ok := err.(*errors.IoError); ok {
			fmt.Fprintf(os.Stderr, "%+v\n", ioerr)
			os.Exit(1)
		}
		log.Fatalf("runtime error: %v", err)
	}

	if stats {
		printStats(filename, result)
	}
}

func printStats(filename string, s interpreter.Stats) {
	color := isatty.IsTerminal(os.Stderr.Fd())
	label := func(s string) string {
		if color {
			return "\x1b[2m" + s + "\x1b[0m"
		}
		return s
	}

	fmt.Fprintf(os.Stderr, "%s %s\n", label(filename+":"), "run complete")
	fmt.Fprintf(os.Stderr, "  %s %s\n", label("instructions (optimized):"), humanize.Comma(int64(s.InstrCount)))
	fmt.Fprintf(os.Stderr, "  %s %s\n", label("instructions executed:   "), humanize.Comma(int64(s.InstrExecuted)))
	fmt.Fprintf(os.Stderr, "  %s %s\n", label("tape high-water mark:    "), humanize.Comma(int64(s.HighWaterMark)))
}
