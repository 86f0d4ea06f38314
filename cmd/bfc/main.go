// Command bfc is the transpiling front end (spec.md §4.4, §6): it reads
// a program from standard input, parses and optimizes it, and writes the
// emitted LLVM IR module to standard output.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"brainfuck/internal/errors"
	"brainfuck/internal/ir"
	"brainfuck/internal/optimizer"
	"brainfuck/internal/parser"
	"brainfuck/internal/transpiler"
)

func main() {
	var stats bool
	for _, arg := range os.Args[1:] {
		if arg == "-stats" || arg == "--stats" {
			stats = true
			continue
		}
		fmt.Fprintf(os.Stderr, "Usage: bfc [-stats] < file.bf\n")
		os.Exit(1)
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("could not read stdin: %v", err)
	}

	nodes, err := parser.Parse(source)
	if err != nil {
		if perr, ok := err.(*errors.ParseError); ok {
			fmt.Fprintf(os.Stderr, "%s\n", perr.Error())
			os.Exit(1)
		}
		log.Fatalf("parse error: %v", err)
	}

	nodes = optimizer.Optimize(nodes)
	module := transpiler.Emit(nodes)

	fmt.Print(module)

	if stats {
		printStats(nodes)
	}
}

func printStats(nodes []ir.Node) {
	color := isatty.IsTerminal(os.Stderr.Fd())
	label := func(s string) string {
		if color {
			return "\x1b[2m" + s + "\x1b[0m"
		}
		return s
	}

	fmt.Fprintf(os.Stderr, "%s\n", label("emitted"))
	fmt.Fprintf(os.Stderr, "  %s %s\n", label("optimized node count:"), humanize.Comma(int64(countNodes(nodes))))
}

func countNodes(nodes []ir.Node) int {
	n := len(nodes)
	for _, node := range nodes {
		n += countNodes(node.Body)
	}
	return n
}
