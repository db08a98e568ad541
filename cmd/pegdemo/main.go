// Command pegdemo drives the calculator and fieldref example grammars
// from the command line, in the spirit of tef-ez's own cmd/ez
// demonstrator.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/fabriquer/Pegmatite/examples/calculator"
	"github.com/fabriquer/Pegmatite/examples/fieldref"
)

type options struct {
	Grammar string `long:"grammar" short:"g" description:"which example grammar to run" choice:"calculator" choice:"calculator-int" choice:"fieldref" default:"calculator"`
	Args    struct {
		Input string `positional-arg-name:"input" description:"the text to parse"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	opt := &options{}
	parser := flags.NewParser(opt, flags.Default)
	parser.ShortDescription = "pegdemo"
	parser.LongDescription = "Parses one line of input with a pegmatite example grammar and prints the result."

	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			code = 0
		}
		os.Exit(code)
	}

	if err := run(opt); err != nil {
		fmt.Fprintln(os.Stderr, "pegdemo:", err)
		os.Exit(1)
	}
}

func run(opt *options) error {
	switch opt.Grammar {
	case "calculator":
		return runCalculator(opt.Args.Input, false)
	case "calculator-int":
		return runCalculator(opt.Args.Input, true)
	case "fieldref":
		return runFieldref(opt.Args.Input)
	default:
		return fmt.Errorf("unknown grammar %q", opt.Grammar)
	}
}

func runCalculator(input string, integer bool) error {
	g := calculator.New(integer)
	v, errs, ok := g.Eval(input)
	if !ok {
		return fmt.Errorf("parse failed: %v", errs)
	}
	fmt.Println(v)
	return nil
}

func runFieldref(input string) error {
	g := fieldref.New()
	node, errs, ok := g.Parse(input)
	if !ok {
		return fmt.Errorf("parse failed: %v", errs)
	}
	printNode(node, 0)
	return nil
}

func printNode(n fieldref.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	switch v := n.(type) {
	case fieldref.Name:
		fmt.Printf("%sName(%s)\n", indent, v.Name)
	case fieldref.Field:
		fmt.Printf("%sField(.%s)\n", indent, v.Field)
		printNode(v.Base, depth+1)
	}
}
