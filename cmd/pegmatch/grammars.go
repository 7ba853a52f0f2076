package main

import (
	"fmt"
	"strings"

	"github.com/clarete/pegmatch"
	"github.com/clarete/pegmatch/examples/calc"
	"github.com/clarete/pegmatch/examples/csv"
	"github.com/clarete/pegmatch/examples/keywords"
)

type grammarEntry struct {
	name        string
	description string
	build       func(cfg *pegmatch.Config) (pegmatch.Matcher, error)
}

var grammars = []grammarEntry{
	{"calc", "arithmetic expressions, leaves the result on the value stack", calc.Grammar},
	{"csv", "comma separated values with quoted fields", csv.Grammar},
	{"keywords", "java-like tokens: keywords, dotted names, numbers and operators", keywords.Grammar},
}

func findGrammar(name string) (grammarEntry, error) {
	var names []string
	for _, g := range grammars {
		if g.name == name {
			return g, nil
		}
		names = append(names, g.name)
	}
	return grammarEntry{}, fmt.Errorf("unknown grammar `%s`, try one of: %s", name, strings.Join(names, ", "))
}
