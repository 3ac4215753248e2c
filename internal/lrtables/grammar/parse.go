package grammar

import (
	"fmt"
	"strings"
	"unicode"
)

// MustParse is ParseGrammar but panics on error; it exists for tests and
// other call sites that hand-author a small grammar literal and want to
// skip error handling.
func MustParse(src string) Grammar {
	g, err := ParseGrammar(src)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// ParseGrammar parses a compact textual grammar notation of the form:
//
//	S -> a S b | a b
//	A -> ε
//
// One rule per line (continuation lines indented further than the first
// rule are joined to the rule above them), alternatives separated by "|",
// symbols separated by whitespace. A symbol is taken to be a non-terminal if
// it begins with an uppercase letter, and a terminal otherwise; "ε" (or the
// literal word "eps") denotes an epsilon production. The grammar's start
// symbol is the left-hand side of the first rule.
func ParseGrammar(src string) (Grammar, error) {
	var g Grammar

	rawLines := strings.Split(src, "\n")
	var logicalLines []string
	baseIndent := -1
	for _, line := range rawLines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		// The first non-blank line establishes the indentation every rule
		// line sits at (callers commonly indent an entire multi-line
		// grammar literal to match surrounding Go source). Only a line
		// indented *past* that baseline is a continuation of the previous
		// rule.
		if baseIndent == -1 {
			baseIndent = indent
		}

		if indent > baseIndent {
			if len(logicalLines) == 0 {
				return Grammar{}, fmt.Errorf("grammar: continuation line with no preceding rule: %q", line)
			}
			logicalLines[len(logicalLines)-1] += " " + trimmed
			continue
		}
		logicalLines = append(logicalLines, trimmed)
	}

	for _, line := range logicalLines {
		sides := strings.SplitN(line, "->", 2)
		if len(sides) != 2 {
			return Grammar{}, fmt.Errorf("grammar: rule missing '->': %q", line)
		}

		nonTerm := strings.TrimSpace(sides[0])
		if nonTerm == "" {
			return Grammar{}, fmt.Errorf("grammar: empty non-terminal in rule: %q", line)
		}
		if !isNonTerminalName(nonTerm) {
			return Grammar{}, fmt.Errorf("grammar: left-hand side %q is not a valid non-terminal name", nonTerm)
		}

		alts := strings.Split(sides[1], "|")
		for _, alt := range alts {
			symbols := strings.Fields(alt)

			var prod Production
			for _, sym := range symbols {
				if sym == "ε" || sym == "eps" {
					continue
				}
				prod = append(prod, sym)
				if isNonTerminalName(sym) {
					// non-terminal declarations happen implicitly via
					// AddRule below once we know all of its productions;
					// nothing to do here.
					continue
				}
				if g.terminals == nil || !g.IsTerminal(sym) {
					g.AddTerm(sym, "")
				}
			}

			g.AddRule(nonTerm, prod)
		}
	}

	return g, nil
}

func isNonTerminalName(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return unicode.IsUpper(r)
}
