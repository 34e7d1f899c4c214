// File: internal/actions/parser.go
package actions

import (
	"math/big"
	"strconv"
	"strings"

	"go.starlark.net/syntax"
)

// knownFunctions is the callee allow-list. Everything else is rejected
// before any argument is even looked at.
var knownFunctions = map[string]bool{
	"left_click":        true,
	"right_click":       true,
	"double_left_click": true,
	"drag":              true,
	"type":              true,
	"screenshot":        true,
	"focus":             true,
	"click":             true,
}

// aliases folds synonymous names onto their canonical instruction name.
var aliases = map[string]string{
	"click": "left_click",
}

// parseOpts keeps the grammar at its defaults; the expression parser is
// used purely for syntax, nothing is ever evaluated.
var parseOpts = &syntax.FileOptions{}

// ExtractLines scans raw model text for action candidates.
//
// Primary strategy: a case-insensitive ACTIONS section header (with or
// without a trailing colon) opens the section; every following non-blank
// line is a candidate until another section header or end of text. If no
// ACTIONS header exists anywhere, the fallback accepts any line that looks
// like a call: contains "(" and ends with ")". The fallback tolerates
// models that forget the header without accepting arbitrary prose.
func ExtractLines(raw string) []string {
	var out []string
	inActions := false
	sawHeader := false

	for _, line := range strings.Split(raw, "\n") {
		s := strings.TrimSpace(line)
		switch strings.ToUpper(strings.TrimRight(s, ":")) {
		case "NARRATIVE":
			inActions = false
			continue
		case "ACTIONS":
			inActions = true
			sawHeader = true
			continue
		}
		if inActions && s != "" {
			out = append(out, s)
		}
	}
	if sawHeader {
		return out
	}

	out = out[:0]
	for _, line := range strings.Split(raw, "\n") {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if strings.Contains(s, "(") && strings.HasSuffix(s, ")") {
			out = append(out, s)
		}
	}
	return out
}

// argValue is one literal argument: int64, float64, string, or bool.
type argValue interface{}

// call is a validated (name, positional-args, keyword-args) triple.
type call struct {
	name   string
	args   []argValue
	kwargs map[string]argValue
}

// parseCall parses a single line as exactly one call expression with a
// bare allow-listed identifier as callee and only literal arguments.
// Any deviation returns (nil, false): rejection, not error — rejected
// lines are inert.
func parseCall(line string) (*call, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil, false
	}
	expr, err := parseOpts.ParseExpr("action", s, 0)
	if err != nil {
		return nil, false
	}
	ce, ok := expr.(*syntax.CallExpr)
	if !ok {
		return nil, false
	}
	ident, ok := ce.Fn.(*syntax.Ident)
	if !ok {
		return nil, false
	}
	name := ident.Name
	if !knownFunctions[name] {
		return nil, false
	}
	if canon, ok := aliases[name]; ok {
		name = canon
	}

	c := &call{name: name, kwargs: map[string]argValue{}}
	for _, arg := range ce.Args {
		if kw, ok := arg.(*syntax.BinaryExpr); ok && kw.Op == syntax.EQ {
			key, ok := kw.X.(*syntax.Ident)
			if !ok {
				return nil, false
			}
			v, ok := literalValue(kw.Y)
			if !ok {
				return nil, false
			}
			c.kwargs[key.Name] = v
			continue
		}
		v, ok := literalValue(arg)
		if !ok {
			return nil, false
		}
		c.args = append(c.args, v)
	}
	return c, true
}

// literalValue accepts number and string literals plus the True/False
// identifiers. Identifiers, operators, and nested calls all fail here,
// which is the safety boundary of the whole language.
func literalValue(e syntax.Expr) (argValue, bool) {
	switch v := e.(type) {
	case *syntax.Literal:
		switch val := v.Value.(type) {
		case int64:
			return val, true
		case *big.Int:
			return val.Int64(), true
		case float64:
			return val, true
		case string:
			return val, true
		}
		return nil, false
	case *syntax.Ident:
		switch v.Name {
		case "True":
			return true, true
		case "False":
			return false, true
		}
		return nil, false
	}
	return nil, false
}

// intArg resolves a required integer field from position idx or keyword
// key, whichever is present. Numeric and boolean literals coerce the way
// the action language always has; strings do not.
func (c *call) intArg(idx int, key string) (int, bool) {
	v, ok := c.lookup(idx, key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// strArg resolves a string field; any literal stringifies, so type(5)
// types the text "5".
func (c *call) strArg(idx int, key string) (string, bool) {
	v, ok := c.lookup(idx, key)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case int64:
		return strconv.FormatInt(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	case bool:
		if s {
			return "True", true
		}
		return "False", true
	}
	return "", false
}

func (c *call) lookup(idx int, key string) (argValue, bool) {
	if idx < len(c.args) {
		return c.args[idx], true
	}
	v, ok := c.kwargs[key]
	return v, ok
}

// Parse turns one line of text into a validated Instruction. The second
// return is false on rejection; rejection is the normal fate of malformed
// lines and is never an error.
func Parse(line string) (Instruction, bool) {
	c, ok := parseCall(line)
	if !ok {
		return nil, false
	}
	return instrFromCall(c)
}

// Recognize parses a line leniently. known reports whether the line is a
// valid literal-only call to an allow-listed name at all; valid reports
// whether every required field was present. When known but not valid, the
// returned instruction is the kind's zero value, so its canonical form
// zero-fills the missing fields for feedback display.
func Recognize(line string) (instr Instruction, valid, known bool) {
	c, ok := parseCall(line)
	if !ok {
		return nil, false, false
	}
	if in, ok := instrFromCall(c); ok {
		return in, true, true
	}
	return zeroInstr(c.name), false, true
}

func instrFromCall(c *call) (Instruction, bool) {
	switch c.name {
	case "left_click":
		x, okX := c.intArg(0, "x")
		y, okY := c.intArg(1, "y")
		if !okX || !okY {
			return nil, false
		}
		return LeftClick{X: x, Y: y}, true
	case "right_click":
		x, okX := c.intArg(0, "x")
		y, okY := c.intArg(1, "y")
		if !okX || !okY {
			return nil, false
		}
		return RightClick{X: x, Y: y}, true
	case "double_left_click":
		x, okX := c.intArg(0, "x")
		y, okY := c.intArg(1, "y")
		if !okX || !okY {
			return nil, false
		}
		return DoubleLeftClick{X: x, Y: y}, true
	case "drag":
		x1, ok1 := c.intArg(0, "x1")
		y1, ok2 := c.intArg(1, "y1")
		x2, ok3 := c.intArg(2, "x2")
		y2, ok4 := c.intArg(3, "y2")
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, false
		}
		return Drag{X1: x1, Y1: y1, X2: x2, Y2: y2}, true
	case "type":
		t, ok := c.strArg(0, "text")
		if !ok {
			return nil, false
		}
		return Type{Text: t}, true
	case "screenshot":
		return Screenshot{}, true
	case "focus":
		return Focus{}, true
	}
	return nil, false
}

func zeroInstr(name string) Instruction {
	switch name {
	case "left_click":
		return LeftClick{}
	case "right_click":
		return RightClick{}
	case "double_left_click":
		return DoubleLeftClick{}
	case "drag":
		return Drag{}
	case "type":
		return Type{}
	case "screenshot":
		return Screenshot{}
	}
	return Focus{}
}

// ParseAll maps lines through Parse, dropping rejections.
func ParseAll(lines []string) []Instruction {
	var out []Instruction
	for _, line := range lines {
		if in, ok := Parse(line); ok {
			out = append(out, in)
		}
	}
	return out
}
