// Package loader extracts symbolic-argument metadata from a Go source
// file's doc comments. It parses the file with go/parser and walks its
// declarations with golang.org/x/tools/go/ast/astutil.Apply. loader
// never evaluates or executes the source it reads; it only locates a
// directive comment of the form:
//
//	//concolic:symbolic(a=0, b=1)
//
// immediately above a function declaration, and reports the argument
// names and seed values it names, in the order written.
package loader

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/gitrdm/concolite/pkg/concolic/subject"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/ast/astutil"
)

const directivePrefix = "concolic:symbolic("

// Decoration is one parsed //concolic:symbolic(...) directive: the name
// of the function it decorates and its declared arguments, in source
// order.
type Decoration struct {
	FuncName string
	Args     []subject.ArgSpec
}

// ParseDecorations walks every top-level function declaration in the Go
// source file at path and returns one Decoration per function carrying a
// //concolic:symbolic(...) doc comment. It does not type-check or
// compile the file; a syntax error in path is reported as an error.
func ParseDecorations(path string) ([]Decoration, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: parsing %s", path)
	}

	var out []Decoration
	var walkErr error
	astutil.Apply(file, func(c *astutil.Cursor) bool {
		fn, ok := c.Node().(*ast.FuncDecl)
		if !ok || fn.Doc == nil || walkErr != nil {
			return true
		}
		directive, ok := findDirective(fn.Doc)
		if !ok {
			return true
		}
		args, err := parseDirective(directive)
		if err != nil {
			walkErr = errors.Wrapf(err, "loader: %s: func %s", path, fn.Name.Name)
			return false
		}
		out = append(out, Decoration{FuncName: fn.Name.Name, Args: args})
		return true
	}, nil)
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// findDirective returns the line within cg that starts a
// //concolic:symbolic(...) directive, trimmed of comment markers.
func findDirective(cg *ast.CommentGroup) (string, bool) {
	for _, c := range cg.List {
		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
		if strings.HasPrefix(text, directivePrefix) {
			return text, true
		}
	}
	return "", false
}

// parseDirective parses `concolic:symbolic(a=0, b=1)` into ordered
// ArgSpecs.
func parseDirective(directive string) ([]subject.ArgSpec, error) {
	if !strings.HasSuffix(directive, ")") {
		return nil, errors.Errorf("malformed directive %q: missing closing paren", directive)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(directive, directivePrefix), ")")
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil, errors.Errorf("malformed directive %q: no arguments declared", directive)
	}

	var specs []subject.ArgSpec
	for _, field := range strings.Split(inner, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		parts := strings.SplitN(field, "=", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("malformed argument %q: expected name=seed", field)
		}
		name := strings.TrimSpace(parts[0])
		seedText := strings.TrimSpace(parts[1])
		seed, err := strconv.ParseInt(seedText, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed seed for argument %q", name)
		}
		specs = append(specs, subject.ArgSpec{Name: name, Seed: seed})
	}
	if len(specs) == 0 {
		return nil, errors.Errorf("malformed directive %q: no arguments parsed", directive)
	}
	return specs, nil
}
