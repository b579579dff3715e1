// Package annotate attaches TypeScript type annotations to a parsed
// JavaScript program.
//
// The annotator walks the tree exactly once and records positional text
// insertions instead of rewriting the tree: each annotation is an Edit
// against the original source, applied in one splice pass at the end. This
// keeps the input's formatting and comments intact in the output.
//
// Three node kinds receive annotations:
//
//   - variable declarators: the deduced type of the initializer, or any
//   - function parameters: always any
//   - function return types: void, overwritten by the deduced type of each
//     top-level return statement in order, so the last one wins
package annotate

import (
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"

	"github.com/typeshift/typeshift/internal/infer"
)

// Annotator collects annotation edits for a single source file. It cannot
// fail: every slot it touches has a defined fallback type.
type Annotator struct {
	src   string
	edits []Edit
}

func New(src string) *Annotator {
	return &Annotator{src: src}
}

// Program walks the program body and returns the recorded edits.
func (a *Annotator) Program(prog *ast.Program) []Edit {
	for _, stmt := range prog.Body {
		a.stmt(stmt)
	}
	return a.edits
}

func (a *Annotator) insert(at int, text string) {
	a.edits = append(a.edits, Edit{At: at, Text: text})
}

// afterNode is the 0-based insertion offset just past a node. goja indexes
// are 1-based and Idx1 points one past the node's last character.
func afterNode(n ast.Node) int {
	return int(n.Idx1()) - 1
}

// afterIdx is the 0-based insertion offset just past a single-character
// token at idx, such as the closing parenthesis of a parameter list.
func afterIdx(idx file.Idx) int {
	return int(idx)
}

// binding annotates one declarator with the deduced type of its initializer
// (any when absent), then descends into the initializer for nested
// functions.
func (a *Annotator) binding(b *ast.Binding) {
	t := infer.Deduce(b.Initializer)
	a.insert(afterNode(b.Target), ": "+t.String())
	a.expr(b.Initializer)
}

func (a *Annotator) bindings(list []*ast.Binding) {
	for _, b := range list {
		a.binding(b)
	}
}

// function annotates a function literal's parameters and return type, then
// walks its body for nested declarations.
func (a *Annotator) function(fn *ast.FunctionLiteral) {
	if fn == nil || fn.ParameterList == nil || fn.Body == nil {
		return
	}
	a.parameters(fn.ParameterList)
	if close := a.paramsClose(fn.ParameterList); close >= 0 {
		a.insert(close, ": "+returnTypeOf(fn.Body).String())
	}
	for _, stmt := range fn.Body.List {
		a.stmt(stmt)
	}
}

// arrow annotates an arrow function. goja records the parameter list
// parentheses only on some parse paths (a reinterpreted sequence leaves
// Opening/Closing zero, a single parenthesized identifier records the
// identifier position), so parenthesization is derived from the source
// text. A single unparenthesized parameter (x => e) is wrapped first,
// since x: any => e does not parse.
func (a *Annotator) arrow(fn *ast.ArrowFunctionLiteral) {
	if fn == nil || fn.ParameterList == nil {
		return
	}
	params := fn.ParameterList

	var ret infer.Type = infer.Void
	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		ret = returnTypeOf(body)
	case *ast.ExpressionBody:
		ret = infer.Deduce(body.Expression)
	}

	if len(params.List) == 1 && params.Rest == nil {
		// Only a lone parameter may omit parentheses. It is parenthesized
		// exactly when a ')' follows it; an unparenthesized one is followed
		// by =>.
		b := params.List[0]
		if close := a.closingParen(bindingEnd(b)); close >= 0 {
			a.insert(afterNode(b.Target), ": "+infer.Any.String())
			a.expr(b.Initializer)
			a.insert(close, ": "+ret.String())
		} else {
			target := b.Target
			a.insert(int(target.Idx0())-1, "(")
			a.insert(afterNode(target), ": "+infer.Any.String()+")")
			a.insert(afterNode(target), ": "+ret.String())
		}
	} else {
		a.parameters(params)
		close := a.paramsClose(params)
		if close < 0 {
			close = a.closingParen(int(fn.Start) - 1)
		}
		if close >= 0 {
			a.insert(close, ": "+ret.String())
		}
	}

	switch body := fn.Body.(type) {
	case *ast.BlockStatement:
		for _, stmt := range body.List {
			a.stmt(stmt)
		}
	case *ast.ExpressionBody:
		a.expr(body.Expression)
	}
}

// paramsClose locates the insertion offset just past the ')' ending a
// parameter list. The recorded Closing index is trusted only when it
// actually points at a ')' in the source; otherwise the offset is found by
// scanning forward from the last parameter.
func (a *Annotator) paramsClose(params *ast.ParameterList) int {
	if close := afterIdx(params.Closing); close > 0 && close <= len(a.src) && a.src[close-1] == ')' {
		return close
	}
	from := -1
	if params.Rest != nil {
		from = afterNode(params.Rest)
	} else if len(params.List) > 0 {
		from = bindingEnd(params.List[len(params.List)-1])
	} else if params.Opening > 0 {
		from = int(params.Opening) - 1
	}
	if from < 0 {
		return -1
	}
	return a.closingParen(from)
}

// closingParen scans forward from a 0-based offset for a closing
// parenthesis, skipping whitespace, a trailing comma, and the opening
// parenthesis of an empty list. It returns the insertion offset just past
// the ')', or -1 when any other character intervenes, such as the => of an
// unparenthesized arrow parameter.
func (a *Annotator) closingParen(from int) int {
	if from < 0 {
		return -1
	}
	for i := from; i < len(a.src); i++ {
		switch a.src[i] {
		case ')':
			return i + 1
		case ' ', '\t', '\n', '\r', ',', '(':
		default:
			return -1
		}
	}
	return -1
}

// bindingEnd is the offset just past a binding, including its default
// value when present.
func bindingEnd(b *ast.Binding) int {
	if b.Initializer != nil {
		return afterNode(b.Initializer)
	}
	return afterNode(b.Target)
}

// parameters annotates every parameter with any. Parameter types are never
// inferred, not even from default values. A rest parameter becomes any[] so
// the output stays syntactically valid.
func (a *Annotator) parameters(params *ast.ParameterList) {
	for _, b := range params.List {
		a.insert(afterNode(b.Target), ": "+infer.Any.String())
		a.expr(b.Initializer)
	}
	if params.Rest != nil {
		a.insert(afterNode(params.Rest), ": any[]")
	}
}

// returnTypeOf scans only the immediate statements of a block body for
// return statements with an argument. Each match overwrites the candidate,
// so the last top-level return in source order decides the type. A body
// with no such return is void.
func returnTypeOf(body *ast.BlockStatement) infer.Type {
	var t infer.Type = infer.Void
	for _, stmt := range body.List {
		if ret, ok := stmt.(*ast.ReturnStatement); ok && ret.Argument != nil {
			t = infer.Deduce(ret.Argument)
		}
	}
	return t
}
