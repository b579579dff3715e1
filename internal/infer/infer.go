// Package infer deduces TypeScript types from single JavaScript expressions.
//
// Deduction is purely shape-based: it looks at the immediate expression node
// and nothing else. There is no symbol table, no recursion into called
// functions, and no cross-statement analysis. Every shape has a defined
// result, so deduction never fails.
package infer

import (
	"github.com/dop251/goja/ast"
)

// Deduce maps an expression to a TypeScript type. A nil expression and any
// unrecognized shape (calls, objects, templates, operators) deduce to any.
func Deduce(expr ast.Expression) Type {
	switch e := expr.(type) {
	case nil:
		return Any
	case *ast.NumberLiteral:
		return Number
	case *ast.StringLiteral:
		return String
	case *ast.BooleanLiteral:
		return Boolean
	case *ast.NullLiteral:
		return Null
	case *ast.Identifier:
		if e.Name == "undefined" {
			return Undefined
		}
		return Any
	case *ast.ArrayLiteral:
		return Array{Elem: unifyElements(e.Value)}
	default:
		return Any
	}
}

// unifyElements computes the element type of an array literal. Each element
// maps to a scalar tag; if exactly one distinct tag results it becomes the
// element type, otherwise the array degrades to any[]. An empty array has no
// tag to pick, so it is any[] as well.
func unifyElements(elems []ast.Expression) Type {
	if len(elems) == 0 {
		return Any
	}
	first := elementTag(elems[0])
	for _, el := range elems[1:] {
		if elementTag(el) != first {
			return Any
		}
	}
	return first
}

// elementTag restricts deduction to scalar tags. Nested arrays, objects and
// every other composite shape contribute any; an elided element ([1, , 2])
// contributes null.
func elementTag(expr ast.Expression) Primitive {
	switch e := expr.(type) {
	case nil:
		return Null
	case *ast.NumberLiteral:
		return Number
	case *ast.StringLiteral:
		return String
	case *ast.BooleanLiteral:
		return Boolean
	case *ast.NullLiteral:
		return Null
	case *ast.Identifier:
		if e.Name == "undefined" {
			return Undefined
		}
		return Any
	default:
		return Any
	}
}
