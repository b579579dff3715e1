package annotate

import (
	"github.com/dop251/goja/ast"
)

// stmt dispatches over statement kinds. The goja ast package has no exported
// generic walker, so traversal is explicit. Unlisted kinds are not descended
// into; anything left unannotated is still valid TypeScript.
func (a *Annotator) stmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.VariableStatement:
		a.bindings(n.List)
	case *ast.LexicalDeclaration:
		a.bindings(n.List)
	case *ast.FunctionDeclaration:
		a.function(n.Function)
	case *ast.BlockStatement:
		for _, stmt := range n.List {
			a.stmt(stmt)
		}
	case *ast.ExpressionStatement:
		a.expr(n.Expression)
	case *ast.ReturnStatement:
		a.expr(n.Argument)
	case *ast.ThrowStatement:
		a.expr(n.Argument)
	case *ast.IfStatement:
		a.expr(n.Test)
		a.stmt(n.Consequent)
		if n.Alternate != nil {
			a.stmt(n.Alternate)
		}
	case *ast.WhileStatement:
		a.expr(n.Test)
		a.stmt(n.Body)
	case *ast.DoWhileStatement:
		a.expr(n.Test)
		a.stmt(n.Body)
	case *ast.ForStatement:
		a.forInit(n.Initializer)
		a.expr(n.Test)
		a.expr(n.Update)
		a.stmt(n.Body)
	case *ast.ForInStatement:
		a.expr(n.Source)
		a.stmt(n.Body)
	case *ast.ForOfStatement:
		a.expr(n.Source)
		a.stmt(n.Body)
	case *ast.SwitchStatement:
		a.expr(n.Discriminant)
		for _, c := range n.Body {
			for _, stmt := range c.Consequent {
				a.stmt(stmt)
			}
		}
	case *ast.TryStatement:
		a.stmt(n.Body)
		if n.Catch != nil {
			a.stmt(n.Catch.Body)
		}
		if n.Finally != nil {
			a.stmt(n.Finally)
		}
	case *ast.LabelledStatement:
		a.stmt(n.Statement)
	}
}

// forInit annotates declarators in a for(;;) initializer clause. The
// declarations of for-in and for-of heads are left untouched: TypeScript
// forbids type annotations there (TS2483), so only their source expression
// and body are descended into.
func (a *Annotator) forInit(init ast.ForLoopInitializer) {
	switch n := init.(type) {
	case nil:
	case *ast.ForLoopInitializerVarDeclList:
		a.bindings(n.List)
	case *ast.ForLoopInitializerLexicalDecl:
		a.bindings(n.LexicalDeclaration.List)
	case *ast.ForLoopInitializerExpression:
		a.expr(n.Expression)
	}
}

// expr dispatches over expression kinds, looking for function literals and
// the expressions that can contain them.
func (a *Annotator) expr(e ast.Expression) {
	switch n := e.(type) {
	case nil:
	case *ast.FunctionLiteral:
		a.function(n)
	case *ast.ArrowFunctionLiteral:
		a.arrow(n)
	case *ast.AssignExpression:
		a.expr(n.Left)
		a.expr(n.Right)
	case *ast.BinaryExpression:
		a.expr(n.Left)
		a.expr(n.Right)
	case *ast.UnaryExpression:
		a.expr(n.Operand)
	case *ast.ConditionalExpression:
		a.expr(n.Test)
		a.expr(n.Consequent)
		a.expr(n.Alternate)
	case *ast.CallExpression:
		a.expr(n.Callee)
		for _, arg := range n.ArgumentList {
			a.expr(arg)
		}
	case *ast.NewExpression:
		a.expr(n.Callee)
		for _, arg := range n.ArgumentList {
			a.expr(arg)
		}
	case *ast.DotExpression:
		a.expr(n.Left)
	case *ast.BracketExpression:
		a.expr(n.Left)
		a.expr(n.Member)
	case *ast.SequenceExpression:
		for _, expr := range n.Sequence {
			a.expr(expr)
		}
	case *ast.ArrayLiteral:
		for _, el := range n.Value {
			a.expr(el)
		}
	case *ast.ObjectLiteral:
		for _, p := range n.Value {
			a.property(p)
		}
	}
}

// property descends into object literal values. Accessor bodies are skipped:
// a getter must not gain a parameter and a setter must not gain a return
// type, so neither is touched at all.
func (a *Annotator) property(p ast.Property) {
	switch n := p.(type) {
	case *ast.PropertyKeyed:
		if n.Kind == "get" || n.Kind == "set" {
			return
		}
		a.expr(n.Value)
	case *ast.PropertyShort:
		a.expr(n.Initializer)
	case *ast.SpreadElement:
		a.expr(n.Expression)
	}
}
