package calc

import "github.com/expr-lang/expr/ast"

// signPatcher replaces unary minus with a call to the negation function,
// since expr-lang cannot overload unary operators. Unary plus is dropped.
type signPatcher struct{}

// Visit implements ast.Visitor.
func (signPatcher) Visit(node *ast.Node) {
	un, ok := (*node).(*ast.UnaryNode)
	if !ok {
		return
	}

	switch un.Operator {
	case "-":
		ast.Patch(node, &ast.CallNode{
			Callee:    &ast.IdentifierNode{Value: fnNegate},
			Arguments: []ast.Node{un.Node},
		})

	case "+":
		ast.Patch(node, un.Node)
	}
}
