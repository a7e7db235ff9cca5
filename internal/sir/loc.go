package sir

import "sable/internal/source"

// ExprRef points at an expression node. Fn is non-nil when the expression is
// a function literal (closure body).
type ExprRef struct {
	Pos source.Pos
	Fn  *FuncDecl
}

// StmtRef points at a statement node.
type StmtRef struct {
	Pos source.Pos
}

// DeclRef points at a declaration node. Fn is non-nil for function
// declarations.
type DeclRef struct {
	Pos source.Pos
	Fn  *FuncDecl
}

// Loc is a source reference that may denote an expression, a statement, or a
// declaration. All three may be absent for compiler-generated code.
type Loc struct {
	Expr *ExprRef
	Stmt *StmtRef
	Decl *DeclRef
}

// IsNull reports whether the reference carries no node at all.
func (l Loc) IsNull() bool {
	return l.Expr == nil && l.Stmt == nil && l.Decl == nil
}

// StartPos returns the most precise position available, preferring
// expressions over statements over declarations.
func (l Loc) StartPos() source.Pos {
	if l.Expr != nil {
		return l.Expr.Pos
	}
	if l.Stmt != nil {
		return l.Stmt.Pos
	}
	if l.Decl != nil {
		return l.Decl.Pos
	}
	return source.NoPos
}

// FuncDecl returns the function declaration the reference points at, if any.
// Function expressions take precedence over declarations.
func (l Loc) FuncDecl() *FuncDecl {
	if l.Expr != nil && l.Expr.Fn != nil {
		return l.Expr.Fn
	}
	if l.Decl != nil && l.Decl.Fn != nil {
		return l.Decl.Fn
	}
	return nil
}

// ExprLoc builds a reference to an expression.
func ExprLoc(pos source.Pos) Loc {
	return Loc{Expr: &ExprRef{Pos: pos}}
}

// StmtLoc builds a reference to a statement.
func StmtLoc(pos source.Pos) Loc {
	return Loc{Stmt: &StmtRef{Pos: pos}}
}

// DeclLoc builds a reference to a function declaration.
func DeclLoc(fd *FuncDecl) Loc {
	if fd == nil {
		return Loc{}
	}
	return Loc{Decl: &DeclRef{Pos: fd.Pos, Fn: fd}}
}
