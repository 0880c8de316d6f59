package interp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"dwislpy/ast"
	"dwislpy/common"
	"dwislpy/diag"
)

// Interp holds everything one run of a program needs that is not local to a
// particular call: the definitions it may invoke, and the standard streams.
type Interp struct {
	Defs ast.Defs
	Out  io.Writer
	in   *bufio.Scanner
}

// New creates an interpreter that calls into defs, printing to out and
// reading whitespace-delimited input tokens from in.
func New(defs ast.Defs, out io.Writer, in io.Reader) *Interp {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Interp{Defs: defs, Out: out, in: sc}
}

// Run executes a program's main block against a fresh environment.
func (ip *Interp) Run(main ast.Block) error {
	env := NewEnv()
	_, err := ip.execBlock(main, env)
	return err
}

// execBlock runs every statement in b in order. A non-nil returned Value
// means some statement (directly, or in a nested if/while) executed a
// `return`; execution of the enclosing block stops there.
func (ip *Interp) execBlock(b ast.Block, env *Env) (*common.Value, error) {
	for _, s := range b {
		v, err := ip.execStmt(s, env)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func (ip *Interp) execStmt(s ast.Stmt, env *Env) (*common.Value, error) {
	switch n := s.(type) {
	case *ast.IntroStmt:
		v, err := ip.evalExpn(n.Expn, env)
		if err != nil {
			return nil, err
		}
		env.Set(n.Name, v)
		return nil, nil

	case *ast.AssignStmt:
		v, err := ip.evalExpn(n.Expn, env)
		if err != nil {
			return nil, err
		}
		env.Set(n.Name, v)
		return nil, nil

	case *ast.CompoundStmt:
		cur, ok := env.Get(n.Name)
		if !ok {
			return nil, diag.NewError(n.Locn(), "'%s' is undefined", n.Name)
		}
		rhs, err := ip.evalExpn(n.Expn, env)
		if err != nil {
			return nil, err
		}
		if cur.Kind != common.IntTy || rhs.Kind != common.IntTy {
			return nil, diag.NewError(n.Locn(), "compound assignment requires int operands")
		}
		var result int64
		switch n.Op {
		case ast.PlusEq:
			result = cur.I + rhs.I
		case ast.MinusEq:
			result = cur.I - rhs.I
		case ast.StarEq:
			result = cur.I * rhs.I
		}
		env.Set(n.Name, common.IntVal(result))
		return nil, nil

	case *ast.PrintStmt:
		for _, a := range n.Args {
			v, err := ip.evalExpn(a, env)
			if err != nil {
				return nil, err
			}
			fmt.Fprintln(ip.Out, v.String())
		}
		return nil, nil

	case *ast.PassStmt:
		return nil, nil

	case *ast.WhileStmt:
		for {
			c, err := ip.evalExpn(n.Cond, env)
			if err != nil {
				return nil, err
			}
			if !c.Truthy() {
				return nil, nil
			}
			v, err := ip.execBlock(n.Body, env)
			if err != nil {
				return nil, err
			}
			if v != nil {
				return v, nil
			}
		}

	case *ast.IfStmt:
		c, err := ip.evalExpn(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if c.Truthy() {
			return ip.execBlock(n.Then, env)
		}
		return ip.execBlock(n.Else, env)

	case *ast.CallStmt:
		_, err := ip.call(n.Locn(), n.Name, n.Args, env)
		return nil, err

	case *ast.ReturnStmt:
		if n.Expn == nil {
			v := common.NoneVal()
			return &v, nil
		}
		v, err := ip.evalExpn(n.Expn, env)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	panic("interp: unhandled statement node")
}

func (ip *Interp) evalExpn(e ast.Expn, env *Env) (common.Value, error) {
	switch n := e.(type) {
	case *ast.LitExpn:
		return n.Value, nil

	case *ast.VarExpn:
		v, ok := env.Get(n.Name)
		if !ok {
			return common.Value{}, diag.NewError(n.Locn(), "'%s' is undefined", n.Name)
		}
		return v, nil

	case *ast.NegExpn:
		v, err := ip.evalExpn(n.Operand, env)
		if err != nil {
			return common.Value{}, err
		}
		if v.Kind != common.IntTy {
			return common.Value{}, diag.NewError(n.Locn(), "unary '-' requires an int operand")
		}
		return common.IntVal(-v.I), nil

	case *ast.NotExpn:
		v, err := ip.evalExpn(n.Operand, env)
		if err != nil {
			return common.Value{}, err
		}
		return common.BoolVal(!v.Truthy()), nil

	case *ast.ArithExpn:
		return ip.evalArith(n, env)

	case *ast.CmprExpn:
		return ip.evalCmpr(n, env)

	case *ast.LogExpn:
		l, err := ip.evalExpn(n.Left, env)
		if err != nil {
			return common.Value{}, err
		}
		r, err := ip.evalExpn(n.Right, env)
		if err != nil {
			return common.Value{}, err
		}
		if n.Op == ast.And {
			return common.BoolVal(l.Truthy() && r.Truthy()), nil
		}
		return common.BoolVal(l.Truthy() || r.Truthy()), nil

	case *ast.InputExpn:
		p, err := ip.evalExpn(n.Prompt, env)
		if err != nil {
			return common.Value{}, err
		}
		fmt.Fprint(ip.Out, p.String())
		if !ip.in.Scan() {
			return common.Value{}, diag.NewError(n.Locn(), "input: no more tokens on standard input")
		}
		return common.StrVal(ip.in.Text()), nil

	case *ast.IntConvExpn:
		v, err := ip.evalExpn(n.Operand, env)
		if err != nil {
			return common.Value{}, err
		}
		switch v.Kind {
		case common.IntTy:
			return v, nil
		case common.BoolTy:
			if v.B {
				return common.IntVal(1), nil
			}
			return common.IntVal(0), nil
		case common.StrTy:
			i, err := strconv.ParseInt(v.S, 10, 64)
			if err != nil {
				return common.Value{}, diag.NewError(n.Locn(), "cannot convert %q to int", v.S)
			}
			return common.IntVal(i), nil
		default:
			return common.Value{}, diag.NewError(n.Locn(), "cannot convert None to int")
		}

	case *ast.StrConvExpn:
		v, err := ip.evalExpn(n.Operand, env)
		if err != nil {
			return common.Value{}, err
		}
		return common.StrVal(v.String()), nil

	case *ast.CallExpn:
		return ip.call(n.Locn(), n.Name, n.Args, env)
	}
	panic("interp: unhandled expression node")
}

func (ip *Interp) evalArith(n *ast.ArithExpn, env *Env) (common.Value, error) {
	l, err := ip.evalExpn(n.Left, env)
	if err != nil {
		return common.Value{}, err
	}
	r, err := ip.evalExpn(n.Right, env)
	if err != nil {
		return common.Value{}, err
	}
	if n.Op == ast.Add && l.Kind == common.StrTy && r.Kind == common.StrTy {
		return common.StrVal(l.S + r.S), nil
	}
	if l.Kind != common.IntTy || r.Kind != common.IntTy {
		return common.Value{}, diag.NewError(n.Locn(), "'%s' requires int operands (or, for '+', two strings)", n.Op.String())
	}
	switch n.Op {
	case ast.Add:
		return common.IntVal(l.I + r.I), nil
	case ast.Sub:
		return common.IntVal(l.I - r.I), nil
	case ast.Mul:
		return common.IntVal(l.I * r.I), nil
	case ast.FDiv:
		if r.I == 0 {
			return common.Value{}, diag.NewError(n.Locn(), "division by 0")
		}
		return common.IntVal(l.I / r.I), nil
	case ast.Mod:
		if r.I == 0 {
			return common.Value{}, diag.NewError(n.Locn(), "division by 0")
		}
		return common.IntVal(l.I % r.I), nil
	}
	panic("interp: unhandled arithmetic operator")
}

func (ip *Interp) evalCmpr(n *ast.CmprExpn, env *Env) (common.Value, error) {
	l, err := ip.evalExpn(n.Left, env)
	if err != nil {
		return common.Value{}, err
	}
	r, err := ip.evalExpn(n.Right, env)
	if err != nil {
		return common.Value{}, err
	}
	if n.Op == ast.EqOp {
		return common.BoolVal(l.Equal(r)), nil
	}
	if l.Kind != common.IntTy || r.Kind != common.IntTy {
		return common.Value{}, diag.NewError(n.Locn(), "'%s' requires int operands", n.Op.String())
	}
	switch n.Op {
	case ast.Lt:
		return common.BoolVal(l.I < r.I), nil
	case ast.Le:
		return common.BoolVal(l.I <= r.I), nil
	}
	panic("interp: unhandled comparison operator")
}

// call finds name by searching Defs from last to first (spec §4.2: the most
// recently defined wins on name collisions), binds evaluated arguments to
// formals in a fresh environment, and executes its body.
func (ip *Interp) call(l common.Locn, name string, args []ast.Expn, env *Env) (common.Value, error) {
	def, ok := ip.Defs.LookupLast(name)
	if !ok {
		return common.Value{}, diag.NewError(l, "no definition named '%s'", name)
	}
	if len(args) != len(def.Formals) {
		return common.Value{}, diag.NewError(l, "'%s' expects %s but got %s",
			name, common.Pluralize(len(def.Formals), "argument"), common.Pluralize(len(args), "argument"))
	}

	vals := make([]common.Value, len(args))
	for i, a := range args {
		v, err := ip.evalExpn(a, env)
		if err != nil {
			return common.Value{}, err
		}
		vals[i] = v
	}

	callEnv := NewEnv()
	for i, f := range def.Formals {
		callEnv.Set(f.Name, vals[i])
	}

	result, err := ip.execBlock(def.Body, callEnv)
	if err != nil {
		return common.Value{}, err
	}
	if result == nil {
		return common.NoneVal(), nil
	}
	return *result, nil
}
