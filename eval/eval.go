// Package eval walks an expr.Expression tree to a float64, consulting
// a store.Store for symbol and user-function bindings and a
// config.Config for angle units and the recursion-depth cap.
//
// Grounded on the teacher's evaluator.Eval: the same switch-shaped
// dispatch and the same factorial/division/domain error messages,
// generalized from *parser.Node's three node kinds to expr.Expression's
// full tagged-variant set, and from a package-level Vars map to an
// explicit *store.Store argument.
package eval

import (
	"fmt"
	"math"
	"sort"

	"Axion/config"
	"Axion/expr"
	"Axion/store"
)

// Eval evaluates e to a scalar, using st for symbol/function lookups
// and cfg for angle-unit and recursion-depth settings.
func Eval(e expr.Expression, st *store.Store, cfg config.Config) (float64, error) {
	return evalDepth(e, st, cfg, 0)
}

func evalDepth(e expr.Expression, st *store.Store, cfg config.Config, depth int) (float64, error) {
	if depth > cfg.MaxRecursionDepth {
		return 0, fmt.Errorf("expression nested too deeply")
	}
	if e == nil {
		return 0, fmt.Errorf("invalid expression")
	}

	switch n := e.(type) {
	case expr.Number:
		return n.Value, nil

	case expr.Constant:
		switch n.Glyph {
		case 'π':
			return math.Pi, nil
		case 'e':
			return math.E, nil
		default:
			return 0, fmt.Errorf("constant %q has no real value", string(n.Glyph))
		}

	case expr.EmptyExpression:
		return 0, fmt.Errorf("empty expression")

	case expr.Infinity:
		if n.Negative {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil

	case expr.UndefinedExpr:
		return 0, fmt.Errorf("undefined value")

	case expr.Symbol:
		v, ok := st.Symbol(n.Name)
		if !ok {
			return 0, fmt.Errorf("undefined variable %q", n.Name)
		}
		return v, nil

	case expr.Function:
		return evalFunctionCall(n, st, cfg, depth)

	case expr.Parenthesis:
		return evalDepth(n.Child, st, cfg, depth+1)

	case expr.Opposite:
		v, err := evalDepth(n.Child, st, cfg, depth+1)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case expr.Factorial:
		v, err := evalDepth(n.Child, st, cfg, depth+1)
		if err != nil {
			return 0, err
		}
		return factorial(v)

	case expr.Addition:
		l, r, err := evalPair(n.Left, n.Right, st, cfg, depth)
		if err != nil {
			return 0, err
		}
		return l + r, nil

	case expr.Subtraction:
		l, r, err := evalPair(n.Left, n.Right, st, cfg, depth)
		if err != nil {
			return 0, err
		}
		return l - r, nil

	case expr.Multiplication:
		l, r, err := evalPair(n.Left, n.Right, st, cfg, depth)
		if err != nil {
			return 0, err
		}
		return l * r, nil

	case expr.Division:
		l, r, err := evalPair(n.Left, n.Right, st, cfg, depth)
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return l / r, nil

	case expr.Power:
		l, r, err := evalPair(n.Left, n.Right, st, cfg, depth)
		if err != nil {
			return 0, err
		}
		return math.Pow(l, r), nil

	case expr.EqualExpr:
		l, r, err := evalPair(n.Left, n.Right, st, cfg, depth)
		if err != nil {
			return 0, err
		}
		if l == r {
			return 1, nil
		}
		return 0, nil

	case expr.Store:
		return evalStore(n, st, cfg, depth)

	case expr.Matrix:
		return 0, fmt.Errorf("a matrix cannot be evaluated to a scalar")

	case expr.Logarithm:
		return evalLogarithm(n, st, cfg, depth)

	case expr.BuiltinCall:
		return evalBuiltinCall(n, st, cfg, depth)
	}

	return 0, fmt.Errorf("cannot evaluate expression of type %T", e)
}

func evalPair(left, right expr.Expression, st *store.Store, cfg config.Config, depth int) (float64, float64, error) {
	l, err := evalDepth(left, st, cfg, depth+1)
	if err != nil {
		return 0, 0, err
	}
	r, err := evalDepth(right, st, cfg, depth+1)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// factorial is the teacher's factorial, ported verbatim.
func factorial(n float64) (float64, error) {
	if n < 0 || n != math.Floor(n) {
		return 0, fmt.Errorf("factorial only defined for non-negative integers")
	}
	// IEEE 754 double precision can represent up to approximately 170!
	if n > 170 {
		return 0, fmt.Errorf("factorial too large: %g! exceeds maximum representable value (limit: 170!)", n)
	}
	result := 1.0
	for i := 2; i <= int(n); i++ {
		result *= float64(i)
	}
	return result, nil
}

// evalStore evaluates a Store expression. A Symbol target binds the
// evaluated numeric value. A Function-of-Symbol target instead binds
// the UNEVALUATED body (it may reference the parameter, which has no
// value yet) and reports 0 — there is no single scalar to report for
// defining a function, only for calling one.
func evalStore(s expr.Store, st *store.Store, cfg config.Config, depth int) (float64, error) {
	if fn, ok := s.Target.(expr.Function); ok {
		param, ok := fn.Arg.(expr.Symbol)
		if !ok {
			return 0, fmt.Errorf("function target argument must be a symbol")
		}
		st.SetFunction(fn.Name, param.Name, s.Value)
		return 0, nil
	}
	sym, ok := s.Target.(expr.Symbol)
	if !ok {
		return 0, fmt.Errorf("store target must be a symbol or a function of a symbol")
	}
	v, err := evalDepth(s.Value, st, cfg, depth+1)
	if err != nil {
		return 0, err
	}
	st.SetSymbol(sym.Name, v)
	return v, nil
}

// evalFunctionCall looks up a user-defined function and evaluates its
// body with the parameter temporarily bound to the call's argument
// value, restoring whatever the parameter name previously held.
func evalFunctionCall(f expr.Function, st *store.Store, cfg config.Config, depth int) (float64, error) {
	binding, ok := st.Function(f.Name)
	if !ok {
		return 0, fmt.Errorf("undefined function %q", f.Name)
	}
	argVal, err := evalDepth(f.Arg, st, cfg, depth+1)
	if err != nil {
		return 0, err
	}
	prev, hadPrev := st.Symbol(binding.Param)
	st.SetSymbol(binding.Param, argVal)
	result, err := evalDepth(binding.Body, st, cfg, depth+1)
	if hadPrev {
		st.SetSymbol(binding.Param, prev)
	} else {
		delete(st.Symbols, binding.Param)
	}
	return result, err
}

func evalLogarithm(l expr.Logarithm, st *store.Store, cfg config.Config, depth int) (float64, error) {
	arg, base, err := evalPair(l.Argument, l.Base, st, cfg, depth)
	if err != nil {
		return 0, err
	}
	if arg <= 0 {
		return 0, fmt.Errorf("logarithm argument must be positive")
	}
	if base <= 0 || base == 1 {
		return 0, fmt.Errorf("logarithm base must be positive and not equal to 1")
	}
	return math.Log(arg) / math.Log(base), nil
}

// angleIn/angleOut convert a trigonometric argument/result between the
// configured AngleUnit and radians, matching the teacher's always-
// degrees evaluator.Eval but generalized per SPEC_FULL.md §4.7.
func angleIn(v float64, cfg config.Config) float64 {
	if cfg.AngleUnit == config.Degrees {
		return v * math.Pi / 180
	}
	return v
}

func angleOut(v float64, cfg config.Config) float64 {
	if cfg.AngleUnit == config.Degrees {
		return v * 180 / math.Pi
	}
	return v
}

func evalBuiltinCall(b expr.BuiltinCall, st *store.Store, cfg config.Config, depth int) (float64, error) {
	args := make([]float64, len(b.Args))
	for i, a := range b.Args {
		switch b.Name {
		case "sum", "product", "mean", "median", "mode":
			continue // these read their argument as a vector, below
		}
		v, err := evalDepth(a, st, cfg, depth+1)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	switch b.Name {
	case "abs":
		return math.Abs(args[0]), nil
	case "ceil":
		return math.Ceil(args[0]), nil
	case "floor":
		return math.Floor(args[0]), nil
	case "exp":
		return math.Exp(args[0]), nil
	case "sqrt":
		if args[0] < 0 {
			return 0, fmt.Errorf("sqrt of a negative number is undefined")
		}
		return math.Sqrt(args[0]), nil
	case "log":
		if args[0] <= 0 {
			return 0, fmt.Errorf("log argument must be positive")
		}
		return math.Log(args[0]), nil
	case "log10":
		if args[0] <= 0 {
			return 0, fmt.Errorf("log10 argument must be positive")
		}
		return math.Log10(args[0]), nil
	case "sin":
		return math.Sin(angleIn(args[0], cfg)), nil
	case "cos":
		return math.Cos(angleIn(args[0], cfg)), nil
	case "tan":
		return math.Tan(angleIn(args[0], cfg)), nil
	case "asin":
		if args[0] < -1 || args[0] > 1 {
			return 0, fmt.Errorf("asin domain error: argument must be in [-1,1]")
		}
		return angleOut(math.Asin(args[0]), cfg), nil
	case "acos":
		if args[0] < -1 || args[0] > 1 {
			return 0, fmt.Errorf("acos domain error: argument must be in [-1,1]")
		}
		return angleOut(math.Acos(args[0]), cfg), nil
	case "atan":
		return angleOut(math.Atan(args[0]), cfg), nil
	case "pow":
		return math.Pow(args[0], args[1]), nil
	case "root":
		if args[0] == 0 {
			return 0, fmt.Errorf("root index must be nonzero")
		}
		return math.Pow(args[1], 1/args[0]), nil
	case "max":
		return math.Max(args[0], args[1]), nil
	case "min":
		return math.Min(args[0], args[1]), nil
	case "sum", "product", "mean", "median", "mode":
		return evalVectorBuiltin(b, st, cfg, depth)
	case "derivative":
		return evalDerivative(b, st, cfg, depth)
	}
	return 0, fmt.Errorf("unknown function %q", b.Name)
}

// evalVectorBuiltin implements the statistical builtins, each of which
// takes a single bracketed vector argument — e.g. sum([[1,2,3]]) —
// rather than a variadic argument list: the registry's overload table
// is walked by exact arity (spec.md §9), so a function accepting any
// number of arguments needs a single fixed-arity slot whose argument
// is itself a sequence, not N near-duplicate arity overloads.
func evalVectorBuiltin(b expr.BuiltinCall, st *store.Store, cfg config.Config, depth int) (float64, error) {
	m, ok := b.Args[0].(expr.Matrix)
	if !ok {
		return 0, fmt.Errorf("%s expects a single bracketed vector argument", b.Name)
	}
	values := make([]float64, len(m.Children))
	for i, c := range m.Children {
		v, err := evalDepth(c, st, cfg, depth+1)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%s requires at least one value", b.Name)
	}

	switch b.Name {
	case "sum":
		total := 0.0
		for _, v := range values {
			total += v
		}
		return total, nil
	case "product":
		total := 1.0
		for _, v := range values {
			total *= v
		}
		return total, nil
	case "mean":
		total := 0.0
		for _, v := range values {
			total += v
		}
		return total / float64(len(values)), nil
	case "median":
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 0 {
			return (sorted[mid-1] + sorted[mid]) / 2, nil
		}
		return sorted[mid], nil
	case "mode":
		counts := make(map[float64]int)
		best, bestCount := values[0], 0
		for _, v := range values {
			counts[v]++
			if counts[v] > bestCount {
				best, bestCount = v, counts[v]
			}
		}
		return best, nil
	}
	return 0, fmt.Errorf("unknown vector function %q", b.Name)
}

// evalDerivative numerically differentiates Args[0] with respect to
// the symbol in Args[1], at the point Args[2], via central difference
// (no symbolic differentiation is attempted — spec.md §9's "builders
// are pure" rules out folding derivatives into a simplified tree).
func evalDerivative(b expr.BuiltinCall, st *store.Store, cfg config.Config, depth int) (float64, error) {
	sym, ok := b.Args[1].(expr.Symbol)
	if !ok {
		return 0, fmt.Errorf("derivative's second argument must be the variable name")
	}
	point, err := evalDepth(b.Args[2], st, cfg, depth+1)
	if err != nil {
		return 0, err
	}

	const h = 1e-5
	prev, hadPrev := st.Symbol(sym.Name)
	defer func() {
		if hadPrev {
			st.SetSymbol(sym.Name, prev)
		} else {
			delete(st.Symbols, sym.Name)
		}
	}()

	st.SetSymbol(sym.Name, point+h)
	fPlus, err := evalDepth(b.Args[0], st, cfg, depth+1)
	if err != nil {
		return 0, err
	}
	st.SetSymbol(sym.Name, point-h)
	fMinus, err := evalDepth(b.Args[0], st, cfg, depth+1)
	if err != nil {
		return 0, err
	}
	return (fPlus - fMinus) / (2 * h), nil
}
