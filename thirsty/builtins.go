package thirsty

import (
	"math"
	"strings"
	"time"
)

// registerStdlib installs the built-in namespaces every engine carries:
// math, strings and clock. Host applications layer their own on top with
// RegisterNamespace.
func registerStdlib(engine *Engine) {
	engine.RegisterNamespace("math", map[string]Value{
		"pi":    NewNumber(math.Pi),
		"abs":   numberBuiltin("math.abs", math.Abs),
		"floor": numberBuiltin("math.floor", math.Floor),
		"ceil":  numberBuiltin("math.ceil", math.Ceil),
		"round": numberBuiltin("math.round", math.Round),
		"sqrt": NewBuiltin("math.sqrt", func(exec *Execution, args []Value) (Value, error) {
			n, err := oneNumberArg(exec, "math.sqrt", args)
			if err != nil {
				return NewNil(), err
			}
			if n < 0 {
				return NewNil(), exec.errorAt(ErrThrown, Position{}, "math.sqrt: negative argument %s", formatNumber(n))
			}
			return NewNumber(math.Sqrt(n)), nil
		}),
		"max": NewBuiltin("math.max", func(exec *Execution, args []Value) (Value, error) {
			return numberFold(exec, "math.max", args, math.Max)
		}),
		"min": NewBuiltin("math.min", func(exec *Execution, args []Value) (Value, error) {
			return numberFold(exec, "math.min", args, math.Min)
		}),
	})

	engine.RegisterNamespace("strings", map[string]Value{
		"upper": stringBuiltin("strings.upper", strings.ToUpper),
		"lower": stringBuiltin("strings.lower", strings.ToLower),
		"trim":  stringBuiltin("strings.trim", strings.TrimSpace),
		"split": NewBuiltin("strings.split", func(exec *Execution, args []Value) (Value, error) {
			if len(args) != 2 {
				return NewNil(), exec.errorAt(ErrArity, Position{}, "strings.split expects 2 arguments, got %d", len(args))
			}
			parts := strings.Split(args[0].String(), args[1].String())
			elems := make([]Value, len(parts))
			for i, part := range parts {
				elems[i] = NewString(part)
			}
			return NewArray(elems), nil
		}),
		"contains": NewBuiltin("strings.contains", func(exec *Execution, args []Value) (Value, error) {
			if len(args) != 2 {
				return NewNil(), exec.errorAt(ErrArity, Position{}, "strings.contains expects 2 arguments, got %d", len(args))
			}
			return NewBool(strings.Contains(args[0].String(), args[1].String())), nil
		}),
	})

	engine.RegisterNamespace("clock", map[string]Value{
		"now": NewBuiltin("clock.now", func(_ *Execution, _ []Value) (Value, error) {
			return NewString(time.Now().Format(time.RFC3339)), nil
		}),
		// sleep returns a pending task: the delay happens when the script
		// awaits it, keeping the statement loop cooperative.
		"sleep": NewBuiltin("clock.sleep", func(exec *Execution, args []Value) (Value, error) {
			n, err := oneNumberArg(exec, "clock.sleep", args)
			if err != nil {
				return NewNil(), err
			}
			if n < 0 {
				return NewNil(), exec.errorAt(ErrThrown, Position{}, "clock.sleep: negative duration %s", formatNumber(n))
			}
			delay := time.Duration(n * float64(time.Millisecond))
			return NewPending("clock.sleep", func() (Value, error) {
				timer := time.NewTimer(delay)
				defer timer.Stop()
				if exec.ctx != nil {
					select {
					case <-timer.C:
					case <-exec.ctx.Done():
						return NewNil(), exec.ctx.Err()
					}
				} else {
					<-timer.C
				}
				return NewNil(), nil
			}), nil
		}),
	})
}

func numberBuiltin(name string, fn func(float64) float64) Value {
	return NewBuiltin(name, func(exec *Execution, args []Value) (Value, error) {
		n, err := oneNumberArg(exec, name, args)
		if err != nil {
			return NewNil(), err
		}
		return NewNumber(fn(n)), nil
	})
}

func stringBuiltin(name string, fn func(string) string) Value {
	return NewBuiltin(name, func(exec *Execution, args []Value) (Value, error) {
		if len(args) != 1 {
			return NewNil(), exec.errorAt(ErrArity, Position{}, "%s expects 1 argument, got %d", name, len(args))
		}
		return NewString(fn(args[0].String())), nil
	})
}

func oneNumberArg(exec *Execution, name string, args []Value) (float64, error) {
	if len(args) != 1 {
		return 0, exec.errorAt(ErrArity, Position{}, "%s expects 1 argument, got %d", name, len(args))
	}
	if args[0].Kind() != KindNumber {
		return 0, exec.errorAt(ErrSyntaxShape, Position{}, "%s expects a number, got %s", name, args[0].Kind())
	}
	return args[0].Number(), nil
}

func numberFold(exec *Execution, name string, args []Value, fn func(float64, float64) float64) (Value, error) {
	if len(args) < 2 {
		return NewNil(), exec.errorAt(ErrArity, Position{}, "%s expects at least 2 arguments, got %d", name, len(args))
	}
	for _, arg := range args {
		if arg.Kind() != KindNumber {
			return NewNil(), exec.errorAt(ErrSyntaxShape, Position{}, "%s expects numbers, got %s", name, arg.Kind())
		}
	}
	acc := args[0].Number()
	for _, arg := range args[1:] {
		acc = fn(acc, arg.Number())
	}
	return NewNumber(acc), nil
}
