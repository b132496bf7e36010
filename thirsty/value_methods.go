package thirsty

import (
	"strconv"
	"strings"
	"time"
)

// String renders the value the way pour prints it and the way implicit
// stringification during + concatenation sees it.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Number())
	case KindString:
		return v.data.(string)
	case KindArray:
		elems := v.Array().Elems
		parts := make([]string, len(elems))
		for i, el := range elems {
			parts[i] = el.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindFunction:
		return "<function " + v.Function().Name + ">"
	case KindBuiltin:
		return "<builtin " + v.Builtin().Name + ">"
	case KindNamespace:
		return "<namespace " + v.Namespace().Name + ">"
	case KindClass:
		return "<class " + v.Class().Name + ">"
	case KindInstance:
		return "<" + v.Instance().Class.Name + " instance>"
	case KindException:
		rec := v.Exception()
		return rec.Type + ": " + rec.Message
	case KindTask:
		return "<pending " + v.Task().name + ">"
	default:
		return "<unknown>"
	}
}

// Truthy reports how a value coerces in a condition that is not a
// comparison.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	case KindNumber:
		return v.Number() != 0
	case KindString:
		return v.data.(string) != ""
	case KindArray:
		return len(v.Array().Elems) > 0
	default:
		return true
	}
}

// Equal implements == and !=. Values of different kinds are never equal;
// arrays and instances compare by identity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindNumber:
		return v.Number() == other.Number()
	case KindString:
		return v.data.(string) == other.data.(string)
	default:
		return v.data == other.data
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (rec *ExceptionRecord) property(name string) (Value, bool) {
	switch name {
	case "message":
		return NewString(rec.Message), true
	case "type":
		return NewString(rec.Type), true
	case "timestamp":
		return NewString(rec.Timestamp.Format(time.RFC3339)), true
	case "context":
		if rec.Context == nil {
			return NewNamespace(&Namespace{Name: "context", Members: map[string]Value{}}), true
		}
		return NewNamespace(&Namespace{Name: "context", Members: rec.Context}), true
	default:
		return NewNil(), false
	}
}
