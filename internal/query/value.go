package query

import "time"

// Record là một dòng dữ liệu thô đã decode từ JSON payload của backend.
// Nested objects giữ nguyên dạng map để dotted path truy cập được.
type Record = map[string]any

type Kind int

const (
	KindNotFound Kind = iota // path không resolve được (thiếu key hoặc object cha null)
	KindNull                 // field có mặt nhưng giá trị null
	KindString
	KindNumber
	KindTime
	KindBool
	KindUnsupported // array, object lồng, hoặc kiểu khác không so sánh được
)

// Value is the closed set of shapes a resolved field can take. The comparator
// switches over Kind instead of re-discovering dynamic types at every call.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Time time.Time
	Bool bool
}

// NotFound is the resolver's "no value here" result. It is distinct from a
// present null, but the ordering policy treats both the same way.
var NotFound = Value{Kind: KindNotFound}

// Null represents a field that exists with an explicit null value.
var Null = Value{Kind: KindNull}

func valueOf(v any) Value {
	switch tv := v.(type) {
	case nil:
		return Null
	case string:
		return Value{Kind: KindString, Str: tv}
	case float64:
		return Value{Kind: KindNumber, Num: tv}
	case int:
		return Value{Kind: KindNumber, Num: float64(tv)}
	case int64:
		return Value{Kind: KindNumber, Num: float64(tv)}
	case bool:
		return Value{Kind: KindBool, Bool: tv}
	case time.Time:
		return Value{Kind: KindTime, Time: tv}
	default:
		return Value{Kind: KindUnsupported}
	}
}

func (v Value) isNull() bool {
	return v.Kind == KindNotFound || v.Kind == KindNull
}

// asNumber coerces the value the way the dashboard always has: numbers stay,
// numeric strings parse, bools map to 0/1 and instants become epoch millis.
// The second result is false when no sensible number exists.
func (v Value) asNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case KindString:
		f, err := parseFloat(v.Str)
		if err != nil {
			return 0, false
		}
		return f, true
	case KindTime:
		return float64(v.Time.UnixMilli()), true
	default:
		return 0, false
	}
}

// searchText returns the textual form used by the free-text search. Only
// strings and numbers participate; everything else never matches.
func (v Value) searchText() (string, bool) {
	switch v.Kind {
	case KindString:
		return v.Str, true
	case KindNumber:
		return formatFloat(v.Num), true
	default:
		return "", false
	}
}
