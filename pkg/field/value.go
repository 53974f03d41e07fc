package field

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the legal shapes a runtime answer can take. The
// validator never inspects raw interface values; callers resolve them into
// this union first.
type ValueKind int

const (
	// KindEmpty marks an absent answer (nil, or never supplied).
	KindEmpty ValueKind = iota
	// KindScalar carries a single textual or boolean answer.
	KindScalar
	// KindCoded carries a coded answer whose display text is validated.
	KindCoded
	// KindCollection carries a multi-select answer; only its size matters.
	KindCollection
)

// Value is the tagged union handed to the validator.
type Value struct {
	kind   ValueKind
	text   string
	isBool bool
	b      bool
	count  int
}

// Empty returns the absent value.
func Empty() Value {
	return Value{kind: KindEmpty}
}

// String wraps a textual answer.
func String(text string) Value {
	return Value{kind: KindScalar, text: text}
}

// Bool wraps a boolean answer.
func Bool(b bool) Value {
	return Value{kind: KindScalar, isBool: true, b: b, text: strconv.FormatBool(b)}
}

// Coded wraps a coded answer carrying display text.
func Coded(text string) Value {
	return Value{kind: KindCoded, text: text}
}

// Collection wraps a multi-select answer of the given size.
func Collection(size int) Value {
	if size < 0 {
		size = 0
	}
	return Value{kind: KindCollection, count: size}
}

// Resolve maps a decoded runtime value (typically the result of JSON or YAML
// unmarshalling) onto the union. This is the single place shape inspection
// happens; everything downstream works with the tagged value.
func Resolve(v any) Value {
	switch tv := v.(type) {
	case nil:
		return Empty()
	case Value:
		return tv
	case string:
		return String(tv)
	case bool:
		return Bool(tv)
	case int:
		return String(strconv.Itoa(tv))
	case int64:
		return String(strconv.FormatInt(tv, 10))
	case float64:
		return String(strconv.FormatFloat(tv, 'f', -1, 64))
	case []any:
		return Collection(len(tv))
	case map[string]any:
		if text, ok := tv["text"].(string); ok {
			return Coded(text)
		}
		return Coded("")
	default:
		return String(fmt.Sprint(tv))
	}
}

// Kind reports the shape of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsEmpty reports whether the value is exempt from type and restriction
// checks: absent, an empty string, a coded answer with empty text, or an
// empty collection. Note "0" and false are real answers, not empty.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindEmpty:
		return true
	case KindScalar:
		return !v.isBool && v.text == ""
	case KindCoded:
		return v.text == ""
	case KindCollection:
		return v.count == 0
	default:
		return true
	}
}

// Text returns the textual form used by pattern and length checks.
func (v Value) Text() string {
	return v.text
}

// BoolValue reports the boolean payload and whether the value is a boolean.
func (v Value) BoolValue() (bool, bool) {
	return v.b, v.kind == KindScalar && v.isBool
}

// Len returns the collection size, or the rune length of the textual form.
func (v Value) Len() int {
	if v.kind == KindCollection {
		return v.count
	}
	return len([]rune(v.text))
}

// String implements fmt.Stringer for log and prompt output.
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return ""
	case KindCollection:
		return fmt.Sprintf("(%d items)", v.count)
	default:
		return v.text
	}
}

// ParseBool interprets textual booleans the way definition answers spell
// them, keeping the strict-identity rule intact for validation: only values
// constructed as booleans satisfy the BL data type.
func ParseBool(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "yes", "y", "1":
		return true, nil
	case "false", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("field: %q is not a boolean", text)
}
