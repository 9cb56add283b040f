package consoletypes

import "fmt"

// ValueKind is the declared type of a registered console variable.
// Only these five kinds can be registered.
type ValueKind int

const (
	// KindInvalid is the zero value and is always rejected at registration.
	KindInvalid ValueKind = iota
	// KindString holds the raw argument text.
	KindString
	// KindInt holds an int.
	KindInt
	// KindFloat holds a float64.
	KindFloat
	// KindBool holds a bool.
	KindBool
	// KindEnum holds one symbol out of a fixed, case-insensitive symbol set.
	KindEnum
)

// String returns the name used in type error messages ("Incorrect type for x, expected <int>").
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Valid reports whether the kind may be used for a variable.
func (k ValueKind) Valid() bool {
	return k >= KindString && k <= KindEnum
}
