package console

import (
	"strconv"
	"strings"
)

// ErrorSink receives conversion failures raised by Arg. The Shell implements it.
type ErrorSink interface {
	Report(kind error, format string, args ...interface{})
}

// Arg is one typed command argument. It wraps the raw token and converts lazily.
// Failed conversions are reported through the owning sink and yield a zero value,
// except Enum, which also returns an error the handler must propagate.
type Arg struct {
	raw  string
	sink ErrorSink
}

// NewArg binds a raw token to an error sink. A nil sink discards conversion errors.
func NewArg(raw string, sink ErrorSink) Arg {
	return Arg{raw: raw, sink: sink}
}

var (
	trueStrings  = []string{"true", "yes", "y", "on"}
	falseStrings = []string{"false", "no", "n", "off"}
)

// String returns the raw token.
func (a Arg) String() string {
	return a.raw
}

// Int returns the argument as an int, or 0 after reporting a type error.
func (a Arg) Int() int {
	v, err := a.ParseInt()
	if err != nil {
		a.report(err)
	}
	return v
}

// Float returns the argument as a float64, or 0 after reporting a type error.
func (a Arg) Float() float64 {
	v, err := a.ParseFloat()
	if err != nil {
		a.report(err)
	}
	return v
}

// Bool returns the argument as a bool, or false after reporting a type error.
// Numbers are truthy when nonzero; true/yes/y/on and false/no/n/off are accepted in any case.
func (a Arg) Bool() bool {
	v, err := a.ParseBool()
	if err != nil {
		a.report(err)
	}
	return v
}

// Enum matches the argument case-insensitively against symbols and returns the canonical symbol.
// On a miss it reports a type error and returns an *EnumLookupError; there is no default symbol.
func (a Arg) Enum(typeName string, symbols []string) (string, error) {
	v, err := a.ParseEnum(typeName, symbols)
	if err != nil {
		a.report(&TypeError{Value: a.raw, Expected: typeName})
	}
	return v, err
}

// ParseInt converts without reporting.
func (a Arg) ParseInt() (int, error) {
	v, err := strconv.Atoi(a.raw)
	if err != nil {
		return 0, &TypeError{Value: a.raw, Expected: "int"}
	}
	return v, nil
}

// ParseFloat converts without reporting.
func (a Arg) ParseFloat() (float64, error) {
	v, err := strconv.ParseFloat(a.raw, 64)
	if err != nil {
		return 0, &TypeError{Value: a.raw, Expected: "float"}
	}
	return v, nil
}

// ParseBool converts without reporting.
func (a Arg) ParseBool() (bool, error) {
	if f, err := strconv.ParseFloat(a.raw, 64); err == nil {
		return f != 0, nil
	}

	lower := strings.ToLower(a.raw)
	for _, s := range trueStrings {
		if lower == s {
			return true, nil
		}
	}
	for _, s := range falseStrings {
		if lower == s {
			return false, nil
		}
	}

	return false, &TypeError{Value: a.raw, Expected: "bool"}
}

// ParseEnum converts without reporting.
func (a Arg) ParseEnum(typeName string, symbols []string) (string, error) {
	for _, symbol := range symbols {
		if strings.EqualFold(a.raw, symbol) {
			return symbol, nil
		}
	}
	return "", &EnumLookupError{Value: a.raw, Type: typeName}
}

func (a Arg) report(err error) {
	if a.sink == nil {
		return
	}
	a.sink.Report(ErrTypeConversion, "%s", err.Error())
}

// Strings returns the raw tokens of args.
func Strings(args []Arg) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = arg.raw
	}
	return out
}
