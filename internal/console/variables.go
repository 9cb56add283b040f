package console

import (
	"fmt"

	"cmdterm/internal/logger"
	"cmdterm/pkg/consoletypes"
)

// SetVariable converts raw to the variable's declared kind and calls its setter.
func (s *Shell) SetVariable(name string, raw string) error {
	return s.SetVariableArg(name, NewArg(raw, s))
}

// SetVariableArg converts arg to the variable's declared kind and calls its setter.
// The setter is not called when the conversion or the variable's Validate hook fails;
// that error is returned.
func (s *Shell) SetVariableArg(name string, arg Arg) error {
	spec, ok := s.registry.Variable(name)
	if !ok {
		return &VariableLookupError{Name: NormalizeName(name)}
	}

	value, err := convert(spec, arg)
	if err != nil {
		return err
	}
	if spec.Validate != nil {
		if err := spec.Validate(value); err != nil {
			return err
		}
	}

	logger.VariableOperation("set", spec.Name, value)
	spec.Set(value)
	return nil
}

// GetVariable returns the current value of a variable.
func (s *Shell) GetVariable(name string) (interface{}, error) {
	spec, ok := s.registry.Variable(name)
	if !ok {
		return nil, &VariableLookupError{Name: NormalizeName(name)}
	}
	return spec.Get(), nil
}

func convert(spec VariableSpec, arg Arg) (interface{}, error) {
	switch spec.Kind {
	case consoletypes.KindString:
		return arg.String(), nil
	case consoletypes.KindInt:
		return arg.ParseInt()
	case consoletypes.KindFloat:
		return arg.ParseFloat()
	case consoletypes.KindBool:
		return arg.ParseBool()
	case consoletypes.KindEnum:
		return arg.ParseEnum(spec.Name, spec.Symbols)
	default:
		return nil, fmt.Errorf("variable %s has unsupported kind %s", spec.Name, spec.Kind)
	}
}
