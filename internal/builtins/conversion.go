package builtins

import "github.com/kolotsey/goexpr/internal/value"

func init() {
	register(CategoryConversion, builtinBoolean, "boolean", "bool")
	register(CategoryConversion, builtinFloat, "float", "double")
	register(CategoryConversion, builtinInteger, "integer", "int")
	register(CategoryConversion, builtinString, "string", "str")
}

func builtinBoolean(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("boolean", len(args), 1)
	}
	b, err := args[0].ToBoolean(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool(b), nil
}

func builtinFloat(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("float", len(args), 1)
	}
	r, err := args[0].ToReal(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Flt(r), nil
}

func builtinInteger(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("integer", len(args), 1)
	}
	i, err := args[0].ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Int(i), nil
}

func builtinString(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("string", len(args), 1)
	}
	return value.Str(args[0].ToStringValue()), nil
}
