package builtins

import (
	"strings"

	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/value"
)

func init() {
	register(CategoryString, builtinLtrim, "ltrim")
	register(CategoryString, builtinRtrim, "rtrim")
	register(CategoryString, builtinTrim, "trim")
	register(CategoryString, builtinStrcasecmp, "strcasecmp")
	register(CategoryString, builtinStrcmp, "strcmp")
	register(CategoryString, builtinStrlen, "strlen")
	register(CategoryString, builtinStrtolower, "strtolower", "strlwr", "tolower", "lowercase")
	register(CategoryString, builtinStrtoupper, "strtoupper", "strupr", "toupper", "uppercase")
	register(CategoryString, builtinCapitalise, "capitalise")
	register(CategoryString, builtinSubstr, "substr", "substring")
}

func strArg(args []value.Value, i int) string {
	return args[i].ToStringValue()
}

func builtinLtrim(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("ltrim", len(args), 1)
	}
	return value.Str(strings.TrimLeft(strArg(args, 0), " \t\r\n")), nil
}

func builtinRtrim(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("rtrim", len(args), 1)
	}
	return value.Str(strings.TrimRight(strArg(args, 0), " \t\r\n")), nil
}

func builtinTrim(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("trim", len(args), 1)
	}
	return value.Str(strings.TrimSpace(strArg(args, 0))), nil
}

// builtinStrcmp and builtinStrcasecmp deliberately use BOTH arguments: spec
// §9 flags the original source's strcmp/strcasecmp as passing the same
// operand twice (a typo) and requires a correct implementation here.
func builtinStrcmp(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, arityError("strcmp", len(args), 2)
	}
	return value.Int(int64(strings.Compare(strArg(args, 0), strArg(args, 1)))), nil
}

func builtinStrcasecmp(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 2 {
		return value.Value{}, arityError("strcasecmp", len(args), 2)
	}
	a := strings.ToLower(strArg(args, 0))
	b := strings.ToLower(strArg(args, 1))
	return value.Int(int64(strings.Compare(a, b))), nil
}

func builtinStrlen(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("strlen", len(args), 1)
	}
	return value.Int(int64(len(strArg(args, 0)))), nil
}

func builtinStrtolower(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("strtolower", len(args), 1)
	}
	return value.Str(strings.ToLower(strArg(args, 0))), nil
}

func builtinStrtoupper(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("strtoupper", len(args), 1)
	}
	return value.Str(strings.ToUpper(strArg(args, 0))), nil
}

func builtinCapitalise(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("capitalise", len(args), 1)
	}
	s := strArg(args, 0)
	if s == "" {
		return value.Str(s), nil
	}
	return value.Str(strings.ToUpper(s[:1]) + strings.ToLower(s[1:])), nil
}

// builtinSubstr implements spec §4.6's substr(s, start[, length]): negative
// start counts from the end, start out of [-len, len] is InvalidArg, an
// omitted length runs to the end of the string, a negative length is
// InvalidArg, and an over-long length is clamped.
func builtinSubstr(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return value.Value{}, arityRangeError("substr", len(args), 2, 3)
	}
	s := strArg(args, 0)
	slen := len(s)

	start, err := args[1].ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	if start < -int64(slen) || start > int64(slen) {
		return value.Value{}, exprerr.New(exprerr.InvalArg, pos, "substr start %d is out of range [-%d, %d]", start, slen, slen)
	}
	idx := int(start)
	if idx < 0 {
		idx += slen
	}

	if len(args) == 2 {
		return value.Str(s[idx:]), nil
	}

	length, err := args[2].ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	if length < 0 {
		return value.Value{}, exprerr.New(exprerr.InvalArg, pos, "substr length %d must not be negative", length)
	}
	end := idx + int(length)
	if end > slen {
		end = slen
	}
	return value.Str(s[idx:end]), nil
}
