package builtins

import (
	"math"
	"strconv"
	"strings"

	"github.com/kolotsey/goexpr/internal/exprerr"
	"github.com/kolotsey/goexpr/internal/value"
)

func init() {
	register(CategoryConversion, builtinBin2dec, "bin2dec")
	register(CategoryConversion, builtinDec2bin, "dec2bin")
	register(CategoryConversion, builtinDec2hex, "dec2hex")
	register(CategoryConversion, builtinDec2oct, "dec2oct")
	register(CategoryConversion, builtinHex2dec, "hex2dec")
	register(CategoryConversion, builtinOct2dec, "oct2dec")
}

// digitsToDec accumulates digits of the given base into an int64, reporting
// IntOverflow the moment the running total would exceed i64::MAX (spec
// §4.6), rather than silently wrapping the way a fixed-width shift/add loop
// would.
func digitsToDec(name, s string, base int64, pos int) (value.Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return value.Value{}, exprerr.New(exprerr.InvalArg, pos, "%s() requires a non-empty digit string", name)
	}
	var acc int64
	for _, c := range s {
		d, err := strconv.ParseInt(string(c), int(base), 64)
		if err != nil {
			return value.Value{}, exprerr.New(exprerr.InvalArg, pos, "%s() encountered invalid digit %q", name, c)
		}
		if acc > (math.MaxInt64-d)/base {
			return value.Value{}, exprerr.New(exprerr.IntOverflow, pos, "%s(%q) overflows a 64-bit integer", name, s)
		}
		acc = acc*base + d
	}
	return value.Int(acc), nil
}

func builtinBin2dec(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("bin2dec", len(args), 1)
	}
	return digitsToDec("bin2dec", strArg(args, 0), 2, pos)
}

func builtinOct2dec(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("oct2dec", len(args), 1)
	}
	return digitsToDec("oct2dec", strArg(args, 0), 8, pos)
}

func builtinHex2dec(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("hex2dec", len(args), 1)
	}
	return digitsToDec("hex2dec", strArg(args, 0), 16, pos)
}

func builtinDec2bin(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("dec2bin", len(args), 1)
	}
	i, err := args[0].ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(strconv.FormatInt(i, 2)), nil
}

func builtinDec2oct(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("dec2oct", len(args), 1)
	}
	i, err := args[0].ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(strconv.FormatInt(i, 8)), nil
}

func builtinDec2hex(args []value.Value, pos int) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, arityError("dec2hex", len(args), 1)
	}
	i, err := args[0].ToInteger(pos)
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(strconv.FormatInt(i, 16)), nil
}
