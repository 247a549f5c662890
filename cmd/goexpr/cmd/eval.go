package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/kolotsey/goexpr/internal/value"
	"github.com/kolotsey/goexpr/pkg/expr"
	"github.com/spf13/cobra"
)

var (
	varsYAMLPath  string
	varsJSONPath  string
	traceJSONPath string
)

var evalCmd = &cobra.Command{
	Use:   "eval <expr>",
	Short: "Evaluate an expression and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&varsYAMLPath, "vars", "", "YAML file supplying parameter values")
	evalCmd.Flags().StringVar(&varsJSONPath, "vars-json", "", "JSON file supplying parameter values (dotted-path lookup, e.g. user.age)")
	evalCmd.Flags().StringVar(&traceJSONPath, "trace-json", "", "append the solved (expr, value) pair to this JSON file")
}

func runEval(_ *cobra.Command, args []string) error {
	source := args[0]

	cfg := loadedConfig()
	if cfg.Rand.Seed != 0 {
		rand.Seed(cfg.Rand.Seed)
	}

	e, err := expr.Compile(source)
	if err != nil {
		printEvalError(source, err)
		return errSilent
	}

	varsCtx, err := newVarsContext(varsYAMLPath, varsJSONPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return errSilent
	}
	if varsCtx != nil {
		e.SetParameterHandler(varsCtx.resolve)
	}

	got, err := e.Solve(context.Background())
	if err != nil {
		printEvalError(source, err)
		return errSilent
	}

	rendered := expr.ValueToString(got)
	fmt.Println(rendered)

	if traceJSONPath != "" {
		if err := appendTrace(traceJSONPath, source, rendered); err != nil {
			fmt.Fprintf(os.Stderr, "writing trace: %v\n", err)
			return errSilent
		}
	}

	return nil
}

// varsContext resolves parameter names against a YAML document (plain
// top-level key lookup) or a JSON document (gjson's dotted-path Get, so
// the grammar's dotted identifiers like user.age resolve directly —
// SPEC_FULL.md §6.3).
type varsContext struct {
	yamlVars map[string]any
	jsonDoc  string
}

func newVarsContext(yamlPath, jsonPath string) (*varsContext, error) {
	if yamlPath == "" && jsonPath == "" {
		return nil, nil
	}
	vc := &varsContext{}

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return nil, fmt.Errorf("reading --vars file: %w", err)
		}
		vars := map[string]any{}
		if err := yaml.Unmarshal(data, &vars); err != nil {
			return nil, fmt.Errorf("parsing --vars YAML: %w", err)
		}
		vc.yamlVars = vars
	}

	if jsonPath != "" {
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, fmt.Errorf("reading --vars-json file: %w", err)
		}
		vc.jsonDoc = string(data)
	}

	return vc, nil
}

func (vc *varsContext) resolve(_ any, name string) (value.Value, bool) {
	if vc.jsonDoc != "" {
		res := gjson.Get(vc.jsonDoc, name)
		if res.Exists() {
			return gjsonToValue(res), true
		}
	}
	if v, ok := vc.yamlVars[name]; ok {
		return goToValue(v)
	}
	return value.Value{}, false
}

func gjsonToValue(res gjson.Result) value.Value {
	switch res.Type {
	case gjson.True, gjson.False:
		return value.Bool(res.Bool())
	case gjson.Number:
		if res.Num == float64(int64(res.Num)) {
			return value.Int(int64(res.Num))
		}
		return value.Flt(res.Num)
	default:
		return value.Str(res.String())
	}
}

func goToValue(v any) (value.Value, bool) {
	switch x := v.(type) {
	case bool:
		return value.Bool(x), true
	case int:
		return value.Int(int64(x)), true
	case int64:
		return value.Int(x), true
	case float64:
		if x == float64(int64(x)) {
			return value.Int(int64(x)), true
		}
		return value.Flt(x), true
	case string:
		return value.Str(x), true
	default:
		return value.Value{}, false
	}
}

// appendTrace appends {"expr":..., "value":...} to a JSON array stored at
// path, creating it if absent, using sjson's set-in-place style (teacher's
// indirect tidwall/sjson dependency, exercised directly here).
func appendTrace(path, source, rendered string) error {
	existing := "[]"
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	}

	idx := gjson.Get(existing, "#").Int()
	updated, err := sjson.Set(existing, fmt.Sprintf("%d.expr", idx), source)
	if err != nil {
		return err
	}
	updated, err = sjson.Set(updated, fmt.Sprintf("%d.value", idx), rendered)
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(updated), 0644)
}
