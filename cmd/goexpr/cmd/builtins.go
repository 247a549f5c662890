package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/cases"

	"github.com/kolotsey/goexpr/internal/builtins"
	"github.com/spf13/cobra"
)

var builtinsFilter string

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "List the built-in function registry",
	Args:  cobra.NoArgs,
	RunE:  runBuiltins,
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
	builtinsCmd.Flags().StringVar(&builtinsFilter, "filter", "", "only list built-ins whose name contains this substring (case-insensitive)")
}

func runBuiltins(_ *cobra.Command, _ []string) error {
	fold := cases.Fold()
	needle := fold.String(builtinsFilter)

	all := builtins.All()
	names := make([]string, 0, len(all))
	byName := make(map[string]builtins.Info, len(all))
	for _, info := range all {
		if needle != "" && !strings.Contains(fold.String(info.Name), needle) {
			continue
		}
		names = append(names, info.Name)
		byName[info.Name] = info
	}

	// natural.Less orders embedded numbers numerically rather than
	// lexicographically (e.g. "log10" after "log2"), unlike
	// builtins.All()'s plain byte-wise sort.
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })

	for _, name := range names {
		info := byName[name]
		fmt.Printf("%-16s %s\n", info.Name, info.Category)
	}
	return nil
}
