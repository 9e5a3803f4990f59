package main

import (
	"fmt"
	"sort"

	"github.com/octalide/mach/internal/target"
	"github.com/spf13/cobra"
)

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List known compilation targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			var names []string
			for _, p := range target.KnownPlatforms() {
				for _, a := range target.KnownArchitectures() {
					t := target.Target{Platform: p, Architecture: a}
					if t.Valid() {
						names = append(names, t.String())
					}
				}
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Println(n)
			}
			fmt.Println(dim("current: " + target.Current().String()))
			return nil
		},
	}
}
