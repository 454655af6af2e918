package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/circle"
	"github.com/matzehuels/circlepack/pkg/pack/selector"
)

// selectCommand creates the select command for non-overlap filtering.
func (c *CLI) selectCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		tolerance   float64
		ordering    string
		seed        uint64
		interactive bool
		filter      bool
	)

	cmd := &cobra.Command{
		Use:   "select [circles.json]",
		Short: "Pick a non-overlapping subset of circles",
		Long: `Pick a non-overlapping subset of circles.

Circles keep their positions; the command marks a subset such that no two
marked circles overlap. Each round, circles without remaining overlaps are
kept and one overlapping circle is rejected according to --ordering:

  maxov     reject the circle with the most overlaps (default)
  minov     reject the circle with the fewest overlaps
  largest   reject the largest overlapping circle
  smallest  reject the smallest overlapping circle
  random    reject a random overlapping circle

Remaining ties are broken randomly; pass --seed for reproducible output.
Seeded runs are cached locally.

With --filter, the output contains only the selected circles; otherwise it
carries the full set plus a selection mask.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				chosen, err := pickOrdering(ordering)
				if err != nil {
					return err
				}
				ordering = chosen
			}
			return c.runSelect(cmd.Context(), args[0], output, noCache, tolerance, ordering, cmd.Flags().Changed("seed"), seed, filter)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.selected.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1.0, "overlap tolerance multiplier")
	cmd.Flags().StringVar(&ordering, "ordering", c.Config.Ordering, "rejection ordering: maxov, minov, largest, smallest, random")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible tie-breaking")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the ordering interactively")
	cmd.Flags().BoolVar(&filter, "filter", false, "write only the selected circles")

	return cmd
}

// selectResult is the select command's output file format.
type selectResult struct {
	Circles  []circle.Circle `json:"circles"`
	Selected []bool          `json:"selected,omitempty"`
}

func (c *CLI) runSelect(ctx context.Context, input, output string, noCache bool, tolerance float64, orderingName string, seeded bool, seed uint64, filter bool) error {
	set, err := circle.ReadSetFile(input)
	if err != nil {
		return fmt.Errorf("load circles %s: %w", input, err)
	}

	ordering, err := selector.ParseOrdering(orderingName)
	if err != nil {
		return err
	}

	// Unseeded runs are freshly random each time, so only seeded runs go
	// through the cache.
	var rng *rand.Rand
	if seeded {
		rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	} else {
		noCache = true
	}

	type request struct {
		Set       circle.Set `json:"set"`
		Tolerance float64    `json:"tolerance"`
		Ordering  string     `json:"ordering"`
		Seed      uint64     `json:"seed"`
		Filter    bool       `json:"filter"`
	}
	req := request{Set: set, Tolerance: tolerance, Ordering: ordering.String(), Seed: seed, Filter: filter}

	tracker := newProgress(c.Logger)
	data, cached, err := c.cachedCompute(ctx, noCache, "select", req, func() (any, error) {
		mask, err := selector.Select(set.Circles, tolerance, ordering, rng)
		if err != nil {
			return nil, err
		}
		if filter {
			result := selectResult{}
			for i, keep := range mask {
				if keep {
					result.Circles = append(result.Circles, set.Circles[i])
				}
			}
			return result, nil
		}
		return selectResult{Circles: set.Circles, Selected: mask}, nil
	})
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	tracker.done(fmt.Sprintf("Selected from %d circles", len(set.Circles)))

	out := outputPath(input, output, ".selected.json")
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", out, err)
	}

	printSuccess("Selection complete")
	printFile(out)
	printStats(len(set.Circles), 0, cached)
	printNewline()
	printNextStep("Render", "circlepack render "+out)

	return nil
}
