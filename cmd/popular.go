package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/ghscout/config"
	"github.com/s0up4200/ghscout/filter"
	"github.com/s0up4200/ghscout/state"
)

// filterCompiler is shared by every popular run so repeated expressions reuse
// their compiled program
var filterCompiler = filter.NewCompiler(filter.WithCache(32))

var (
	popularPages  int
	popularFilter string
	popularWatch  bool
)

// popularCmd represents the popular command
var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most starred repositories on GitHub",
	Long: `Page through GitHub's most starred repositories, 30 per page.

Results can be narrowed with an expression over repository fields:
  Name, FullName, Owner, Description, Language, Visibility,
  Stars, Forks, Watchers, OpenIssues

Helpers hasSubstr, hasPrefix and hasSuffix match ignoring case, and lower/upper
convert strings. The contains, startsWith and endsWith operators are case sensitive.

Examples:
  ghscout popular --pages 3 --filter 'Language == "Go"'
  ghscout popular --filter 'Stars > 100000 and hasSubstr(Description, "framework")'
  ghscout popular --filter 'FullName startsWith "facebook/"'`,
	Args: cobra.NoArgs,
	RunE: runPopular,
}

func init() {
	rootCmd.AddCommand(popularCmd)

	popularCmd.Flags().IntVarP(&popularPages, "pages", "n", 0, "number of pages to load (default from config)")
	popularCmd.Flags().StringVarP(&popularFilter, "filter", "f", "", "filter expression (default from config)")
	popularCmd.Flags().BoolVarP(&popularWatch, "watch", "w", false, "log every state transition at debug level")
}

func runPopular(cmd *cobra.Command, args []string) error {
	pages := cfg.Popular.Pages
	if cmd.Flags().Changed("pages") {
		pages = popularPages
	}
	if pages < 1 || pages > config.MaxPopularPages {
		return fmt.Errorf("invalid page count %d: must be between 1 and %d", pages, config.MaxPopularPages)
	}

	expression := cfg.Popular.Filter
	if cmd.Flags().Changed("filter") {
		expression = popularFilter
	}

	var repoFilter filter.CompiledFilter
	if expression != "" {
		var err error
		repoFilter, err = filterCompiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	ctx := cmd.Context()
	popular := state.NewPopularRepositories(client, logger)

	if popularWatch {
		unsubscribe := popular.Subscribe(func(s state.PopularSnapshot) {
			logger.Debug().
				Str("status", s.Status.String()).
				Int("page", s.CurrentPage).
				Int("items", len(s.Items)).
				Int("total", s.TotalCount).
				Bool("has_more", s.HasMorePages).
				Str("error", s.ErrorMessage).
				Msg("Popular repositories changed")
		})
		defer unsubscribe()
	}

	logger.Info().Int("pages", pages).Str("filter", expression).Msg("Loading popular repositories")

	popular.Refresh(ctx)
	snap := popular.Snapshot()
	for !snap.HasError() && snap.HasMorePages && snap.CurrentPage < pages {
		if !popular.LoadNextPage(ctx) {
			break
		}
		snap = popular.Snapshot()
	}

	out := cmd.OutOrStdout()
	if snap.HasError() {
		printError(out, "Popular repositories", snap.ErrorMessage)
		if len(snap.Items) == 0 {
			return nil
		}
	}

	repos := snap.Items
	if repoFilter != nil {
		var err error
		repos, err = filter.Apply(ctx, repoFilter, snap.Items)
		if err != nil {
			return err
		}
	}

	fmt.Fprint(out, formatter.FormatRepositories("Popular repositories", repos))
	fmt.Fprint(out, formatter.FormatPageSummary(snap.CurrentPage, len(repos), len(snap.Items), snap.TotalCount, snap.HasMorePages))
	if snap.IncompleteResults {
		fmt.Fprintln(out, "Note: GitHub reported incomplete search results")
	}

	return nil
}
