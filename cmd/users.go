package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/ghscout/github"
	"github.com/s0up4200/ghscout/state"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user <login>",
	Short: "Show a GitHub user's profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runUser,
}

// reposCmd represents the repos command
var reposCmd = &cobra.Command{
	Use:   "repos <login>",
	Short: "List a GitHub user's public repositories",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepos,
}

// followersCmd represents the followers command
var followersCmd = &cobra.Command{
	Use:   "followers <login>",
	Short: "List a GitHub user's followers",
	Args:  cobra.ExactArgs(1),
	RunE:  runFollowers,
}

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile <login>",
	Short: "Show a user's profile, repositories and followers together",
	Long: `Fetch a user's profile, repositories and followers concurrently and print
each section. A section that fails to load shows its error without affecting the others.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func init() {
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(followersCmd)
	rootCmd.AddCommand(profileCmd)
}

func runUser(cmd *cobra.Command, args []string) error {
	profile := state.NewUserProfile(client, logger)
	profile.Fetch(cmd.Context(), args[0])
	printUser(cmd.OutOrStdout(), profile.Snapshot())
	return nil
}

func runRepos(cmd *cobra.Command, args []string) error {
	repos := state.NewRepositoryList(client, logger)
	repos.Fetch(cmd.Context(), args[0])
	printRepos(cmd.OutOrStdout(), repos.Snapshot())
	return nil
}

func runFollowers(cmd *cobra.Command, args []string) error {
	followers := state.NewFollowerList(client, logger)
	followers.Fetch(cmd.Context(), args[0])
	printFollowers(cmd.OutOrStdout(), followers.Snapshot())
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	username := args[0]

	profile := state.NewUserProfile(client, logger)
	repos := state.NewRepositoryList(client, logger)
	followers := state.NewFollowerList(client, logger)

	// Failures are recorded by each container, so no goroutine returns an error
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		profile.Fetch(ctx, username)
		return nil
	})
	g.Go(func() error {
		repos.Fetch(ctx, username)
		return nil
	})
	g.Go(func() error {
		followers.Fetch(ctx, username)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printUser(out, profile.Snapshot())
	printRepos(out, repos.Snapshot())
	printFollowers(out, followers.Snapshot())
	return nil
}

func printError(w io.Writer, section, message string) {
	fmt.Fprintf(w, "✗ %s: %s\n", section, message)
}

func printUser(w io.Writer, snap state.Snapshot[*github.User]) {
	if snap.HasError() {
		printError(w, "Profile", snap.ErrorMessage)
		return
	}
	fmt.Fprint(w, formatter.FormatUser(snap.Data))
}

func printRepos(w io.Writer, snap state.Snapshot[[]github.Repository]) {
	if snap.HasError() {
		printError(w, "Repositories", snap.ErrorMessage)
		return
	}
	fmt.Fprint(w, formatter.FormatRepositories("Repositories", snap.Data))
}

func printFollowers(w io.Writer, snap state.Snapshot[[]github.User]) {
	if snap.HasError() {
		printError(w, "Followers", snap.ErrorMessage)
		return
	}
	fmt.Fprint(w, formatter.FormatUsers("Followers", snap.Data))
}
