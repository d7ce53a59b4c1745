package cmd

import (
	"fmt"
	"strings"

	"github.com/s0up4200/ghscout/github"
)

// consoleFormatter renders GitHub records as tree-style console output
type consoleFormatter struct{}

var formatter consoleFormatter

func branch(isLast bool) (prefix, indent string) {
	if isLast {
		return "╰", "    "
	}
	return "├", "│   "
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// FormatUser formats a user profile
func (f consoleFormatter) FormatUser(user *github.User) string {
	if user == nil {
		return "No user loaded\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s", user.Login)
	if user.Name != nil && *user.Name != "" && *user.Name != user.Login {
		fmt.Fprintf(&sb, " (%s)", *user.Name)
	}
	sb.WriteString("\n")

	if user.Bio != nil && *user.Bio != "" {
		fmt.Fprintf(&sb, "  %s\n", strings.TrimSpace(*user.Bio))
	}

	var counts []string
	if user.PublicRepos != nil {
		counts = append(counts, fmt.Sprintf("Repos: %d", *user.PublicRepos))
	}
	if user.Followers != nil {
		counts = append(counts, fmt.Sprintf("Followers: %d", *user.Followers))
	}
	if user.Following != nil {
		counts = append(counts, fmt.Sprintf("Following: %d", *user.Following))
	}
	if len(counts) > 0 {
		fmt.Fprintf(&sb, "  %s\n", strings.Join(counts, " | "))
	}
	fmt.Fprintf(&sb, "  Avatar: %s\n", user.AvatarURL)

	return sb.String()
}

// FormatRepositories formats a list of repositories under a heading
func (f consoleFormatter) FormatRepositories(title string, repos []github.Repository) string {
	if len(repos) == 0 {
		return fmt.Sprintf("No %s found\n", strings.ToLower(title))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", title, len(repos))

	for i, repo := range repos {
		isLast := i == len(repos)-1
		prefix, indent := branch(isLast)

		name := repo.Name
		if repo.FullName != nil && *repo.FullName != "" {
			name = *repo.FullName
		}
		fmt.Fprintf(&sb, "%s── %s\n", prefix, name)

		if repo.Description != nil && *repo.Description != "" {
			fmt.Fprintf(&sb, "%s%s\n", indent, strings.TrimSpace(*repo.Description))
		}

		parts := []string{fmt.Sprintf("★ %d", repo.Stars()), fmt.Sprintf("Forks: %d", repo.Forks())}
		if repo.Language != nil && *repo.Language != "" {
			parts = append(parts, *repo.Language)
		}
		if repo.Visibility != "" && repo.Visibility != "public" {
			parts = append(parts, repo.Visibility)
		}
		fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(parts, " | "))

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	return sb.String()
}

// FormatUsers formats a list of users, such as followers
func (f consoleFormatter) FormatUsers(title string, users []github.User) string {
	if len(users) == 0 {
		return fmt.Sprintf("No %s found\n", strings.ToLower(title))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", title, len(users))

	for i, user := range users {
		prefix, _ := branch(i == len(users)-1)
		fmt.Fprintf(&sb, "%s── %s\n", prefix, user.DisplayName())
	}

	return sb.String()
}

// FormatPageSummary describes how much of the search has been loaded
func (f consoleFormatter) FormatPageSummary(pages, shown, loaded, total int, more bool) string {
	summary := fmt.Sprintf("\nShowing %d of %d loaded %s (%d %s, %d total matches)",
		shown, loaded, plural(loaded, "repository", "repositories"), pages, plural(pages, "page", "pages"), total)
	if more {
		summary += ", more available"
	}
	return summary + "\n"
}
