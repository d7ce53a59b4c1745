// Package github provides a client for the subset of the GitHub REST API
// used by ghscout: user lookup, a user's repositories and followers, and
// the popular repositories search.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client := github.NewClient(logger,
//		github.WithTimeout(10*time.Second),
//		github.WithUserAgent("my-tool"),
//	)
//
//	user, err := client.FetchUser(ctx, "octocat")
//	if errors.Is(err, github.ErrNotFound) {
//		// no such user
//	}
//
// Every operation issues exactly one GET request. There is no retry and no
// caching. The client holds no per-call state, so one instance can be
// shared by any number of goroutines.
//
// # Error Handling
//
// All failures are returned as *APIError, whose Kind is one of a closed
// set:
//
//   - KindInvalidURL: the endpoint did not parse as a URL; no I/O happened
//   - KindNetwork: transport failure, including context cancellation
//   - KindNotFound, KindForbidden, KindRateLimitExceeded: 404, 403, 429
//   - KindInvalidResponse: any other non-2xx status
//   - KindInvalidData: the body did not decode into the expected shape
//
// APIError.Error returns a message fit for display. Use Detail for
// diagnostics and errors.Is with the Err* sentinels for classification.
package github
