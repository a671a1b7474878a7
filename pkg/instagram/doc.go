// Package instagram talks to Instagram's unofficial web API using a
// caller-supplied session cookie.
//
// The package has two layers:
//   - Client wraps outbound requests with the credential and browser-like
//     headers and maps HTTP outcomes to the typed error taxonomy in
//     pkg/errors (auth expiry, rate limits, visibility failures).
//   - Fetcher resolves usernames to profile metadata and walks the
//     paginated feed, normalizing heterogeneous media records into
//     analytics.Post values with lenient per-item defaults.
//
// Endpoint shapes are upstream-owned and change without notice; all of
// that volatility stays inside this package.
//
//	client, err := instagram.NewClient(cfg, credential, log)
//	if err != nil {
//	    ...
//	}
//	fetcher := instagram.NewFetcher(client, cfg, log)
//	profile, userID, err := fetcher.ResolveProfile(ctx, "nasa")
//	if err != nil {
//	    if errs.IsType(err, errs.ErrorTypeAuthExpired) {
//	        // ask the caller for a fresh session cookie
//	    }
//	}
//	posts, err := fetcher.StreamPosts(ctx, userID, 200)
package instagram
