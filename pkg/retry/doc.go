// Package retry provides bounded backoff retry logic for transient
// failures against the source API.
//
// Only transient network and rate-limit errors are retried by default;
// authentication, not-found, forbidden and malformed-response errors
// surface immediately. A rate-limit error carrying a server retry-after
// hint waits at least that long before the next attempt.
//
//	cfg := &retry.Config{
//		MaxAttempts: 3,
//		Backoff:     retry.DefaultExponentialBackoff(),
//		RetryIf:     retry.DefaultRetryIf,
//		Context:     ctx,
//		Logger:      log,
//	}
//	page, err := retry.DoWithResult(func() (*feedPage, error) {
//		return fetchPage(ctx, cursor)
//	}, cfg)
package retry
