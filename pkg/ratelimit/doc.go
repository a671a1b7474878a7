// Package ratelimit paces outbound calls against Instagram's web API.
//
// The unofficial endpoints throttle aggressively; a token bucket with a
// per-minute budget keeps a single analysis run under that threshold.
// The fetcher checks Allow before each page request and falls back to
// Wait when the budget is spent.
//
//	limiter := ratelimit.NewTokenBucket(30, time.Minute)
//	if !limiter.Allow() {
//		limiter.Wait()
//	}
package ratelimit
