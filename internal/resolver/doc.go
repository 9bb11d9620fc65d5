// Package resolver implements ordered fallback resolution of installation
// targets. A resolution run tries a caller-supplied list of strategies
// strictly in order, stops at the first success, and returns an immutable
// Outcome recording every attempt. Strategy failures, timeouts, and panics
// are captured as data; the only error returns from Resolve are caller
// contract violations.
package resolver
