// Package suggest produces candidate column pairings for a source/target
// schema pair.
//
// Three Source implementations exist:
//   - Noop: never suggests anything; the default when no service is configured
//   - Remote: asks an external similarity service over HTTP, retrying transient
//     failures with exponential backoff and extracting a JSON array from the
//     free text it returns
//   - Heuristic: local name and type similarity, opt-in only
//
// Remote never propagates service failures. Any transport, status or parsing
// problem is logged and degrades to zero candidates. The only error it returns
// is the caller's context error when the run is cancelled.
package suggest
