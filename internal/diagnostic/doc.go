// Package diagnostic records the non-fatal findings of a resolution run:
// candidates that were dropped, conflicts lost, and degraded suggestion
// retrieval. A run with diagnostics is still a complete, valid result.
package diagnostic
