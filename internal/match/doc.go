// Package match provides the value types and scoring rules shared by the
// suggestion sources and the resolver.
//
// Key pieces:
//   - Candidate: a proposed source -> target column pairing with a raw confidence
//   - RankedList: the priority-then-confidence ordering used for conflict resolution
//   - AdjustedConfidence / TierFor: similarity scaling, custom/system bias and tiering
//   - NameScore / ScoreTypeCompatibility: name and declared-type signals used by the
//     heuristic suggestion source
package match
