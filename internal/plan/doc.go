// Package plan provides the resolution pipeline that turns candidate
// pairings into the final partitioned Result consumed by exporters.
//
// Resolution pipeline:
//  1. Classify target columns; short-circuit when there are none
//  2. Ask the suggestion source for candidates (failures mean zero candidates)
//  3. Drop candidates naming columns that do not exist
//  4. Look up the priority of each candidate's target column
//  5. Stable sort: target priority ascending, raw confidence descending
//  6. Walk once, greedily: a candidate survives only if neither its source nor
//     its target was taken by an earlier accepted or reviewed candidate
//  7. Score survivors (similarity scaling, custom/system bias) and tier them
//  8. Derive unresolved source and unused target columns
//
// The walk is greedy. It is not a bipartite assignment solver:
// one pass, no backtracking, fully deterministic for a given candidate list.
package plan
