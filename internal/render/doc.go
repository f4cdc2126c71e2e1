// Package render writes resolution results for people and for tools.
//
// YAML produces a stable document that can be reviewed, diffed and fed to a
// later import step. Table produces a coloured terminal summary.
package render
