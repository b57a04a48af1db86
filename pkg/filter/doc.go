// Package filter narrows and renames a consolidated call graph.
//
// # Stages
//
// [Apply] runs up to four stages, each feeding the next:
//
//  1. Rewrite: every node name is passed through all rewrite rules in order,
//     each rule substituting on the previous rule's result. Names that end up
//     equal are merged and their call sets unioned. Edge endpoints are
//     rewritten through the same chain.
//  2. Keep: when a keep list is configured (even an empty one), only nodes
//     whose name contains a match for some keep pattern survive.
//  3. Removal: nodes whose name contains a match for any removal pattern are
//     dropped.
//  4. Closure: edge endpoints that no longer name a node are dropped.
//
// Patterns that fail to compile are skipped with a warning. If every keep
// pattern is invalid nothing is kept; if every removal pattern is invalid
// nothing is removed.
//
// # Configuration
//
// A [Config] distinguishes an absent list from a present but empty one. It
// is usually loaded with [LoadFile] from a JSON object:
//
//	{
//	  "removal-filters": ["^__builtin_", "^_gfortran_"],
//	  "keep-filters": ["^mymod_"],
//	  "rewrite-filters": [
//	    {"pattern": "^__(\\w+)_MOD_(\\w+)$", "replacement": "\\1::\\2"}
//	  ]
//	}
//
// A file with a .toml extension is read as TOML with the same keys.
// Replacement strings refer to groups as \1 or \g<name>. A $ in a
// replacement is literal.
package filter
