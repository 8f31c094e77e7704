// Package dag resolves named variables into dependency trees.
//
// Variables live in named scopes (for example "raw", "rename", "calculation").
// A variable is either terminal (it exists as-is), a literal (a constant that
// is inlined into whoever uses it) or defined by one or more candidate
// expressions. The Resolver picks, for each variable, the first candidate
// whose dependencies can all be found by searching the scopes in a fixed
// order, and records the result as a tree of Nodes. Resolved nodes are shared
// through a Resolved accumulator, so a variable used in several places is only
// materialized once and the accumulated list is always dependencies first.
//
// Graph turns a set of resolved nodes into a plain dependency graph keyed by
// fully qualified name, which is what renderers and consistency checks use.
package dag
