// Package directive turns a configuration and an ntuple structure into the
// per-tree instructions a code generator needs: which branches to read,
// which cuts to apply and which variables to compute and write.
//
// For every output tree the Builder loads six scopes:
//
//   - literals: constants given on the command line, inlined by value
//   - raw: the branches of the input tree
//   - keep and rename: raw branches copied to the output, possibly renamed
//   - calculation: derived variables ("type; rval; alternative rval")
//   - selection: cut expressions, named sel0, sel1, ...
//
// and resolves selection, keep, rename and calculation in that order on one
// shared accumulator, so a variable needed by several of them is computed
// once. Independent output trees are resolved concurrently.
package directive
