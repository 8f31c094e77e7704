// Package config defines the format-agnostic model of a babymaker
// configuration, and the Loader interface implemented by the YAML and HCL
// front ends.
//
// A configuration has a global section (keep, drop, rename, calculation,
// selection and friends) and one section per output tree. Merge folds the
// global section into a tree's own section when the tree inherits.
package config
