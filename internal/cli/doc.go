// Package cli handles command-line argument parsing and validation. It is the
// bridge between the user's shell and the app package.
package cli
