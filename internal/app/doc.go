// Package app contains the core application logic. It wires the configuration
// loaders, the ntuple structure dump, the directive builder and the renderers
// together, decoupled from any specific entrypoint like a CLI.
package app
