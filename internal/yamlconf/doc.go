// Package yamlconf loads babymaker configuration from YAML files.
//
// A scalar tagged `!include` is replaced by the contents of the named file,
// resolved relative to the including file. Includes may nest. Mapping order
// is preserved for `rename`, `calculation` and `output`, since it decides
// resolution and output order downstream.
package yamlconf
