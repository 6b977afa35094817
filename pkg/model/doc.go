// Package model defines the renderer-facing data model: records, typed
// fields, constraint metadata, and the tagged-union Value variant renderers
// dispatch over. Adapters populate it from Go structs (reflect.go), YAML
// definitions (yaml.go), or any type implementing the Source interface.
package model
