// Package sir defines the Sable IR consumed by the backend: functions, basic
// blocks, kind-tagged instructions, globals, parent-linked debug scopes, and
// source references back into the AST. The frontend lives out of tree and
// hands units over as schema-versioned msgpack containers (see encode.go).
package sir
