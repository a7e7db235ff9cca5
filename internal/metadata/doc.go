// Package metadata stores the debug-information graph the backend builds for
// a compilation unit: an index-addressed node arena with typed constructors
// mirroring the DWARF entry kinds a debugger consumes. The bit-exact on-disk
// encoding belongs to the object emitter; this package only offers a
// schema-versioned msgpack dump of the finished graph for out-of-band
// consumers.
package metadata
