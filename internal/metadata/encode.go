package metadata

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the dump format changes.
const dumpSchemaVersion uint16 = 1

type graphDump struct {
	Schema      uint16
	CompileUnit NodeID
	Nodes       []Node
	Declares    []Declare
}

// Encode writes a msgpack dump of the finished graph. Released nodes are
// omitted. The graph must be finalized first.
func (b *Builder) Encode(w io.Writer) error {
	if !b.finalized {
		return fmt.Errorf("metadata: encode before Finalize")
	}
	dump := graphDump{
		Schema:      dumpSchemaVersion,
		CompileUnit: b.cu,
	}
	for id := 1; id < len(b.nodes); id++ {
		if b.alive[id] {
			dump.Nodes = append(dump.Nodes, b.nodes[id])
		}
	}
	dump.Declares = b.declares
	if err := msgpack.NewEncoder(w).Encode(&dump); err != nil {
		return fmt.Errorf("metadata: encode graph: %w", err)
	}
	return nil
}
