package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Backend / code generation
	GenInfo               Code = 5000
	GenUnexpectedFnType   Code = 5001
	GenArgNotFound        Code = 5002
	GenMissingDebugScope  Code = 5003
	GenUnsupportedIRShape Code = 5004

	// Driver
	DrvInfo          Code = 6000
	DrvBadUnitFile   Code = 6001
	DrvSchemaVersion Code = 6002
)

func (c Code) String() string {
	return fmt.Sprintf("SB%04d", uint16(c))
}
