// Package diag carries diagnostics between compiler phases. The backend uses
// it as a best-effort channel: a reported diagnostic never aborts code
// generation.
package diag
