package ident

import "github.com/google/uuid"

// New returns a process-unique identifier carrying the given type prefix,
// e.g. "DIC-1b4e28ba-2fa1-11d2-883f-0016d3cca427".
func New(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
