package middleware

import "github.com/aretw0/rewind/pkg/ports"

// Middleware allows wrapping a WritableLibrary to add behavior.
type Middleware func(ports.WritableLibrary) ports.WritableLibrary

// Chain applies mws so that the first one is the outermost.
func Chain(lib ports.WritableLibrary, mws ...Middleware) ports.WritableLibrary {
	for i := len(mws) - 1; i >= 0; i-- {
		lib = mws[i](lib)
	}
	return lib
}
