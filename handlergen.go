// Package handlergen generates gin HTTP handler boilerplate for a named entity.
package handlergen

// Version is the current handlergen release.
const Version = "0.1.0"
