// Package constants centralizes timeouts and limits shared across the
// analyzer and the API server.
package constants
