// Package api implements the generic JSON API connector: request
// construction with pagination state, the page fetch transport, the
// pagination termination/continuation state machine, and the
// sequential page traversal that feeds records to the caller.
package api
