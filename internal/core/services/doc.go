// Package services contains the application services that orchestrate
// the core use cases over the ports. The loader service drives the
// per-source page traversal, record mapping, validation and emission.
package services
