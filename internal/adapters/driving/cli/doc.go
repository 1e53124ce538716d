// Package cli implements the contentbridge command line interface.
package cli
