// Package driven defines the driven (outbound) ports: interfaces the
// core depends on that are implemented by adapters, such as the content
// sink and identifier generation.
package driven
