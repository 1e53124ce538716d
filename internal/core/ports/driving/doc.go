// Package driving defines the driving (inbound) ports: the use-case
// interfaces the CLI adapter calls into the core through.
package driving
