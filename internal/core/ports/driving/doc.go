// Package driving defines the primary (driving) ports of the hexagon:
// interfaces through which the CLI invokes the core services.
package driving
