// Package driven defines the secondary (driven) ports of the hexagon:
// interfaces the core requires from infrastructure adapters.
//
// Implementations live under internal/adapters/driven. The core services
// depend only on these interfaces, never on concrete adapters.
package driven
