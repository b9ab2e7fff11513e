// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SearchClient: Runs a query against the document repository
//   - ClientFactory: Builds a SearchClient from connection settings
//
// # Optional Interfaces
//
//   - OptionsStore: Supplies connection options to hosts that keep them in
//     a configuration file instead of receiving them per call.
//   - ConfigStore: An OptionsStore whose values can be edited and saved.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
