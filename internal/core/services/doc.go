// Package services contains the concrete workflow services: the codeword
// review ledger, the theme/seed editor and the submission lifecycle
// controller. Services depend on driven ports only and are driven through
// the driving ports by the CLI and TUI adapters.
package services
