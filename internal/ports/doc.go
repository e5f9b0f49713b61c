// Package ports defines the interfaces between layers.
// Service ports are implemented by the application layer and called by the
// HTTP handlers. Store ports are implemented by the storage adapters and
// called by the application layer. The client port is implemented by the
// outbound API client and used by the CLI.
package ports
