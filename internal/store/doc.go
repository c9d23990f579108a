// Package store provides abstractions for data persistence. The durable
// backends (document store, blob store) are consumed through the interfaces
// defined here; implementations live under internal/platform.
package store
