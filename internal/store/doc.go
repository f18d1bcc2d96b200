// Package store defines the transactional persistence port consumed by the
// core services. It contains the port interfaces, the DBTX abstraction that
// lets implementations run against either a connection or a transaction, and
// RunInTransaction, the single serialization point for all multi-entity
// mutations. Implementations live under internal/platform.
package store
