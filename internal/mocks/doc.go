// Package mocks provides hand-written test doubles for the store
// persistence port. MemoryStore backs every port interface with in-memory
// state and implements store.Transactor with snapshot/rollback semantics,
// so service tests exercise real commit-or-abort behavior without a
// database.
package mocks
