// Package storage implements the durable key-value bridge behind the session and favorites stores.
//
// Every backend satisfies [Bridge]: string keys, string values, absent keys reported via found=false.
//
//   - [MemoryBridge] : process-local map, used by tests and the "memory" backend
//   - [SQLiteBridge] : kv table in the SQLite database managed by shared migrations
//   - [BoltBridge] : single bucket in a bbolt file, opened per operation
//   - [RedisBridge] : prefixed redis strings, for devices that share a session server
//
// Writes are last-write-wins; no backend coordinates concurrent processes beyond its own locking.
package storage
