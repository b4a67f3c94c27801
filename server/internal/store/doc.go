// Package store keeps the recent assessments computed by the server in memory.
// Entries expire after a TTL; nothing is persisted.
package store
