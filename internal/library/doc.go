package library

// Package library holds the currently loaded Programs collection as an
// explicitly created, concurrency-safe object. Every mutation validates its
// input, bumps a UUIDv7 revision and notifies an optional update callback.
