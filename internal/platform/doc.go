package platform

// Package platform contains filesystem integration and the document codec:
// decoding and encoding Programs documents as JSON, YAML or TOML with
// field-level shape checks, and atomic file writes.
