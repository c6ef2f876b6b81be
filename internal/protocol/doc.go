// Package protocol owns the peer greeting wire contract.
//
// Ownership boundary:
// - version and bounded string value types
// - unsigned varint primitives
// - handshake message encode/decode
//
// The codec is pure: every call works on its own buffers and keeps no state
// between calls.
package protocol
