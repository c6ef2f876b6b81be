// Package handshake greets one peer over TCP.
//
// Ownership boundary:
// - dial, single write, single read, decode
// - total deadline over connect+write+read
// - handing the live connection and reply to the caller
//
// Wire encoding lives in internal/protocol; this package only moves bytes.
package handshake
