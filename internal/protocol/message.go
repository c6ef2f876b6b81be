package protocol

import "fmt"

// AddressPlaceholder stands in for the peer address field, which this client
// never declares.
const AddressPlaceholder byte = 0

// HandshakeMessage is the greeting exchanged at connection start. The
// timestamp is produced on encode and dropped on decode, so it is not kept.
type HandshakeMessage struct {
	AgentName BoundedString
	Version   Version
	PeerName  BoundedString
}

// NewHandshakeMessage validates both names and builds a message.
func NewHandshakeMessage(agentName string, version Version, peerName string) (*HandshakeMessage, error) {
	agent, err := NewBoundedString(agentName)
	if err != nil {
		return nil, fmt.Errorf("agent name: %w", err)
	}
	peer, err := NewBoundedString(peerName)
	if err != nil {
		return nil, fmt.Errorf("peer name: %w", err)
	}
	return &HandshakeMessage{AgentName: agent, Version: version, PeerName: peer}, nil
}

// EncodedLen is the request size for the given timestamp.
func (m *HandshakeMessage) EncodedLen(timestampMS uint64) int {
	return UvarintSize(timestampMS) + m.bodyLen()
}

func (m *HandshakeMessage) bodyLen() int {
	return 1 + m.AgentName.Len() + VersionSize + 1 + m.PeerName.Len() + 1
}

func (m *HandshakeMessage) String() string {
	return fmt.Sprintf("agent=%q version=%s peer=%q", m.AgentName, m.Version, m.PeerName)
}
