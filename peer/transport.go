package peer

import "context"

// Status describes the state of a transport.
type Status struct {
	// Activated is true once the local end is ready to send
	Activated bool
	// Reachable is true while the paired device can receive immediately
	Reachable bool
}

// Receiver is notified by a transport of inbound payloads and status
// changes.
type Receiver interface {
	ReceiveContext(payload []byte)
	// ReceiveUserInfo is given the sender's outbox sequence with the
	// payload, or zero when the payload was never queued
	ReceiveUserInfo(seq uint64, payload []byte)
	StatusChanged(st Status)
}

// Transport is the link between the two devices.
type Transport interface {
	// Activate readies the transport and registers the receiver for inbound
	// payloads
	Activate(ctx context.Context, r Receiver) error
	Status() Status
	// UpdateContext replaces any context not yet delivered to the peer
	UpdateContext(payload []byte) error
	// TransferUserInfo delivers a payload queued under seq, returning an
	// error if delivery could not be confirmed
	TransferUserInfo(seq uint64, payload []byte) error
	Close() error
}
