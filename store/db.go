package store

// Item is a payload waiting in the outbox.
type Item struct {
	Payload []byte
	Seq     uint64
}

// DB is the database storage interface.
type DB interface {
	// LoadHistory returns the persisted session list record, or nil if
	// nothing has been saved yet
	LoadHistory() ([]byte, error)
	// SaveHistory overwrites the session list record
	SaveHistory(data []byte) error
	// Enqueue appends a payload to the outbox and returns its sequence number
	Enqueue(payload []byte) (uint64, error)
	// Pending returns up to limit outbox items in insertion order
	Pending(limit int) ([]Item, error)
	// Ack removes a delivered item from the outbox
	Ack(seq uint64) error
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
