// Package store connects to the data store and manages the session history
// record and the sync outbox
package store

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	historyBucket = "history"
	outboxBucket  = "outbox"
	historyKey    = "timerSessions"
)

var errAlreadyRunning = errors.New(
	"is TimeStop already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	path string
}

func (c *Client) LoadHistory() ([]byte, error) {
	var data []byte

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(historyBucket)).Get([]byte(historyKey))
		if v != nil {
			// bolt values are only valid for the life of the transaction
			data = append([]byte(nil), v...)
		}

		return nil
	})

	return data, err
}

func (c *Client) SaveHistory(data []byte) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(historyBucket)).Put([]byte(historyKey), data)
	})
}

func (c *Client) Enqueue(payload []byte) (uint64, error) {
	var seq uint64

	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(outboxBucket))

		var err error

		seq, err = b.NextSequence()
		if err != nil {
			return err
		}

		return b.Put(seqKey(seq), payload)
	})

	return seq, err
}

func (c *Client) Pending(limit int) ([]Item, error) {
	var items []Item

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(outboxBucket)).Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			if limit > 0 && len(items) == limit {
				break
			}

			items = append(items, Item{
				Seq:     binary.BigEndian.Uint64(k),
				Payload: append([]byte(nil), v...),
			})
		}

		return nil
	})

	return items, err
}

func (c *Client) Ack(seq uint64) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(outboxBucket)).Delete(seqKey(seq))
	})
}

func (c *Client) Open() error {
	db, err := openDB(c.path)
	if err != nil {
		return err
	}

	c.DB = db

	return nil
}

// seqKey encodes a sequence number so that keys sort in insertion order.
func seqKey(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)

	return b
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(historyBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(outboxBucket))

		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		DB:   db,
		path: dbPath,
	}, nil
}
