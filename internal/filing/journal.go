package filing

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const documentBucketName = "documents"

// Entry records the outcome of processing one document
type Entry struct {
	Source      string    `json:"source"` // original filename in the inbox
	Status      string    `json:"status"` // parsed | unrecognized | failed
	Dialect     string    `json:"dialect,omitempty"`
	Beneficiary string    `json:"beneficiary,omitempty"`
	Date        string    `json:"date,omitempty"` // canonical DD_MM_YYYY
	ArchivedTo  string    `json:"archived_to,omitempty"`
	Reason      string    `json:"reason,omitempty"` // failure reason
	ProcessedAt time.Time `json:"processed_at"`
}

// Journal is a BoltDB-backed record of every processed document
type Journal struct {
	db *bbolt.DB
}

// NewJournal opens (or creates) the journal database at path
func NewJournal(path string) (*Journal, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(documentBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal bucket: %w", err)
	}

	return &Journal{db: db}, nil
}

// Record saves an entry, keyed by its source filename
func (j *Journal) Record(entry *Entry) error {
	return j.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucketName))
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling journal entry: %w", err)
		}
		return bucket.Put([]byte(entry.Source), data)
	})
}

// Get retrieves the entry for a source filename
func (j *Journal) Get(source string) (*Entry, error) {
	var entry *Entry
	err := j.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucketName))
		data := bucket.Get([]byte(source))
		if data == nil {
			return fmt.Errorf("no journal entry for %s", source)
		}
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns all journal entries
func (j *Journal) List() ([]*Entry, error) {
	entries := make([]*Entry, 0)
	err := j.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("unmarshaling journal entry: %w", err)
			}
			entries = append(entries, &entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the journal database
func (j *Journal) Close() error {
	return j.db.Close()
}
