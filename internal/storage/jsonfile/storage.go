// Package jsonfile persists the transaction collection as a single JSON
// document: {"transactions": [...]}. Writes go to a temp file in the same
// directory followed by an atomic rename, so a failed write never leaves a
// truncated document behind.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/transaction"
)

const transactionsFile = "transactions.json"

type jsonStore struct {
	path   string
	logger *logger.Logger
}

// New creates the data directory if needed and returns a store backed by
// <dir>/transactions.json.
func New(dir string, log *logger.Logger) (storage.Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, &storage.StorageError{Op: "init", Err: err}
	}
	return &jsonStore{
		path:   filepath.Join(dir, transactionsFile),
		logger: log,
	}, nil
}

type document struct {
	Transactions []json.RawMessage `json:"transactions"`
}

func (s *jsonStore) LoadAll() ([]transaction.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// A nonexistent store file means an empty collection, not a fault.
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.Error("failed to read transactions file", "path", s.path, "error", err)
		return nil, &storage.StorageError{Op: "load", Err: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Error("failed to decode transactions file", "path", s.path, "error", err)
		return nil, &storage.StorageError{Op: "load", Err: err}
	}

	ts := make([]transaction.Transaction, 0, len(doc.Transactions))
	for _, raw := range doc.Transactions {
		var t transaction.Transaction
		if err := json.Unmarshal(raw, &t); err != nil {
			s.logger.Warn("skipping malformed transaction record", "error", err)
			continue
		}
		ts = append(ts, t)
	}

	return ts, nil
}

func (s *jsonStore) Save(ts []transaction.Transaction) (int, error) {
	existing, err := s.LoadAll()
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[storage.Fingerprint(t)] = true
	}

	added := 0
	all := existing
	for _, t := range ts {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		fp := storage.Fingerprint(t)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		all = append(all, t)
		added++
	}

	if err := s.writeAll(all); err != nil {
		return 0, err
	}

	s.logger.Info("saved transactions", "new", added, "total", len(all))
	return added, nil
}

func (s *jsonStore) CheckDuplicates(ts []transaction.Transaction) ([]transaction.Transaction, error) {
	stored, err := s.LoadAll()
	if err != nil {
		return nil, err
	}

	storedFingerprints := make(map[string]bool, len(stored))
	for _, t := range stored {
		storedFingerprints[storage.Fingerprint(t)] = true
	}

	var duplicates []transaction.Transaction
	for _, t := range ts {
		if storedFingerprints[storage.Fingerprint(t)] {
			duplicates = append(duplicates, t)
		}
	}

	return duplicates, nil
}

func (s *jsonStore) FindDuplicates(ts []transaction.Transaction) []transaction.Transaction {
	seen := make(map[string]bool, len(ts))
	var duplicates []transaction.Transaction

	for _, t := range ts {
		fp := storage.Fingerprint(t)
		if seen[fp] {
			duplicates = append(duplicates, t)
			continue
		}
		seen[fp] = true
	}

	return duplicates
}

func (s *jsonStore) GetByID(id string) (transaction.Transaction, error) {
	ts, err := s.LoadAll()
	if err != nil {
		return transaction.Transaction{}, err
	}

	for _, t := range ts {
		if t.ID == id {
			return t, nil
		}
	}

	return transaction.Transaction{}, &storage.NotFoundError{ID: id}
}

func (s *jsonStore) Update(t transaction.Transaction) error {
	if t.ID == "" {
		return &storage.NotFoundError{}
	}

	ts, err := s.LoadAll()
	if err != nil {
		return err
	}

	for i := range ts {
		if ts[i].ID == t.ID {
			ts[i] = t
			if err := s.writeAll(ts); err != nil {
				return err
			}
			s.logger.Info("updated transaction", "id", t.ID)
			return nil
		}
	}

	return &storage.NotFoundError{ID: t.ID}
}

func (s *jsonStore) Delete(id string) error {
	ts, err := s.LoadAll()
	if err != nil {
		return err
	}

	kept := make([]transaction.Transaction, 0, len(ts))
	for _, t := range ts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	if len(kept) == len(ts) {
		return &storage.NotFoundError{ID: id}
	}

	if err := s.writeAll(kept); err != nil {
		return err
	}
	s.logger.Info("deleted transaction", "id", id)
	return nil
}

func (s *jsonStore) DeleteMultiple(ids []string) (int, error) {
	ts, err := s.LoadAll()
	if err != nil {
		return 0, err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := make([]transaction.Transaction, 0, len(ts))
	for _, t := range ts {
		if !drop[t.ID] {
			kept = append(kept, t)
		}
	}

	deleted := len(ts) - len(kept)
	if deleted == 0 {
		return 0, nil
	}

	if err := s.writeAll(kept); err != nil {
		return 0, err
	}
	s.logger.Info("deleted transactions", "count", deleted)
	return deleted, nil
}

func (s *jsonStore) writeAll(ts []transaction.Transaction) error {
	records := make([]json.RawMessage, 0, len(ts))
	for _, t := range ts {
		raw, err := json.Marshal(t)
		if err != nil {
			s.logger.Error("failed to encode transaction", "id", t.ID, "error", err)
			return &storage.StorageError{Op: "save", Err: err}
		}
		records = append(records, raw)
	}

	data, err := json.MarshalIndent(document{Transactions: records}, "", "  ")
	if err != nil {
		return &storage.StorageError{Op: "save", Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "transactions-*.json")
	if err != nil {
		s.logger.Error("failed to create temp file", "error", err)
		return &storage.StorageError{Op: "save", Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.logger.Error("failed to write transactions file", "error", err)
		return &storage.StorageError{Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &storage.StorageError{Op: "save", Err: err}
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		s.logger.Error("failed to replace transactions file", "error", err)
		return &storage.StorageError{Op: "save", Err: err}
	}

	return nil
}
