package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/banktrace/banktrace/internal/logger"
	"github.com/banktrace/banktrace/internal/storage"
	"github.com/banktrace/banktrace/internal/transaction"
)

func testStore(t *testing.T) (storage.Store, string) {
	t.Helper()

	dir := t.TempDir()
	log := logger.New(logger.Config{Level: logger.LevelInfo, Format: logger.FormatText, Output: "discard"})
	store, err := New(dir, log)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store, dir
}

func storeTransaction(t *testing.T, date, amount, description string) transaction.Transaction {
	t.Helper()

	d, err := transaction.ParseDate(date)
	if err != nil {
		t.Fatalf("Failed to parse date: %v", err)
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("Failed to parse amount: %v", err)
	}
	txn, err := transaction.New(d, a, description, transaction.Debit)
	if err != nil {
		t.Fatalf("Failed to build transaction: %v", err)
	}
	return txn
}

func TestLoadAllMissingFile(t *testing.T) {
	store, _ := testStore(t)

	ts, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() on a fresh store returned error: %v", err)
	}
	if len(ts) != 0 {
		t.Errorf("LoadAll() = %d transactions, want 0", len(ts))
	}
}

func TestSaveAndLoad(t *testing.T) {
	store, _ := testStore(t)

	batch := []transaction.Transaction{
		storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE #1234"),
		storeTransaction(t, "2024-01-16", "-15.99", "NETFLIX.COM"),
	}

	added, err := store.Save(batch)
	if err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	if added != 2 {
		t.Errorf("Save() added %d, want 2", added)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("LoadAll() = %d transactions, want 2", len(loaded))
	}
	for _, txn := range loaded {
		if txn.ID == "" {
			t.Error("Save() should assign ids to new transactions")
		}
	}
	if !loaded[0].Amount.Equal(batch[0].Amount) {
		t.Errorf("Amount = %s, want %s", loaded[0].Amount, batch[0].Amount)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	store, _ := testStore(t)

	batch := []transaction.Transaction{
		storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE #1234"),
	}

	if _, err := store.Save(batch); err != nil {
		t.Fatalf("first Save() returned error: %v", err)
	}
	added, err := store.Save(batch)
	if err != nil {
		t.Fatalf("second Save() returned error: %v", err)
	}
	if added != 0 {
		t.Errorf("second Save() added %d, want 0", added)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("LoadAll() = %d transactions, want 1", len(loaded))
	}
}

func TestSaveSkipsIntraBatchDuplicates(t *testing.T) {
	store, _ := testStore(t)

	batch := []transaction.Transaction{
		storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE #1234"),
		storeTransaction(t, "2024-01-15", "-45.67", "grocery store #1234"),
	}

	added, err := store.Save(batch)
	if err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	if added != 1 {
		t.Errorf("Save() added %d, want 1 (second entry has the same fingerprint)", added)
	}
}

func TestFingerprintStableAcrossRoundTrip(t *testing.T) {
	store, _ := testStore(t)

	original := storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE #1234")
	if _, err := store.Save([]transaction.Transaction{original}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("LoadAll() = %d transactions, want 1", len(loaded))
	}
	if storage.Fingerprint(loaded[0]) != storage.Fingerprint(original) {
		t.Errorf("fingerprint changed across persistence: %q vs %q",
			storage.Fingerprint(loaded[0]), storage.Fingerprint(original))
	}
}

func TestCheckDuplicates(t *testing.T) {
	store, _ := testStore(t)

	stored := storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE #1234")
	if _, err := store.Save([]transaction.Transaction{stored}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	candidates := []transaction.Transaction{
		storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE #1234"),
		storeTransaction(t, "2024-01-20", "-10.00", "NEW VENDOR"),
	}

	duplicates, err := store.CheckDuplicates(candidates)
	if err != nil {
		t.Fatalf("CheckDuplicates() returned error: %v", err)
	}
	if len(duplicates) != 1 {
		t.Fatalf("CheckDuplicates() = %d duplicates, want 1", len(duplicates))
	}
	if duplicates[0].Description != "GROCERY STORE #1234" {
		t.Errorf("duplicate = %q, want the stored entry's match", duplicates[0].Description)
	}
}

func TestFindDuplicates(t *testing.T) {
	store, _ := testStore(t)

	batch := []transaction.Transaction{
		storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE #1234"),
		storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE #1234"),
		storeTransaction(t, "2024-01-16", "-10.00", "OTHER"),
	}

	duplicates := store.FindDuplicates(batch)
	if len(duplicates) != 1 {
		t.Errorf("FindDuplicates() = %d duplicates, want 1", len(duplicates))
	}
}

func TestGetByID(t *testing.T) {
	store, _ := testStore(t)

	if _, err := store.Save([]transaction.Transaction{storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE")}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}

	got, err := store.GetByID(loaded[0].ID)
	if err != nil {
		t.Fatalf("GetByID() returned error: %v", err)
	}
	if got.Description != "GROCERY STORE" {
		t.Errorf("GetByID() description = %q, want GROCERY STORE", got.Description)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.GetByID("missing")
	if err == nil {
		t.Fatal("GetByID() with an unknown id should return an error")
	}
	var notFound *storage.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if notFound.ID != "missing" {
		t.Errorf("NotFoundError.ID = %q, want %q", notFound.ID, "missing")
	}
}

func TestUpdate(t *testing.T) {
	store, _ := testStore(t)

	if _, err := store.Save([]transaction.Transaction{storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE")}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}

	updated := loaded[0]
	updated.Notes = "edited"
	updated.Category = &transaction.Category{Name: "Groceries", Parent: "Food & Dining"}
	if err := store.Update(updated); err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}

	got, err := store.GetByID(updated.ID)
	if err != nil {
		t.Fatalf("GetByID() returned error: %v", err)
	}
	if got.Notes != "edited" {
		t.Errorf("Notes = %q, want %q", got.Notes, "edited")
	}
	if got.Category == nil || got.Category.Name != "Groceries" {
		t.Errorf("Category = %+v, want Groceries", got.Category)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store, _ := testStore(t)

	missing := storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE")
	missing.ID = "missing"

	var notFound *storage.NotFoundError
	if err := store.Update(missing); !errors.As(err, &notFound) {
		t.Fatalf("Update() with unknown id = %v, want NotFoundError", err)
	}

	missing.ID = ""
	if err := store.Update(missing); !errors.As(err, &notFound) {
		t.Fatalf("Update() with empty id = %v, want NotFoundError", err)
	}
}

func TestDelete(t *testing.T) {
	store, _ := testStore(t)

	if _, err := store.Save([]transaction.Transaction{storeTransaction(t, "2024-01-15", "-45.67", "GROCERY STORE")}); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}

	if err := store.Delete(loaded[0].ID); err != nil {
		t.Fatalf("Delete() returned error: %v", err)
	}

	remaining, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("LoadAll() = %d transactions after delete, want 0", len(remaining))
	}

	var notFound *storage.NotFoundError
	if err := store.Delete(loaded[0].ID); !errors.As(err, &notFound) {
		t.Fatalf("second Delete() = %v, want NotFoundError", err)
	}
}

func TestDeleteMultiple(t *testing.T) {
	store, _ := testStore(t)

	batch := []transaction.Transaction{
		storeTransaction(t, "2024-01-15", "-45.67", "A"),
		storeTransaction(t, "2024-01-16", "-10.00", "B"),
		storeTransaction(t, "2024-01-17", "-20.00", "C"),
	}
	if _, err := store.Save(batch); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}
	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}

	deleted, err := store.DeleteMultiple([]string{loaded[0].ID, loaded[2].ID, "unknown"})
	if err != nil {
		t.Fatalf("DeleteMultiple() returned error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteMultiple() = %d, want 2 (unknown ids are ignored)", deleted)
	}

	remaining, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Description != "B" {
		t.Errorf("remaining = %+v, want only B", remaining)
	}
}

func TestDeleteMultipleNoMatches(t *testing.T) {
	store, _ := testStore(t)

	deleted, err := store.DeleteMultiple([]string{"x", "y"})
	if err != nil {
		t.Fatalf("DeleteMultiple() returned error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("DeleteMultiple() = %d, want 0", deleted)
	}
}

func TestLoadAllSkipsMalformedRecords(t *testing.T) {
	store, dir := testStore(t)

	doc := `{"transactions": [
		{"date":"2024-01-15","amount":"-45.67","description":"GOOD","transaction_type":"debit","id":"good-1"},
		{"date":"2024-01-16","amount":"not-a-number","description":"BAD","transaction_type":"debit"},
		{"date":"2024-01-17","amount":"-10.00","description":"ALSO GOOD","transaction_type":"debit","id":"good-2"}
	]}`
	if err := os.WriteFile(filepath.Join(dir, "transactions.json"), []byte(doc), 0600); err != nil {
		t.Fatalf("Failed to seed store file: %v", err)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() returned error: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("LoadAll() = %d transactions, want 2 (bad record skipped)", len(loaded))
	}
	if loaded[0].ID != "good-1" || loaded[1].ID != "good-2" {
		t.Errorf("unexpected survivors: %q, %q", loaded[0].ID, loaded[1].ID)
	}
}

func TestLoadAllCorruptDocument(t *testing.T) {
	store, dir := testStore(t)

	if err := os.WriteFile(filepath.Join(dir, "transactions.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("Failed to seed store file: %v", err)
	}

	_, err := store.LoadAll()
	if err == nil {
		t.Fatal("LoadAll() on a corrupt document should return an error")
	}
	var storageErr *storage.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %T", err)
	}
	if storageErr.Op != "load" {
		t.Errorf("Op = %q, want %q", storageErr.Op, "load")
	}
}

func TestPersistedDocumentShape(t *testing.T) {
	store, dir := testStore(t)

	if _, err := store.Save(nil); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "transactions.json"))
	if err != nil {
		t.Fatalf("Failed to read store file: %v", err)
	}
	if !strings.Contains(string(data), `"transactions": []`) {
		t.Errorf("empty store should persist an empty array, got %s", data)
	}
}
