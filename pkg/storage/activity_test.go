package storage_test

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"rds-restore/pkg/storage"
)

func TestActivityLog_AppendAndEntries(t *testing.T) {
	log := storage.NewActivityLog()

	if log.Len() != 0 {
		t.Fatalf("Expected empty log, got %d entries", log.Len())
	}

	log.Append(storage.KindRegion, "eu-west-1", "Switched to region eu-west-1")
	entry := log.Append(storage.KindRestore, "eu-west-1", "Request sent")

	if entry.Time.IsZero() {
		t.Error("Expected entry to be timestamped")
	}

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != storage.KindRegion {
		t.Errorf("Kind mismatch: got %s, want %s", entries[0].Kind, storage.KindRegion)
	}
	if entries[1].Message != "Request sent" {
		t.Errorf("Message mismatch: got %s", entries[1].Message)
	}
}

func TestActivityLog_EntriesIsACopy(t *testing.T) {
	log := storage.NewActivityLog()
	log.Append(storage.KindSession, "", "Session started")

	entries := log.Entries()
	entries[0].Message = "changed"

	if got := log.Entries()[0].Message; got != "Session started" {
		t.Errorf("Log was modified through a copy: %s", got)
	}
}

func TestActivityLog_WriteJSON(t *testing.T) {
	log := storage.NewActivityLog()

	var empty bytes.Buffer
	if err := log.WriteJSON(&empty); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if empty.String() != "[]" {
		t.Errorf("Expected empty JSON array, got %s", empty.String())
	}

	log.Append(storage.KindRejection, "us-east-1", "Please choose a snapshot")

	var buf bytes.Buffer
	if err := log.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded []storage.Entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Region != "us-east-1" {
		t.Errorf("Unexpected decoded entries: %+v", decoded)
	}
}

func TestActivityLog_ConcurrentAppend(t *testing.T) {
	log := storage.NewActivityLog()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append(storage.KindSelection, "us-east-1", "selected")
		}()
	}
	wg.Wait()

	if log.Len() != 20 {
		t.Errorf("Expected 20 entries, got %d", log.Len())
	}
}
