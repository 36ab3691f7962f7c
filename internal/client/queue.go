package client

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// PendingEntry is one exchange request captured while the server was
// unreachable. It mirrors the POST /api/exchange/request body.
type PendingEntry struct {
	ToProfileID int64 `json:"to_profile_id"`
	SkillID1    int64 `json:"skill_id_1"`
	SkillID2    int64 `json:"skill_id_2"`
}

// QueuedEntry pairs a pending entry with its insertion-order key.
type QueuedEntry struct {
	Key int64
	PendingEntry
}

// PendingQueue is the durable local store of not-yet-confirmed exchange
// requests. Entries are append-only: they are never mutated, only removed
// once the server accepts them.
type PendingQueue struct {
	db *sql.DB
}

// OpenQueue opens (or creates) the queue database. path can be a file path or
// ":memory:" for tests.
func OpenQueue(path string) (*PendingQueue, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open queue database: %w", err)
	}

	schema := `
        CREATE TABLE IF NOT EXISTS pending (
            key           INTEGER PRIMARY KEY AUTOINCREMENT,
            to_profile_id INTEGER NOT NULL,
            skill_id_1    INTEGER NOT NULL,
            skill_id_2    INTEGER NOT NULL
        )`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create pending table: %w", err)
	}

	return &PendingQueue{db: db}, nil
}

func (q *PendingQueue) Close() error {
	return q.db.Close()
}

// Enqueue appends an entry. No validation happens here: a stale or invalid
// entry is the server's to reject at replay time.
func (q *PendingQueue) Enqueue(entry PendingEntry) error {
	_, err := q.db.Exec(
		`INSERT INTO pending (to_profile_id, skill_id_1, skill_id_2) VALUES (?, ?, ?)`,
		entry.ToProfileID, entry.SkillID1, entry.SkillID2,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue pending entry: %w", err)
	}
	return nil
}

// DrainAll returns a snapshot of the current contents in insertion order.
// Entries enqueued after the snapshot are not part of it.
func (q *PendingQueue) DrainAll() ([]QueuedEntry, error) {
	rows, err := q.db.Query(`SELECT key, to_profile_id, skill_id_1, skill_id_2 FROM pending ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending entries: %w", err)
	}
	defer rows.Close()

	entries := []QueuedEntry{}
	for rows.Next() {
		var e QueuedEntry
		if err := rows.Scan(&e.Key, &e.ToProfileID, &e.SkillID1, &e.SkillID2); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes the entry with the given key. Removing an absent key is a
// no-op.
func (q *PendingQueue) Remove(key int64) error {
	if _, err := q.db.Exec(`DELETE FROM pending WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove pending entry %d: %w", key, err)
	}
	return nil
}

func (q *PendingQueue) Count() (int, error) {
	var n int
	if err := q.db.QueryRow(`SELECT COUNT(*) FROM pending`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear wipes the queue. Used by the CLI to discard entries the server keeps
// rejecting.
func (q *PendingQueue) Clear() error {
	_, err := q.db.Exec(`DELETE FROM pending`)
	return err
}
