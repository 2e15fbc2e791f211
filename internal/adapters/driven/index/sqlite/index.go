// Package sqlite provides the durable similarity index, persisted to a
// single SQLite database file. Records are held in an in-memory snapshot
// for brute-force cosine-distance search; Persist flushes staged writes
// to disk in one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lucerne-labs/fundreply/internal/adapters/driven/index"
	"github.com/lucerne-labs/fundreply/internal/adapters/driven/index/sqlite/migrations"
	"github.com/lucerne-labs/fundreply/internal/core/domain"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SimilarityIndex = (*Index)(nil)

// Index is a SQLite-backed similarity index.
//
// Upsert stages records in memory; Persist commits every staged record
// in a single transaction, so the last committed batch is the recovery
// point after a crash mid-ingest. Queries run against the in-memory
// snapshot under a readers-writer lock.
type Index struct {
	mu        sync.RWMutex
	db        *sql.DB
	path      string
	dimension int
	records   []domain.IndexedRecord
	byID      map[string]int
	dirty     map[string]struct{}
}

// NewIndex opens the index at the given data directory, creating it when
// absent. A missing database is not an error: it signals "build fresh".
// If dataDir is empty, defaults to ~/.fundreply/data.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".fundreply", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL mode for better concurrency between readers and the writer.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	x := &Index{
		db:    db,
		path:  dbPath,
		byID:  make(map[string]int),
		dirty: make(map[string]struct{}),
	}

	if err := x.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if err := x.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading records: %w", err)
	}

	return x, nil
}

// Path returns the database file path.
func (x *Index) Path() string {
	return x.path
}

// Upsert stages a record, replacing any record with the same ID.
// The first record establishes the index dimensionality; later records
// disagreeing with it fail with domain.ErrDimensionMismatch.
func (x *Index) Upsert(_ context.Context, rec domain.IndexedRecord) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.dimension == 0 {
		if len(rec.Embedding) == 0 {
			return fmt.Errorf("%w: record %s has empty embedding", domain.ErrDimensionMismatch, rec.ID)
		}
		x.dimension = len(rec.Embedding)
	}
	if len(rec.Embedding) != x.dimension {
		return fmt.Errorf("%w: record %s has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, rec.ID, len(rec.Embedding), x.dimension)
	}

	if pos, ok := x.byID[rec.ID]; ok {
		x.records[pos] = rec
	} else {
		x.byID[rec.ID] = len(x.records)
		x.records = append(x.records, rec)
	}
	x.dirty[rec.ID] = struct{}{}
	return nil
}

// Query returns up to k records ordered by ascending cosine distance.
// An empty index yields an empty result, never an error.
func (x *Index) Query(_ context.Context, vector []float32, k int) ([]driven.IndexHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.dimension != 0 && len(vector) != x.dimension {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, len(vector), x.dimension)
	}

	hits := make([]driven.IndexHit, 0, len(x.records))
	for _, rec := range x.records {
		hits = append(hits, driven.IndexHit{
			Record:   rec,
			Distance: index.CosineDistance(vector, rec.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Persist flushes every staged record to storage in one transaction.
// Either the whole batch commits or none of it does; previously
// committed records are never left half-written.
func (x *Index) Persist(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if len(x.dirty) == 0 {
		return nil
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, embedding, payload, metadata)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			embedding = excluded.embedding,
			payload = excluded.payload,
			metadata = excluded.metadata
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for id := range x.dirty {
		rec := x.records[x.byID[id]]

		metadataJSON, err := json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata for %s: %w", id, err)
		}

		if _, err := stmt.ExecContext(ctx, rec.ID, float32SliceToBytes(rec.Embedding),
			rec.Payload, string(metadataJSON)); err != nil {
			return fmt.Errorf("saving record %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	x.dirty = make(map[string]struct{})
	return nil
}

// Len reports the number of records currently indexed.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.records)
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// load restores the in-memory snapshot from storage and re-establishes
// the index dimensionality. Mixed dimensionalities in storage are a
// fatal configuration error.
func (x *Index) load() error {
	rows, err := x.db.Query(`SELECT id, embedding, payload, metadata FROM records ORDER BY created_at, id`)
	if err != nil {
		return fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec          domain.IndexedRecord
			blob         []byte
			metadataJSON string
		)
		if err := rows.Scan(&rec.ID, &blob, &rec.Payload, &metadataJSON); err != nil {
			return fmt.Errorf("scanning record: %w", err)
		}
		rec.Embedding = bytesToFloat32Slice(blob)

		if metadataJSON != "" && metadataJSON != "null" {
			if err := json.Unmarshal([]byte(metadataJSON), &rec.Metadata); err != nil {
				return fmt.Errorf("unmarshalling metadata for %s: %w", rec.ID, err)
			}
		}

		if x.dimension == 0 {
			x.dimension = len(rec.Embedding)
		} else if len(rec.Embedding) != x.dimension {
			return fmt.Errorf("%w: stored record %s has %d dimensions, index has %d",
				domain.ErrConfiguration, rec.ID, len(rec.Embedding), x.dimension)
		}

		x.byID[rec.ID] = len(x.records)
		x.records = append(x.records, rec)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating records: %w", err)
	}
	return nil
}

// migrate applies any pending .up.sql migrations from the embedded FS.
func (x *Index) migrate(fsys embed.FS) error {
	_, err := x.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := x.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := x.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := x.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts a []float32 to a little-endian byte slice
// for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
