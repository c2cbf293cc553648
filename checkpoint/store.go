// SPDX-License-Identifier: MIT

package checkpoint

import (
	"encoding/binary"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/tcrdist/sparsify"
)

// keyPrefix namespaces block records; the full key is
// keyPrefix | RunID | uint64 block index (big-endian).
const keyPrefix = "blk/"

// Store is a badger-backed block cache. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	return open(opts)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open badger db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func runPrefix(run RunID) []byte {
	p := make([]byte, 0, len(keyPrefix)+len(run))
	p = append(p, keyPrefix...)

	return append(p, run[:]...)
}

func blockKey(run RunID, block int) []byte {
	return binary.BigEndian.AppendUint64(runPrefix(run), uint64(block))
}

// Load returns the edges stored for (run, block). The boolean is false when
// no record exists.
//
// Errors:
//   - ErrBlockIndex for a negative block.
//   - ErrCorrupt when the record fails its checksum or does not decode.
func (s *Store) Load(run RunID, block int) ([]sparsify.Edge, bool, error) {
	if block < 0 {
		return nil, false, fmt.Errorf("%w: %d", ErrBlockIndex, block)
	}
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(blockKey(run, block))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("checkpoint: load block %d: %w", block, err)
	}
	edges, err := decodeEdges(val)
	if err != nil {
		return nil, false, fmt.Errorf("checkpoint: block %d: %w", block, err)
	}

	return edges, true, nil
}

// Save stores the edges of (run, block), replacing any previous record.
func (s *Store) Save(run RunID, block int, edges []sparsify.Edge) error {
	if block < 0 {
		return fmt.Errorf("%w: %d", ErrBlockIndex, block)
	}
	val := encodeEdges(edges)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(blockKey(run, block), val)
	})
	if err != nil {
		return fmt.Errorf("checkpoint: save block %d: %w", block, err)
	}

	return nil
}

// Blocks returns the indices of stored blocks for run in ascending order.
func (s *Store) Blocks(run RunID) ([]int, error) {
	prefix := runPrefix(run)
	var out []int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().Key()
			out = append(out, int(binary.BigEndian.Uint64(k[len(prefix):])))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checkpoint: list blocks: %w", err)
	}

	return out, nil
}

// Purge drops every block of run.
func (s *Store) Purge(run RunID) error {
	if err := s.db.DropPrefix(runPrefix(run)); err != nil {
		return fmt.Errorf("checkpoint: purge %s: %w", run, err)
	}

	return nil
}
