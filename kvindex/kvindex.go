// Package kvindex demonstrates the codec's reason for existing: a
// structural index over github.com/cockroachdb/pebble, keyed by tuplekey
// encodings, so range scans over a composite prefix become plain pebble
// iteration with no bespoke indexing logic in the store.
package kvindex

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"

	"github.com/chaisql/tuplekey"
	"github.com/chaisql/tuplekey/value"
)

// Comparer is a pebble.Comparer built on tuplekey's byte order. Since
// Compare is a plain unsigned bytewise comparison, this is equivalent to
// pebble's own DefaultComparer; it is wired in explicitly so the index's
// ordering guarantee is documented in terms of tuplekey rather than
// pebble's default, and so a future non-bytewise comparator swap-in only
// has to change this one place.
var Comparer = &pebble.Comparer{
	Compare:        tuplekey.Compare,
	Equal:          func(a, b []byte) bool { return tuplekey.Compare(a, b) == 0 },
	AbbreviatedKey: pebble.DefaultComparer.AbbreviatedKey,
	FormatKey:      pebble.DefaultComparer.FormatKey,
	Separator:      pebble.DefaultComparer.Separator,
	Successor:      pebble.DefaultComparer.Successor,
	Name:           "tuplekey.BytewiseComparator",
}

// Options configures Open.
type Options struct {
	// MaxDepth bounds composite nesting for every key encoded through this
	// index. Zero means tuplekey.DefaultMaxDepth.
	MaxDepth int
}

// Index wraps a pebble database whose keys are tuplekey encodings.
type Index struct {
	db   *pebble.DB
	opts tuplekey.Options
}

// Open opens (or creates) a pebble database at path with tuplekey's
// comparer installed. Pass an *pebble.Options with FS set to
// vfs.NewMem() for an in-memory instance.
func Open(path string, popts *pebble.Options, opts Options) (*Index, error) {
	if popts == nil {
		popts = &pebble.Options{}
	}
	if popts.Comparer == nil {
		popts.Comparer = Comparer
	}

	db, err := pebble.Open(path, popts)
	if err != nil {
		return nil, errors.Wrap(err, "kvindex: open")
	}

	return &Index{db: db, opts: tuplekey.Options{MaxDepth: opts.MaxDepth}}, nil
}

// Close closes the underlying database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Put encodes key and stores it with the given value.
func (idx *Index) Put(key value.Value, val []byte) error {
	k, err := tuplekey.EncodeWithOptions(key, idx.opts)
	if err != nil {
		return err
	}
	return idx.db.Set(k, val, nil)
}

// Get encodes key and looks it up. It returns pebble.ErrNotFound if absent.
func (idx *Index) Get(key value.Value) ([]byte, error) {
	k, err := tuplekey.EncodeWithOptions(key, idx.opts)
	if err != nil {
		return nil, err
	}
	v, closer, err := idx.db.Get(k)
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), v...)
	return out, closer.Close()
}

// Entry is one key/value pair returned by a range scan.
type Entry struct {
	Key   value.Value
	Value []byte
}

// ScanPrefix returns every entry whose key is a LIST beginning with the
// given leading elements, in the codec's order. It builds a half-open range
// [prefix, prefix ++ HIGH) so that both a key equal to the prefix (if
// stored as its own entry) and every key that extends it are included.
func (idx *Index) ScanPrefix(leading []value.Value) ([]Entry, error) {
	lower, err := tuplekey.EncodeListPrefix(leading)
	if err != nil {
		return nil, err
	}
	upper := append(append([]byte(nil), lower...), tuplekey.HighByte)

	it := idx.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	defer it.Close()

	var entries []Entry
	for it.First(); it.Valid(); it.Next() {
		k, err := tuplekey.DecodeWithOptions(append([]byte(nil), it.Key()...), idx.opts)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Key:   k,
			Value: append([]byte(nil), it.Value()...),
		})
	}
	return entries, it.Error()
}
