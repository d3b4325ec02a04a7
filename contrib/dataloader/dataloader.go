// Package dataloader batches lookups of rows by key into WhereIn queries.
//
// # Basic Usage
//
//	load := dataloader.Rows[int64](func() *sql.Query {
//	    return client.Use("users")
//	}, "id", 100)
//	users, errs := load(ctx, []int64{3, 1, 2})
//	// users[i] is the row whose id is keys[i]; errs[i] is ErrNotFound if missing.
//
// The generic helpers (OrderByKeys, GroupByKey, OrderGroupsByKeys) work on
// any value type and can be used with rows loaded by other means.
package dataloader

import (
	"context"
	"errors"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/mysqlb/dialect/sql"
)

// ErrNotFound is returned for a key that matched no row.
var ErrNotFound = errors.New("dataloader: row not found")

// DefaultWorkers is the number of chunk queries Rows runs at a time.
const DefaultWorkers = 4

// KeyFunc extracts a key from a value.
type KeyFunc[K comparable, V any] func(V) K

// BatchFunc loads the values of a batch of keys. The returned slices have
// the length and order of keys.
type BatchFunc[K comparable, V any] func(ctx context.Context, keys []K) ([]V, []error)

// OrderByKeys reorders values to match the order of keys. Missing values
// are zero values with ErrNotFound at the same index.
func OrderByKeys[K comparable, V any](keys []K, values []V, keyFn KeyFunc[K, V]) ([]V, []error) {
	lookup := make(map[K]V, len(values))
	for _, v := range values {
		lookup[keyFn(v)] = v
	}
	result := make([]V, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		if v, ok := lookup[key]; ok {
			result[i] = v
		} else {
			errs[i] = ErrNotFound
		}
	}
	return result, errs
}

// GroupByKey groups values by key, e.g. child rows by their foreign key.
func GroupByKey[K comparable, V any](values []V, keyFn KeyFunc[K, V]) map[K][]V {
	result := make(map[K][]V)
	for _, v := range values {
		key := keyFn(v)
		result[key] = append(result[key], v)
	}
	return result
}

// OrderGroupsByKeys returns groups[keys[i]] at index i.
func OrderGroupsByKeys[K comparable, V any](keys []K, groups map[K][]V) [][]V {
	result := make([][]V, len(keys))
	for i, key := range keys {
		result[i] = groups[key]
	}
	return result
}

// RowKey returns a KeyFunc reading column from a row. A table qualifier in
// column is ignored. Rows whose value is not a K yield the zero K.
func RowKey[K comparable](column string) KeyFunc[K, sql.Row] {
	if i := strings.LastIndexByte(column, '.'); i >= 0 {
		column = column[i+1:]
	}
	return func(r sql.Row) K {
		k, _ := r[column].(K)
		return k
	}
}

// Rows returns a BatchFunc that loads the rows whose column is one of the
// keys. Keys are split into chunks of at most size (all keys when size is
// not positive) and every chunk is loaded with its own WhereIn query on a
// fresh query from newQuery, DefaultWorkers chunks at a time.
//
// K must match the Go type the driver returns for column (int64 for integer
// columns).
func Rows[K comparable](newQuery func() *sql.Query, column string, size int) BatchFunc[K, sql.Row] {
	keyFn := RowKey[K](column)
	return func(ctx context.Context, keys []K) ([]sql.Row, []error) {
		if len(keys) == 0 {
			return nil, nil
		}
		n := size
		if n <= 0 {
			n = len(keys)
		}
		chunks := slices.Collect(slices.Chunk(keys, n))
		found := make([][]sql.Row, len(chunks))
		eg, ctx := errgroup.WithContext(ctx)
		eg.SetLimit(DefaultWorkers)
		for i, chunk := range chunks {
			eg.Go(func() error {
				values := make([]any, len(chunk))
				for j, k := range chunk {
					values[j] = k
				}
				rows, err := newQuery().WhereIn(column, values...).Get(ctx)
				if err != nil {
					return err
				}
				found[i] = rows
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			errs := make([]error, len(keys))
			for i := range errs {
				errs[i] = err
			}
			return make([]sql.Row, len(keys)), errs
		}
		return OrderByKeys(keys, slices.Concat(found...), keyFn)
	}
}
