/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package rowstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/interfaces"
)

// Bolt stores each table in its own bucket. Keys are big-endian sequence
// numbers so that cursor order is row order; values are JSON encoded rows.
type Bolt struct {
	mu     sync.RWMutex
	db     *bbolt.DB
	path   string
	logger interfaces.Logger
}

// Ensure Bolt implements the interfaces
var _ Store = (*Bolt)(nil)
var _ Rewriter = (*Bolt)(nil)
var _ Pinger = (*Bolt)(nil)

// OpenBolt opens (or creates) a Bolt DB at the specified path
func OpenBolt(filePath string, logger interfaces.Logger) (*Bolt, error) {
	logger.Info(4101, "opening bolt store", fields.NewFields(fields.NewField("path", filePath)))

	// The timeout allows Bolt to wait if the file is locked by another process
	db, err := bbolt.Open(filePath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w: %w", ErrStoreUnavailable, err)
	}
	return &Bolt{db: db, path: filePath, logger: logger}, nil
}

// Close the database. Further operations return ErrStoreUnavailable.
func (b *Bolt) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

func (b *Bolt) Ping(_ context.Context) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.db == nil {
		return "", Unavailable("ping", b.path, errors.New("closed"))
	}
	return "bolt:" + b.path, nil
}

func (b *Bolt) Read(ctx context.Context, table string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.db == nil {
		return nil, Unavailable("read", table, errors.New("closed"))
	}

	var rows [][]string
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var row []string
			if err := json.Unmarshal(v, &row); err != nil {
				return fmt.Errorf("failed to deserialize row: %w", err)
			}
			rows = append(rows, row)
			return nil
		})
	})
	return rows, err
}

func (b *Bolt) Append(ctx context.Context, table string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.db == nil {
		return Unavailable("append", table, errors.New("closed"))
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(table))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", table, err)
		}
		for _, row := range rows {
			if err = putRow(bucket, row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Bolt) UpdateCell(ctx context.Context, table string, row, col int, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if row < 0 || col < 0 {
		return fmt.Errorf("invalid cell %d,%d", row, col)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.db == nil {
		return Unavailable("update", table, errors.New("closed"))
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return fmt.Errorf("table %s not found", table)
		}

		c := bucket.Cursor()
		k, v := c.First()
		for i := 0; k != nil && i < row; i++ {
			k, v = c.Next()
		}
		if k == nil {
			return fmt.Errorf("row %d not found in %s", row, table)
		}

		var cells []string
		if err := json.Unmarshal(v, &cells); err != nil {
			return fmt.Errorf("failed to deserialize row: %w", err)
		}
		cells = Pad(cells, col+1)
		cells[col] = value

		data, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("failed to serialize row: %w", err)
		}

		// Copy the key, it is only valid for the life of the cursor position
		return bucket.Put(append([]byte(nil), k...), data)
	})
}

// Replace drops the table and writes rows in its place
func (b *Bolt) Replace(ctx context.Context, table string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.db == nil {
		return Unavailable("replace", table, errors.New("closed"))
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(table)) != nil {
			if err := tx.DeleteBucket([]byte(table)); err != nil {
				return err
			}
		}
		bucket, err := tx.CreateBucket([]byte(table))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", table, err)
		}
		for _, row := range rows {
			if err = putRow(bucket, row); err != nil {
				return err
			}
		}
		return nil
	})
}

func putRow(bucket *bbolt.Bucket, row []string) error {
	seq, err := bucket.NextSequence()
	if err != nil {
		return err
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)

	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to serialize row: %w", err)
	}
	return bucket.Put(key, data)
}
