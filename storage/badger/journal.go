// Copyright 2025 The Butler Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package badger implements storage.ShardJournal over BadgerDB.
package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/theMladyPan/butler/core"
	"github.com/theMladyPan/butler/storage"
)

const shardKeyPrefix = "shard:"

// Journal persists knowledge shards keyed by point id.
type Journal struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ storage.ShardJournal = (*Journal)(nil)

// badgerLoggerAdapter adapts slog.Logger to the badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenJournal opens a shard journal at the given directory, creating it if
// needed. Returns the storage.ShardJournal interface.
func OpenJournal(dirPath string) (storage.ShardJournal, error) {
	return openJournal(dirPath, false)
}

// OpenMemoryJournal opens an in-memory journal for tests and local runs.
func OpenMemoryJournal() (storage.ShardJournal, error) {
	return openJournal("", true)
}

func openJournal(dirPath string, inMemory bool) (*Journal, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(dirPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if err := os.MkdirAll(dirPath, 0o755); err != nil {
				return nil, err
			}
			info, err = os.Stat(dirPath)
			if err != nil {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dirPath)
		}
		opts = badger.DefaultOptions(dirPath)
	}

	logger := slog.Default().With("component", "journal")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Journal{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record persists one shard under its point id, overwriting any previous
// entry for the same id.
func (j *Journal) Record(ctx context.Context, id core.ID, shard core.KnowledgeShard) error {
	value, err := json.Marshal(shard)
	if err != nil {
		return fmt.Errorf("encode shard %d: %w: %w", id, storage.ErrSerializationFailed, err)
	}

	err = j.db.Update(func(tx *badger.Txn) error {
		return tx.Set(makeShardKey(id), value)
	})
	if err != nil {
		if errors.Is(err, badger.ErrDBClosed) {
			return fmt.Errorf("record shard %d: %w", id, storage.ErrStorageClosed)
		}
		return fmt.Errorf("record shard %d: %w", id, err)
	}
	return nil
}

// Get retrieves a shard by point id.
func (j *Journal) Get(ctx context.Context, id core.ID) (core.KnowledgeShard, error) {
	var shard core.KnowledgeShard

	err := j.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeShardKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &shard)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return core.KnowledgeShard{}, fmt.Errorf("shard %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return core.KnowledgeShard{}, fmt.Errorf("get shard %d: %w", id, err)
	}
	return shard, nil
}

// Replay invokes fn for every journaled shard.
func (j *Journal) Replay(ctx context.Context, fn func(id core.ID, shard core.KnowledgeShard) error) error {
	return j.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(shardKeyPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			id, err := shardIDFromKey(item.Key())
			if err != nil {
				return err
			}

			var shard core.KnowledgeShard
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &shard)
			})
			if err != nil {
				return fmt.Errorf("decode shard %d: %w: %w", id, storage.ErrSerializationFailed, err)
			}

			if err := fn(id, shard); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of journaled shards.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var count int
	err := j.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(shardKeyPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count shards: %w", err)
	}
	return count, nil
}

// makeShardKey builds the key for a shard record. The id is encoded
// BigEndian so keys sort by id.
func makeShardKey(id core.ID) []byte {
	buf := make([]byte, len(shardKeyPrefix)+8)
	offset := copy(buf, shardKeyPrefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

func shardIDFromKey(key []byte) (core.ID, error) {
	if len(key) != len(shardKeyPrefix)+8 {
		return 0, fmt.Errorf("malformed shard key %q", key)
	}
	return core.ID(binary.BigEndian.Uint64(key[len(shardKeyPrefix):])), nil
}
