package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

// Badger is the persistent backend. The sdk.State interface has no error
// returns, so the first failure is kept and reported through Err; the host
// checks it before committing an invocation.
type Badger struct {
	db     *badger.DB
	logger *zap.Logger

	mu  sync.Mutex
	err error
}

// OpenBadger opens (or creates) the db under dir. inMemory ignores dir.
// Example payload: store.OpenBadger("/var/lib/govlock/data", false, logger)
func OpenBadger(dir string, inMemory bool, logger *zap.Logger) (*Badger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(&badgerLogger{logger: logger.Sugar()})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}
	logger.Info("badger store opened", zap.String("dir", dir), zap.Bool("in_memory", inMemory))
	return &Badger{db: db, logger: logger}, nil
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// Err returns the first read or write failure seen by this store.
func (b *Badger) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

func (b *Badger) fail(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		b.err = fmt.Errorf("badger %s: %w", op, err)
	}
	b.logger.Error("badger operation failed", zap.String("op", op), zap.Error(err))
}

func (b *Badger) Get(key string) *string {
	var out *string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		s := string(val)
		out = &s
		return nil
	})
	if err != nil {
		b.fail("get", err)
		return nil
	}
	return out
}

func (b *Badger) Set(key, value string) {
	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	}); err != nil {
		b.fail("set", err)
	}
}

func (b *Badger) Delete(key string) {
	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	}); err != nil {
		b.fail("delete", err)
	}
}

// Iterate snapshots the matching pairs inside one read txn and then calls fn
// outside of it, so fn is free to read the store again.
func (b *Badger) Iterate(prefix string, reverse bool, fn func(key, value string) bool) {
	type kv struct{ k, v string }
	var pairs []kv
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			pairs = append(pairs, kv{k: string(item.KeyCopy(nil)), v: string(val)})
		}
		return nil
	})
	if err != nil {
		b.fail("iterate", err)
		return
	}
	if reverse {
		for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
			pairs[i], pairs[j] = pairs[j], pairs[i]
		}
	}
	for _, p := range pairs {
		if !fn(p.k, p.v) {
			return
		}
	}
}

// ApplyBatch writes every op in a single transaction, so a committed
// invocation is either fully on disk or not at all.
func (b *Badger) ApplyBatch(ops []Op) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		for _, op := range ops {
			var err error
			if op.Value == nil {
				err = txn.Delete([]byte(op.Key))
			} else {
				err = txn.Set([]byte(op.Key), []byte(*op.Value))
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger batch of %d ops: %w", len(ops), err)
	}
	return nil
}

// badgerLogger routes badger's own logs into zap.
type badgerLogger struct {
	logger *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Errorf("[badger] "+format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warnf("[badger] "+format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Infof("[badger] "+format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debugf("[badger] "+format, args...)
}
