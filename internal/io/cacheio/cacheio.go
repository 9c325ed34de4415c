// Package cacheio implements cache.Cache with a badger key-value store.
package cacheio

import (
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v2"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/gnames/ithtable/internal/ent/cache"
	"github.com/gnames/ithtable/internal/ent/ith"
)

type cacheio struct {
	dir string
	kv  *badger.DB
	enc gnfmt.Encoder
}

// New returns a new instance of cache.Cache kept in dir. If reset is
// true, previous content of the directory is removed.
func New(dir string, reset bool) (cache.Cache, error) {
	res := cacheio{
		dir: dir,
		enc: gnfmt.GNgob{},
	}

	err := gnsys.MakeDir(dir)
	if err != nil {
		slog.Error("Cannot create directory", "error", err, "dir", dir)
		return nil, err
	}

	if reset {
		err = gnsys.CleanDir(dir)
		if err != nil {
			slog.Error("Cannot reset cache", "error", err, "dir", dir)
			return nil, err
		}
	}

	return &res, nil
}

// Open opens a key-value store.
func (c *cacheio) Open() error {
	if c.kv != nil {
		slog.Warn("Cache is already open")
		return nil
	}
	options := badger.DefaultOptions(c.dir)
	options.Logger = nil

	bdb, err := badger.Open(options)
	if err != nil {
		return err
	}
	c.kv = bdb
	return nil
}

// Close closes a key-value store.
func (c *cacheio) Close() error {
	if c.kv == nil {
		slog.Warn("Cache is not open")
		return nil
	}
	err := c.kv.Close()
	c.kv = nil
	return err
}

// Get returns a summary saved under a key.
func (c *cacheio) Get(key string) (ith.Summary, bool, error) {
	var res ith.Summary
	if c.kv == nil {
		return res, false, errors.New("cache is not open")
	}
	var val []byte
	err := c.kv.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return res, false, nil
	}
	if err != nil {
		return res, false, err
	}
	err = c.enc.Decode(val, &res)
	if err != nil {
		return res, false, err
	}
	return res, true, nil
}

// Set saves a summary under a key.
func (c *cacheio) Set(key string, s ith.Summary) error {
	if c.kv == nil {
		return errors.New("cache is not open")
	}
	val, err := c.enc.Encode(s)
	if err != nil {
		slog.Error("Cannot encode summary", "error", err)
		return err
	}
	return c.kv.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
}
