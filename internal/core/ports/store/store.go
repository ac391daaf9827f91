package store

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNoSuchKey     = errors.New("no such key")
	ErrKeyTooLarge   = errors.New("key too large")
	ErrValueTooLarge = errors.New("value too large")
)

//go:generate mockery
type Store interface {
	StartMapRebuilder(ctx context.Context, wg *sync.WaitGroup)
	// Put returns the value it replaced, if any.
	Put(key, value []byte) (prev []byte, replaced bool, err error)
	Get(key []byte) ([]byte, error)
	// Delete returns the removed value or ErrNoSuchKey.
	Delete(key []byte) ([]byte, error)
	Len() int
	ShardsCount() int
}
