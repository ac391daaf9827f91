// Package memdb is an embeddable in-memory key-value store.
//
// Keys and values are arbitrary byte strings. The key space is split across a
// fixed, power-of-two number of shards, each guarded by its own read/write
// lock, so operations on keys in different shards never wait on each other.
// Values are copied on the way in and on the way out.
//
//	db, _ := memdb.Open(ctx)
//	_, _, _ = db.Set(ctx, []byte("beep"), []byte("boop"))
//	val, ok, _ := db.Get(ctx, []byte("beep"))
//
// Methods take a context and return an error only to share call shapes with
// I/O-backed stores. Nothing blocks beyond a brief shard lock and the returned
// error is always nil.
package memdb
