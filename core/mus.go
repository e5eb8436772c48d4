package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the records persisted in storage. Written by hand in
// the library's serializer form; timestamps travel as Unix microseconds.
var (
	CacheEntryMUS = cacheEntryMUS{}
	CheckpointMUS = checkpointMUS{}
)

var (
	_ mus.Serializer[CacheEntry] = CacheEntryMUS
	_ mus.Serializer[Checkpoint] = CheckpointMUS
)

type cacheEntryMUS struct{}

func (cacheEntryMUS) Marshal(v CacheEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Token, bs)
	n += ord.String.Marshal(v.Output, bs[n:])
	n += varint.Int64.Marshal(v.InsertedAt.UnixMicro(), bs[n:])
	return n
}

func (cacheEntryMUS) Unmarshal(bs []byte) (v CacheEntry, n int, err error) {
	v.Token, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Output, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt = time.UnixMicro(micros).UTC()
	return
}

func (cacheEntryMUS) Size(v CacheEntry) (size int) {
	size = ord.String.Size(v.Token)
	size += ord.String.Size(v.Output)
	return size + varint.Int64.Size(v.InsertedAt.UnixMicro())
}

func (cacheEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.Source, bs)
	n += varint.Int64.Marshal(v.LastBatch, bs[n:])
	n += varint.Int64.Marshal(v.RecordsDone, bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	v.Source, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.LastBatch, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RecordsDone, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (checkpointMUS) Size(v Checkpoint) (size int) {
	size = ord.String.Size(v.Source)
	size += varint.Int64.Size(v.LastBatch)
	size += varint.Int64.Size(v.RecordsDone)
	return size + varint.Int64.Size(v.UpdatedAt.UnixMicro())
}

func (checkpointMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	for range 3 {
		n1, err = varint.Int64.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
