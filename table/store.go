/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/Link512/stealthpool"
	"github.com/cespare/xxhash"
	"github.com/cornelk/hashmap"
	"github.com/named-data/ndnwire/core"
	"github.com/named-data/ndnwire/ndn"
	"github.com/named-data/ndnwire/ndn/tlv"
	"github.com/named-data/ndnwire/utils/comparison"
)

// MaxPacketSize is the maximum size of an NDN packet in bytes.
const MaxPacketSize = 8800

// DataStore is a concurrent store of encoded Data packets indexed by name. Entries become
// stale once their freshness period elapses; packets without a freshness period are
// immediately stale.
type DataStore struct {
	entries    *hashmap.HashMap
	pool       *stealthpool.Pool
	capacity   int
	admitStale bool
}

type storeEntry struct {
	name       *ndn.Name
	wire       []byte
	pooled     []byte // block to return to the pool, nil if heap-allocated
	staleAt    time.Time
	insertedAt time.Time
}

// NewDataStore creates a DataStore holding at most capacity packets, with packet buffers
// served from an off-heap pool.
func NewDataStore(capacity int) (*DataStore, error) {
	s := new(DataStore)
	s.capacity = comparison.Max(capacity, 1)
	s.admitStale = true
	pool, err := stealthpool.New(s.capacity, stealthpool.WithBlockSize(MaxPacketSize))
	if err != nil {
		return nil, err
	}
	s.pool = pool
	s.entries = &hashmap.HashMap{}
	return s, nil
}

// NewDataStoreFromConfig creates a DataStore configured from the loaded configuration:
// capacity from store.capacity and admission of immediately stale packets (those without a
// freshness period) from store.admit_stale.
func NewDataStoreFromConfig() (*DataStore, error) {
	s, err := NewDataStore(core.GetConfigIntDefault("store.capacity", 1024))
	if err != nil {
		return nil, err
	}
	s.admitStale = core.GetConfigBoolDefault("store.admit_stale", true)
	return s, nil
}

func (s *DataStore) String() string {
	return "DataStore"
}

func nameHash(name *ndn.Name) uint64 {
	return xxhash.Sum64String(name.String())
}

// Len returns the number of packets in the store.
func (s *DataStore) Len() int {
	return s.entries.Len()
}

// Insert adds a Data packet to the store, replacing any packet with the same name. The packet
// is encoded on insertion and must already be signed.
func (s *DataStore) Insert(data *ndn.Data) error {
	wire, err := data.Encode()
	if err != nil {
		return err
	}

	entry := new(storeEntry)
	entry.name = data.Name().DeepCopy()
	entry.insertedAt = time.Now()
	entry.staleAt = entry.insertedAt
	if data.MetaInfo() != nil && data.MetaInfo().FreshnessPeriod() != nil {
		entry.staleAt = entry.insertedAt.Add(*data.MetaInfo().FreshnessPeriod())
	} else if !s.admitStale {
		core.LogTrace(s, "Not admitting immediately stale "+data.Name().String())
		return nil
	}

	if len(wire) <= MaxPacketSize {
		if block, err := s.pool.Get(); err == nil {
			n := copy(block, wire)
			entry.wire = block[:n]
			entry.pooled = block
		}
	}
	if entry.wire == nil {
		// Pool exhausted or packet oversized
		entry.wire = make([]byte, len(wire))
		copy(entry.wire, wire)
	}

	hash := nameHash(data.Name())
	if existing, ok := s.entries.Get(hash); ok {
		s.release(existing.(*storeEntry))
	} else {
		for s.entries.Len() >= s.capacity {
			s.evictOldest()
		}
	}
	s.entries.Set(hash, entry)
	core.LogTrace(s, "Inserted "+data.Name().String())
	return nil
}

// Find returns the Data packet with the specified name, or nil if none is present. If
// mustBeFresh is set, stale packets are not returned.
func (s *DataStore) Find(name *ndn.Name, mustBeFresh bool) *ndn.Data {
	valRaw, ok := s.entries.Get(nameHash(name))
	if !ok {
		return nil
	}
	entry := valRaw.(*storeEntry)
	if !entry.name.Equals(name) {
		// Hash collision
		return nil
	}
	if mustBeFresh && !time.Now().Before(entry.staleAt) {
		return nil
	}

	block, _, err := tlv.DecodeBlock(entry.wire)
	if err != nil {
		core.LogWarn(s, "Corrupt entry for "+name.String())
		return nil
	}
	data, err := ndn.DecodeData(block, false)
	if err != nil {
		core.LogWarn(s, "Corrupt entry for "+name.String())
		return nil
	}
	return data
}

// Erase removes the Data packet with the specified name from the store, returning whether a
// packet was removed.
func (s *DataStore) Erase(name *ndn.Name) bool {
	hash := nameHash(name)
	valRaw, ok := s.entries.Get(hash)
	if !ok {
		return false
	}
	entry := valRaw.(*storeEntry)
	if !entry.name.Equals(name) {
		return false
	}
	s.release(entry)
	s.entries.Del(hash)
	return true
}

// Close releases all packet buffers held by the store.
func (s *DataStore) Close() error {
	for kv := range s.entries.Iter() {
		s.release(kv.Value.(*storeEntry))
		s.entries.Del(kv.Key)
	}
	return s.pool.Close()
}

func (s *DataStore) evictOldest() {
	var oldestKey interface{}
	var oldestEntry *storeEntry
	for kv := range s.entries.Iter() {
		entry := kv.Value.(*storeEntry)
		if oldestEntry == nil || entry.insertedAt.Before(oldestEntry.insertedAt) {
			oldestKey = kv.Key
			oldestEntry = entry
		}
	}
	if oldestEntry == nil {
		return
	}
	s.release(oldestEntry)
	s.entries.Del(oldestKey)
	core.LogDebug(s, "Evicted "+oldestEntry.name.String())
}

func (s *DataStore) release(entry *storeEntry) {
	if entry.pooled != nil {
		s.pool.Return(entry.pooled)
		entry.pooled = nil
	}
}
