/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/named-data/ndnwire/core"
	"github.com/named-data/ndnwire/ndn"
	"github.com/named-data/ndnwire/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeData(t *testing.T, uri string, freshness time.Duration) *ndn.Data {
	name, err := ndn.NameFromString(uri)
	require.NoError(t, err)
	d := ndn.NewData(name, []byte(uri))
	require.NotNil(t, d)
	if freshness > 0 {
		d.SetFreshnessPeriod(freshness)
	}
	_, err = d.Sign()
	require.NoError(t, err)
	return d
}

func TestDataStoreInsertAndFind(t *testing.T) {
	store, err := table.NewDataStore(8)
	require.NoError(t, err)
	defer store.Close()

	d := makeData(t, "/ndn/edu/a", time.Minute)
	assert.NoError(t, store.Insert(d))
	assert.Equal(t, 1, store.Len())

	found := store.Find(d.Name(), false)
	require.NotNil(t, found)
	assert.True(t, d.Name().Equals(found.Name()))
	assert.Equal(t, d.Content(), found.Content())

	// Still within its freshness period
	assert.NotNil(t, store.Find(d.Name(), true))

	other, _ := ndn.NameFromString("/ndn/edu/b")
	assert.Nil(t, store.Find(other, false))
}

func TestDataStoreFreshness(t *testing.T) {
	store, err := table.NewDataStore(8)
	require.NoError(t, err)
	defer store.Close()

	// No freshness period: immediately stale
	d := makeData(t, "/ndn/edu/stale", 0)
	assert.NoError(t, store.Insert(d))
	assert.Nil(t, store.Find(d.Name(), true))
	assert.NotNil(t, store.Find(d.Name(), false))
}

func TestDataStoreReplace(t *testing.T) {
	store, err := table.NewDataStore(8)
	require.NoError(t, err)
	defer store.Close()

	name := "/ndn/edu/replace"
	first := makeData(t, name, time.Minute)
	assert.NoError(t, store.Insert(first))

	second := makeData(t, name, time.Minute)
	second.SetContent([]byte("updated"))
	_, err = second.Sign()
	require.NoError(t, err)
	assert.NoError(t, store.Insert(second))

	assert.Equal(t, 1, store.Len())
	found := store.Find(first.Name(), false)
	require.NotNil(t, found)
	assert.Equal(t, []byte("updated"), found.Content())
}

func TestDataStoreEviction(t *testing.T) {
	store, err := table.NewDataStore(4)
	require.NoError(t, err)
	defer store.Close()

	var names []*ndn.Name
	for i := 0; i < 6; i++ {
		d := makeData(t, "/ndn/edu/"+strconv.Itoa(i), time.Minute)
		assert.NoError(t, store.Insert(d))
		names = append(names, d.Name())
		time.Sleep(2 * time.Millisecond)
	}

	assert.Equal(t, 4, store.Len())
	// The two oldest entries were evicted
	assert.Nil(t, store.Find(names[0], false))
	assert.Nil(t, store.Find(names[1], false))
	assert.NotNil(t, store.Find(names[5], false))
}

func TestDataStoreFromConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ndnwire.toml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("[store]\ncapacity = 2\nadmit_stale = false\n"), 0o644))
	core.LoadConfig(configPath)

	store, err := table.NewDataStoreFromConfig()
	require.NoError(t, err)
	defer store.Close()

	// Packets without a freshness period are not admitted
	stale := makeData(t, "/ndn/edu/config/stale", 0)
	assert.NoError(t, store.Insert(stale))
	assert.Equal(t, 0, store.Len())
	assert.Nil(t, store.Find(stale.Name(), false))

	// Capacity bound comes from the configuration
	for i := 0; i < 3; i++ {
		assert.NoError(t, store.Insert(makeData(t, "/ndn/edu/config/"+strconv.Itoa(i), time.Minute)))
	}
	assert.Equal(t, 2, store.Len())
}

func TestDataStoreErase(t *testing.T) {
	store, err := table.NewDataStore(8)
	require.NoError(t, err)
	defer store.Close()

	d := makeData(t, "/ndn/edu/erase", time.Minute)
	assert.NoError(t, store.Insert(d))
	assert.True(t, store.Erase(d.Name()))
	assert.False(t, store.Erase(d.Name()))
	assert.Nil(t, store.Find(d.Name(), false))
	assert.Equal(t, 0, store.Len())
}
