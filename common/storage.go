package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// GetList returns a deserialized list of byte slices stored under the
// given key, or an empty list if nothing is stored.
func GetList(ctx storage.Context, key interface{}) [][]byte {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).([][]byte)
	}

	return [][]byte{}
}

// GetIntList returns a deserialized list of integers stored under the
// given key, or an empty list if nothing is stored.
func GetIntList(ctx storage.Context, key interface{}) []int {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).([]int)
	}

	return []int{}
}

// GetInt returns an integer stored under the given key, zero if
// nothing is stored.
func GetInt(ctx storage.Context, key interface{}) int {
	data := storage.Get(ctx, key)
	if data == nil {
		return 0
	}

	return data.(int)
}

// SetSerialized serializes data and puts it into contract storage.
func SetSerialized(ctx storage.Context, key interface{}, value interface{}) {
	data := std.Serialize(value)
	storage.Put(ctx, key, data)
}
