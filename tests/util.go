package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

// intStack reads an invocation result as a slice of integers without
// insisting on the exact stack item types the VM chose for them.
func intStack(t *testing.T, stack *vm.Stack, err error) []int64 {
	require.NoError(t, err)
	items, ok := stack.Pop().Value().([]stackitem.Item)
	require.True(t, ok)

	res := make([]int64, len(items))
	for i := range items {
		v, err := items[i].TryInteger()
		require.NoError(t, err)
		res[i] = v.Int64()
	}
	return res
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}
