package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/unchase/contracts-unit0/common"
)

const checkerPath = "../balancechecker"

func newCheckerInvoker(t *testing.T) (*neotest.ContractInvoker, *neotest.Executor) {
	e := newExecutor(t)
	ctr := neotest.CompileFile(t, e.CommitteeHash, checkerPath, path.Join(checkerPath, "config.yml"))
	e.DeployContract(t, ctr, nil)
	return e.CommitteeInvoker(ctr.Hash), e
}

func TestCheckerVersion(t *testing.T) {
	c, _ := newCheckerInvoker(t)
	c.Invoke(t, common.Version, "version")
}

func TestNativeBalances(t *testing.T) {
	c, e := newCheckerInvoker(t)

	accA := c.NewAccount(t)
	accB := c.NewAccount(t)
	hashA := accA.ScriptHash()
	hashB := accB.ScriptHash()

	balA := e.Chain.GetUtilityTokenBalance(hashA).Int64()
	balB := e.Chain.GetUtilityTokenBalance(hashB).Int64()

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(balA),
		stackitem.Make(balB),
		stackitem.Make(0),
	}), "nativeBalances", []any{hashA, hashB, util.Uint160{}})
}

func TestTokenBalances(t *testing.T) {
	c, e := newCheckerInvoker(t)

	acc := c.NewAccount(t)
	hash := acc.ScriptHash()
	bal := e.Chain.GetUtilityTokenBalance(hash).Int64()

	gasHash, err := e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(bal),
		stackitem.Make(0),
	}), "tokenBalances", gasHash, []any{hash, util.Uint160{}})
}
