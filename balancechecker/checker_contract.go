package balancechecker

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/unchase/contracts-unit0/common"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}
	runtime.Log("balance checker contract initialized")
}

// Update method updates contract source code and manifest. It can be
// invoked only by committee.
func Update(nefFile, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("balance checker contract updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// NativeBalances returns GAS balances of the given accounts, in the
// same order.
func NativeBalances(accounts []interop.Hash160) []int {
	balances := make([]int, len(accounts))
	for i := 0; i < len(accounts); i++ {
		acc := accounts[i]
		if len(acc) != interop.Hash160Len {
			panic("balances: invalid account")
		}
		balances[i] = gas.BalanceOf(acc)
	}
	return balances
}

// TokenBalances returns balances of the given accounts in the given
// NEP-17 token, in the same order.
func TokenBalances(token interop.Hash160, accounts []interop.Hash160) []int {
	if len(token) != interop.Hash160Len {
		panic("balances: invalid token contract")
	}
	balances := make([]int, len(accounts))
	for i := 0; i < len(accounts); i++ {
		acc := accounts[i]
		if len(acc) != interop.Hash160Len {
			panic("balances: invalid account")
		}
		balances[i] = contract.Call(token, "balanceOf", contract.ReadOnly, acc).(int)
	}
	return balances
}
