package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// OwnerKey is the storage key contracts of this repo keep their
// administrator account under.
const OwnerKey = "contractOwner"

// ErrNotOwner appears when a restricted method is invoked without the
// contract administrator witness.
var ErrNotOwner = "not witnessed by contract owner"

// ContractOwner returns the administrator account stored on deploy.
func ContractOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, OwnerKey).(interop.Hash160)
}

// SetContractOwner stores the administrator account. Callers are
// expected to do their own authorization, it is only called from
// _deploy in practice.
func SetContractOwner(ctx storage.Context, owner interop.Hash160) {
	if len(owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}
	storage.Put(ctx, OwnerKey, owner)
}

// CheckContractOwner panics with ErrNotOwner if the invocation is not
// witnessed by the stored administrator account.
func CheckContractOwner(ctx storage.Context) {
	if !runtime.CheckWitness(ContractOwner(ctx)) {
		panic(ErrNotOwner)
	}
}
