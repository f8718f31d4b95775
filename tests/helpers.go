package tests

import (
	"path"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
	registry "github.com/unchase/contracts-unit0/rpc/scoreregistry"
)

const registryPath = "../scoreregistry"

// testChainContext is an arbitrary chain identifier used throughout the
// registry tests.
const testChainContext = int64(88811)

const hourMS = int64(time.Hour / time.Millisecond)

// registryInvoker is a committee (and thus contract owner) bound
// invoker of a freshly deployed score registry, carrying the scoring
// authority key submissions must be signed with.
type registryInvoker struct {
	*neotest.ContractInvoker

	e         *neotest.Executor
	hash      util.Uint160
	authority *keys.PrivateKey
}

func newRegistryInvoker(t *testing.T) *registryInvoker {
	e := newExecutor(t)

	authority, err := keys.NewPrivateKey()
	require.NoError(t, err)

	ctr := neotest.CompileFile(t, e.CommitteeHash, registryPath, path.Join(registryPath, "config.yml"))
	e.DeployContract(t, ctr, []any{e.CommitteeHash, authority.PublicKey().Bytes()})

	return &registryInvoker{
		ContractInvoker: e.CommitteeInvoker(ctr.Hash),
		e:               e,
		hash:            ctr.Hash,
		authority:       authority,
	}
}

// newSubmission builds a minimal valid submission for the wallet with
// the current on-chain nonce and a deadline one hour ahead of the top
// block.
func (r *registryInvoker) newSubmission(t *testing.T, wallet util.Uint160, value int64) registry.Submission {
	return registry.Submission{
		Wallet:       wallet,
		ChainContext: testChainContext,
		Value:        value,
		Nonce:        r.nonce(t, wallet),
		Deadline:     int64(r.TopBlock(t).Timestamp) + hourMS,
	}
}

// submitArgs signs the submission with the authority key and lays the
// arguments out in submitScore order.
func (r *registryInvoker) submitArgs(t *testing.T, s registry.Submission, payment int64) []any {
	sig, err := registry.SignSubmission(r.authority, r.hash, s)
	require.NoError(t, err)
	return r.submitArgsSigned(s, sig, payment)
}

func (r *registryInvoker) submitArgsSigned(s registry.Submission, sig []byte, payment int64) []any {
	return []any{
		s.Wallet, s.ChainContext, s.Model, s.Value, s.Deadline,
		s.MetaPointer, s.ReferralCode, s.ReferrerCode, s.DiscountedFee,
		sig, payment,
	}
}

func (r *registryInvoker) nonce(t *testing.T, wallet util.Uint160) int64 {
	stack, err := r.TestInvoke(t, "nonce", wallet)
	require.NoError(t, err)
	return stack.Pop().BigInt().Int64()
}

// fundContract tops the pooled GAS balance of the registry up, the same
// way an operator would prefund referral rewards.
func (r *registryInvoker) fundContract(t *testing.T, amount int64) {
	gasHash, err := r.e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	vc := r.e.CommitteeInvoker(gasHash).WithSigners(r.e.Validator)
	vc.Invoke(t, true, "transfer",
		r.e.Validator.ScriptHash(), r.hash, amount, nil)
}

func (r *registryInvoker) gasBalance(acc util.Uint160) int64 {
	return r.e.Chain.GetUtilityTokenBalance(acc).Int64()
}
