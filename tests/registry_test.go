package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/unchase/contracts-unit0/common"
	registry "github.com/unchase/contracts-unit0/rpc/scoreregistry"
)

func TestRegistryGeneric(t *testing.T) {
	c := newRegistryInvoker(t)

	c.Invoke(t, "U0SR", "symbol")
	c.Invoke(t, 0, "decimals")
	c.Invoke(t, 0, "totalSupply")
	c.Invoke(t, 1, "calcModelCount")
	c.Invoke(t, 0, "globalMintFee")
	c.Invoke(t, 0, "globalUpdateFee")
	c.Invoke(t, false, "isPaused")
	c.Invoke(t, common.Version, "version")
	c.Invoke(t, stackitem.NewByteArray(c.authority.PublicKey().Bytes()), "authority")
}

func TestSubmitScoreMintAndUpdate(t *testing.T) {
	c := newRegistryInvoker(t)
	acc := c.NewAccount(t)
	wallet := acc.ScriptHash()
	cAcc := c.WithSigners(acc)

	s := c.newSubmission(t, wallet, 7500)
	s.MetaPointer = "ipfs://bafybeigdyrscore/7500.json"
	cAcc.Invoke(t, 1, "submitScore", c.submitArgs(t, s, 0)...)

	mintTS := int64(c.TopBlock(t).Timestamp)
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(1), stackitem.Make(mintTS), stackitem.Make(7500),
	}), "getScore", wallet, testChainContext, int64(0))

	c.Invoke(t, 1, "nonce", wallet)
	c.Invoke(t, 1, "totalSupply")
	c.Invoke(t, 1, "balanceOf", wallet)
	c.Invoke(t, stackitem.NewByteArray(wallet.BytesBE()), "ownerOf", int64(1))

	// updates move value and timestamp but never the receipt id
	s = c.newSubmission(t, wallet, 100)
	cAcc.Invoke(t, 1, "submitScore", c.submitArgs(t, s, 0)...)

	updTS := int64(c.TopBlock(t).Timestamp)
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(1), stackitem.Make(updTS), stackitem.Make(100),
	}), "getScore", wallet, testChainContext, int64(0))
	c.Invoke(t, 1, "totalSupply")
	c.Invoke(t, 1, "balanceOf", wallet)

	// a different chain context is a different key and mints fresh
	s = c.newSubmission(t, wallet, 9000)
	s.ChainContext = testChainContext + 1
	cAcc.Invoke(t, 2, "submitScore", c.submitArgs(t, s, 0)...)

	lastTS := int64(c.TopBlock(t).Timestamp)
	c.Invoke(t, 2, "balanceOf", wallet)
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(wallet.BytesBE()),
		stackitem.Make(testChainContext + 1),
		stackitem.Make(0),
		stackitem.Make(2),
		stackitem.Make(lastTS),
		stackitem.Make(9000),
	}), "getScoreByReceipt", int64(2))

	stack, err := c.TestInvoke(t, "receiptsOf", wallet)
	require.Equal(t, []int64{1, 2}, intStack(t, stack, err))

	// boundary values are accepted
	for i, v := range []int64{0, 10000} {
		s = c.newSubmission(t, wallet, v)
		s.ChainContext = testChainContext + 10 + int64(i)
		cAcc.Invoke(t, 3+i, "submitScore", c.submitArgs(t, s, 0)...)
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	c := newRegistryInvoker(t)
	acc := c.NewAccount(t)
	wallet := acc.ScriptHash()
	cAcc := c.WithSigners(acc)

	s := c.newSubmission(t, wallet, 1)
	args := c.submitArgs(t, s, 0)
	cAcc.Invoke(t, 1, "submitScore", args...)
	// the stored nonce moved on, the very same payload no longer verifies
	cAcc.InvokeFail(t, "submit: invalid authority signature", "submitScore", args...)

	dummySig := make([]byte, 64)

	bad := c.newSubmission(t, wallet, 1)
	bad.Model = 5
	cAcc.InvokeFail(t, "submit: unknown calculation model", "submitScore", c.submitArgsSigned(bad, dummySig, 0)...)

	bad = c.newSubmission(t, wallet, 10001)
	cAcc.InvokeFail(t, "submit: score out of range", "submitScore", c.submitArgsSigned(bad, dummySig, 0)...)

	bad = c.newSubmission(t, wallet, -1)
	cAcc.InvokeFail(t, "submit: score out of range", "submitScore", c.submitArgsSigned(bad, dummySig, 0)...)

	bad = c.newSubmission(t, wallet, 1)
	bad.Deadline = 1
	cAcc.InvokeFail(t, "submit: expired deadline", "submitScore", c.submitArgsSigned(bad, dummySig, 0)...)

	// authority signed value 10, sender claims 9999
	tampered := c.newSubmission(t, wallet, 10)
	sig, err := registry.SignSubmission(c.authority, c.hash, tampered)
	require.NoError(t, err)
	tampered.Value = 9999
	cAcc.InvokeFail(t, "submit: invalid authority signature", "submitScore", c.submitArgsSigned(tampered, sig, 0)...)

	// the wallet itself must witness the transaction
	s = c.newSubmission(t, wallet, 1)
	c.InvokeFail(t, common.ErrOwnerWitnessFailed, "submitScore", c.submitArgs(t, s, 0)...)

	cAcc.InvokeFail(t, "submit: invalid wallet", "submitScore",
		[]byte{1, 2, 3}, testChainContext, int64(0), int64(1), s.Deadline,
		"", "", "", int64(0), dummySig, int64(0))
}

func TestSubmitScoreFees(t *testing.T) {
	c := newRegistryInvoker(t)
	acc := c.NewAccount(t)
	wallet := acc.ScriptHash()
	cAcc := c.WithSigners(acc)

	c.Invoke(t, stackitem.Null{}, "setGlobalFees", int64(50), int64(25))
	c.Invoke(t, 50, "globalMintFee")
	c.Invoke(t, 25, "globalUpdateFee")

	s := c.newSubmission(t, wallet, 100)
	cAcc.InvokeFail(t, "submit: wrong mint fee", "submitScore", c.submitArgs(t, s, 0)...)
	cAcc.InvokeFail(t, "submit: wrong mint fee", "submitScore", c.submitArgs(t, s, 49)...)

	// the exact global mint fee is pulled into the contract pool
	before := c.gasBalance(c.hash)
	cAcc.Invoke(t, 1, "submitScore", c.submitArgs(t, s, 50)...)
	require.Equal(t, before+50, c.gasBalance(c.hash))

	s = c.newSubmission(t, wallet, 200)
	cAcc.InvokeFail(t, "submit: wrong update fee", "submitScore", c.submitArgs(t, s, 50)...)
	cAcc.Invoke(t, 1, "submitScore", c.submitArgs(t, s, 25)...)

	// individual update override opens a second accepted amount
	c.Invoke(t, stackitem.Null{}, "setIndividualFees", wallet, int64(0), int64(0), int64(10))
	c.Invoke(t, 10, "individualUpdateFee", wallet, int64(0))
	s = c.newSubmission(t, wallet, 300)
	cAcc.Invoke(t, 1, "submitScore", c.submitArgs(t, s, 10)...)

	// a signed discounted fee applies to the mint of a fresh key
	s = c.newSubmission(t, wallet, 400)
	s.ChainContext = testChainContext + 1
	s.DiscountedFee = 5
	cAcc.Invoke(t, 2, "submitScore", c.submitArgs(t, s, 5)...)

	// whitelisting waives fee checks entirely
	c.Invoke(t, stackitem.Null{}, "setWhitelist", wallet, int64(0), true)
	c.Invoke(t, true, "isWhitelisted", wallet, int64(0))
	s = c.newSubmission(t, wallet, 500)
	s.ChainContext = testChainContext + 2
	cAcc.Invoke(t, 3, "submitScore", c.submitArgs(t, s, 0)...)

	c.Invoke(t, stackitem.Null{}, "setWhitelist", wallet, int64(0), false)
	c.Invoke(t, false, "isWhitelisted", wallet, int64(0))

	// a nonzero individual mint override on a fresh key: the override
	// amount is accepted, anything off the schedule is not
	c.Invoke(t, stackitem.Null{}, "setIndividualFees", wallet, int64(0), int64(30), int64(10))
	c.Invoke(t, 30, "individualMintFee", wallet, int64(0))
	s = c.newSubmission(t, wallet, 600)
	s.ChainContext = testChainContext + 3
	cAcc.InvokeFail(t, "submit: wrong mint fee", "submitScore", c.submitArgs(t, s, 29)...)
	cAcc.Invoke(t, 4, "submitScore", c.submitArgs(t, s, 30)...)

	// a signed discounted fee replaces the mint override entirely, so
	// the override amount itself is no longer accepted
	s = c.newSubmission(t, wallet, 700)
	s.ChainContext = testChainContext + 4
	s.DiscountedFee = 7
	cAcc.InvokeFail(t, "submit: wrong mint fee", "submitScore", c.submitArgs(t, s, 30)...)
	cAcc.Invoke(t, 5, "submitScore", c.submitArgs(t, s, 7)...)
}

func TestPoolFunding(t *testing.T) {
	c := newRegistryInvoker(t)

	// direct GAS transfers land in the pooled balance
	c.fundContract(t, 500)
	require.Equal(t, int64(500), c.gasBalance(c.hash))

	// any caller but the GAS contract is aborted outright
	c.InvokeFail(t, "ABORT", "onNEP17Payment", c.CommitteeHash, int64(1), nil)
}

func TestFreeMintQuota(t *testing.T) {
	c := newRegistryInvoker(t)
	c.Invoke(t, stackitem.Null{}, "setGlobalFees", int64(50), int64(25))
	c.Invoke(t, stackitem.Null{}, "setFreeMintQuota", int64(0), int64(2))
	c.Invoke(t, 2, "freeMintQuota", int64(0))
	c.Invoke(t, 0, "freeMintsUsed", int64(0))

	mint := func(t *testing.T, id, payment int64) {
		acc := c.NewAccount(t)
		s := c.newSubmission(t, acc.ScriptHash(), 100)
		c.WithSigners(acc).Invoke(t, id, "submitScore", c.submitArgs(t, s, payment)...)
	}

	mint(t, 1, 0) // under quota
	c.Invoke(t, 1, "freeMintsUsed", int64(0))

	mint(t, 2, 50) // paid mints consume the quota as well
	c.Invoke(t, 2, "freeMintsUsed", int64(0))

	// quota exhausted, free mints are gone but paid ones still work
	acc := c.NewAccount(t)
	s := c.newSubmission(t, acc.ScriptHash(), 100)
	c.WithSigners(acc).InvokeFail(t, "submit: wrong mint fee", "submitScore", c.submitArgs(t, s, 0)...)
	c.WithSigners(acc).Invoke(t, 3, "submitScore", c.submitArgs(t, s, 50)...)
	c.Invoke(t, 3, "freeMintsUsed", int64(0))
}

func TestReferralFlow(t *testing.T) {
	c := newRegistryInvoker(t)
	c.Invoke(t, stackitem.Null{}, "setReferralReward", int64(1000))
	c.fundContract(t, 1_0000)

	codeA := registry.NewReferralCode()

	accA := c.NewAccount(t)
	walletA := accA.ScriptHash()
	s := c.newSubmission(t, walletA, 100)
	s.ReferralCode = codeA
	c.WithSigners(accA).Invoke(t, 1, "submitScore", c.submitArgs(t, s, 0)...)

	c.Invoke(t, stackitem.NewByteArray([]byte(codeA)), "referralCodeOf", walletA)
	c.Invoke(t, stackitem.NewByteArray(walletA.BytesBE()), "walletByCode", codeA)

	// the code resolves, the referrer is paid on the spot
	accB := c.NewAccount(t)
	s = c.newSubmission(t, accB.ScriptHash(), 100)
	s.ReferrerCode = codeA
	before := c.gasBalance(walletA)
	c.WithSigners(accB).Invoke(t, 2, "submitScore", c.submitArgs(t, s, 0)...)
	require.Equal(t, before+1000, c.gasBalance(walletA))

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{stackitem.Make(2)}), "referredReceipts", codeA)
	c.Invoke(t, 0, "claimableReward", walletA)

	// nobody owns this code yet, mints under it are queued
	codeD := registry.NewReferralCode()
	c.Invoke(t, stackitem.Null{}, "walletByCode", codeD)

	accC := c.NewAccount(t)
	walletC := accC.ScriptHash()
	s = c.newSubmission(t, walletC, 100)
	s.ReferrerCode = codeD
	c.WithSigners(accC).Invoke(t, 3, "submitScore", c.submitArgs(t, s, 0)...)

	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(walletC.BytesBE()),
	}), "referredWallets", codeD)

	// the owner shows up, registers the code and drains the queue
	accD := c.NewAccount(t)
	walletD := accD.ScriptHash()
	s = c.newSubmission(t, walletD, 100)
	s.ReferralCode = codeD
	c.WithSigners(accD).Invoke(t, 4, "submitScore", c.submitArgs(t, s, 0)...)

	c.Invoke(t, 1000, "claimableReward", walletD)

	beforeD := c.gasBalance(walletD)
	c.WithSigners(accD).Invoke(t, 1000, "claimReferralRewards", walletD)
	require.Equal(t, beforeD+1000, c.gasBalance(walletD))

	// the queue was cleared before the payment, nothing is left
	c.Invoke(t, 0, "claimableReward", walletD)
	c.WithSigners(accD).InvokeFail(t, "claim: no rewards available", "claimReferralRewards", walletD)

	// wallets that never registered a code have nothing to claim
	c.WithSigners(accC).InvokeFail(t, "claim: no referral code registered", "claimReferralRewards", walletC)

	// claiming needs the wallet witness
	c.InvokeFail(t, common.ErrOwnerWitnessFailed, "claimReferralRewards", walletD)
}

func TestClaimInsufficientFunds(t *testing.T) {
	c := newRegistryInvoker(t)
	c.Invoke(t, stackitem.Null{}, "setReferralReward", int64(7_0000_0000))

	code := registry.NewReferralCode()

	accA := c.NewAccount(t)
	s := c.newSubmission(t, accA.ScriptHash(), 100)
	s.ReferrerCode = code
	c.WithSigners(accA).Invoke(t, 1, "submitScore", c.submitArgs(t, s, 0)...)

	accB := c.NewAccount(t)
	walletB := accB.ScriptHash()
	s = c.newSubmission(t, walletB, 100)
	s.ReferralCode = code
	c.WithSigners(accB).Invoke(t, 2, "submitScore", c.submitArgs(t, s, 0)...)

	// the claim survives the failed attempt and goes through once funded
	c.WithSigners(accB).InvokeFail(t, "claim: insufficient funds", "claimReferralRewards", walletB)
	c.Invoke(t, 7_0000_0000, "claimableReward", walletB)

	c.fundContract(t, 7_0000_0000)
	c.WithSigners(accB).Invoke(t, 7_0000_0000, "claimReferralRewards", walletB)
}

func TestReferralCodeCollision(t *testing.T) {
	c := newRegistryInvoker(t)
	code := registry.NewReferralCode()

	accA := c.NewAccount(t)
	walletA := accA.ScriptHash()
	s := c.newSubmission(t, walletA, 100)
	s.ReferralCode = code
	c.WithSigners(accA).Invoke(t, 1, "submitScore", c.submitArgs(t, s, 0)...)

	// a second wallet minting the same code silently rebinds the
	// reverse lookup while the first wallet keeps the code string
	accB := c.NewAccount(t)
	walletB := accB.ScriptHash()
	s = c.newSubmission(t, walletB, 100)
	s.ReferralCode = code
	c.WithSigners(accB).Invoke(t, 2, "submitScore", c.submitArgs(t, s, 0)...)

	c.Invoke(t, stackitem.NewByteArray([]byte(code)), "referralCodeOf", walletA)
	c.Invoke(t, stackitem.NewByteArray([]byte(code)), "referralCodeOf", walletB)
	c.Invoke(t, stackitem.NewByteArray(walletB.BytesBE()), "walletByCode", code)
}

func TestWithdraw(t *testing.T) {
	c := newRegistryInvoker(t)
	acc := c.NewAccount(t)
	recv := acc.ScriptHash()

	c.InvokeFail(t, "withdraw: no funds", "withdraw", recv, int64(10))

	c.fundContract(t, 1000)
	c.WithSigners(acc).InvokeFail(t, common.ErrNotOwner, "withdraw", recv, int64(10))
	c.InvokeFail(t, "withdraw: non positive amount", "withdraw", recv, int64(0))
	c.InvokeFail(t, "withdraw: insufficient funds", "withdraw", recv, int64(2000))

	before := c.gasBalance(recv)
	c.Invoke(t, stackitem.Null{}, "withdraw", recv, int64(400))
	require.Equal(t, before+400, c.gasBalance(recv))
	require.Equal(t, int64(600), c.gasBalance(c.hash))
}

func TestPause(t *testing.T) {
	c := newRegistryInvoker(t)
	acc := c.NewAccount(t)
	wallet := acc.ScriptHash()
	cAcc := c.WithSigners(acc)

	cAcc.InvokeFail(t, common.ErrNotOwner, "pause")
	c.Invoke(t, stackitem.Null{}, "pause")
	c.Invoke(t, true, "isPaused")

	s := c.newSubmission(t, wallet, 1)
	cAcc.InvokeFail(t, "submit: registry is paused", "submitScore", c.submitArgs(t, s, 0)...)

	// reads stay open while paused
	c.Invoke(t, 0, "totalSupply")

	c.Invoke(t, stackitem.Null{}, "unpause")
	c.Invoke(t, false, "isPaused")

	s = c.newSubmission(t, wallet, 1)
	cAcc.Invoke(t, 1, "submitScore", c.submitArgs(t, s, 0)...)
}

func TestReceiptSurface(t *testing.T) {
	const base = "https://score.unit0.network/receipt/"

	c := newRegistryInvoker(t)
	c.Invoke(t, stackitem.Null{}, "setBaseURI", base)
	c.Invoke(t, base, "baseURI")

	acc := c.NewAccount(t)
	wallet := acc.ScriptHash()
	s := c.newSubmission(t, wallet, 4242)
	c.WithSigners(acc).Invoke(t, 1, "submitScore", c.submitArgs(t, s, 0)...)

	stack, err := c.TestInvoke(t, "tokensOf", wallet)
	require.NoError(t, err)
	iter := stack.Pop().Value().(*storage.Iterator)
	items := iteratorToArray(iter)
	require.Len(t, items, 1)
	id, err := items[0].TryInteger()
	require.NoError(t, err)
	require.EqualValues(t, 1, id.Int64())

	c.WithSigners(acc).InvokeFail(t, "transfer: receipts are not transferable",
		"transfer", wallet, int64(1), nil)

	stack, err = c.TestInvoke(t, "properties", int64(1))
	require.NoError(t, err)
	props := stack.Pop().Value().([]stackitem.MapElement)
	found := false
	for i := range props {
		k, err := props[i].Key.TryBytes()
		require.NoError(t, err)
		if string(k) == "url" {
			v, err := props[i].Value.TryBytes()
			require.NoError(t, err)
			require.Equal(t, base+"1", string(v))
			found = true
		}
	}
	require.True(t, found)

	c.InvokeFail(t, "receipt not found", "ownerOf", int64(99))
	c.InvokeFail(t, "receipt not found", "properties", int64(99))
}

func TestAdminSetters(t *testing.T) {
	c := newRegistryInvoker(t)
	acc := c.NewAccount(t)
	wallet := acc.ScriptHash()
	stranger := c.WithSigners(acc)

	stranger.InvokeFail(t, common.ErrNotOwner, "setGlobalFees", int64(1), int64(1))
	stranger.InvokeFail(t, common.ErrNotOwner, "setIndividualFees", wallet, int64(0), int64(1), int64(1))
	stranger.InvokeFail(t, common.ErrNotOwner, "setFreeMintQuota", int64(0), int64(1))
	stranger.InvokeFail(t, common.ErrNotOwner, "setCalcModelCount", int64(2))
	stranger.InvokeFail(t, common.ErrNotOwner, "setWhitelist", wallet, int64(0), true)
	stranger.InvokeFail(t, common.ErrNotOwner, "setReferralReward", int64(1))
	stranger.InvokeFail(t, common.ErrNotOwner, "setReferralRewardFor", wallet, int64(1))
	stranger.InvokeFail(t, common.ErrNotOwner, "setBaseURI", "x")
	stranger.InvokeFail(t, common.ErrNotOwner, "setAuthority", c.authority.PublicKey().Bytes())
	stranger.InvokeFail(t, common.ErrNotOwner, "update", []byte{}, []byte{}, nil)

	c.InvokeFail(t, "the fee is out of range", "setGlobalFees", int64(-1), int64(0))
	c.InvokeFail(t, "the fee is out of range", "setGlobalFees", int64(0), int64(1_0000_0000_0001))
	c.InvokeFail(t, "the fee is out of range", "setReferralReward", int64(-5))
	c.InvokeFail(t, "setCalcModelCount: non positive count", "setCalcModelCount", int64(0))
	c.InvokeFail(t, "setAuthority: incorrect length of public key", "setAuthority", []byte{1, 2})

	// a per-wallet reward override beats the global rate
	c.Invoke(t, stackitem.Null{}, "setReferralReward", int64(100))
	c.Invoke(t, stackitem.Null{}, "setReferralRewardFor", wallet, int64(700))
	c.Invoke(t, 700, "rewardRate", wallet)
	c.Invoke(t, stackitem.Null{}, "setReferralRewardFor", wallet, int64(0))
	c.Invoke(t, 100, "rewardRate", wallet)

	// raising the model count makes new models submittable
	s := c.newSubmission(t, wallet, 42)
	s.Model = 1
	dummySig := make([]byte, 64)
	stranger.InvokeFail(t, "submit: unknown calculation model", "submitScore", c.submitArgsSigned(s, dummySig, 0)...)

	c.Invoke(t, stackitem.Null{}, "setCalcModelCount", int64(2))
	c.Invoke(t, 2, "calcModelCount")
	stranger.Invoke(t, 1, "submitScore", c.submitArgs(t, s, 0)...)
}

func TestAuthorityRotation(t *testing.T) {
	c := newRegistryInvoker(t)
	acc := c.NewAccount(t)
	wallet := acc.ScriptHash()
	cAcc := c.WithSigners(acc)

	next, err := keys.NewPrivateKey()
	require.NoError(t, err)
	c.Invoke(t, stackitem.Null{}, "setAuthority", next.PublicKey().Bytes())
	c.Invoke(t, stackitem.NewByteArray(next.PublicKey().Bytes()), "authority")

	s := c.newSubmission(t, wallet, 10)
	cAcc.InvokeFail(t, "submit: invalid authority signature", "submitScore", c.submitArgs(t, s, 0)...)

	sig, err := registry.SignSubmission(next, c.hash, s)
	require.NoError(t, err)
	cAcc.Invoke(t, 1, "submitScore", c.submitArgsSigned(s, sig, 0)...)
}
