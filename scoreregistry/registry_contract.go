package scoreregistry

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/unchase/contracts-unit0/common"
)

type (
	// ScoreRecord is the state of a single (wallet, chain, model) key.
	// LastUpdated of zero means the record has never been minted; once
	// minted, ReceiptID never changes.
	ScoreRecord struct {
		ReceiptID   int
		LastUpdated int
		Value       int
	}

	// ReceiptBinding ties a minted receipt back to its key.
	ReceiptBinding struct {
		Wallet       interop.Hash160
		ChainContext int
		Model        int
	}

	// ReceiptScore is the read model returned by getScoreByReceipt.
	ReceiptScore struct {
		Wallet       interop.Hash160
		ChainContext int
		Model        int
		ReceiptID    int
		LastUpdated  int
		Value        int
	}
)

// Prefixes used for contract data storage.
const (
	// prefixNonce contains map from wallet to its replay-protection counter.
	prefixNonce byte = 0x10
	// prefixScore contains map from sha256(wallet, chain, model) to a
	// serialized ScoreRecord.
	prefixScore byte = 0x11
	// prefixReceipt contains map from receipt id to a serialized
	// ReceiptBinding.
	prefixReceipt byte = 0x12
	// prefixWalletReceipt contains map from (wallet + receipt id) to the
	// receipt id, used to list receipts of a wallet.
	prefixWalletReceipt byte = 0x13
	// prefixReceiptBalance contains map from wallet to the number of
	// receipts it holds.
	prefixReceiptBalance byte = 0x14
	// prefixMintFee contains map from (wallet + model) to an individual
	// mint fee override.
	prefixMintFee byte = 0x20
	// prefixUpdateFee contains map from (wallet + model) to an individual
	// update fee override.
	prefixUpdateFee byte = 0x21
	// prefixFreeQuota contains map from model to its free-mint quota.
	prefixFreeQuota byte = 0x22
	// prefixFreeUsed contains map from model to the number of mints
	// already performed for it.
	prefixFreeUsed byte = 0x23
	// prefixWhitelist contains map from (wallet + model) to a fee
	// exemption flag.
	prefixWhitelist byte = 0x24
	// prefixWalletCode contains map from wallet to its referral code,
	// assigned at the wallet's first mint and immutable after.
	prefixWalletCode byte = 0x30
	// prefixCodeWallet contains map from sha256(code) to the wallet that
	// registered the code.
	prefixCodeWallet byte = 0x31
	// prefixClaimable contains map from sha256(code) to the list of
	// wallets that minted under the code before it was registered.
	prefixClaimable byte = 0x32
	// prefixReferred contains map from sha256(code) to the list of
	// receipt ids minted with the code as a referrer stamp.
	prefixReferred byte = 0x33
	// prefixReward contains map from wallet to its referral reward-rate
	// override.
	prefixReward byte = 0x34
)

// Keys of contract-wide values.
const (
	receiptCounterKey byte = 0x00
	authorityKey      byte = 0x01
	pausedKey         byte = 0x02
	baseURIKey        byte = 0x03
	calcModelCountKey byte = 0x04
	globalMintFeeKey  byte = 0x05
	globalUpdFeeKey   byte = 0x06
	globalRewardKey   byte = 0x07
)

// Values constraints.
const (
	// maxScoreValue is the upper bound of an accepted score, inclusive.
	maxScoreValue = 10000
	// maxFee is the maximum configurable fee or reward rate.
	maxFee = int(1_0000_0000_0000)
)

// domainTag separates score submission signatures from any other payload
// the authority key may ever sign. Bump the suffix on incompatible
// payload changes.
const domainTag = "UNIT0SCORE_V1"

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]any)
	owner := args[0].(interop.Hash160)
	authority := args[1].(interop.PublicKey)
	if len(authority) != interop.PublicKeyCompressedLen {
		panic("incorrect length of authority public key")
	}

	common.SetContractOwner(ctx, owner)
	storage.Put(ctx, []byte{authorityKey}, authority)
	storage.Put(ctx, []byte{receiptCounterKey}, 0)
	// model 0 is always defined, the rest is opened up by the owner
	storage.Put(ctx, []byte{calcModelCountKey}, 1)

	runtime.Log("score registry contract initialized")
}

// Update method updates contract source code and manifest. It can be
// invoked only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckContractOwner(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("score registry contract updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Direct GAS transfers fund the pooled balance referral rewards and
// owner withdrawals are paid from.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, []byte(gas.Hash)) {
		common.AbortWithMessage("score registry accepts GAS only")
	}
}

// SubmitScore registers or updates the score of the given wallet for the
// given chain context and calculation model. The submission must be
// signed by the scoring authority over the current wallet nonce, so
// every signature is single-use; the transaction must also be witnessed
// by the wallet itself since the fee payment is pulled from it. Returns
// the receipt id bound to the (wallet, chain, model) key.
//
// Payment must satisfy the fee schedule: an individual override or the
// signed discounted fee on the mint path, the global fee otherwise,
// with whitelist and free-mint-quota exemptions. See requiredFeeOK.
func SubmitScore(wallet interop.Hash160, chainContext, model, value, deadline int,
	metaPointer, referralCode, referrerCode string, discountedFee int,
	signature interop.Signature, payment int) int {
	ctx := storage.GetContext()

	if storage.Get(ctx, []byte{pausedKey}) != nil {
		panic("submit: registry is paused")
	}
	if len(wallet) != interop.Hash160Len {
		panic("submit: invalid wallet")
	}
	common.CheckOwnerWitness(wallet)

	if model < 0 || model >= common.GetInt(ctx, []byte{calcModelCountKey}) {
		panic("submit: unknown calculation model")
	}
	if value < 0 || value > maxScoreValue {
		panic("submit: score out of range")
	}
	if runtime.GetTime() > deadline {
		panic("submit: expired deadline")
	}

	refDigest := crypto.Sha256([]byte(referralCode))
	referrerDigest := crypto.Sha256([]byte(referrerCode))

	nonceKey := append([]byte{prefixNonce}, wallet...)
	nonce := common.GetInt(ctx, nonceKey)

	// The stored nonce is part of the signed message, which makes any
	// replayed or stale payload fail verification right here.
	msg := std.Serialize([]any{
		domainTag,
		string(runtime.GetExecutingScriptHash()),
		string(wallet),
		chainContext,
		model,
		value,
		nonce,
		deadline,
		string(crypto.Sha256([]byte(metaPointer))),
		string(refDigest),
		string(referrerDigest),
		discountedFee,
	})
	authority := storage.Get(ctx, []byte{authorityKey}).(interop.PublicKey)
	if !crypto.VerifyWithECDsa(msg, authority, signature, crypto.Secp256r1) {
		panic("submit: invalid authority signature")
	}

	// consumed before any other state mutation
	storage.Put(ctx, nonceKey, nonce+1)

	sKey := scoreKey(wallet, chainContext, model)
	record := getScoreRecord(ctx, sKey)
	exists := record.LastUpdated != 0

	if !requiredFeeOK(ctx, wallet, model, exists, discountedFee, payment) {
		if exists {
			panic("submit: wrong update fee")
		}
		panic("submit: wrong mint fee")
	}
	if payment > 0 {
		if !gas.Transfer(wallet, runtime.GetExecutingScriptHash(), payment, nil) {
			panic("submit: failed to transfer fee, aborting")
		}
	}

	now := runtime.GetTime()
	record.Value = value
	record.LastUpdated = now

	if !exists {
		record.ReceiptID = mintReceipt(ctx, wallet, chainContext, model)

		usedKey := append([]byte{prefixFreeUsed}, intToBytes(model)...)
		storage.Put(ctx, usedKey, common.GetInt(ctx, usedKey)+1)

		if len(referralCode) != 0 {
			registerReferralCode(ctx, wallet, referralCode, refDigest)
		}
		if len(referrerCode) != 0 {
			creditReferrer(ctx, referrerDigest, wallet, record.ReceiptID)
		}
	}
	common.SetSerialized(ctx, sKey, record)

	runtime.Notify("ScoreChanged", record.ReceiptID, wallet, value, model,
		chainContext, metaPointer, refDigest, referrerDigest)

	return record.ReceiptID
}

// requiredFeeOK is the fee decision table: an ordered sequence of guard
// checks, first match accepts the paid amount.
func requiredFeeOK(ctx storage.Context, wallet interop.Hash160, model int, exists bool, discountedFee, paid int) bool {
	if exists {
		override := common.GetInt(ctx, feeKey(prefixUpdateFee, wallet, model))
		if override > 0 && paid == override {
			return true
		}
		if whitelisted(ctx, wallet, model) {
			return true
		}
		return paid == common.GetInt(ctx, []byte{globalUpdFeeKey})
	}

	candidate := discountedFee
	if candidate == 0 {
		candidate = common.GetInt(ctx, feeKey(prefixMintFee, wallet, model))
	}
	if candidate > 0 && paid == candidate {
		return true
	}
	if whitelisted(ctx, wallet, model) {
		return true
	}
	if paid == common.GetInt(ctx, []byte{globalMintFeeKey}) {
		return true
	}

	mKey := intToBytes(model)
	quota := common.GetInt(ctx, append([]byte{prefixFreeQuota}, mKey...))
	used := common.GetInt(ctx, append([]byte{prefixFreeUsed}, mKey...))
	return used < quota
}

// mintReceipt assigns the next receipt id to the key and fills reverse
// indexes. Receipt ownership is fixed forever, there is no way to move
// or burn it.
func mintReceipt(ctx storage.Context, wallet interop.Hash160, chainContext, model int) int {
	id := common.GetInt(ctx, []byte{receiptCounterKey}) + 1
	storage.Put(ctx, []byte{receiptCounterKey}, id)

	common.SetSerialized(ctx, append([]byte{prefixReceipt}, intToBytes(id)...), ReceiptBinding{
		Wallet:       wallet,
		ChainContext: chainContext,
		Model:        model,
	})

	accKey := append(append([]byte{prefixWalletReceipt}, wallet...), intToBytes(id)...)
	storage.Put(ctx, accKey, id)

	balanceKey := append([]byte{prefixReceiptBalance}, wallet...)
	storage.Put(ctx, balanceKey, common.GetInt(ctx, balanceKey)+1)

	runtime.Notify("ReceiptMinted", id, wallet, model, chainContext)
	return id
}

// registerReferralCode assigns a referral code to a wallet at its first
// mint. A second wallet claiming an already used code string silently
// rebinds the reverse index, see package documentation.
func registerReferralCode(ctx storage.Context, wallet interop.Hash160, code string, digest interop.Hash256) {
	codeKey := append([]byte{prefixWalletCode}, wallet...)
	if storage.Get(ctx, codeKey) != nil {
		return
	}
	storage.Put(ctx, codeKey, code)
	storage.Put(ctx, append([]byte{prefixCodeWallet}, digest...), wallet)
}

// creditReferrer pays the owner of the referrer code from the pooled
// contract balance, or queues the new wallet against the code if nobody
// owns it yet. Called only from the mint transition.
func creditReferrer(ctx storage.Context, digest interop.Hash256, newWallet interop.Hash160, receiptID int) {
	referredKey := append([]byte{prefixReferred}, digest...)
	ids := common.GetIntList(ctx, referredKey)
	ids = append(ids, receiptID)
	common.SetSerialized(ctx, referredKey, ids)

	rawReferrer := storage.Get(ctx, append([]byte{prefixCodeWallet}, digest...))
	if rawReferrer == nil {
		listKey := append([]byte{prefixClaimable}, digest...)
		list := common.GetList(ctx, listKey)
		list = append(list, newWallet)
		common.SetSerialized(ctx, listKey, list)
		return
	}

	referrer := rawReferrer.(interop.Hash160)
	reward := rewardRate(ctx, referrer)
	if reward <= 0 {
		return
	}
	if !gas.Transfer(runtime.GetExecutingScriptHash(), referrer, reward, nil) {
		panic("submit: referral reward transfer failed, aborting")
	}
	runtime.Notify("WalletRewarded", referrer, reward, newWallet, receiptID)
}

// ClaimReferralRewards drains the claimable list of the wallet's own
// referral code and pays len(list) * reward rate in a single transfer.
// The list is cleared strictly before the payment. Returns the paid
// amount.
func ClaimReferralRewards(wallet interop.Hash160) int {
	if len(wallet) != interop.Hash160Len {
		panic("claim: invalid wallet")
	}
	common.CheckOwnerWitness(wallet)

	ctx := storage.GetContext()
	rawCode := storage.Get(ctx, append([]byte{prefixWalletCode}, wallet...))
	if rawCode == nil {
		panic("claim: no referral code registered")
	}

	digest := crypto.Sha256([]byte(rawCode.(string)))
	listKey := append([]byte{prefixClaimable}, digest...)
	list := common.GetList(ctx, listKey)
	amount := len(list) * rewardRate(ctx, wallet)
	if amount <= 0 {
		panic("claim: no rewards available")
	}

	this := runtime.GetExecutingScriptHash()
	if amount > gas.BalanceOf(this) {
		panic("claim: insufficient funds")
	}

	storage.Delete(ctx, listKey)
	if !gas.Transfer(this, wallet, amount, nil) {
		panic("claim: reward transfer failed, aborting")
	}
	runtime.Notify("ReferralRewardClaimed", wallet, amount, len(list))

	return amount
}

// Withdraw sends part of the pooled contract balance to the given
// account. It can be invoked only by the contract owner. Withdrawn
// funds are not segregated from pending referral claims, both draw from
// the same pool.
func Withdraw(to interop.Hash160, amount int) {
	ctx := storage.GetReadOnlyContext()
	common.CheckContractOwner(ctx)

	if len(to) != interop.Hash160Len {
		panic("withdraw: invalid receiver")
	}
	if amount <= 0 {
		panic("withdraw: non positive amount")
	}

	this := runtime.GetExecutingScriptHash()
	balance := gas.BalanceOf(this)
	if balance == 0 {
		panic("withdraw: no funds")
	}
	if amount > balance {
		panic("withdraw: insufficient funds")
	}
	if !gas.Transfer(this, to, amount, nil) {
		panic("withdraw: failed to transfer funds, aborting")
	}
	runtime.Notify("Withdrawal", to, amount)
}

// Nonce returns the replay-protection counter the authority must sign
// the next submission of the wallet over.
func Nonce(wallet interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, append([]byte{prefixNonce}, wallet...))
}

// GetScore returns the score record of the key. A record with zero
// LastUpdated has never been minted.
func GetScore(wallet interop.Hash160, chainContext, model int) ScoreRecord {
	ctx := storage.GetReadOnlyContext()
	return getScoreRecord(ctx, scoreKey(wallet, chainContext, model))
}

// GetScoreByReceipt resolves the owner of the receipt and returns the
// score record it is bound to.
func GetScoreByReceipt(id int) ReceiptScore {
	ctx := storage.GetReadOnlyContext()
	b := getBinding(ctx, id)
	record := getScoreRecord(ctx, scoreKey(b.Wallet, b.ChainContext, b.Model))
	return ReceiptScore{
		Wallet:       b.Wallet,
		ChainContext: b.ChainContext,
		Model:        b.Model,
		ReceiptID:    record.ReceiptID,
		LastUpdated:  record.LastUpdated,
		Value:        record.Value,
	}
}

// ReceiptsOf returns ids of all receipts minted to the wallet.
func ReceiptsOf(wallet interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()

	var ids []int
	it := storage.Find(ctx, append([]byte{prefixWalletReceipt}, wallet...), storage.ValuesOnly)
	for iterator.Next(it) {
		ids = append(ids, iterator.Value(it).(int))
	}
	return ids
}

// Symbol returns the receipt token symbol.
func Symbol() string {
	return "U0SR"
}

// Decimals returns the receipt token decimals.
func Decimals() int {
	return 0
}

// TotalSupply returns the overall number of minted receipts.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, []byte{receiptCounterKey})
}

// BalanceOf returns the number of receipts held by the wallet.
func BalanceOf(wallet interop.Hash160) int {
	if len(wallet) != interop.Hash160Len {
		panic(`invalid wallet`)
	}
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, append([]byte{prefixReceiptBalance}, wallet...))
}

// OwnerOf returns the owner of the receipt.
func OwnerOf(id int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getBinding(ctx, id).Wallet
}

// TokensOf returns an iterator over receipt ids minted to the wallet.
func TokensOf(wallet interop.Hash160) iterator.Iterator {
	if len(wallet) != interop.Hash160Len {
		panic(`invalid wallet`)
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixWalletReceipt}, wallet...), storage.ValuesOnly)
}

// Transfer always fails: receipts prove score registration and are
// permanently bound to the minting wallet. They cannot be burned either.
func Transfer(to interop.Hash160, id int, data any) bool {
	panic("transfer: receipts are not transferable")
}

// Properties returns a description of the receipt, including the
// metadata document pointer derived from the base pointer set by the
// contract owner.
func Properties(id int) map[string]any {
	ctx := storage.GetReadOnlyContext()
	b := getBinding(ctx, id)
	return map[string]any{
		"name":  "Unit0 score receipt #" + std.Itoa(id, 10),
		"owner": b.Wallet,
		"model": b.Model,
		"chain": b.ChainContext,
		"url":   baseURI(ctx) + std.Itoa(id, 10),
	}
}

// BaseURI returns the metadata base pointer receipt documents live under.
func BaseURI() string {
	ctx := storage.GetReadOnlyContext()
	return baseURI(ctx)
}

// SetBaseURI sets the metadata base pointer. It can be invoked only by
// the contract owner.
func SetBaseURI(uri string) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Put(ctx, []byte{baseURIKey}, uri)
	runtime.Notify("BaseURIChanged", uri)
}

// GlobalMintFee returns the fee charged for a first-time registration
// unless an exemption or override applies.
func GlobalMintFee() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, []byte{globalMintFeeKey})
}

// GlobalUpdateFee returns the fee charged for a score update unless an
// exemption or override applies.
func GlobalUpdateFee() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, []byte{globalUpdFeeKey})
}

// SetGlobalFees sets the mint and update fees. It can be invoked only
// by the contract owner.
func SetGlobalFees(mintFee, updateFee int) {
	checkFeeRange(mintFee)
	checkFeeRange(updateFee)
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Put(ctx, []byte{globalMintFeeKey}, mintFee)
	storage.Put(ctx, []byte{globalUpdFeeKey}, updateFee)
	runtime.Notify("FeeChanged", mintFee, updateFee)
}

// IndividualMintFee returns the mint fee override of the (wallet, model)
// pair, zero if unset.
func IndividualMintFee(wallet interop.Hash160, model int) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, feeKey(prefixMintFee, wallet, model))
}

// IndividualUpdateFee returns the update fee override of the
// (wallet, model) pair, zero if unset.
func IndividualUpdateFee(wallet interop.Hash160, model int) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, feeKey(prefixUpdateFee, wallet, model))
}

// SetIndividualFees sets the fee overrides of the (wallet, model) pair,
// zero removes an override. It can be invoked only by the contract owner.
func SetIndividualFees(wallet interop.Hash160, model, mintFee, updateFee int) {
	if len(wallet) != interop.Hash160Len {
		panic("setIndividualFees: invalid wallet")
	}
	checkFeeRange(mintFee)
	checkFeeRange(updateFee)
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	putOrDelete(ctx, feeKey(prefixMintFee, wallet, model), mintFee)
	putOrDelete(ctx, feeKey(prefixUpdateFee, wallet, model), updateFee)
	runtime.Notify("IndividualFeeChanged", wallet, model, mintFee, updateFee)
}

// FreeMintQuota returns the free-mint quota of the model.
func FreeMintQuota(model int) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, append([]byte{prefixFreeQuota}, intToBytes(model)...))
}

// FreeMintsUsed returns the number of mints already performed for the
// model. Every mint counts against the quota, paid or not.
func FreeMintsUsed(model int) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, append([]byte{prefixFreeUsed}, intToBytes(model)...))
}

// SetFreeMintQuota sets the free-mint quota of the model. It can be
// invoked only by the contract owner.
func SetFreeMintQuota(model, quota int) {
	if quota < 0 {
		panic("setFreeMintQuota: negative quota")
	}
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Put(ctx, append([]byte{prefixFreeQuota}, intToBytes(model)...), quota)
	runtime.Notify("FreeMintCountChanged", model, quota)
}

// CalcModelCount returns the number of known calculation models. Valid
// model indexes are 0 up to the count, exclusive.
func CalcModelCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, []byte{calcModelCountKey})
}

// SetCalcModelCount sets the number of known calculation models. It can
// be invoked only by the contract owner.
func SetCalcModelCount(count int) {
	if count <= 0 {
		panic("setCalcModelCount: non positive count")
	}
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Put(ctx, []byte{calcModelCountKey}, count)
	runtime.Notify("CalcModelCountChanged", count)
}

// IsWhitelisted returns true if the (wallet, model) pair is exempt from
// fee checks.
func IsWhitelisted(wallet interop.Hash160, model int) bool {
	ctx := storage.GetReadOnlyContext()
	return whitelisted(ctx, wallet, model)
}

// SetWhitelist adds or removes the fee exemption of the (wallet, model)
// pair. It can be invoked only by the contract owner.
func SetWhitelist(wallet interop.Hash160, model int, allowed bool) {
	if len(wallet) != interop.Hash160Len {
		panic("setWhitelist: invalid wallet")
	}
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	key := feeKey(prefixWhitelist, wallet, model)
	if allowed {
		storage.Put(ctx, key, 1)
	} else {
		storage.Delete(ctx, key)
	}
	runtime.Notify("WhitelistStatusChanged", wallet, model, allowed)
}

// RewardRate returns the referral reward paid per wallet minted under a
// referral code of the given owner: the owner's override if set, the
// global default otherwise.
func RewardRate(wallet interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return rewardRate(ctx, wallet)
}

// SetReferralReward sets the global default referral reward rate. It
// can be invoked only by the contract owner.
func SetReferralReward(amount int) {
	checkFeeRange(amount)
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Put(ctx, []byte{globalRewardKey}, amount)
	runtime.Notify("ReferralRewardRateChanged", []byte{}, amount)
}

// SetReferralRewardFor sets the reward-rate override of the wallet,
// zero removes it. It can be invoked only by the contract owner.
func SetReferralRewardFor(wallet interop.Hash160, amount int) {
	if len(wallet) != interop.Hash160Len {
		panic("setReferralRewardFor: invalid wallet")
	}
	checkFeeRange(amount)
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	putOrDelete(ctx, append([]byte{prefixReward}, wallet...), amount)
	runtime.Notify("ReferralRewardRateChanged", []byte(wallet), amount)
}

// ReferralCodeOf returns the referral code registered by the wallet at
// its first mint, an empty string if none.
func ReferralCodeOf(wallet interop.Hash160) string {
	ctx := storage.GetReadOnlyContext()
	rawCode := storage.Get(ctx, append([]byte{prefixWalletCode}, wallet...))
	if rawCode == nil {
		return ""
	}
	return rawCode.(string)
}

// WalletByCode returns the wallet that registered the code, nil if the
// code is not registered.
func WalletByCode(code string) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	digest := crypto.Sha256([]byte(code))
	rawWallet := storage.Get(ctx, append([]byte{prefixCodeWallet}, digest...))
	if rawWallet == nil {
		return nil
	}
	return rawWallet.(interop.Hash160)
}

// ReferredWallets returns wallets queued against the code, i.e. minted
// under it before its owner registered and not yet claimed.
func ReferredWallets(code string) [][]byte {
	ctx := storage.GetReadOnlyContext()
	digest := crypto.Sha256([]byte(code))
	return common.GetList(ctx, append([]byte{prefixClaimable}, digest...))
}

// ReferredReceipts returns ids of all receipts ever minted with the
// code as a referrer stamp, claimed or not.
func ReferredReceipts(code string) []int {
	ctx := storage.GetReadOnlyContext()
	digest := crypto.Sha256([]byte(code))
	return common.GetIntList(ctx, append([]byte{prefixReferred}, digest...))
}

// ClaimableReward returns the amount a claimReferralRewards call of the
// wallet would pay right now.
func ClaimableReward(wallet interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	rawCode := storage.Get(ctx, append([]byte{prefixWalletCode}, wallet...))
	if rawCode == nil {
		return 0
	}
	digest := crypto.Sha256([]byte(rawCode.(string)))
	list := common.GetList(ctx, append([]byte{prefixClaimable}, digest...))
	return len(list) * rewardRate(ctx, wallet)
}

// Authority returns the public key score submissions must be signed with.
func Authority() interop.PublicKey {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{authorityKey}).(interop.PublicKey)
}

// SetAuthority rotates the scoring authority key. It can be invoked
// only by the contract owner.
func SetAuthority(pub interop.PublicKey) {
	if len(pub) != interop.PublicKeyCompressedLen {
		panic("setAuthority: incorrect length of public key")
	}
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Put(ctx, []byte{authorityKey}, pub)
}

// IsPaused returns true if score submission is stopped.
func IsPaused() bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{pausedKey}) != nil
}

// Pause stops score submission. Claims and withdrawals stay available.
// It can be invoked only by the contract owner.
func Pause() {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Put(ctx, []byte{pausedKey}, 1)
}

// Unpause resumes score submission. It can be invoked only by the
// contract owner.
func Unpause() {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	storage.Delete(ctx, []byte{pausedKey})
}

func scoreKey(wallet interop.Hash160, chainContext, model int) []byte {
	digest := crypto.Sha256(std.Serialize([]any{string(wallet), chainContext, model}))
	return append([]byte{prefixScore}, digest...)
}

func getScoreRecord(ctx storage.Context, key []byte) ScoreRecord {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).(ScoreRecord)
	}
	return ScoreRecord{}
}

func getBinding(ctx storage.Context, id int) ReceiptBinding {
	data := storage.Get(ctx, append([]byte{prefixReceipt}, intToBytes(id)...))
	if data == nil {
		panic("receipt not found")
	}
	return std.Deserialize(data.([]byte)).(ReceiptBinding)
}

func feeKey(prefix byte, wallet interop.Hash160, model int) []byte {
	return append(append([]byte{prefix}, wallet...), intToBytes(model)...)
}

func whitelisted(ctx storage.Context, wallet interop.Hash160, model int) bool {
	return storage.Get(ctx, feeKey(prefixWhitelist, wallet, model)) != nil
}

func rewardRate(ctx storage.Context, wallet interop.Hash160) int {
	override := storage.Get(ctx, append([]byte{prefixReward}, wallet...))
	if override != nil {
		return override.(int)
	}
	return common.GetInt(ctx, []byte{globalRewardKey})
}

func baseURI(ctx storage.Context) string {
	rawURI := storage.Get(ctx, []byte{baseURIKey})
	if rawURI == nil {
		return ""
	}
	return rawURI.(string)
}

func checkFeeRange(amount int) {
	if amount < 0 || amount > maxFee {
		panic("the fee is out of range")
	}
}

func putOrDelete(ctx storage.Context, key []byte, value int) {
	if value == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, value)
	}
}

func intToBytes(v int) []byte {
	var buf any = v
	return buf.([]byte)
}
