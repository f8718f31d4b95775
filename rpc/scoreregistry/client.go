// Package scoreregistry contains RPC wrappers for the Unit0 Score
// Registry contract.
package scoreregistry

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Invoker is used by ContractReader to call safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to create and send transactions.
type Actor interface {
	Invoker

	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ScoreRecord is a contract-specific scoreregistry.ScoreRecord type
// used by its methods.
type ScoreRecord struct {
	ReceiptID   *big.Int
	LastUpdated *big.Int
	Value       *big.Int
}

// ReceiptScore is a contract-specific scoreregistry.ReceiptScore type
// used by its methods.
type ReceiptScore struct {
	Wallet       util.Uint160
	ChainContext *big.Int
	Model        *big.Int
	ReceiptID    *big.Int
	LastUpdated  *big.Int
	Value        *big.Int
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader

	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using the provided
// contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker: invoker, hash: hash}
}

// New creates an instance of Contract using the provided contract hash
// and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader: ContractReader{invoker: actor, hash: hash}, actor: actor, hash: hash}
}

// Nonce invokes `nonce` method of contract.
func (c *ContractReader) Nonce(wallet util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "nonce", wallet))
}

// GetScore invokes `getScore` method of contract.
func (c *ContractReader) GetScore(wallet util.Uint160, chainContext, model int64) (*ScoreRecord, error) {
	items, err := unwrap.Array(c.invoker.Call(c.hash, "getScore", wallet, chainContext, model))
	if err != nil {
		return nil, err
	}
	return scoreRecordFromItems(items)
}

// GetScoreByReceipt invokes `getScoreByReceipt` method of contract.
func (c *ContractReader) GetScoreByReceipt(id int64) (*ReceiptScore, error) {
	items, err := unwrap.Array(c.invoker.Call(c.hash, "getScoreByReceipt", id))
	if err != nil {
		return nil, err
	}
	return receiptScoreFromItems(items)
}

// ReceiptsOf invokes `receiptsOf` method of contract.
func (c *ContractReader) ReceiptsOf(wallet util.Uint160) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "receiptsOf", wallet))
}

// TotalSupply invokes `totalSupply` method of contract.
func (c *ContractReader) TotalSupply() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupply"))
}

// BalanceOf invokes `balanceOf` method of contract.
func (c *ContractReader) BalanceOf(wallet util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "balanceOf", wallet))
}

// OwnerOf invokes `ownerOf` method of contract.
func (c *ContractReader) OwnerOf(id int64) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "ownerOf", id))
}

// GlobalMintFee invokes `globalMintFee` method of contract.
func (c *ContractReader) GlobalMintFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "globalMintFee"))
}

// GlobalUpdateFee invokes `globalUpdateFee` method of contract.
func (c *ContractReader) GlobalUpdateFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "globalUpdateFee"))
}

// IndividualMintFee invokes `individualMintFee` method of contract.
func (c *ContractReader) IndividualMintFee(wallet util.Uint160, model int64) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "individualMintFee", wallet, model))
}

// IndividualUpdateFee invokes `individualUpdateFee` method of contract.
func (c *ContractReader) IndividualUpdateFee(wallet util.Uint160, model int64) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "individualUpdateFee", wallet, model))
}

// FreeMintQuota invokes `freeMintQuota` method of contract.
func (c *ContractReader) FreeMintQuota(model int64) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "freeMintQuota", model))
}

// FreeMintsUsed invokes `freeMintsUsed` method of contract.
func (c *ContractReader) FreeMintsUsed(model int64) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "freeMintsUsed", model))
}

// CalcModelCount invokes `calcModelCount` method of contract.
func (c *ContractReader) CalcModelCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "calcModelCount"))
}

// IsWhitelisted invokes `isWhitelisted` method of contract.
func (c *ContractReader) IsWhitelisted(wallet util.Uint160, model int64) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isWhitelisted", wallet, model))
}

// IsPaused invokes `isPaused` method of contract.
func (c *ContractReader) IsPaused() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isPaused"))
}

// BaseURI invokes `baseURI` method of contract.
func (c *ContractReader) BaseURI() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "baseURI"))
}

// RewardRate invokes `rewardRate` method of contract.
func (c *ContractReader) RewardRate(wallet util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "rewardRate", wallet))
}

// ClaimableReward invokes `claimableReward` method of contract.
func (c *ContractReader) ClaimableReward(wallet util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "claimableReward", wallet))
}

// ReferralCodeOf invokes `referralCodeOf` method of contract. It
// returns an empty string and no error when the wallet has no code
// registered.
func (c *ContractReader) ReferralCodeOf(wallet util.Uint160) (string, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "referralCodeOf", wallet))
	if err != nil {
		return "", err
	}
	if _, ok := item.(stackitem.Null); ok {
		return "", nil
	}
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WalletByCode invokes `walletByCode` method of contract. It returns a
// zero hash and no error when the code is not registered.
func (c *ContractReader) WalletByCode(code string) (util.Uint160, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "walletByCode", code))
	if err != nil {
		return util.Uint160{}, err
	}
	if _, ok := item.(stackitem.Null); ok {
		return util.Uint160{}, nil
	}
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

// ReferredWallets invokes `referredWallets` method of contract.
func (c *ContractReader) ReferredWallets(code string) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "referredWallets", code))
}

// ReferredReceipts invokes `referredReceipts` method of contract.
func (c *ContractReader) ReferredReceipts(code string) ([]*big.Int, error) {
	return unwrap.ArrayOfBigInts(c.invoker.Call(c.hash, "referredReceipts", code))
}

// SubmitScore creates and sends a transaction invoking `submitScore`
// method of contract. Signature must be produced by the scoring
// authority over [SubmissionMessage] of the same arguments and the
// wallet's current nonce.
func (c *Contract) SubmitScore(s Submission, signature []byte, payment int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "submitScore",
		s.Wallet, s.ChainContext, s.Model, s.Value, s.Deadline,
		s.MetaPointer, s.ReferralCode, s.ReferrerCode, s.DiscountedFee,
		signature, payment)
}

// ClaimReferralRewards creates and sends a transaction invoking
// `claimReferralRewards` method of contract.
func (c *Contract) ClaimReferralRewards(wallet util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "claimReferralRewards", wallet)
}

// Withdraw creates and sends a transaction invoking `withdraw` method
// of contract.
func (c *Contract) Withdraw(to util.Uint160, amount int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", to, amount)
}

// SetGlobalFees creates and sends a transaction invoking
// `setGlobalFees` method of contract.
func (c *Contract) SetGlobalFees(mintFee, updateFee int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setGlobalFees", mintFee, updateFee)
}

// SetIndividualFees creates and sends a transaction invoking
// `setIndividualFees` method of contract.
func (c *Contract) SetIndividualFees(wallet util.Uint160, model, mintFee, updateFee int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setIndividualFees", wallet, model, mintFee, updateFee)
}

// SetFreeMintQuota creates and sends a transaction invoking
// `setFreeMintQuota` method of contract.
func (c *Contract) SetFreeMintQuota(model, quota int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setFreeMintQuota", model, quota)
}

// SetCalcModelCount creates and sends a transaction invoking
// `setCalcModelCount` method of contract.
func (c *Contract) SetCalcModelCount(count int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setCalcModelCount", count)
}

// SetReferralReward creates and sends a transaction invoking
// `setReferralReward` method of contract.
func (c *Contract) SetReferralReward(amount int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setReferralReward", amount)
}

// SetReferralRewardFor creates and sends a transaction invoking
// `setReferralRewardFor` method of contract.
func (c *Contract) SetReferralRewardFor(wallet util.Uint160, amount int64) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setReferralRewardFor", wallet, amount)
}

// SetWhitelist creates and sends a transaction invoking `setWhitelist`
// method of contract.
func (c *Contract) SetWhitelist(wallet util.Uint160, model int64, allowed bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setWhitelist", wallet, model, allowed)
}

// SetBaseURI creates and sends a transaction invoking `setBaseURI`
// method of contract.
func (c *Contract) SetBaseURI(uri string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setBaseURI", uri)
}

// Pause creates and sends a transaction invoking `pause` method of
// contract.
func (c *Contract) Pause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "pause")
}

// Unpause creates and sends a transaction invoking `unpause` method of
// contract.
func (c *Contract) Unpause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unpause")
}

func scoreRecordFromItems(items []stackitem.Item) (*ScoreRecord, error) {
	if len(items) != 3 {
		return nil, fmt.Errorf("wrong number of structure elements: %d", len(items))
	}

	var (
		res = new(ScoreRecord)
		err error
	)
	if res.ReceiptID, err = items[0].TryInteger(); err != nil {
		return nil, fmt.Errorf("field ReceiptID: %w", err)
	}
	if res.LastUpdated, err = items[1].TryInteger(); err != nil {
		return nil, fmt.Errorf("field LastUpdated: %w", err)
	}
	if res.Value, err = items[2].TryInteger(); err != nil {
		return nil, fmt.Errorf("field Value: %w", err)
	}
	return res, nil
}

func receiptScoreFromItems(items []stackitem.Item) (*ReceiptScore, error) {
	if len(items) != 6 {
		return nil, fmt.Errorf("wrong number of structure elements: %d", len(items))
	}

	var (
		res = new(ReceiptScore)
		err error
	)
	b, err := items[0].TryBytes()
	if err != nil {
		return nil, fmt.Errorf("field Wallet: %w", err)
	}
	if res.Wallet, err = util.Uint160DecodeBytesBE(b); err != nil {
		return nil, fmt.Errorf("field Wallet: %w", err)
	}
	if res.ChainContext, err = items[1].TryInteger(); err != nil {
		return nil, fmt.Errorf("field ChainContext: %w", err)
	}
	if res.Model, err = items[2].TryInteger(); err != nil {
		return nil, fmt.Errorf("field Model: %w", err)
	}
	if res.ReceiptID, err = items[3].TryInteger(); err != nil {
		return nil, fmt.Errorf("field ReceiptID: %w", err)
	}
	if res.LastUpdated, err = items[4].TryInteger(); err != nil {
		return nil, fmt.Errorf("field LastUpdated: %w", err)
	}
	if res.Value, err = items[5].TryInteger(); err != nil {
		return nil, fmt.Errorf("field Value: %w", err)
	}
	return res, nil
}
