/*
Package scoreregistry implements the Unit0 Score Registry contract, a
verifiable, fee-gated reputation-score registry with an attached
referral-reward ledger.

An off-chain authority computes a numeric score for a wallet under a
named calculation model and chain context and signs the result together
with the wallet's current nonce and a deadline. The contract verifies
the signature, charges the fee resolved from the tiered schedule
(individual overrides, whitelist exemptions, per-model free-mint
quotas, global fees), then either mints a new non-transferable receipt
for the (wallet, chain, model) key or updates the stored value in
place. First-time registrations may carry a referral code of their own
and a referrer code; referrers are paid from the pooled contract
balance immediately when their code is already registered, or accrue a
claimable credit settled later by claimReferralRewards.

Known weaknesses, preserved deliberately: a referral code collision
silently rebinds the code to the later wallet instead of failing, and
owner withdrawals draw from the same pooled balance as pending referral
claims, so the owner is trusted not to starve them.

# Contract notifications

ScoreChanged notification is produced on every accepted submission:

	ScoreChanged
	  - name: receiptId
	    type: Integer
	  - name: wallet
	    type: Hash160
	  - name: value
	    type: Integer
	  - name: model
	    type: Integer
	  - name: chainContext
	    type: Integer
	  - name: metaPointer
	    type: String
	  - name: referralCodeDigest
	    type: Hash256
	  - name: referrerCodeDigest
	    type: Hash256

ReceiptMinted, WalletRewarded, ReferralRewardClaimed, Withdrawal and
the configuration change notifications (FeeChanged,
IndividualFeeChanged, FreeMintCountChanged, CalcModelCountChanged,
ReferralRewardRateChanged, WhitelistStatusChanged, BaseURIChanged) are
produced by the corresponding methods for off-chain indexing; nothing
consumes them on-chain.
*/
package scoreregistry

/*
Contract storage model.

Current conventions:
 <wallet>: 20-byte script hash of a wallet
 <model>: little-endian integer index of a calculation model
 <id>: little-endian integer receipt id
 <digest>: sha256 of a referral code string

# Summary
Key-value storage format:
 - 0x00 -> int
   last assigned receipt id, doubles as total supply
 - 0x01 -> public key
   scoring authority key submissions are verified against
 - 0x02 -> int
   submission pause flag, absent when not paused
 - 0x03 -> string
   metadata base pointer of receipt documents
 - 0x04 -> int
   number of known calculation models
 - 0x05, 0x06 -> int
   global mint and update fees
 - 0x07 -> int
   global default referral reward rate
 - 0x10<wallet> -> int
   replay-protection nonce, incremented once per accepted submission
 - 0x11 + sha256(wallet, chain, model) -> std.Serialize(ScoreRecord)
   score state of the key, created lazily at first mint
 - 0x12<id> -> std.Serialize(ReceiptBinding)
   receipt id to (wallet, chain, model) binding, never changed
 - 0x13<wallet><id> -> int
   receipt ids held by a wallet
 - 0x14<wallet> -> int
   number of receipts held by a wallet
 - 0x20<wallet><model>, 0x21<wallet><model> -> int
   individual mint/update fee overrides
 - 0x22<model>, 0x23<model> -> int
   free-mint quota and consumed mint count per model
 - 0x24<wallet><model> -> int
   fee-exemption whitelist, absent when not whitelisted
 - 0x30<wallet> -> string
   referral code registered by the wallet at its first mint
 - 0x31<digest> -> Hash160
   reverse referral code lookup, silently rebound on collision
 - 0x32<digest> -> std.Serialize([][]byte)
   claimable list: wallets minted under the code before its owner
   registered, cleared by claimReferralRewards before the payout
 - 0x33<digest> -> std.Serialize([]int)
   receipt ids of every mint stamped with the code as referrer
 - 0x34<wallet> -> int
   referral reward-rate override
*/
