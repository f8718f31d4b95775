package scoreregistry

import (
	"crypto/sha256"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// domainTag separates score submission signatures from any other
// messages the scoring authority key may sign.
const domainTag = "UNIT0SCORE_V1"

// Submission holds the arguments of a single submitScore call. Nonce
// must be the wallet's current on-chain nonce, see
// [ContractReader.Nonce].
type Submission struct {
	Wallet        util.Uint160
	ChainContext  int64
	Model         int64
	Value         int64
	Nonce         int64
	Deadline      int64
	MetaPointer   string
	ReferralCode  string
	ReferrerCode  string
	DiscountedFee int64
}

// SubmissionMessage builds the byte sequence the contract deployed at
// the given hash verifies the authority signature against. Variable
// length string arguments enter the message as SHA-256 digests, so the
// encoding is unambiguous regardless of their content.
func SubmissionMessage(contractHash util.Uint160, s Submission) ([]byte, error) {
	meta := sha256.Sum256([]byte(s.MetaPointer))
	referral := sha256.Sum256([]byte(s.ReferralCode))
	referrer := sha256.Sum256([]byte(s.ReferrerCode))

	return stackitem.Serialize(stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray([]byte(domainTag)),
		stackitem.NewByteArray(contractHash.BytesBE()),
		stackitem.NewByteArray(s.Wallet.BytesBE()),
		stackitem.Make(s.ChainContext),
		stackitem.Make(s.Model),
		stackitem.Make(s.Value),
		stackitem.Make(s.Nonce),
		stackitem.Make(s.Deadline),
		stackitem.NewByteArray(meta[:]),
		stackitem.NewByteArray(referral[:]),
		stackitem.NewByteArray(referrer[:]),
		stackitem.Make(s.DiscountedFee),
	}))
}

// SignSubmission signs the [SubmissionMessage] of the given submission
// with the scoring authority key.
func SignSubmission(authority *keys.PrivateKey, contractHash util.Uint160, s Submission) ([]byte, error) {
	msg, err := SubmissionMessage(contractHash, s)
	if err != nil {
		return nil, err
	}
	return authority.Sign(msg), nil
}

// NewReferralCode returns a fresh random referral code. Codes are
// base58-encoded UUIDs, short enough to share and unique enough to
// make reverse lookup collisions practically impossible.
func NewReferralCode() string {
	id := uuid.New()
	return base58.Encode(id[:])
}
