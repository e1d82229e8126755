package exported

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/btcsuite/btcd/btcec/v2"
	ec "github.com/btcsuite/btcd/btcec/v2/ecdsa"

	union "github.com/uniongov/union-core/types"
	groupexported "github.com/uniongov/union-core/x/group/exported"
)

// Hash is the digest a shares snapshot is signed over
type Hash [sha256.Size]byte

// SharesInfo is an attested snapshot of a principal's balance in a group at a point in time
type SharesInfo struct {
	GroupID     groupexported.GroupID `json:"group_id"`
	Owner       union.Principal       `json:"owner"`
	Balance     sdkmath.Uint          `json:"balance"`
	TotalSupply sdkmath.Uint          `json:"total_supply"`
	Timestamp   time.Time             `json:"timestamp"`
	Signature   []byte                `json:"signature"`
	PublicKey   []byte                `json:"public_key"`
}

// ValidateBasic performs the structural checks on the snapshot. It does not verify the signature.
func (m SharesInfo) ValidateBasic() error {
	if err := m.Owner.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid owner: %w", err)
	}

	if m.Balance.IsNil() || m.TotalSupply.IsNil() {
		return fmt.Errorf("balance and total supply must be set")
	}

	if m.Balance.GT(m.TotalSupply) {
		return fmt.Errorf("balance %s exceeds total supply %s", m.Balance, m.TotalSupply)
	}

	if m.Timestamp.IsZero() {
		return fmt.Errorf("timestamp must be set")
	}

	if len(m.Signature) == 0 {
		return fmt.Errorf("signature must be set")
	}

	if len(m.PublicKey) == 0 {
		return fmt.Errorf("public key must be set")
	}

	return nil
}

// Hash returns the digest of all attested fields
func (m SharesInfo) Hash() Hash {
	h := sha256.New()
	h.Write(binary.BigEndian.AppendUint64(nil, uint64(m.GroupID)))
	h.Write([]byte(m.Owner))
	h.Write([]byte{0})
	h.Write([]byte(m.Balance.String()))
	h.Write([]byte{0})
	h.Write([]byte(m.TotalSupply.String()))
	h.Write(binary.BigEndian.AppendUint64(nil, uint64(m.Timestamp.UnixNano())))

	var hash Hash
	copy(hash[:], h.Sum(nil))

	return hash
}

// Sign attaches a signature and the signer's public key to the snapshot
func (m SharesInfo) Sign(sk *btcec.PrivateKey) SharesInfo {
	hash := m.Hash()
	m.Signature = ec.Sign(sk, hash[:]).Serialize()
	m.PublicKey = sk.PubKey().SerializeCompressed()

	return m
}

// Verify returns an error if the signature does not match the attached public key
func (m SharesInfo) Verify() error {
	sig, err := ec.ParseDERSignature(m.Signature)
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}

	pk, err := btcec.ParsePubKey(m.PublicKey)
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}

	hash := m.Hash()
	if !sig.Verify(hash[:], pk) {
		return fmt.Errorf("signature does not match")
	}

	return nil
}
