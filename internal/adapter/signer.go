package adapter

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer defines an interface for transaction signing to enable mocking
//
//go:generate mockgen -source=signer.go -destination=../mocks/signer.go -package=mocks -mock_names=Signer=MockSigner
type Signer interface {
	// Address returns the address derived from the signing key
	Address() common.Address

	// SignTx signs a transaction with the custodied key for the given chain id
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// RealSigner implements Signer with an in-process ECDSA private key
type RealSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner creates a signer from a hex-encoded private key
func NewSigner(privateKeyHex string) (Signer, error) {
	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &RealSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (s *RealSigner) Address() common.Address {
	return s.address
}

func (s *RealSigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}
