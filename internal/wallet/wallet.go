package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	projectrpc "solana-token-api/internal/rpc"
)

// Config holds the signing wallet settings. PrivateKey accepts either a
// base58-encoded 64-byte key or a solana-keygen JSON byte array.
type Config struct {
	PrivateKey string

	SkipPreflight       bool
	PreflightCommitment string // e.g. "processed"
}

// Wallet signs Jupiter-built transactions with a server-side key and
// broadcasts them over RPC.
type Wallet struct {
	cfg  Config
	rpc  *projectrpc.Client
	priv solana.PrivateKey
	pub  solana.PublicKey
}

func New(cfg Config, rpcClient *projectrpc.Client) (*Wallet, error) {
	if rpcClient == nil {
		return nil, fmt.Errorf("wallet: rpc client is required")
	}
	if strings.TrimSpace(cfg.PrivateKey) == "" {
		return nil, fmt.Errorf("wallet: PrivateKey is required")
	}
	if cfg.PreflightCommitment == "" {
		cfg.PreflightCommitment = "processed"
	}

	priv, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		cfg:  cfg,
		rpc:  rpcClient,
		priv: priv,
		pub:  priv.PublicKey(),
	}, nil
}

func (w *Wallet) Address() string             { return w.pub.String() }
func (w *Wallet) PublicKey() solana.PublicKey { return w.pub }

// SignAndSend signs a base64-serialized transaction with the wallet
// key and submits it, returning the transaction signature.
func (w *Wallet) SignAndSend(ctx context.Context, txBase64 string) (string, error) {
	tx, err := solana.TransactionFromBase64(txBase64)
	if err != nil {
		return "", fmt.Errorf("wallet: invalid transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.pub) {
			return &w.priv
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("wallet: sign failed: %w", err)
	}

	signed, err := tx.ToBase64()
	if err != nil {
		return "", fmt.Errorf("wallet: serialize failed: %w", err)
	}

	txid, err := w.rpc.SendTransaction(ctx, signed, w.cfg.SkipPreflight, w.cfg.PreflightCommitment)
	if err != nil {
		return "", fmt.Errorf("wallet: send failed: %w", err)
	}
	return txid, nil
}

// ParsePrivateKey accepts either a solana-keygen JSON array or a
// base58-encoded 64-byte ed25519 key.
func ParsePrivateKey(s string) (solana.PrivateKey, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var ints []int
		if err := json.Unmarshal([]byte(s), &ints); err != nil {
			return nil, fmt.Errorf("wallet: invalid JSON private key: %w", err)
		}
		b := make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("wallet: invalid byte at %d: %d", i, v)
			}
			b[i] = byte(v)
		}
		if len(b) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("wallet: expected %d bytes, got %d", ed25519.PrivateKeySize, len(b))
		}
		return solana.PrivateKey(ed25519.PrivateKey(b)), nil
	}

	raw, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("wallet: invalid base58 private key: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("wallet: expected %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}
	return solana.PrivateKey(ed25519.PrivateKey(raw)), nil
}
