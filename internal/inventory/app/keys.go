package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/inventory/pkg/cryptox"
	"github.com/aussiebroadwan/inventory/pkg/jwtx"
)

// InitCodec loads (or creates) the signing material for the configured
// algorithm and returns the access token codec.
//
// Algorithms:
//   - "HS256": a shared secret read from SecretFile. Any process holding the
//     same file can verify tokens.
//   - "EdDSA": an Ed25519 private key read from KeyFile in PEM form.
//
// Missing files are generated with mode 0600, so restarting with the same
// files keeps previously issued access tokens valid.
func InitCodec(cfg Config, logger *slog.Logger) (*jwtx.Codec, error) {
	var (
		signer jwtx.Signer
		err    error
	)

	switch cfg.Algorithm {
	case AlgorithmHS256:
		var secret []byte
		secret, err = cryptox.LoadOrCreateSecret(cfg.SecretFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing secret: %w", err)
		}
		signer, err = jwtx.NewHS256Signer(secret)
		logger.Info("signing secret loaded", "algorithm", cfg.Algorithm, "path", cfg.SecretFile)

	case AlgorithmEdDSA:
		key, kerr := cryptox.LoadOrCreateEd25519Key(cfg.KeyFile)
		if kerr != nil {
			return nil, fmt.Errorf("failed to load signing key: %w", kerr)
		}
		signer, err = jwtx.NewEdDSASigner(key)
		logger.Info("signing key loaded", "algorithm", cfg.Algorithm, "path", cfg.KeyFile)

	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build signer: %w", err)
	}

	return jwtx.NewCodec(signer, cfg.Issuer, cfg.AccessTTL)
}
