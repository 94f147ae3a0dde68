package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHashFormat   = errors.New("invalid encoded hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// HashParams configures the Argon2id hashing parameters.
type HashParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams returns recommended Argon2id parameters for password hashing.
func DefaultHashParams() HashParams {
	return HashParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher derives and verifies password hashes using Argon2id. The parameters
// are fixed at construction time; stored hashes carry their own parameters in
// the PHC encoding, so old hashes stay verifiable after a parameter change.
type Hasher struct {
	params HashParams
}

// NewHasher creates a Hasher with the given parameters.
func NewHasher(params HashParams) *Hasher {
	return &Hasher{params: params}
}

// Hash hashes a password using Argon2id with a fresh random salt.
// Returns the hash encoded in PHC string format. Two calls with the same
// password produce different encodings.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	// Encode in PHC format: $argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-hash>
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify checks whether a password matches the given Argon2id encoded hash.
// Uses constant-time comparison to prevent timing attacks. A malformed stored
// hash is reported as an error, never as a mismatch.
func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, hash, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	if subtle.ConstantTimeCompare(hash, candidate) == 1 {
		return true, nil
	}

	return false, nil
}

// decodeHash parses a PHC-formatted Argon2id hash string.
func decodeHash(encodedHash string) (HashParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}

	if parts[1] != "argon2id" {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}
	if version != argon2.Version {
		return HashParams{}, nil, nil, ErrIncompatibleVersion
	}

	var params HashParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}
	params.SaltLength = uint32(len(salt))

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}
	params.KeyLength = uint32(len(hash))

	return params, salt, hash, nil
}
