package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// ErrDecode is returned for any token that cannot be turned into a valid
// session record: integrity failure, expired envelope, malformed payload.
// Callers treat all of these identically as "no session".
var ErrDecode = errors.New("invalid session token")

// envelopeTTL bounds the encrypted cookie itself, independently of the
// credential expiry carried inside it.
const envelopeTTL = 7 * 24 * time.Hour

// Codec encrypts and decrypts session records. The symmetric key is derived
// once from the shared secret and is read-only afterwards.
type Codec struct {
	key       []byte
	encrypter jose.Encrypter
}

// NewCodec derives an A256GCM key from the shared secret via SHA-256.
// Derivation is deterministic: the same secret always yields the same key.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}

	sum := sha256.Sum256([]byte(secret))
	key := sum[:]

	encrypter, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: key},
		(&jose.EncrypterOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session encrypter: %w", err)
	}

	return &Codec{key: key, encrypter: encrypter}, nil
}

// Encode serializes the record into an encrypted token with a fresh
// issued-at time and the fixed envelope validity window.
func (c *Codec) Encode(rec *Record) (string, error) {
	return c.encodeAt(rec, time.Now())
}

func (c *Codec) encodeAt(rec *Record, now time.Time) (string, error) {
	if !rec.Valid() {
		return "", errors.New("refusing to encode invalid session record")
	}

	claims := jwt.Claims{
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(envelopeTTL)),
	}

	token, err := jwt.Encrypted(c.encrypter).Claims(claims).Claims(rec).Serialize()
	if err != nil {
		return "", fmt.Errorf("failed to encrypt session: %w", err)
	}
	return token, nil
}

// Decode decrypts and validates a session token. Any failure, cryptographic
// or semantic, collapses into ErrDecode; the raw cause is never propagated.
func (c *Codec) Decode(token string) (*Record, error) {
	return c.decodeAt(token, time.Now())
}

func (c *Codec) decodeAt(token string, now time.Time) (*Record, error) {
	parsed, err := jwt.ParseEncrypted(
		token,
		[]jose.KeyAlgorithm{jose.DIRECT},
		[]jose.ContentEncryption{jose.A256GCM},
	)
	if err != nil {
		return nil, ErrDecode
	}

	var claims jwt.Claims
	var rec Record
	if err := parsed.Claims(c.key, &claims, &rec); err != nil {
		return nil, ErrDecode
	}

	// Envelope expiry is enforced here; credential expiry is the
	// middleware's concern.
	if err := claims.Validate(jwt.Expected{Time: now}); err != nil {
		return nil, ErrDecode
	}

	if !rec.Valid() {
		return nil, ErrDecode
	}

	return &rec, nil
}
