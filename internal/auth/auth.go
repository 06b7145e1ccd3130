// Package auth signs Kalshi API requests with RSA-PSS signatures.
package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Header names attached to every authenticated request.
const (
	HeaderAccessKey = "KALSHI-ACCESS-KEY"
	HeaderTimestamp = "KALSHI-ACCESS-TIMESTAMP"
	HeaderSignature = "KALSHI-ACCESS-SIGNATURE"
)

// Credentials holds the API key ID and RSA private key used for signing.
type Credentials struct {
	KeyID      string
	PrivateKey *rsa.PrivateKey
}

// Load reads credentials from a key ID and a PEM private key file.
// Malformed key material is fatal: the bot must not start without a
// working signer.
func Load(keyID, privateKeyPath string) (*Credentials, error) {
	if keyID == "" {
		return nil, fmt.Errorf("API key ID is required")
	}
	if privateKeyPath == "" {
		return nil, fmt.Errorf("private key path is required")
	}

	data, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key, err := ParsePrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return &Credentials{KeyID: keyID, PrivateKey: key}, nil
}

// ParsePrivateKey parses an RSA private key from PEM bytes.
// Tries PKCS#8 first, then falls back to PKCS#1.
func ParsePrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("key is not an RSA private key")
		}
		return rsaKey, nil
	}

	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse PKCS#1 key: %w", err)
	}
	return rsaKey, nil
}

// RequestHeaders produces the three authentication headers for a request.
// The signed message is "{timestamp_ms}{METHOD}{path}"; path must NOT
// include the query string even when one is sent on the wire.
func (c *Credentials) RequestHeaders(method, path string) (map[string]string, error) {
	ts := time.Now().UnixMilli()

	sig, err := c.sign(ts, method, path)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		HeaderAccessKey: c.KeyID,
		HeaderTimestamp: strconv.FormatInt(ts, 10),
		HeaderSignature: sig,
	}, nil
}

// sign computes base64(RSA-PSS-SHA256(timestamp + METHOD + path)).
func (c *Credentials) sign(timestampMs int64, method, path string) (string, error) {
	message := fmt.Sprintf("%d%s%s", timestampMs, method, path)
	hashed := sha256.Sum256([]byte(message))

	sig, err := rsa.SignPSS(
		rand.Reader,
		c.PrivateKey,
		crypto.SHA256,
		hashed[:],
		&rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash},
	)
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}

	return base64.StdEncoding.EncodeToString(sig), nil
}
