package discord

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
)

func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}

	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must have %d bytes", ed25519.PublicKeySize)
	}

	return ed25519.PublicKey(key), nil
}

// Verify checks the signature Discord puts on every interaction request and
// returns the request body. The body stays readable from r afterwards.
func Verify(r *http.Request, key ed25519.PublicKey) ([]byte, error) {
	signature := r.Header.Get("X-Signature-Ed25519")
	if signature == "" {
		return nil, fmt.Errorf("signature can not empty")
	}

	sig, err := hex.DecodeString(signature)
	if err != nil {
		return nil, err
	}

	if len(sig) != ed25519.SignatureSize || sig[63]&224 != 0 {
		return nil, fmt.Errorf("signature is not valid")
	}

	timestamp := r.Header.Get("X-Signature-Timestamp")
	if timestamp == "" {
		return nil, fmt.Errorf("timestamp can not empty")
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	message := append([]byte(timestamp), bodyBytes...)
	if !ed25519.Verify(key, message, sig) {
		return nil, fmt.Errorf("signature is not valid")
	}

	return bodyBytes, nil
}
