/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package statetoken provides encoding and decoding of authenticated,
// URL-safe continuation tokens carried through external OAuth redirects.
package statetoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"

	"github.com/wso2/actionhub/internal/system/crypto"
)

// ErrInvalidToken is returned for any token that cannot be decoded. The
// cause is deliberately not distinguished to callers.
var ErrInvalidToken = errors.New("invalid state token")

// StatePayload is the plaintext content of a continuation token.
type StatePayload struct {
	StateURL    string `json:"state_url"`
	SessionData string `json:"session_data,omitempty"`
}

// CodecInterface defines the interface for state token operations.
type CodecInterface interface {
	// Encode serializes and encrypts the payload into a URL-safe token.
	Encode(payload StatePayload) (string, error)
	// Decode decrypts and deserializes a token produced by Encode.
	Decode(token string) (StatePayload, error)
}

// Codec implements CodecInterface using the server's crypto service.
type Codec struct {
	cryptoService *crypto.CryptoService
}

var (
	instance *Codec
	once     sync.Once
)

// GetCodec returns the singleton Codec backed by the default crypto service.
func GetCodec() CodecInterface {
	once.Do(func() {
		instance = NewCodec(crypto.GetCryptoService())
	})
	return instance
}

// NewCodec creates a new Codec with the provided crypto service.
func NewCodec(cryptoService *crypto.CryptoService) *Codec {
	return &Codec{
		cryptoService: cryptoService,
	}
}

// Encode serializes and encrypts the payload into a URL-safe token.
func (c *Codec) Encode(payload StatePayload) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	ciphertext, err := c.cryptoService.Encrypt(plaintext)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// Decode decrypts and deserializes a token produced by Encode. Any failure,
// whether in decoding, decryption, or deserialization, yields ErrInvalidToken.
func (c *Codec) Decode(token string) (StatePayload, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return StatePayload{}, ErrInvalidToken
	}

	plaintext, err := c.cryptoService.Decrypt(ciphertext)
	if err != nil {
		return StatePayload{}, ErrInvalidToken
	}

	var payload StatePayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return StatePayload{}, ErrInvalidToken
	}

	return payload, nil
}
