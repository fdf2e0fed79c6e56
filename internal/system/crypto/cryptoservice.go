/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

// Package crypto provides cryptographic functionality with algorithm agility.
package crypto

import (
	"encoding/base64"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/wso2/actionhub/internal/system/config"
	"github.com/wso2/actionhub/internal/system/log"
)

// Algorithm represents supported encryption algorithms.
type Algorithm string

const (
	// AESGCM represents AES-GCM algorithm.
	AESGCM Algorithm = "AES-GCM"
)

// CryptoService provides cryptographic operations.
type CryptoService struct {
	key   []byte
	keyID string
	algo  CryptoAlgorithm
	mu    sync.RWMutex // For thread-safe key updates
}

var (
	instance *CryptoService
	once     sync.Once
)

// GetCryptoService creates and returns a singleton instance of the CryptoService.
// The server cannot operate without a valid key, so initialization failure is fatal.
func GetCryptoService() *CryptoService {
	once.Do(func() {
		var err error
		instance, err = initCryptoService()
		if err != nil {
			log.GetLogger().Fatal("Failed to initialize CryptoService", log.Error(err))
		}
	})
	return instance
}

// initCryptoService initializes the CryptoService from the application configuration.
func initCryptoService() (*CryptoService, error) {
	encodedKey := config.GetHubRuntime().Config.Crypto.Key
	if encodedKey == "" {
		return nil, errors.New("crypto key is not configured")
	}

	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, errors.New("crypto key is not valid base64: " + err.Error())
	}

	return NewCryptoService(key)
}

// NewCryptoService creates a new instance of CryptoService with the provided key.
func NewCryptoService(key []byte) (*CryptoService, error) {
	if len(key) != 32 {
		return nil, errors.New("crypto key must be 32 bytes for AES-256")
	}

	return &CryptoService{
		key:   key,
		keyID: uuid.NewString(),
		algo:  &AESGCMAlgorithm{},
	}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM and returns the nonce-prepended ciphertext.
func (cs *CryptoService) Encrypt(plaintext []byte) ([]byte, error) {
	cs.mu.RLock()
	key := cs.key
	cs.mu.RUnlock()

	return cs.algo.Encrypt(key, plaintext)
}

// Decrypt decrypts nonce-prepended ciphertext and returns the plaintext.
func (cs *CryptoService) Decrypt(data []byte) ([]byte, error) {
	cs.mu.RLock()
	key := cs.key
	cs.mu.RUnlock()

	return cs.algo.Decrypt(key, data)
}

// KeyID returns the unique identifier of the active key.
func (cs *CryptoService) KeyID() string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.keyID
}
