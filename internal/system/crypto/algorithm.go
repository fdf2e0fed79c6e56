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

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
)

// CryptoAlgorithm defines the interface that all encryption algorithms must implement.
type CryptoAlgorithm interface {
	Encrypt(key []byte, plaintext []byte) ([]byte, error)
	Decrypt(key []byte, data []byte) ([]byte, error)
	Name() Algorithm
}

// AESGCMAlgorithm implements the CryptoAlgorithm interface for AES-GCM.
type AESGCMAlgorithm struct{}

// Encrypt encrypts the given plaintext using AES-GCM and returns the nonce-prepended ciphertext.
func (a *AESGCMAlgorithm) Encrypt(key []byte, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	// Create a nonce
	nonce := make([]byte, aesgcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return nil, err
	}

	// Encrypt and authenticate plaintext, prepend nonce
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt decrypts nonce-prepended ciphertext encrypted using AES-GCM and returns the plaintext.
func (a *AESGCMAlgorithm) Decrypt(key []byte, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	// Verify ciphertext length
	nonceSize := aesGCM.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}

	// Extract nonce and decrypt
	nonce, encryptedData := data[:nonceSize], data[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, encryptedData, nil)
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}

// Name returns the algorithm name.
func (a *AESGCMAlgorithm) Name() Algorithm {
	return AESGCM
}
