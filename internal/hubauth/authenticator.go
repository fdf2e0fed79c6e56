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

// Package hubauth provides shared-secret authentication for inbound hub requests.
package hubauth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"

	"github.com/wso2/actionhub/internal/system/config"
	"github.com/wso2/actionhub/internal/system/constants"
)

const tokenPrefix = "Token token="

// AuthResult holds the outcome of authenticating an inbound request.
type AuthResult struct {
	Authorized       bool
	StatusCode       int
	ErrorCode        string
	ErrorDescription string
}

// AuthenticatorInterface defines the interface for inbound request authentication.
type AuthenticatorInterface interface {
	Authenticate(r *http.Request) AuthResult
}

// Authenticator implements AuthenticatorInterface using a shared secret.
type Authenticator struct {
	secret string
}

var (
	instance *Authenticator
	once     sync.Once
)

// GetAuthenticator returns the singleton Authenticator configured with the hub secret.
func GetAuthenticator() AuthenticatorInterface {
	once.Do(func() {
		instance = NewAuthenticator(config.GetHubRuntime().Config.Hub.Secret)
	})
	return instance
}

// NewAuthenticator creates a new Authenticator with the given shared secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{
		secret: secret,
	}
}

// Authenticate verifies the authorization header of the given request.
// A missing or malformed header is reported as unauthenticated, while a
// well-formed header carrying the wrong secret is reported as forbidden.
func (a *Authenticator) Authenticate(r *http.Request) AuthResult {
	authHeader := r.Header.Get(constants.AuthorizationHeaderName)
	if authHeader == "" {
		return AuthResult{
			Authorized:       false,
			StatusCode:       http.StatusUnauthorized,
			ErrorCode:        ErrorMissingAuthorizationHeader.Code,
			ErrorDescription: ErrorMissingAuthorizationHeader.ErrorDescription,
		}
	}

	token, ok := extractToken(authHeader)
	if !ok {
		return AuthResult{
			Authorized:       false,
			StatusCode:       http.StatusUnauthorized,
			ErrorCode:        ErrorMalformedAuthorizationHeader.Code,
			ErrorDescription: ErrorMalformedAuthorizationHeader.ErrorDescription,
		}
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(a.secret)) != 1 {
		return AuthResult{
			Authorized:       false,
			StatusCode:       http.StatusForbidden,
			ErrorCode:        ErrorInvalidSecret.Code,
			ErrorDescription: ErrorInvalidSecret.ErrorDescription,
		}
	}

	return AuthResult{
		Authorized: true,
		StatusCode: http.StatusOK,
	}
}

// extractToken extracts the secret from an authorization header of the
// form `Token token="<secret>"`.
func extractToken(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, tokenPrefix) {
		return "", false
	}

	token := strings.TrimPrefix(authHeader, tokenPrefix)
	if len(token) < 2 || !strings.HasPrefix(token, `"`) || !strings.HasSuffix(token, `"`) {
		return "", false
	}

	return token[1 : len(token)-1], true
}
