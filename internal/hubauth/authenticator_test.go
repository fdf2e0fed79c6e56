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

package hubauth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type AuthenticatorTestSuite struct {
	suite.Suite
	authenticator *Authenticator
}

func TestAuthenticatorSuite(t *testing.T) {
	suite.Run(t, new(AuthenticatorTestSuite))
}

func (suite *AuthenticatorTestSuite) SetupTest() {
	suite.authenticator = NewAuthenticator("hub-secret")
}

func (suite *AuthenticatorTestSuite) requestWithAuthHeader(header string) *http.Request {
	req := httptest.NewRequest("POST", "/actions-list", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func (suite *AuthenticatorTestSuite) TestAuthenticateSuccess() {
	req := suite.requestWithAuthHeader(`Token token="hub-secret"`)

	result := suite.authenticator.Authenticate(req)
	suite.True(result.Authorized)
	suite.Equal(http.StatusOK, result.StatusCode)
}

func (suite *AuthenticatorTestSuite) TestAuthenticateMissingHeader() {
	req := suite.requestWithAuthHeader("")

	result := suite.authenticator.Authenticate(req)
	suite.False(result.Authorized)
	suite.Equal(http.StatusUnauthorized, result.StatusCode)
	suite.Equal(ErrorMissingAuthorizationHeader.Code, result.ErrorCode)
}

func (suite *AuthenticatorTestSuite) TestAuthenticateMalformedHeader() {
	testCases := []struct {
		name   string
		header string
	}{
		{name: "BearerScheme", header: "Bearer hub-secret"},
		{name: "MissingQuotes", header: "Token token=hub-secret"},
		{name: "MissingClosingQuote", header: `Token token="hub-secret`},
		{name: "EmptyToken", header: `Token token="`},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := suite.requestWithAuthHeader(tc.header)

			result := suite.authenticator.Authenticate(req)
			suite.False(result.Authorized)
			suite.Equal(http.StatusUnauthorized, result.StatusCode)
			suite.Equal(ErrorMalformedAuthorizationHeader.Code, result.ErrorCode)
		})
	}
}

func (suite *AuthenticatorTestSuite) TestAuthenticateWrongSecret() {
	req := suite.requestWithAuthHeader(`Token token="wrong-secret"`)

	result := suite.authenticator.Authenticate(req)
	suite.False(result.Authorized)
	suite.Equal(http.StatusForbidden, result.StatusCode)
	suite.Equal(ErrorInvalidSecret.Code, result.ErrorCode)
}
