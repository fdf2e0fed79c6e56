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

package utils

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type HTTPUtilTestSuite struct {
	suite.Suite
}

func TestHTTPUtilSuite(t *testing.T) {
	suite.Run(t, new(HTTPUtilTestSuite))
}

func (suite *HTTPUtilTestSuite) TestDecodeJSONBody() {
	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"name":"campaign"}`))
	decoded, err := DecodeJSONBody[payload](req)
	suite.Require().NoError(err)
	suite.Equal("campaign", decoded.Name)
}

func (suite *HTTPUtilTestSuite) TestDecodeJSONBodyMalformed() {
	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest("POST", "/test", strings.NewReader(`{"name":`))
	decoded, err := DecodeJSONBody[payload](req)
	suite.Error(err)
	suite.Nil(decoded)
}

func (suite *HTTPUtilTestSuite) TestWriteJSONError() {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, "AHS-1001", "something went wrong", 400, nil)

	suite.Equal(400, rec.Code)
	suite.Equal("application/json", rec.Header().Get("Content-Type"))
	suite.Contains(rec.Body.String(), "AHS-1001")
	suite.Contains(rec.Body.String(), "something went wrong")
}

func (suite *HTTPUtilTestSuite) TestGetURIWithQueryParams() {
	testCases := []struct {
		name        string
		uri         string
		queryParams map[string]string
		expected    string
	}{
		{
			name:        "SingleParam",
			uri:         "https://example.com/authorize",
			queryParams: map[string]string{"state": "abc"},
			expected:    "https://example.com/authorize?state=abc",
		},
		{
			name:        "PreservesExistingQuery",
			uri:         "https://example.com/authorize?response_type=code",
			queryParams: map[string]string{"client_id": "client"},
			expected:    "https://example.com/authorize?client_id=client&response_type=code",
		},
		{
			name:        "EncodesValues",
			uri:         "https://example.com/authorize",
			queryParams: map[string]string{"redirect_uri": "https://hub.example.com/cb"},
			expected:    "https://example.com/authorize?redirect_uri=https%3A%2F%2Fhub.example.com%2Fcb",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			result, err := GetURIWithQueryParams(tc.uri, tc.queryParams)
			suite.Require().NoError(err)
			suite.Equal(tc.expected, result)
		})
	}
}
