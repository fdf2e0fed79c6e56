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

package salesforce

import "fmt"

// TokenResponse holds the token endpoint response attributes.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope,omitempty"`
}

// UserInfo holds the user info endpoint response attributes.
type UserInfo struct {
	UserID            string `json:"user_id"`
	OrganizationID    string `json:"organization_id"`
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
	Email             string `json:"email"`
}

// UpstreamError carries the verbatim status code and body of a failed
// upstream response so callers can relay it without reinterpretation.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

// Error returns a string representation of the upstream error.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d", e.StatusCode)
}
