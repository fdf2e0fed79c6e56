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

package action

import "github.com/wso2/actionhub/internal/system/error/serviceerror"

// Client errors for the action handlers.
var (
	// ErrorInvalidRequestBody is the error returned when the request body cannot be decoded.
	ErrorInvalidRequestBody = serviceerror.ServiceError{
		Code:             "AHS-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request",
		ErrorDescription: "The request body is missing or malformed",
	}
	// ErrorMissingStateURL is the error returned when the request carries no state URL.
	ErrorMissingStateURL = serviceerror.ServiceError{
		Code:             "AHS-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request",
		ErrorDescription: "The request does not carry a state URL",
	}
	// ErrorInvalidStateToken is the error returned when the OAuth state parameter cannot be decoded.
	ErrorInvalidStateToken = serviceerror.ServiceError{
		Code:             "AHS-1003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request",
		ErrorDescription: "The state parameter is missing or invalid",
	}
	// ErrorMissingAuthorizationCode is the error returned when the OAuth callback carries no code.
	ErrorMissingAuthorizationCode = serviceerror.ServiceError{
		Code:             "AHS-1004",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request",
		ErrorDescription: "The authorization code parameter is missing",
	}
)

// Server errors for the action handlers.
var (
	// ErrorInternalServerError is the generic error returned on unexpected failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Code:             "AHS-5001",
		Type:             serviceerror.ServerErrorType,
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
	// ErrorUpstreamUnavailable is the error returned when the CRM cannot be reached.
	ErrorUpstreamUnavailable = serviceerror.ServiceError{
		Code:             "AHS-5002",
		Type:             serviceerror.ServerErrorType,
		Error:            "Upstream unavailable",
		ErrorDescription: "Failed to reach the CRM service",
	}
)
