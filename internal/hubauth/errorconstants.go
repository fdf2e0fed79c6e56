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

import "github.com/wso2/actionhub/internal/system/error/serviceerror"

// Client errors for hub authentication.
var (
	// ErrorMissingAuthorizationHeader is the error returned when the authorization header is absent.
	ErrorMissingAuthorizationHeader = serviceerror.ServiceError{
		Code:             "HUB-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Authentication failure",
		ErrorDescription: "Authorization header is missing",
	}
	// ErrorMalformedAuthorizationHeader is the error returned when the authorization header is malformed.
	ErrorMalformedAuthorizationHeader = serviceerror.ServiceError{
		Code:             "HUB-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Authentication failure",
		ErrorDescription: "Authorization header is malformed",
	}
	// ErrorInvalidSecret is the error returned when the presented secret does not match.
	ErrorInvalidSecret = serviceerror.ServiceError{
		Code:             "HUB-1003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Authentication failure",
		ErrorDescription: "Invalid authorization token",
	}
)
