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

import "regexp"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// requireParams checks that every named form parameter is present and
// non-empty, recording a validation error for each one that is not.
func requireParams(formParams map[string]string, validationErrors map[string]string, names ...string) {
	for _, name := range names {
		if formParams[name] == "" {
			validationErrors[name] = messageMissingParameter
		}
	}
}

// requireDateParams checks that every named form parameter already known to
// be present holds a YYYY-MM-DD date.
func requireDateParams(formParams map[string]string, validationErrors map[string]string, names ...string) {
	for _, name := range names {
		if _, missing := validationErrors[name]; missing {
			continue
		}
		if !datePattern.MatchString(formParams[name]) {
			validationErrors[name] = messageInvalidDateFormat
		}
	}
}
