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

import "encoding/json"

// StateJSON holds the session state echoed back by the hub client. Clients
// may send it either as a JSON object or as a string containing serialized
// JSON, so both forms are accepted. Unparseable state is treated as empty.
type StateJSON map[string]any

// UnmarshalJSON implements json.Unmarshaler for StateJSON.
func (s *StateJSON) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err == nil {
		*s = obj
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil && str != "" {
		var inner map[string]any
		if err := json.Unmarshal([]byte(str), &inner); err == nil {
			*s = inner
			return nil
		}
	}

	*s = nil
	return nil
}

// Token returns the access token carried in the state, if any.
func (s StateJSON) Token() (string, bool) {
	token, ok := s["token"].(string)
	return token, ok && token != ""
}

// RequestData holds the hub supplied context common to form and execute requests.
type RequestData struct {
	StateURL  string    `json:"state_url"`
	StateJSON StateJSON `json:"state_json"`
	Value     string    `json:"value"`
}

// FormRequest is the body of a form endpoint invocation.
type FormRequest struct {
	Data RequestData `json:"data"`
}

// ExecuteRequest is the body of an execute endpoint invocation.
type ExecuteRequest struct {
	FormParams map[string]string `json:"form_params"`
	Data       RequestData       `json:"data"`
}

// SelectOption is a single option of a select form field.
type SelectOption struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// FormField describes one input field of an action form.
type FormField struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type"`
	Default     string         `json:"default,omitempty"`
	Required    bool           `json:"required,omitempty"`
	Options     []SelectOption `json:"options,omitempty"`
	OAuthURL    string         `json:"oauth_url,omitempty"`
}

// IntegrationParam describes a configuration parameter of an integration.
type IntegrationParam struct {
	Description string `json:"description"`
	Label       string `json:"label"`
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Sensitive   bool   `json:"sensitive"`
}

// Integration is a single entry of the actions list response.
type Integration struct {
	Name                              string              `json:"name"`
	Label                             string              `json:"label"`
	SupportedActionTypes              []string            `json:"supported_action_types"`
	IconDataURI                       string              `json:"icon_data_uri"`
	FormURL                           string              `json:"form_url"`
	URL                               string              `json:"url"`
	SupportedFormats                  []string            `json:"supported_formats"`
	RequiredFields                    []map[string]any    `json:"required_fields"`
	SupportedFormattings              []string            `json:"supported_formattings"`
	SupportedVisualizationFormattings []string            `json:"supported_visualization_formattings"`
	Params                            []IntegrationParam  `json:"params"`
	UsesOAuth                         bool                `json:"uses_oauth"`
}

// ListResponse is the body of the actions list endpoint response.
type ListResponse struct {
	Label        string        `json:"label"`
	Integrations []Integration `json:"integrations"`
}

// validationErrorResponse is the structured body returned on validation failure.
type validationErrorResponse struct {
	Looker validationErrorDetail `json:"looker"`
}

type validationErrorDetail struct {
	Success          bool              `json:"success"`
	ValidationErrors map[string]string `json:"validation_errors"`
}

// newValidationErrorResponse builds the validation failure body for the given errors.
func newValidationErrorResponse(validationErrors map[string]string) validationErrorResponse {
	return validationErrorResponse{
		Looker: validationErrorDetail{
			Success:          false,
			ValidationErrors: validationErrors,
		},
	}
}
