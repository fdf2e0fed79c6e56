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

import (
	"strings"

	"github.com/wso2/actionhub/internal/system/config"
)

// ActionInterface defines one integration exposed by the hub.
type ActionInterface interface {
	// Name returns the unique action name used in URLs and the list response.
	Name() string
	// Label returns the display label of the action.
	Label() string
	// UsesOAuth reports whether the action requires a browser mediated login.
	UsesOAuth() bool
	// FormFields returns the input fields of the action form.
	FormFields(req *FormRequest) ([]FormField, error)
	// Execute runs the action with the submitted form parameters. It returns
	// field level validation errors, or an error from the upstream call.
	Execute(req *ExecuteRequest) (map[string]string, error)
}

// catalog holds the set of registered actions and builds the list response.
type catalog struct {
	hubCfg  config.HubConfig
	actions []ActionInterface
}

// newCatalog creates a catalog over the given actions.
func newCatalog(hubCfg config.HubConfig, actions []ActionInterface) *catalog {
	return &catalog{
		hubCfg:  hubCfg,
		actions: actions,
	}
}

// formURL returns the absolute form endpoint URL of the named action.
func (c *catalog) formURL(name string) string {
	return strings.TrimSuffix(c.hubCfg.BaseURL, "/") + "/" + name + "-form"
}

// executeURL returns the absolute execute endpoint URL of the named action.
func (c *catalog) executeURL(name string) string {
	return strings.TrimSuffix(c.hubCfg.BaseURL, "/") + "/" + name + "-execute"
}

// listResponse builds the integrations list for all registered actions.
func (c *catalog) listResponse() ListResponse {
	label := c.hubCfg.Label
	if label == "" {
		label = defaultHubLabel
	}
	iconDataURI := c.hubCfg.IconDataURI
	if iconDataURI == "" {
		iconDataURI = defaultIconDataURI
	}

	integrations := make([]Integration, 0, len(c.actions))
	for _, act := range c.actions {
		integrations = append(integrations, Integration{
			Name:                 act.Name(),
			Label:                act.Label(),
			SupportedActionTypes: []string{"query", "cell", "dashboard"},
			IconDataURI:          iconDataURI,
			FormURL:              c.formURL(act.Name()),
			URL:                  c.executeURL(act.Name()),
			SupportedFormats:     []string{"json", "csv_zip"},
			RequiredFields: []map[string]any{
				{"any_tag": []string{"sfdc_lead_id"}},
			},
			SupportedFormattings:              []string{"formatted"},
			SupportedVisualizationFormattings: []string{"noapply"},
			Params: []IntegrationParam{
				{
					Description: "Salesforce domain name, e.g. https://MyDomainName.my.salesforce.com",
					Label:       "Salesforce domain",
					Name:        "salesforce_domain",
					Required:    true,
					Sensitive:   false,
				},
			},
			UsesOAuth: act.UsesOAuth(),
		})
	}

	return ListResponse{
		Label:        label,
		Integrations: integrations,
	}
}

// compositeRecordsPayload builds a single-record composite sObjects payload.
func compositeRecordsPayload(objectType string, fields map[string]any) map[string]any {
	record := map[string]any{
		"attributes": map[string]string{"type": objectType},
	}
	for name, value := range fields {
		record[name] = value
	}

	return map[string]any{
		"allOrNone": false,
		"records":   []map[string]any{record},
	}
}
