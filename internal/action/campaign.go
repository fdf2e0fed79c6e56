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
	"time"

	"github.com/wso2/actionhub/internal/salesforce"
)

// campaignCreator creates Salesforce campaigns. It is the only action gated
// behind the browser mediated OAuth login.
type campaignCreator struct {
	sfClient salesforce.ClientInterface
}

// newCampaignCreator creates the campaign creator action.
func newCampaignCreator(sfClient salesforce.ClientInterface) *campaignCreator {
	return &campaignCreator{
		sfClient: sfClient,
	}
}

// Name returns the unique action name.
func (a *campaignCreator) Name() string {
	return actionNameCampaignCreator
}

// Label returns the display label of the action.
func (a *campaignCreator) Label() string {
	return "Campaign"
}

// UsesOAuth reports whether the action requires a browser mediated login.
func (a *campaignCreator) UsesOAuth() bool {
	return true
}

// FormFields returns the campaign form definition.
func (a *campaignCreator) FormFields(req *FormRequest) ([]FormField, error) {
	return []FormField{
		{
			Name:        "campaign_name",
			Label:       "Campaign Name",
			Description: "Identifying name of the campaign",
			Type:        "text",
			Default:     req.Data.Value,
			Required:    true,
		},
		{
			Name:        "start_date",
			Label:       "Start Date",
			Description: "Start date of the campaign (YYYY-MM-DD)",
			Type:        "date",
			Default:     time.Now().Format(dateFormat),
			Required:    true,
		},
		{
			Name:        "end_date",
			Label:       "End Date",
			Description: "End date of the campaign (YYYY-MM-DD)",
			Type:        "date",
			Required:    true,
		},
		{
			Name:        "campaign_status",
			Label:       "Campaign Status",
			Description: "Status of the campaign",
			Type:        "select",
			Required:    true,
			Options: []SelectOption{
				{Name: "planned", Label: "Planned"},
				{Name: "in_progress", Label: "In Progress"},
				{Name: "completed", Label: "Completed"},
			},
		},
		{
			Name:        "campaign_type",
			Label:       "Campaign Type",
			Description: "Type of the campaign",
			Type:        "select",
			Required:    true,
			Options: []SelectOption{
				{Name: "webinar", Label: "Webinar"},
				{Name: "advertisement", Label: "Advertisement"},
				{Name: "email", Label: "Email"},
			},
		},
	}, nil
}

// Execute creates a campaign record using the access token carried in the
// request state. A missing token is a validation failure, not a hard error.
func (a *campaignCreator) Execute(req *ExecuteRequest) (map[string]string, error) {
	token, hasToken := req.Data.StateJSON.Token()
	if !hasToken {
		return map[string]string{"login": messageNotAuthenticated}, nil
	}

	validationErrors := map[string]string{}
	requireParams(req.FormParams, validationErrors,
		"campaign_name", "start_date", "end_date", "campaign_status", "campaign_type")
	requireDateParams(req.FormParams, validationErrors, "start_date", "end_date")
	if len(validationErrors) > 0 {
		return validationErrors, nil
	}

	payload := compositeRecordsPayload("Campaign", map[string]any{
		"Name":      req.FormParams["campaign_name"],
		"StartDate": req.FormParams["start_date"],
		"EndDate":   req.FormParams["end_date"],
		"Status":    req.FormParams["campaign_status"],
		"Type":      req.FormParams["campaign_type"],
	})

	if _, err := a.sfClient.CreateRecords(token, payload); err != nil {
		return nil, err
	}
	return nil, nil
}
