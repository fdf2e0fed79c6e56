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
	"encoding/json"
	"fmt"

	"github.com/wso2/actionhub/internal/salesforce"
)

// SOQL queries used to populate the task form options.
const (
	soqlTaskCategories = "SELECT Category__c FROM Task WHERE CreatedDate >= LAST_N_MONTHS:3 GROUP BY Category__c"
	soqlCustomerGroups = "SELECT Id, Name FROM Customer_Group__c LIMIT 25"
	soqlUsers          = "SELECT Id, Name FROM User LIMIT 25"
)

// taskCreator creates Salesforce tasks. Its form is built dynamically from
// live CRM data so select options reflect the current org state.
type taskCreator struct {
	sfClient salesforce.ClientInterface
}

// newTaskCreator creates the task creator action.
func newTaskCreator(sfClient salesforce.ClientInterface) *taskCreator {
	return &taskCreator{
		sfClient: sfClient,
	}
}

// Name returns the unique action name.
func (a *taskCreator) Name() string {
	return actionNameTaskCreator
}

// Label returns the display label of the action.
func (a *taskCreator) Label() string {
	return "New Task"
}

// UsesOAuth reports whether the action requires a browser mediated login.
func (a *taskCreator) UsesOAuth() bool {
	return false
}

// FormFields builds the task form. Select options for category, related
// object, and assignee are fetched from the CRM with a password grant token.
func (a *taskCreator) FormFields(req *FormRequest) ([]FormField, error) {
	tokenResponse, err := a.sfClient.ExchangePassword()
	if err != nil {
		return nil, err
	}
	token := tokenResponse.AccessToken

	categoryOptions, err := a.queryOptions(token, soqlTaskCategories, "Category__c", "Category__c")
	if err != nil {
		return nil, err
	}

	relatedOptions, err := a.queryOptions(token, soqlCustomerGroups, "Id", "Name")
	if err != nil {
		return nil, err
	}
	if req.Data.Value != "" {
		defaultRelated, err := a.relatedObjectOption(token, req.Data.Value)
		if err != nil {
			return nil, err
		}
		relatedOptions = append([]SelectOption{defaultRelated}, relatedOptions...)
	}

	userInfo, err := a.sfClient.UserInfo(token)
	if err != nil {
		return nil, err
	}
	userOptions, err := a.queryOptions(token, soqlUsers, "Id", "Name")
	if err != nil {
		return nil, err
	}
	userOptions = append([]SelectOption{{Name: userInfo.UserID, Label: userInfo.Name}}, userOptions...)

	return []FormField{
		{
			Name:     "subject",
			Label:    "Subject",
			Type:     "select",
			Required: true,
			Options: []SelectOption{
				{Name: "Call", Label: "Call"},
				{Name: "Send Letter", Label: "Send Letter"},
				{Name: "Send Quote", Label: "Send Quote"},
				{Name: "Other", Label: "Other"},
			},
		},
		{
			Name:     "category",
			Label:    "Category",
			Type:     "select",
			Required: true,
			Options:  categoryOptions,
		},
		{
			Name:        "due_date",
			Label:       "Due Date",
			Description: "Format YYYY-MM-DD",
			Type:        "date",
			Required:    true,
		},
		{
			Name:        "description",
			Label:       "Description",
			Description: "Tip: Type Command + period to insert quick text.",
			Type:        "textarea",
			Required:    true,
		},
		{
			Name:     "related_to",
			Label:    "Related To",
			Type:     "select",
			Required: true,
			Options:  relatedOptions,
			Default:  req.Data.Value,
		},
		{
			Name:     "assigned_to",
			Label:    "Assigned To",
			Type:     "select",
			Required: true,
			Options:  userOptions,
			Default:  userInfo.UserID,
		},
	}, nil
}

// Execute creates a task record from the submitted form parameters.
func (a *taskCreator) Execute(req *ExecuteRequest) (map[string]string, error) {
	validationErrors := map[string]string{}
	requireParams(req.FormParams, validationErrors,
		"subject", "category", "due_date", "description", "related_to", "assigned_to")
	requireDateParams(req.FormParams, validationErrors, "due_date")
	if len(validationErrors) > 0 {
		return validationErrors, nil
	}

	tokenResponse, err := a.sfClient.ExchangePassword()
	if err != nil {
		return nil, err
	}

	payload := compositeRecordsPayload("Task", map[string]any{
		"Subject":      req.FormParams["subject"],
		"Category__c":  req.FormParams["category"],
		"ActivityDate": req.FormParams["due_date"],
		"Description":  req.FormParams["description"],
		"WhatId":       req.FormParams["related_to"],
		"OwnerId":      req.FormParams["assigned_to"],
		"RecordTypeId": taskRecordTypeID,
	})

	if _, err := a.sfClient.CreateRecords(tokenResponse.AccessToken, payload); err != nil {
		return nil, err
	}
	return nil, nil
}

// queryOptions runs a SOQL query and maps the named record attributes to
// select options.
func (a *taskCreator) queryOptions(token, soql, nameAttr, labelAttr string) ([]SelectOption, error) {
	body, err := a.sfClient.Query(token, soql)
	if err != nil {
		return nil, err
	}

	var result struct {
		Records []map[string]any `json:"records"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}

	options := make([]SelectOption, 0, len(result.Records))
	for _, record := range result.Records {
		name, _ := record[nameAttr].(string)
		label, _ := record[labelAttr].(string)
		if name == "" {
			continue
		}
		options = append(options, SelectOption{Name: name, Label: label})
	}
	return options, nil
}

// relatedObjectOption resolves the display name of the record the action was
// launched from so it can be preselected in the form.
func (a *taskCreator) relatedObjectOption(token, objectID string) (SelectOption, error) {
	soql := fmt.Sprintf("SELECT Name FROM Customer_Group__c WHERE Id = '%s'", objectID)
	body, err := a.sfClient.Query(token, soql)
	if err != nil {
		return SelectOption{}, err
	}

	var result struct {
		Records []map[string]any `json:"records"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return SelectOption{}, fmt.Errorf("failed to decode query response: %w", err)
	}
	if len(result.Records) == 0 {
		return SelectOption{Name: objectID, Label: objectID}, nil
	}

	label, _ := result.Records[0]["Name"].(string)
	return SelectOption{Name: objectID, Label: label}, nil
}
