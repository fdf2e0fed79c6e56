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
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wso2/actionhub/internal/salesforce"
)

type TaskCreatorTestSuite struct {
	suite.Suite
	sfClient *mockSalesforceClient
	action   *taskCreator
}

func TestTaskCreatorSuite(t *testing.T) {
	suite.Run(t, new(TaskCreatorTestSuite))
}

func (suite *TaskCreatorTestSuite) SetupTest() {
	suite.sfClient = &mockSalesforceClient{}
	suite.action = newTaskCreator(suite.sfClient)
}

func (suite *TaskCreatorTestSuite) TestFormFieldsBuildsOptionsFromLiveData() {
	suite.sfClient.On("ExchangePassword").Return(&salesforce.TokenResponse{AccessToken: "svc-token"}, nil)
	suite.sfClient.On("Query", "svc-token", soqlTaskCategories).
		Return([]byte(`{"records":[{"Category__c":"Renewal"},{"Category__c":"Upsell"}]}`), nil)
	suite.sfClient.On("Query", "svc-token", soqlCustomerGroups).
		Return([]byte(`{"records":[{"Id":"a0B01","Name":"Acme"}]}`), nil)
	suite.sfClient.On("Query", "svc-token", "SELECT Name FROM Customer_Group__c WHERE Id = 'a0B99'").
		Return([]byte(`{"records":[{"Name":"Globex"}]}`), nil)
	suite.sfClient.On("UserInfo", "svc-token").
		Return(&salesforce.UserInfo{UserID: "005xx", Name: "Pat Rivera"}, nil)
	suite.sfClient.On("Query", "svc-token", soqlUsers).
		Return([]byte(`{"records":[{"Id":"005yy","Name":"Sam Ortiz"}]}`), nil)

	fields, err := suite.action.FormFields(&FormRequest{Data: RequestData{Value: "a0B99"}})
	suite.Require().NoError(err)
	suite.Require().Len(fields, 6)

	category := fields[1]
	suite.Equal("category", category.Name)
	suite.Equal([]SelectOption{
		{Name: "Renewal", Label: "Renewal"},
		{Name: "Upsell", Label: "Upsell"},
	}, category.Options)

	// The launching record is resolved and preselected ahead of the query results.
	relatedTo := fields[4]
	suite.Equal("related_to", relatedTo.Name)
	suite.Equal("a0B99", relatedTo.Default)
	suite.Equal([]SelectOption{
		{Name: "a0B99", Label: "Globex"},
		{Name: "a0B01", Label: "Acme"},
	}, relatedTo.Options)

	// The current user is preselected ahead of the query results.
	assignedTo := fields[5]
	suite.Equal("assigned_to", assignedTo.Name)
	suite.Equal("005xx", assignedTo.Default)
	suite.Equal([]SelectOption{
		{Name: "005xx", Label: "Pat Rivera"},
		{Name: "005yy", Label: "Sam Ortiz"},
	}, assignedTo.Options)
}

func (suite *TaskCreatorTestSuite) TestFormFieldsPropagatesUpstreamFailure() {
	suite.sfClient.On("ExchangePassword").
		Return(nil, &salesforce.UpstreamError{StatusCode: 400, Body: []byte(`{"error":"invalid_grant"}`)})

	_, err := suite.action.FormFields(&FormRequest{})
	suite.Require().Error(err)

	var upstreamErr *salesforce.UpstreamError
	suite.ErrorAs(err, &upstreamErr)
}

func (suite *TaskCreatorTestSuite) TestExecuteCreatesTaskRecord() {
	suite.sfClient.On("ExchangePassword").Return(&salesforce.TokenResponse{AccessToken: "svc-token"}, nil)
	suite.sfClient.On("CreateRecords", "svc-token", mock.MatchedBy(func(payload any) bool {
		body, ok := payload.(map[string]any)
		if !ok {
			return false
		}
		records, ok := body["records"].([]map[string]any)
		if !ok || len(records) != 1 {
			return false
		}
		return records[0]["Subject"] == "Call" && records[0]["RecordTypeId"] == taskRecordTypeID
	})).Return([]byte(`[{"success":true}]`), nil)

	validationErrors, err := suite.action.Execute(&ExecuteRequest{
		FormParams: map[string]string{
			"subject":     "Call",
			"category":    "Renewal",
			"due_date":    "2026-09-15",
			"description": "Follow up on the renewal quote",
			"related_to":  "a0B01",
			"assigned_to": "005xx",
		},
	})
	suite.Require().NoError(err)
	suite.Empty(validationErrors)
	suite.sfClient.AssertExpectations(suite.T())
}

func (suite *TaskCreatorTestSuite) TestExecuteReportsAllMissingParameters() {
	validationErrors, err := suite.action.Execute(&ExecuteRequest{FormParams: map[string]string{}})
	suite.Require().NoError(err)
	suite.Len(validationErrors, 6)
	suite.sfClient.AssertNotCalled(suite.T(), "ExchangePassword")
}
