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
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wso2/actionhub/internal/hubauth"
	"github.com/wso2/actionhub/internal/salesforce"
	"github.com/wso2/actionhub/internal/statetoken"
	"github.com/wso2/actionhub/internal/system/config"
	"github.com/wso2/actionhub/internal/system/crypto"
)

const testStateURL = "https://client.example.com/action_hub_state/abc123"

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Store(correlationKey, token string) error {
	args := m.Called(correlationKey, token)
	return args.Error(0)
}

func (m *mockSessionStore) Consume(correlationKey string) (string, bool, error) {
	args := m.Called(correlationKey)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockSessionStore) Clear(correlationKey string) error {
	args := m.Called(correlationKey)
	return args.Error(0)
}

type mockSalesforceClient struct {
	mock.Mock
}

// AuthorizeURL mirrors the real client so tests can recover the state token
// from the generated login link.
func (m *mockSalesforceClient) AuthorizeURL(stateToken string) (string, error) {
	return "https://example.my.salesforce.com/services/oauth2/authorize?state=" +
		url.QueryEscape(stateToken), nil
}

func (m *mockSalesforceClient) ExchangeAuthorizationCode(code string) (*salesforce.TokenResponse, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesforce.TokenResponse), args.Error(1)
}

func (m *mockSalesforceClient) ExchangePassword() (*salesforce.TokenResponse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesforce.TokenResponse), args.Error(1)
}

func (m *mockSalesforceClient) UserInfo(accessToken string) (*salesforce.UserInfo, error) {
	args := m.Called(accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesforce.UserInfo), args.Error(1)
}

func (m *mockSalesforceClient) CreateRecords(accessToken string, payload any) ([]byte, error) {
	args := m.Called(accessToken, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockSalesforceClient) CreateFeedElement(accessToken string, payload any) ([]byte, error) {
	args := m.Called(accessToken, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockSalesforceClient) Query(accessToken string, soql string) ([]byte, error) {
	args := m.Called(accessToken, soql)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type ActionHandlerTestSuite struct {
	suite.Suite
	codec        *statetoken.Codec
	sessionStore *mockSessionStore
	sfClient     *mockSalesforceClient
	handler      *actionHandler
	campaign     ActionInterface
	post         ActionInterface
}

func TestActionHandlerSuite(t *testing.T) {
	suite.Run(t, new(ActionHandlerTestSuite))
}

func (suite *ActionHandlerTestSuite) SetupTest() {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	suite.Require().NoError(err)
	cryptoService, err := crypto.NewCryptoService(key)
	suite.Require().NoError(err)

	suite.codec = statetoken.NewCodec(cryptoService)
	suite.sessionStore = &mockSessionStore{}
	suite.sfClient = &mockSalesforceClient{}

	suite.campaign = newCampaignCreator(suite.sfClient)
	suite.post = newPostCreator(suite.sfClient)
	actions := []ActionInterface{suite.campaign, suite.post}

	suite.handler = newActionHandler(
		hubauth.NewAuthenticator("hub-secret"),
		suite.codec,
		suite.sessionStore,
		suite.sfClient,
		newCatalog(config.HubConfig{
			Label:   "Salesforce Hub",
			BaseURL: "https://hub.example.com",
			Secret:  "hub-secret",
		}, actions),
	)
}

func (suite *ActionHandlerTestSuite) newAuthenticatedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", `Token token="hub-secret"`)
	return req
}

func (suite *ActionHandlerTestSuite) TestFormReturnsLoginLinkWhenNotAuthenticated() {
	suite.sessionStore.On("Consume", testStateURL).Return("", false, nil)

	req := suite.newAuthenticatedRequest("POST", "/campaign-creator-form",
		`{"data":{"state_url":"`+testStateURL+`","state_json":{}}}`)
	rec := httptest.NewRecorder()
	suite.handler.HandleForm(suite.campaign)(rec, req)

	suite.Equal(http.StatusOK, rec.Code)

	var fields []FormField
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &fields))
	suite.Require().Len(fields, 1)
	suite.Equal("oauth_link", fields[0].Type)
	suite.Equal("login", fields[0].Name)

	// The state parameter of the login link must decode back to the submitted state URL.
	parsed, err := url.Parse(fields[0].OAuthURL)
	suite.Require().NoError(err)
	payload, err := suite.codec.Decode(parsed.Query().Get("state"))
	suite.Require().NoError(err)
	suite.Equal(testStateURL, payload.StateURL)
}

func (suite *ActionHandlerTestSuite) TestOAuthCallbackStoresTokenAndRedirects() {
	stateToken, err := suite.codec.Encode(statetoken.StatePayload{StateURL: testStateURL})
	suite.Require().NoError(err)

	suite.sfClient.On("ExchangeAuthorizationCode", "auth-code").
		Return(&salesforce.TokenResponse{AccessToken: "abc"}, nil)
	suite.sessionStore.On("Store", testStateURL, "abc").Return(nil)

	req := httptest.NewRequest("GET",
		"/campaign-creator-oauth?code=auth-code&state="+url.QueryEscape(stateToken), nil)
	rec := httptest.NewRecorder()
	suite.handler.HandleOAuth(suite.campaign)(rec, req)

	suite.Equal(http.StatusFound, rec.Code)
	suite.Equal("https://hub.example.com/campaign-creator-form", rec.Header().Get("Location"))
	suite.sessionStore.AssertCalled(suite.T(), "Store", testStateURL, "abc")
}

func (suite *ActionHandlerTestSuite) TestFormReturnsFieldsAfterLogin() {
	suite.sessionStore.On("Consume", testStateURL).Return("abc", true, nil)

	req := suite.newAuthenticatedRequest("POST", "/campaign-creator-form",
		`{"data":{"state_url":"`+testStateURL+`","state_json":{"token":"abc"}}}`)
	rec := httptest.NewRecorder()
	suite.handler.HandleForm(suite.campaign)(rec, req)

	suite.Equal(http.StatusOK, rec.Code)

	var fields []FormField
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &fields))
	suite.Require().Len(fields, 5)
	suite.Equal("campaign_name", fields[0].Name)
	suite.sessionStore.AssertNumberOfCalls(suite.T(), "Consume", 1)
}

func (suite *ActionHandlerTestSuite) TestExecuteMissingFieldReturnsValidationErrors() {
	body := `{
		"form_params": {
			"campaign_name": "Spring Campaign",
			"start_date": "2026-01-01",
			"campaign_status": "planned",
			"campaign_type": "email"
		},
		"data": {"state_json": {"token": "abc"}}
	}`

	req := suite.newAuthenticatedRequest("POST", "/campaign-creator-execute", body)
	rec := httptest.NewRecorder()
	suite.handler.HandleExecute(suite.campaign)(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)

	var response validationErrorResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	suite.False(response.Looker.Success)
	suite.Len(response.Looker.ValidationErrors, 1)
	suite.Equal(messageMissingParameter, response.Looker.ValidationErrors["end_date"])
	suite.sfClient.AssertNotCalled(suite.T(), "CreateRecords", mock.Anything, mock.Anything)
}

func (suite *ActionHandlerTestSuite) TestExecuteRejectsInvalidDateFormat() {
	body := `{
		"form_params": {
			"campaign_name": "Spring Campaign",
			"start_date": "01/01/2026",
			"end_date": "2026-02-01",
			"campaign_status": "planned",
			"campaign_type": "email"
		},
		"data": {"state_json": {"token": "abc"}}
	}`

	req := suite.newAuthenticatedRequest("POST", "/campaign-creator-execute", body)
	rec := httptest.NewRecorder()
	suite.handler.HandleExecute(suite.campaign)(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)

	var response validationErrorResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	suite.Equal(messageInvalidDateFormat, response.Looker.ValidationErrors["start_date"])
}

func (suite *ActionHandlerTestSuite) TestExecuteWithoutTokenReturnsValidationError() {
	body := `{
		"form_params": {
			"campaign_name": "Spring Campaign",
			"start_date": "2026-01-01",
			"end_date": "2026-02-01",
			"campaign_status": "planned",
			"campaign_type": "email"
		},
		"data": {"state_json": {}}
	}`

	req := suite.newAuthenticatedRequest("POST", "/campaign-creator-execute", body)
	rec := httptest.NewRecorder()
	suite.handler.HandleExecute(suite.campaign)(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "validation_errors")
	suite.sfClient.AssertNotCalled(suite.T(), "CreateRecords", mock.Anything, mock.Anything)
}

func (suite *ActionHandlerTestSuite) TestExecuteRelaysUpstreamRejection() {
	upstreamBody := `[{"errorCode":"REQUIRED_FIELD_MISSING","message":"Required fields are missing"}]`
	suite.sfClient.On("CreateRecords", "abc", mock.Anything).
		Return(nil, &salesforce.UpstreamError{StatusCode: http.StatusBadRequest, Body: []byte(upstreamBody)})

	body := `{
		"form_params": {
			"campaign_name": "Spring Campaign",
			"start_date": "2026-01-01",
			"end_date": "2026-02-01",
			"campaign_status": "planned",
			"campaign_type": "email"
		},
		"data": {"state_json": {"token": "abc"}}
	}`

	req := suite.newAuthenticatedRequest("POST", "/campaign-creator-execute", body)
	rec := httptest.NewRecorder()
	suite.handler.HandleExecute(suite.campaign)(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal(upstreamBody, rec.Body.String())
}

func (suite *ActionHandlerTestSuite) TestExecuteSuccessReturnsEmptyOK() {
	suite.sfClient.On("ExchangePassword").Return(&salesforce.TokenResponse{AccessToken: "svc-token"}, nil)
	suite.sfClient.On("CreateFeedElement", "svc-token", mock.Anything).Return([]byte(`{"id":"0D5xx"}`), nil)

	body := `{
		"form_params": {"content": "Quarterly numbers are in"},
		"data": {"value": "0F9xx0000000001", "state_json": {}}
	}`

	req := suite.newAuthenticatedRequest("POST", "/post-creator-execute", body)
	rec := httptest.NewRecorder()
	suite.handler.HandleExecute(suite.post)(rec, req)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Empty(rec.Body.String())
}

func (suite *ActionHandlerTestSuite) TestRejectedRequestShortCircuits() {
	req := httptest.NewRequest("POST", "/campaign-creator-form",
		strings.NewReader(`{"data":{"state_url":"`+testStateURL+`"}}`))
	req.Header.Set("Authorization", `Token token="wrong-secret"`)
	rec := httptest.NewRecorder()
	suite.handler.HandleForm(suite.campaign)(rec, req)

	suite.Equal(http.StatusForbidden, rec.Code)
	suite.sessionStore.AssertNotCalled(suite.T(), "Consume", mock.Anything)
}

func (suite *ActionHandlerTestSuite) TestOAuthCallbackRejectsUndecodableState() {
	req := httptest.NewRequest("GET", "/campaign-creator-oauth?code=auth-code&state=garbage", nil)
	rec := httptest.NewRecorder()
	suite.handler.HandleOAuth(suite.campaign)(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.sfClient.AssertNotCalled(suite.T(), "ExchangeAuthorizationCode", mock.Anything)
}

func (suite *ActionHandlerTestSuite) TestOAuthCallbackRelaysUpstreamRejection() {
	stateToken, err := suite.codec.Encode(statetoken.StatePayload{StateURL: testStateURL})
	suite.Require().NoError(err)

	upstreamBody := `{"error":"invalid_grant","error_description":"expired authorization code"}`
	suite.sfClient.On("ExchangeAuthorizationCode", "expired-code").
		Return(nil, &salesforce.UpstreamError{StatusCode: http.StatusBadRequest, Body: []byte(upstreamBody)})

	req := httptest.NewRequest("GET",
		"/campaign-creator-oauth?code=expired-code&state="+url.QueryEscape(stateToken), nil)
	rec := httptest.NewRecorder()
	suite.handler.HandleOAuth(suite.campaign)(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal(upstreamBody, rec.Body.String())
	suite.sessionStore.AssertNotCalled(suite.T(), "Store", mock.Anything, mock.Anything)
}

func (suite *ActionHandlerTestSuite) TestListReturnsIntegrations() {
	req := suite.newAuthenticatedRequest("POST", "/actions-list", "")
	rec := httptest.NewRecorder()
	suite.handler.HandleList(rec, req)

	suite.Equal(http.StatusOK, rec.Code)

	var response ListResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	suite.Equal("Salesforce Hub", response.Label)
	suite.Require().Len(response.Integrations, 2)

	campaign := response.Integrations[0]
	suite.Equal("campaign-creator", campaign.Name)
	suite.True(campaign.UsesOAuth)
	suite.Equal("https://hub.example.com/campaign-creator-form", campaign.FormURL)
	suite.Equal("https://hub.example.com/campaign-creator-execute", campaign.URL)

	post := response.Integrations[1]
	suite.Equal("post-creator", post.Name)
	suite.False(post.UsesOAuth)
}

func (suite *ActionHandlerTestSuite) TestListRequiresAuthentication() {
	req := httptest.NewRequest("POST", "/actions-list", nil)
	rec := httptest.NewRecorder()
	suite.handler.HandleList(rec, req)

	suite.Equal(http.StatusUnauthorized, rec.Code)
}

func (suite *ActionHandlerTestSuite) TestFormAcceptsStateJSONAsString() {
	suite.sessionStore.On("Consume", testStateURL).Return("", false, nil)

	// Some clients serialize state_json as a string rather than an object.
	req := suite.newAuthenticatedRequest("POST", "/campaign-creator-form",
		`{"data":{"state_url":"`+testStateURL+`","state_json":"{\"token\":\"abc\"}"}}`)
	rec := httptest.NewRecorder()
	suite.handler.HandleForm(suite.campaign)(rec, req)

	suite.Equal(http.StatusOK, rec.Code)

	var fields []FormField
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &fields))
	suite.Len(fields, 5)
}
