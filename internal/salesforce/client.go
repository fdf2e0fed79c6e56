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

// Package salesforce provides clients for the Salesforce OAuth and REST APIs.
package salesforce

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/wso2/actionhub/internal/system/config"
	"github.com/wso2/actionhub/internal/system/constants"
	httpservice "github.com/wso2/actionhub/internal/system/http"
	"github.com/wso2/actionhub/internal/system/log"
	"github.com/wso2/actionhub/internal/system/utils"
)

// ClientInterface defines the interface for Salesforce OAuth and REST operations.
type ClientInterface interface {
	// AuthorizeURL constructs the authorization endpoint URL carrying the given state token.
	AuthorizeURL(stateToken string) (string, error)
	// ExchangeAuthorizationCode exchanges an authorization code for an access token.
	ExchangeAuthorizationCode(code string) (*TokenResponse, error)
	// ExchangePassword obtains an access token using the configured credentials.
	ExchangePassword() (*TokenResponse, error)
	// UserInfo fetches details of the user the access token belongs to.
	UserInfo(accessToken string) (*UserInfo, error)
	// CreateRecords creates sObject records through the composite API.
	CreateRecords(accessToken string, payload any) ([]byte, error)
	// CreateFeedElement posts a Chatter feed element.
	CreateFeedElement(accessToken string, payload any) ([]byte, error)
	// Query runs a SOQL query and returns the raw response body.
	Query(accessToken string, soql string) ([]byte, error)
}

// Client is the default implementation of ClientInterface.
type Client struct {
	cfg        config.SalesforceConfig
	httpClient httpservice.HTTPClientInterface
}

var (
	instance *Client
	once     sync.Once
)

// GetClient returns the singleton Salesforce client built from configuration.
func GetClient() ClientInterface {
	once.Do(func() {
		instance = NewClient(config.GetHubRuntime().Config.Salesforce, httpservice.GetHTTPClient())
	})
	return instance
}

// NewClient creates a new Salesforce client with the given configuration and HTTP client.
func NewClient(cfg config.SalesforceConfig, httpClient httpservice.HTTPClientInterface) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// AuthorizeURL constructs the authorization endpoint URL carrying the given state token.
func (c *Client) AuthorizeURL(stateToken string) (string, error) {
	return utils.GetURIWithQueryParams(c.cfg.Domain+authorizePath, map[string]string{
		"response_type": "code",
		"client_id":     c.cfg.ClientID,
		"redirect_uri":  c.cfg.RedirectURI,
		"state":         stateToken,
	})
}

// ExchangeAuthorizationCode exchanges an authorization code for an access token.
func (c *Client) ExchangeAuthorizationCode(code string) (*TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", grantTypeAuthorizationCode)
	data.Set("code", code)
	data.Set("client_id", c.cfg.ClientID)
	data.Set("client_secret", c.cfg.ClientSecret)
	data.Set("redirect_uri", c.cfg.RedirectURI)

	return c.requestToken(data)
}

// ExchangePassword obtains an access token using the configured credentials.
func (c *Client) ExchangePassword() (*TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", grantTypePassword)
	data.Set("client_id", c.cfg.ClientID)
	data.Set("client_secret", c.cfg.ClientSecret)
	data.Set("username", c.cfg.Username)
	data.Set("password", c.cfg.Password)

	return c.requestToken(data)
}

// requestToken sends a form encoded request to the token endpoint. A response
// other than 200 or 201 is returned as an UpstreamError carrying the verbatim body.
func (c *Client) requestToken(data url.Values) (*TokenResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	req, err := http.NewRequest(http.MethodPost, c.cfg.Domain+tokenPath, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeFormURLEncoded)
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)

	logger.Debug("Sending token request", log.String("grantType", data.Get("grant_type")))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to send token request", log.Error(err))
		return nil, fmt.Errorf("failed to send token request: %w", err)
	}
	defer closeBody(logger, resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		logger.Debug("Token request rejected", log.Int("statusCode", resp.StatusCode))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var tokenResponse TokenResponse
	if err := unmarshalJSON(body, &tokenResponse); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResponse.AccessToken == "" {
		return nil, errors.New("access token not found in the response")
	}

	return &tokenResponse, nil
}

// UserInfo fetches details of the user the access token belongs to.
func (c *Client) UserInfo(accessToken string) (*UserInfo, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	req, err := http.NewRequest(http.MethodGet, c.cfg.Domain+userInfoPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}
	req.Header.Set(constants.AuthorizationHeaderName, constants.TokenTypeBearer+" "+accessToken)
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to send user info request", log.Error(err))
		return nil, fmt.Errorf("failed to send user info request: %w", err)
	}
	defer closeBody(logger, resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}

	var userInfo UserInfo
	if err := unmarshalJSON(body, &userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info response: %w", err)
	}

	return &userInfo, nil
}

// closeBody closes the response body and logs any failure.
func closeBody(logger *log.Logger, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logger.Error("Failed to close response body", log.Error(err))
	}
}
