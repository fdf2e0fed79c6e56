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

package salesforce

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/wso2/actionhub/internal/system/constants"
	"github.com/wso2/actionhub/internal/system/log"
)

// CreateRecords creates sObject records through the composite API.
func (c *Client) CreateRecords(accessToken string, payload any) ([]byte, error) {
	path := fmt.Sprintf("/services/data/%s/composite/sobjects", c.cfg.APIVersion)
	return c.postJSON(accessToken, path, payload)
}

// CreateFeedElement posts a Chatter feed element.
func (c *Client) CreateFeedElement(accessToken string, payload any) ([]byte, error) {
	path := fmt.Sprintf("/services/data/%s/chatter/feed-elements/", c.cfg.APIVersion)
	return c.postJSON(accessToken, path, payload)
}

// Query runs a SOQL query and returns the raw response body.
func (c *Client) Query(accessToken string, soql string) ([]byte, error) {
	path := fmt.Sprintf("/services/data/%s/query/?q=%s", c.cfg.APIVersion, url.QueryEscape(soql))
	return c.doResourceRequest(accessToken, http.MethodGet, path, nil)
}

// postJSON sends a JSON payload to the given resource path.
func (c *Client) postJSON(accessToken, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request payload: %w", err)
	}
	return c.doResourceRequest(accessToken, http.MethodPost, path, body)
}

// doResourceRequest performs an authenticated REST API request. A response
// outside the 2xx range is returned as an UpstreamError carrying the
// verbatim status and body.
func (c *Client) doResourceRequest(accessToken, method, path string, body []byte) ([]byte, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, c.cfg.Domain+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource request: %w", err)
	}
	req.Header.Set(constants.AuthorizationHeaderName, constants.TokenTypeBearer+" "+accessToken)
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
	if body != nil {
		req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	}

	logger.Debug("Sending resource request", log.String("method", method), log.String("path", path))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to send resource request", log.Error(err))
		return nil, fmt.Errorf("failed to send resource request: %w", err)
	}
	defer closeBody(logger, resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Debug("Resource request rejected", log.Int("statusCode", resp.StatusCode))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}

// unmarshalJSON decodes JSON bytes into the given target.
func unmarshalJSON(data []byte, target any) error {
	return json.Unmarshal(data, target)
}
