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
	"errors"
	"net/http"

	"github.com/wso2/actionhub/internal/hubauth"
	"github.com/wso2/actionhub/internal/salesforce"
	"github.com/wso2/actionhub/internal/session"
	"github.com/wso2/actionhub/internal/statetoken"
	"github.com/wso2/actionhub/internal/system/constants"
	"github.com/wso2/actionhub/internal/system/log"
	"github.com/wso2/actionhub/internal/system/utils"
)

// actionHandler serves the list, form, execute, and OAuth callback phases
// for all registered actions.
type actionHandler struct {
	authenticator hubauth.AuthenticatorInterface
	codec         statetoken.CodecInterface
	sessionStore  session.StoreInterface
	sfClient      salesforce.ClientInterface
	catalog       *catalog
}

// newActionHandler creates an action handler over the given collaborators.
func newActionHandler(
	authenticator hubauth.AuthenticatorInterface,
	codec statetoken.CodecInterface,
	sessionStore session.StoreInterface,
	sfClient salesforce.ClientInterface,
	catalog *catalog,
) *actionHandler {
	return &actionHandler{
		authenticator: authenticator,
		codec:         codec,
		sessionStore:  sessionStore,
		sfClient:      sfClient,
		catalog:       catalog,
	}
}

// HandleList returns the integrations list for all registered actions.
func (h *actionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.catalog.listResponse())
}

// HandleForm returns the form definition of the given action. For OAuth
// gated actions the response is a login link until the user has completed
// the browser login, after which the stored session is consumed and the
// real form is returned.
func (h *actionHandler) HandleForm(act ActionInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}
		logger := log.GetLogger().With(
			log.String(log.LoggerKeyComponentName, loggerComponentName),
			log.String(log.LoggerKeyActionName, act.Name()))

		formRequest, err := utils.DecodeJSONBody[FormRequest](r)
		if err != nil {
			utils.WriteJSONError(w, ErrorInvalidRequestBody.Code, ErrorInvalidRequestBody.ErrorDescription,
				http.StatusBadRequest, nil)
			return
		}

		if act.UsesOAuth() {
			h.handleOAuthGatedForm(w, act, formRequest, logger)
			return
		}

		fields, err := act.FormFields(formRequest)
		if err != nil {
			h.writeUpstreamFailure(w, err, logger)
			return
		}
		utils.WriteJSON(w, http.StatusOK, fields)
	}
}

// handleOAuthGatedForm resolves whether the user has authenticated yet and
// returns either the login link or the real form.
func (h *actionHandler) handleOAuthGatedForm(
	w http.ResponseWriter,
	act ActionInterface,
	formRequest *FormRequest,
	logger *log.Logger,
) {
	stateURL := formRequest.Data.StateURL
	if stateURL == "" {
		utils.WriteJSONError(w, ErrorMissingStateURL.Code, ErrorMissingStateURL.ErrorDescription,
			http.StatusBadRequest, nil)
		return
	}

	_, hasToken := formRequest.Data.StateJSON.Token()

	// Consume clears the record regardless of which signal wins, so a
	// completed login is never replayable.
	_, found, err := h.sessionStore.Consume(stateURL)
	if err != nil {
		logger.Error("Failed to consume session record", log.Error(err))
		utils.WriteJSONError(w, ErrorInternalServerError.Code, ErrorInternalServerError.ErrorDescription,
			http.StatusInternalServerError, nil)
		return
	}

	if hasToken || found {
		fields, err := act.FormFields(formRequest)
		if err != nil {
			h.writeUpstreamFailure(w, err, logger)
			return
		}
		utils.WriteJSON(w, http.StatusOK, fields)
		return
	}

	loginLink, err := h.buildLoginLink(stateURL)
	if err != nil {
		logger.Error("Failed to build login link", log.Error(err))
		utils.WriteJSONError(w, ErrorInternalServerError.Code, ErrorInternalServerError.ErrorDescription,
			http.StatusInternalServerError, nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, []FormField{loginLink})
}

// buildLoginLink produces the single-element login form whose target embeds
// an encrypted continuation token.
func (h *actionHandler) buildLoginLink(stateURL string) (FormField, error) {
	stateToken, err := h.codec.Encode(statetoken.StatePayload{StateURL: stateURL})
	if err != nil {
		return FormField{}, err
	}

	oauthURL, err := h.sfClient.AuthorizeURL(stateToken)
	if err != nil {
		return FormField{}, err
	}

	return FormField{
		Name:        "login",
		Type:        "oauth_link",
		Label:       "Log in",
		Description: "Log in to your Salesforce account.",
		OAuthURL:    oauthURL,
	}, nil
}

// HandleExecute runs the given action with the submitted form parameters.
func (h *actionHandler) HandleExecute(act ActionInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}
		logger := log.GetLogger().With(
			log.String(log.LoggerKeyComponentName, loggerComponentName),
			log.String(log.LoggerKeyActionName, act.Name()))

		executeRequest, err := utils.DecodeJSONBody[ExecuteRequest](r)
		if err != nil {
			utils.WriteJSONError(w, ErrorInvalidRequestBody.Code, ErrorInvalidRequestBody.ErrorDescription,
				http.StatusBadRequest, nil)
			return
		}

		validationErrors, err := act.Execute(executeRequest)
		if len(validationErrors) > 0 {
			utils.WriteJSON(w, http.StatusBadRequest, newValidationErrorResponse(validationErrors))
			return
		}
		if err != nil {
			h.writeUpstreamFailure(w, err, logger)
			return
		}

		w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusOK)
	}
}

// HandleOAuth completes the browser mediated login. The request arrives via
// redirect from the CRM's authorization page, so it carries no hub
// credential and is authenticated by the integrity of the state token alone.
func (h *actionHandler) HandleOAuth(act ActionInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.GetLogger().With(
			log.String(log.LoggerKeyComponentName, loggerComponentName),
			log.String(log.LoggerKeyActionName, act.Name()))

		code := r.URL.Query().Get("code")
		if code == "" {
			utils.WriteJSONError(w, ErrorMissingAuthorizationCode.Code,
				ErrorMissingAuthorizationCode.ErrorDescription, http.StatusBadRequest, nil)
			return
		}

		payload, err := h.codec.Decode(r.URL.Query().Get("state"))
		if err != nil {
			logger.Debug("Rejecting OAuth callback with undecodable state")
			utils.WriteJSONError(w, ErrorInvalidStateToken.Code, ErrorInvalidStateToken.ErrorDescription,
				http.StatusBadRequest, nil)
			return
		}

		tokenResponse, err := h.sfClient.ExchangeAuthorizationCode(code)
		if err != nil {
			h.writeUpstreamFailure(w, err, logger)
			return
		}

		if err := h.sessionStore.Store(payload.StateURL, tokenResponse.AccessToken); err != nil {
			logger.Error("Failed to store session record", log.Error(err))
			utils.WriteJSONError(w, ErrorInternalServerError.Code, ErrorInternalServerError.ErrorDescription,
				http.StatusInternalServerError, nil)
			return
		}

		logger.Debug("Completed token exchange, redirecting to form")
		http.Redirect(w, r, h.catalog.formURL(act.Name()), http.StatusFound)
	}
}

// authorize verifies the inbound hub credential and writes the rejection if
// the request is not authentic.
func (h *actionHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	result := h.authenticator.Authenticate(r)
	if !result.Authorized {
		utils.WriteJSONError(w, result.ErrorCode, result.ErrorDescription, result.StatusCode, nil)
		return false
	}
	return true
}

// writeUpstreamFailure relays an upstream rejection verbatim, and maps
// network level failures to a bad gateway response.
func (h *actionHandler) writeUpstreamFailure(w http.ResponseWriter, err error, logger *log.Logger) {
	var upstreamErr *salesforce.UpstreamError
	if errors.As(err, &upstreamErr) {
		logger.Debug("Relaying upstream rejection", log.Int("statusCode", upstreamErr.StatusCode))
		w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
		w.WriteHeader(upstreamErr.StatusCode)
		if _, writeErr := w.Write(upstreamErr.Body); writeErr != nil {
			logger.Error("Failed to write upstream response body", log.Error(writeErr))
		}
		return
	}

	logger.Error("Upstream call failed", log.Error(err))
	utils.WriteJSONError(w, ErrorUpstreamUnavailable.Code, ErrorUpstreamUnavailable.ErrorDescription,
		http.StatusBadGateway, nil)
}
