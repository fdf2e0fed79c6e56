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

// Package action provides the integration actions exposed by the hub and
// the HTTP handlers serving their list, form, execute, and OAuth phases.
package action

import (
	"net/http"

	"github.com/wso2/actionhub/internal/hubauth"
	"github.com/wso2/actionhub/internal/salesforce"
	"github.com/wso2/actionhub/internal/session"
	"github.com/wso2/actionhub/internal/statetoken"
	"github.com/wso2/actionhub/internal/system/config"
	"github.com/wso2/actionhub/internal/system/log"
)

// Initialize wires the registered actions and their HTTP routes.
func Initialize(mux *http.ServeMux) {
	sfClient := salesforce.GetClient()

	actions := []ActionInterface{
		newCampaignCreator(sfClient),
		newPostCreator(sfClient),
		newQuestionCreator(sfClient),
		newPollCreator(sfClient),
		newTaskCreator(sfClient),
	}

	handler := newActionHandler(
		hubauth.GetAuthenticator(),
		statetoken.GetCodec(),
		session.GetStore(),
		sfClient,
		newCatalog(config.GetHubRuntime().Config.Hub, actions),
	)

	registerRoutes(mux, handler, actions)

	log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
		Info("Action routes registered", log.Int("actionCount", len(actions)))
}

// registerRoutes registers the routes for all action phases.
func registerRoutes(mux *http.ServeMux, handler *actionHandler, actions []ActionInterface) {
	mux.HandleFunc("POST /actions-list", handler.HandleList)

	for _, act := range actions {
		mux.HandleFunc("POST /"+act.Name()+"-list", handler.HandleList)
		mux.HandleFunc("POST /"+act.Name()+"-form", handler.HandleForm(act))
		mux.HandleFunc("POST /"+act.Name()+"-execute", handler.HandleExecute(act))
		if act.UsesOAuth() {
			mux.HandleFunc("GET /"+act.Name()+"-oauth", handler.HandleOAuth(act))
		}
	}
}
