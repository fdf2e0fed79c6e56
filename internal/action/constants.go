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

const loggerComponentName = "ActionHandler"

// Action names exposed in the integrations list.
const (
	actionNameCampaignCreator = "campaign-creator"
	actionNamePostCreator     = "post-creator"
	actionNameQuestionCreator = "question-creator"
	actionNamePollCreator     = "poll-creator"
	actionNameTaskCreator     = "task-creator"
)

// Field validation messages.
const (
	messageMissingParameter  = "Missing required parameter"
	messageInvalidDateFormat = "Invalid date format. Please use YYYY-MM-DD format"
	messageNotAuthenticated  = "Not authenticated. Please log in and try again."
)

// dateFormat is the wire format for date form fields.
const dateFormat = "2006-01-02"

// taskRecordTypeID is the record type assigned to tasks created by the hub.
const taskRecordTypeID = "0122w000001MHouAAG"

// defaultHubLabel is the list label used when none is configured.
const defaultHubLabel = "Salesforce Action Hub"

// defaultIconDataURI is the icon served for integrations when none is configured.
const defaultIconDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAABAAAAAQCAYAAAAf8/9hAAABC0lEQVQ4jaXT" +
	"L0vDURjF8c/zQ0RETCJG2RbE4GsYJjGbDT+LwVdgFLOYBfcCjGI2GUxiMI2tGERERERERHwMczD/4rYDF275nuce7nkiM8MQKoaBYaR7" +
	"if3WCFERWSGauJQIE+RLlrWnnwwiMyMa7VFsYQPjeEQDk1jEFXZwiFE8Z1l97TVYko7En5HucYIpNGXu5lrtvGuwjc0+41+j3p141ycM" +
	"M1gvotGe1ck+gHK+wApmBzOIiwJjg8FusFfgCA//hG5xjgNyOctqs/sLdZRY+Di9usZrB85N4hSPn3oAsd8qUBFxiLmeias40ynPt5fG" +
	"12WKRnsaSzqNPEYry+rbb5m+GfSrobfxHWu4YtTFW9MMAAAAAElFTkSuQmCC"
