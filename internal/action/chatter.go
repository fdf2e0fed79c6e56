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

import "github.com/wso2/actionhub/internal/salesforce"

// chatterCreator is the common shape of the actions that publish Chatter
// feed elements. Each variant differs only in its form fields and the
// payload built from them.
type chatterCreator struct {
	name           string
	label          string
	fields         []FormField
	requiredParams []string
	buildPayload   func(formParams map[string]string, cellValue string) map[string]any
	sfClient       salesforce.ClientInterface
}

// Name returns the unique action name.
func (a *chatterCreator) Name() string {
	return a.name
}

// Label returns the display label of the action.
func (a *chatterCreator) Label() string {
	return a.label
}

// UsesOAuth reports whether the action requires a browser mediated login.
func (a *chatterCreator) UsesOAuth() bool {
	return false
}

// FormFields returns the form definition of the action.
func (a *chatterCreator) FormFields(req *FormRequest) ([]FormField, error) {
	return a.fields, nil
}

// Execute publishes a feed element built from the submitted form parameters,
// obtaining an access token through the password grant.
func (a *chatterCreator) Execute(req *ExecuteRequest) (map[string]string, error) {
	validationErrors := map[string]string{}
	requireParams(req.FormParams, validationErrors, a.requiredParams...)
	if len(validationErrors) > 0 {
		return validationErrors, nil
	}

	tokenResponse, err := a.sfClient.ExchangePassword()
	if err != nil {
		return nil, err
	}

	payload := a.buildPayload(req.FormParams, req.Data.Value)
	if _, err := a.sfClient.CreateFeedElement(tokenResponse.AccessToken, payload); err != nil {
		return nil, err
	}
	return nil, nil
}

// textSegmentBody builds a feed element body holding a single text segment.
func textSegmentBody(text string) map[string]any {
	return map[string]any{
		"messageSegments": []map[string]any{
			{"type": "Text", "text": text},
		},
	}
}

// newPostCreator creates the action that shares a plain Chatter update.
func newPostCreator(sfClient salesforce.ClientInterface) *chatterCreator {
	return &chatterCreator{
		name:  actionNamePostCreator,
		label: "Post",
		fields: []FormField{
			{
				Name:        "content",
				Label:       "Content",
				Description: "Share an update",
				Type:        "textarea",
				Required:    true,
			},
		},
		requiredParams: []string{"content"},
		buildPayload: func(formParams map[string]string, cellValue string) map[string]any {
			return map[string]any{
				"body":            textSegmentBody(formParams["content"]),
				"feedElementType": "FeedItem",
				"subjectId":       cellValue,
			}
		},
		sfClient: sfClient,
	}
}

// newQuestionCreator creates the action that posts a Chatter question.
func newQuestionCreator(sfClient salesforce.ClientInterface) *chatterCreator {
	return &chatterCreator{
		name:  actionNameQuestionCreator,
		label: "Question",
		fields: []FormField{
			{
				Name:        "question",
				Label:       "Question",
				Description: "What would you like to know?",
				Type:        "textarea",
				Required:    true,
			},
			{
				Name:        "detail",
				Label:       "Detail",
				Description: "If you have more to say, add detail here",
				Type:        "textarea",
				Required:    true,
			},
		},
		requiredParams: []string{"question", "detail"},
		buildPayload: func(formParams map[string]string, cellValue string) map[string]any {
			return map[string]any{
				"body": textSegmentBody(formParams["detail"]),
				"capabilities": map[string]any{
					"questionAndAnswers": map[string]any{
						"questionTitle": formParams["question"],
					},
				},
				"feedElementType": "FeedItem",
				"subjectId":       cellValue,
			}
		},
		sfClient: sfClient,
	}
}

// newPollCreator creates the action that posts a Chatter poll.
func newPollCreator(sfClient salesforce.ClientInterface) *chatterCreator {
	return &chatterCreator{
		name:  actionNamePollCreator,
		label: "Poll",
		fields: []FormField{
			{
				Name:        "question",
				Label:       "Question",
				Description: "What would you like to add?",
				Type:        "textarea",
				Required:    true,
			},
			{
				Name:     "choice_1",
				Label:    "Choice 1",
				Type:     "text",
				Required: true,
			},
			{
				Name:     "choice_2",
				Label:    "Choice 2",
				Type:     "text",
				Required: true,
			},
		},
		requiredParams: []string{"question", "choice_1", "choice_2"},
		buildPayload: func(formParams map[string]string, cellValue string) map[string]any {
			return map[string]any{
				"body": textSegmentBody(formParams["question"]),
				"capabilities": map[string]any{
					"poll": map[string]any{
						"choices": []string{
							formParams["choice_1"],
							formParams["choice_2"],
						},
					},
				},
				"feedElementType": "FeedItem",
				"subjectId":       cellValue,
			}
		},
		sfClient: sfClient,
	}
}
