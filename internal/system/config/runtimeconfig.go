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

package config

import "sync"

// HubRuntime holds the runtime configuration for the action hub server.
type HubRuntime struct {
	HubHome string `yaml:"hub_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *HubRuntime
	once          sync.Once
)

// InitializeHubRuntime initializes the HubRuntime configuration.
func InitializeHubRuntime(hubHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &HubRuntime{
			HubHome: hubHome,
			Config:  *config,
		}
	})

	return nil
}

// GetHubRuntime returns the HubRuntime configuration.
func GetHubRuntime() *HubRuntime {
	if runtimeConfig == nil {
		panic("HubRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetHubRuntime resets the HubRuntime.
// This should only be used in tests to reset the singleton state.
func ResetHubRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
