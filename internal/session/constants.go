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

package session

import "github.com/wso2/actionhub/internal/system/database/model"

// defaultValidityPeriod is the session validity in seconds used when no value is configured.
const defaultValidityPeriod int64 = 600

var (
	// QueryUpsertSession inserts a session record, replacing any existing record for the key.
	QueryUpsertSession = model.DBQuery{
		ID: "AHQ-SESSION-01",
		PostgresQuery: "INSERT INTO HUB_SESSION (CORRELATION_KEY, TOKEN, CREATED_AT) VALUES ($1, $2, $3) " +
			"ON CONFLICT (CORRELATION_KEY) DO UPDATE SET TOKEN = EXCLUDED.TOKEN, CREATED_AT = EXCLUDED.CREATED_AT",
		SQLiteQuery: "INSERT INTO HUB_SESSION (CORRELATION_KEY, TOKEN, CREATED_AT) VALUES (?, ?, ?) " +
			"ON CONFLICT (CORRELATION_KEY) DO UPDATE SET TOKEN = EXCLUDED.TOKEN, CREATED_AT = EXCLUDED.CREATED_AT",
	}

	// QueryGetSession retrieves the session record for the given correlation key.
	QueryGetSession = model.DBQuery{
		ID:            "AHQ-SESSION-02",
		PostgresQuery: "SELECT TOKEN, CREATED_AT FROM HUB_SESSION WHERE CORRELATION_KEY = $1",
		SQLiteQuery:   "SELECT TOKEN, CREATED_AT FROM HUB_SESSION WHERE CORRELATION_KEY = ?",
	}

	// QueryDeleteSession removes the session record for the given correlation key.
	QueryDeleteSession = model.DBQuery{
		ID:            "AHQ-SESSION-03",
		PostgresQuery: "DELETE FROM HUB_SESSION WHERE CORRELATION_KEY = $1",
		SQLiteQuery:   "DELETE FROM HUB_SESSION WHERE CORRELATION_KEY = ?",
	}
)
