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

// Package session provides durable storage for OAuth session records
// keyed by an opaque correlation key.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wso2/actionhub/internal/system/config"
	"github.com/wso2/actionhub/internal/system/database/provider"
	"github.com/wso2/actionhub/internal/system/log"
)

const loggerComponentName = "SessionStore"

// StoreInterface defines the interface for session store operations.
type StoreInterface interface {
	// Store persists the token under the correlation key, replacing any existing record.
	Store(correlationKey, token string) error
	// Consume atomically retrieves and removes the token for the correlation key.
	// An expired or absent record is reported as not found.
	Consume(correlationKey string) (string, bool, error)
	// Clear removes any record for the correlation key.
	Clear(correlationKey string) error
}

// store is the default implementation of StoreInterface.
type store struct {
	dbProvider     provider.DBProviderInterface
	validityPeriod int64
}

var (
	instance *store
	once     sync.Once
)

// GetStore returns the singleton session store instance.
func GetStore() StoreInterface {
	once.Do(func() {
		validityPeriod := config.GetHubRuntime().Config.Session.ValidityPeriod
		if validityPeriod <= 0 {
			validityPeriod = defaultValidityPeriod
		}
		instance = &store{
			dbProvider:     provider.GetDBProvider(),
			validityPeriod: validityPeriod,
		}
	})
	return instance
}

// NewStore creates a new session store with the given provider and validity period in seconds.
func NewStore(dbProvider provider.DBProviderInterface, validityPeriod int64) StoreInterface {
	if validityPeriod <= 0 {
		validityPeriod = defaultValidityPeriod
	}
	return &store{
		dbProvider:     dbProvider,
		validityPeriod: validityPeriod,
	}
}

// Store persists the token under the correlation key, replacing any existing record.
func (s *store) Store(correlationKey, token string) error {
	dbClient, err := s.dbProvider.GetDBClient("session")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(QueryUpsertSession, correlationKey, token, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Consume atomically retrieves and removes the token for the correlation key.
// The record is removed even when it has expired, in which case it is
// reported as not found.
func (s *store) Consume(correlationKey string) (token string, found bool, err error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.dbProvider.GetDBClient("session")
	if err != nil {
		return "", false, fmt.Errorf("failed to get database client: %w", err)
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		return "", false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
			}
		}
	}()

	results, err := dbClient.QueryTx(tx, QueryGetSession, correlationKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to query session: %w", err)
	}

	if len(results) == 0 {
		if err = tx.Commit(); err != nil {
			return "", false, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return "", false, nil
	}

	record, parseErr := buildSession(correlationKey, results[0])
	if parseErr != nil {
		err = parseErr
		return "", false, err
	}

	rowsAffected, err := dbClient.ExecuteTx(tx, QueryDeleteSession, correlationKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to delete session: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return "", false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// A concurrent consume can delete the record between the read and the
	// delete. The consumer whose delete removed nothing did not win the record.
	if rowsAffected == 0 {
		logger.Debug("Session already consumed", log.String(log.LoggerKeyCorrelationKey, correlationKey))
		return "", false, nil
	}

	if record.Expired(s.validityPeriod, time.Now().Unix()) {
		logger.Debug("Discarding expired session", log.String(log.LoggerKeyCorrelationKey, correlationKey))
		return "", false, nil
	}

	return record.Token, true, nil
}

// Clear removes any record for the correlation key.
func (s *store) Clear(correlationKey string) error {
	dbClient, err := s.dbProvider.GetDBClient("session")
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	_, err = dbClient.Execute(QueryDeleteSession, correlationKey)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

// buildSession maps a queried row to a Session record.
func buildSession(correlationKey string, row map[string]interface{}) (Session, error) {
	token, ok := row["token"].(string)
	if !ok {
		return Session{}, errors.New("failed to parse token from session record")
	}

	createdAt, err := parseCreatedAt(row["created_at"])
	if err != nil {
		return Session{}, err
	}

	return Session{
		CorrelationKey: correlationKey,
		Token:          token,
		CreatedAt:      createdAt,
	}, nil
}

// parseCreatedAt normalizes the created_at column value across drivers.
func parseCreatedAt(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected created_at type %T in session record", value)
	}
}
