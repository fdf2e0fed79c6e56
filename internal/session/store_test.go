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

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/wso2/actionhub/internal/system/database/client"
	"github.com/wso2/actionhub/internal/system/database/model"
)

// mockDBProvider returns a fixed database client for any database name.
type mockDBProvider struct {
	client client.DBClientInterface
	err    error
}

func (m *mockDBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.client, nil
}

type SessionStoreTestSuite struct {
	suite.Suite
	db    *sql.DB
	mock  sqlmock.Sqlmock
	store StoreInterface
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreTestSuite))
}

func (suite *SessionStoreTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	suite.Require().NoError(err)

	suite.db = db
	suite.mock = mock
	dbClient := client.NewDBClient(model.NewDB(db), "sqlite")
	suite.store = NewStore(&mockDBProvider{client: dbClient}, 600)
}

func (suite *SessionStoreTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
	suite.mock.ExpectClose()
	suite.NoError(suite.db.Close())
}

func (suite *SessionStoreTestSuite) TestStore() {
	suite.mock.ExpectExec(QueryUpsertSession.SQLiteQuery).
		WithArgs("corr-key", "access-token", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := suite.store.Store("corr-key", "access-token")
	suite.NoError(err)
}

func (suite *SessionStoreTestSuite) TestStoreFailure() {
	suite.mock.ExpectExec(QueryUpsertSession.SQLiteQuery).
		WithArgs("corr-key", "access-token", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))

	err := suite.store.Store("corr-key", "access-token")
	suite.Error(err)
}

func (suite *SessionStoreTestSuite) TestConsumeReturnsAndRemovesToken() {
	rows := sqlmock.NewRows([]string{"TOKEN", "CREATED_AT"}).
		AddRow("access-token", time.Now().Unix())

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(QueryGetSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnRows(rows)
	suite.mock.ExpectExec(QueryDeleteSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	token, found, err := suite.store.Consume("corr-key")
	suite.Require().NoError(err)
	suite.True(found)
	suite.Equal("access-token", token)
}

func (suite *SessionStoreTestSuite) TestConsumeNotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(QueryGetSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnRows(sqlmock.NewRows([]string{"TOKEN", "CREATED_AT"}))
	suite.mock.ExpectCommit()

	token, found, err := suite.store.Consume("corr-key")
	suite.Require().NoError(err)
	suite.False(found)
	suite.Empty(token)
}

func (suite *SessionStoreTestSuite) TestConsumeExpiredSession() {
	expiredCreatedAt := time.Now().Unix() - 700

	rows := sqlmock.NewRows([]string{"TOKEN", "CREATED_AT"}).
		AddRow("access-token", expiredCreatedAt)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(QueryGetSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnRows(rows)
	suite.mock.ExpectExec(QueryDeleteSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	token, found, err := suite.store.Consume("corr-key")
	suite.Require().NoError(err)
	suite.False(found)
	suite.Empty(token)
}

func (suite *SessionStoreTestSuite) TestConsumeLosingRacedDeleteReportsNotFound() {
	rows := sqlmock.NewRows([]string{"TOKEN", "CREATED_AT"}).
		AddRow("access-token", time.Now().Unix())

	// A concurrent consume removed the record after the read, so the delete
	// affects no rows. The record must not be handed out twice.
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(QueryGetSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnRows(rows)
	suite.mock.ExpectExec(QueryDeleteSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()

	token, found, err := suite.store.Consume("corr-key")
	suite.Require().NoError(err)
	suite.False(found)
	suite.Empty(token)
}

func (suite *SessionStoreTestSuite) TestConsumeRollsBackOnDeleteFailure() {
	rows := sqlmock.NewRows([]string{"TOKEN", "CREATED_AT"}).
		AddRow("access-token", time.Now().Unix())

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(QueryGetSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnRows(rows)
	suite.mock.ExpectExec(QueryDeleteSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnError(errors.New("locked"))
	suite.mock.ExpectRollback()

	token, found, err := suite.store.Consume("corr-key")
	suite.Error(err)
	suite.False(found)
	suite.Empty(token)
}

func (suite *SessionStoreTestSuite) TestClear() {
	suite.mock.ExpectExec(QueryDeleteSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := suite.store.Clear("corr-key")
	suite.NoError(err)
}

func (suite *SessionStoreTestSuite) TestClearIsIdempotent() {
	suite.mock.ExpectExec(QueryDeleteSession.SQLiteQuery).
		WithArgs("corr-key").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := suite.store.Clear("corr-key")
	suite.NoError(err)
}

func (suite *SessionStoreTestSuite) TestProviderFailure() {
	failing := NewStore(&mockDBProvider{err: errors.New("no database")}, 600)

	err := failing.Store("corr-key", "access-token")
	suite.Error(err)

	_, _, err = failing.Consume("corr-key")
	suite.Error(err)

	err = failing.Clear("corr-key")
	suite.Error(err)
}
