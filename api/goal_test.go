package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goalRowColumns() []string {
	return []string{"id", "user_id", "name", "target_amount", "current_amount", "target_date", "is_completed", "created_at", "updated_at", "deleted_at"}
}

func TestGoalHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `goals`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/goals", NewGoalHandler().Create)

	body := `{"name":"New Laptop","target_amount":75000,"target_date":"2024-12-31"}`
	req := httptest.NewRequest("POST", "/goals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "New Laptop", resp["name"])
	assert.Equal(t, false, resp["is_completed"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalHandler_Create_ZeroTargetIsComplete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `goals`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/goals", NewGoalHandler().Create)

	body := `{"name":"Done already","target_amount":0}`
	req := httptest.NewRequest("POST", "/goals", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["is_completed"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalHandler_AddFunds_CompletesGoal(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `goals`").
		WillReturnRows(sqlmock.NewRows(goalRowColumns()).
			AddRow(4, 1, "New Laptop", 100.0, 40.0, nil, false, time.Now(), time.Now(), nil))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `goals`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/goals/add-funds/:id", NewGoalHandler().AddFunds)

	body := `{"amount":60}`
	req := httptest.NewRequest("PUT", "/goals/add-funds/4", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(100), resp["current_amount"])
	assert.Equal(t, true, resp["is_completed"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalHandler_AddFunds_RejectsNonPositive(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/goals/add-funds/:id", NewGoalHandler().AddFunds)

	for _, body := range []string{`{"amount":0}`, `{"amount":-5}`, `{}`, `{"amount":"abc"}`} {
		req := httptest.NewRequest("PUT", "/goals/add-funds/4", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, 400, w.Code, "body: %s", body)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Amount to add must be a positive number.", resp["message"])
	}
}

func TestGoalHandler_AddFunds_NotOwner(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `goals`").
		WillReturnRows(sqlmock.NewRows(goalRowColumns()).
			AddRow(4, 2, "New Laptop", 100.0, 40.0, nil, false, time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/goals/add-funds/:id", NewGoalHandler().AddFunds)

	body := `{"amount":60}`
	req := httptest.NewRequest("PUT", "/goals/add-funds/4", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Not authorized to update this goal.", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalHandler_Update_LoweringTargetCompletes(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `goals`").
		WillReturnRows(sqlmock.NewRows(goalRowColumns()).
			AddRow(4, 1, "Trip", 1000.0, 600.0, nil, false, time.Now(), time.Now(), nil))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `goals`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/goals/:id", NewGoalHandler().Update)

	body := `{"target_amount":500}`
	req := httptest.NewRequest("PUT", "/goals/4", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["is_completed"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `goals`").
		WillReturnRows(sqlmock.NewRows(goalRowColumns()).
			AddRow(4, 1, "Trip", 1000.0, 600.0, nil, false, time.Now(), time.Now(), nil))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `goals`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/goals/:id", NewGoalHandler().Delete)

	req := httptest.NewRequest("DELETE", "/goals/4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Goal removed", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}
