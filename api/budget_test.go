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

func budgetRowColumns() []string {
	return []string{"id", "user_id", "category", "category_key", "amount", "month", "year", "created_at", "updated_at"}
}

func TestBudgetHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// duplicate pre-check finds nothing
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `budgets`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/budgets", NewBudgetHandler().Create)

	body := `{"category":"Food & Dining","amount":5000,"month":6,"year":2024}`
	req := httptest.NewRequest("POST", "/budgets", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Food & Dining", resp["category"])
	assert.Equal(t, float64(6), resp["month"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Create_Duplicate(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// pre-check finds an existing budget for the same period
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows(budgetRowColumns()).
			AddRow(1, 1, "Food & Dining", "food & dining", 5000.0, 6, 2024, time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/budgets", NewBudgetHandler().Create)

	body := `{"category":"food & dining","amount":4000,"month":6,"year":2024}`
	req := httptest.NewRequest("POST", "/budgets", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Budget for this category and month/year already exists.", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Create_InvalidMonth(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.POST("/budgets", NewBudgetHandler().Create)

	body := `{"category":"Food","amount":5000,"month":13,"year":2024}`
	req := httptest.NewRequest("POST", "/budgets", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestBudgetHandler_List_PeriodFilter(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows(budgetRowColumns()).
			AddRow(1, 1, "Food & Dining", "food & dining", 5000.0, 6, 2024, time.Now(), time.Now()).
			AddRow(2, 1, "Transportation", "transportation", 2000.0, 6, 2024, time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/budgets", NewBudgetHandler().List)

	req := httptest.NewRequest("GET", "/budgets?month=6&year=2024", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Food & Dining", resp[0]["category"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Update_NotOwner(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows(budgetRowColumns()).
			AddRow(7, 2, "Shopping", "shopping", 3000.0, 6, 2024, time.Now(), time.Now()))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.PUT("/budgets/:id", NewBudgetHandler().Update)

	body := `{"amount":3500}`
	req := httptest.NewRequest("PUT", "/budgets/7", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Not authorized to update this budget", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetHandler_Delete_HardDeletes(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(sqlmock.NewRows(budgetRowColumns()).
			AddRow(7, 1, "Shopping", "shopping", 3000.0, 6, 2024, time.Now(), time.Now()))

	// no soft-delete column, the row really goes away
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `budgets`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.DELETE("/budgets/:id", NewBudgetHandler().Delete)

	req := httptest.NewRequest("DELETE", "/budgets/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Budget removed", resp["message"])
	require.NoError(t, mock.ExpectationsWereMet())
}
