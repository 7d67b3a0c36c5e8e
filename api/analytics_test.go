package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "category_id", "category_name", "amount", "date", "description"})
}

func limitRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "category_id", "category_name", "limit_amount"})
}

func TestAnalyticsHandler_GetSummary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(txRows().
			AddRow(1, 1, 5, "工资", 5000.0, jan15, "一月工资"))
	mock.ExpectQuery("SELECT .* FROM `outcomes`").
		WillReturnRows(txRows().
			AddRow(2, 1, 1, "餐饮", -45.5, jan15, "午餐").
			AddRow(3, 1, 4, "住房", -1500.0, jan15, "房租"))
	mock.ExpectQuery("SELECT .* FROM `budgets`").
		WillReturnRows(limitRows().
			AddRow(1, 1, "餐饮", 800.0).
			AddRow(1, 4, "住房", 2000.0))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/summary", NewAnalyticsHandler().GetSummary)

	req := httptest.NewRequest("GET", "/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(5000), data["income"])
	assert.Equal(t, float64(-1545.5), data["outcome"])
	assert.Equal(t, float64(3454.5), data["budget"])
	assert.Equal(t, float64(2800), data["limit"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_GetChart_MonthGrouping(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	feb := time.Date(2024, 2, 20, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(txRows().
			AddRow(1, 1, 5, "工资", 5000.0, jan, ""))
	mock.ExpectQuery("SELECT .* FROM `outcomes`").
		WillReturnRows(txRows().
			AddRow(2, 1, 1, "餐饮", -90.0, feb, ""))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/chart", NewAnalyticsHandler().GetChart)

	req := httptest.NewRequest("GET", "/chart?group_by=month&start_date=2024-01-01&end_date=2024-12-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	labels := data["labels"].([]interface{})
	require.Len(t, labels, 2)
	assert.Equal(t, "2024-01", labels[0])
	assert.Equal(t, "2024-02", labels[1])
	incomes := data["incomes"].([]interface{})
	outcomes := data["outcomes"].([]interface{})
	assert.Equal(t, float64(5000), incomes[0])
	assert.Equal(t, float64(0), incomes[1])
	assert.Equal(t, float64(0), outcomes[0])
	assert.Equal(t, float64(-90), outcomes[1])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_GetChart_BadDate(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/chart", NewAnalyticsHandler().GetChart)

	req := httptest.NewRequest("GET", "/chart?start_date=01-01-2024", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "日期格式错误")
}

func TestAnalyticsHandler_GetTopSpendings(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `outcomes`").
		WillReturnRows(txRows().
			AddRow(1, 1, 1, "餐饮", -90.0, jan, "").
			AddRow(2, 1, 4, "住房", -1500.0, jan, "").
			AddRow(3, 1, 2, "交通", -30.0, jan, ""))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/top-spendings", NewAnalyticsHandler().GetTopSpendings)

	req := httptest.NewRequest("GET", "/top-spendings?limit=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "住房", first["category"])
	assert.Equal(t, float64(1500), first["total"])
	second := list[1].(map[string]interface{})
	assert.Equal(t, "餐饮", second["category"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_GetSpentForCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `outcomes`").
		WillReturnRows(txRows().
			AddRow(1, 1, 1, "餐饮", -40.0, jan, "").
			AddRow(2, 1, 1, "餐饮", -50.0, feb, "").
			AddRow(3, 1, 4, "住房", -1500.0, jan, ""))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/spent/:categoryId", NewAnalyticsHandler().GetSpentForCategory)

	req := httptest.NewRequest("GET", "/spent/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(90), data["spent"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsHandler_GetCategorySummary(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(txRows().
			AddRow(1, 1, 5, "工资", 5000.0, jan, ""))
	mock.ExpectQuery("SELECT .* FROM `outcomes`").
		WillReturnRows(txRows().
			AddRow(2, 1, 1, "餐饮", -40.0, jan, "").
			AddRow(3, 1, 1, "餐饮", -50.0, jan, ""))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/category-summary", NewAnalyticsHandler().GetCategorySummary)

	req := httptest.NewRequest("GET", "/category-summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	incomes := data["incomes"].(map[string]interface{})
	outcomes := data["outcomes"].(map[string]interface{})
	assert.Equal(t, float64(5000), incomes["工资"])
	assert.Equal(t, float64(90), outcomes["餐饮"])
	require.NoError(t, mock.ExpectationsWereMet())
}
