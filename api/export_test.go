package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler_ExportCSV(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	// 收入及其类别
	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category_id", "amount", "description", "date", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, 5, 5000.0, "一月工资", jan, time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at", "deleted_at"}).
			AddRow(5, "工资", "", time.Now(), time.Now(), nil))
	// 支出及其类别
	mock.ExpectQuery("SELECT .* FROM `outcomes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category_id", "amount", "description", "date", "created_at", "updated_at", "deleted_at"}).
			AddRow(2, 1, 1, -45.5, "午餐", jan, time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "餐饮", "", time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv?start_date=2024-01-01&end_date=2024-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.String()
	// BOM 开头，支持 Excel 中文
	assert.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	assert.Contains(t, body, "日期,类型,类别,金额,描述")
	assert.Contains(t, body, "2024-01-15,收入,工资,5000.00,一月工资")
	// 支出按绝对值导出
	assert.Contains(t, body, "2024-01-15,支出,餐饮,45.50,午餐")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportHandler_ExportCSV_MissingRange(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/csv", NewExportHandler().ExportCSV)

	req := httptest.NewRequest("GET", "/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "开始日期")
}

func TestExportHandler_ExportExcel(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)

	mock.ExpectQuery("SELECT .* FROM `incomes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category_id", "amount", "description", "date", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, 1, 5, 5000.0, "一月工资", jan, time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at", "deleted_at"}).
			AddRow(5, "工资", "", time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `outcomes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category_id", "amount", "description", "date", "created_at", "updated_at", "deleted_at"}).
			AddRow(2, 1, 1, -45.5, "午餐", jan, time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at", "deleted_at"}).
			AddRow(1, "餐饮", "", time.Now(), time.Now(), nil))

	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	router.GET("/export/excel", NewExportHandler().ExportExcel)

	req := httptest.NewRequest("GET", "/export/excel?start_date=2024-01-01&end_date=2024-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	// xlsx 是 zip 格式，以 PK 开头
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
	require.NoError(t, mock.ExpectationsWereMet())
}
