package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/Katsiatyna/BudgetTracker/database"
	"github.com/Katsiatyna/BudgetTracker/middleware"
	"github.com/Katsiatyna/BudgetTracker/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportWindow 解析导出接口的必填日期区间
func exportWindow(c *gin.Context) (time.Time, time.Time, string, string, bool) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		BadRequest(c, "请提供开始日期和结束日期")
		return time.Time{}, time.Time{}, "", "", false
	}
	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, "", "", false
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
		return time.Time{}, time.Time{}, "", "", false
	}
	end = end.Add(24*time.Hour - time.Second)
	return start, end, startStr, endStr, true
}

// ExportCSV 导出收支明细为 CSV
// @Summary 导出收支明细
// @Description 根据日期范围导出收入与支出明细为 CSV 文件，支出金额以绝对值列出
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, startStr, endStr, ok := exportWindow(c)
	if !ok {
		return
	}

	var incomes []models.Income
	if err := database.DB.Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询收入失败"))
		return
	}
	var outcomes []models.Outcome
	if err := database.DB.Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").Find(&outcomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	headers := []string{"日期", "类型", "类别", "金额", "描述"}
	if err := writer.Write(headers); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	for _, in := range incomes {
		row := []string{
			in.Date.Format("2006-01-02"),
			"收入",
			in.Category.Name,
			fmt.Sprintf("%.2f", in.Amount),
			in.Description,
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}
	for _, out := range outcomes {
		row := []string{
			out.Date.Format("2006-01-02"),
			"支出",
			out.Category.Name,
			fmt.Sprintf("%.2f", math.Abs(out.Amount)),
			out.Description,
		}
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", startStr, endStr)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出收支明细为 Excel
// @Summary 导出收支明细为 Excel
// @Description 根据日期范围导出收支明细为 Excel 文件，收入与支出分两个工作表
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string true "开始日期 (2024-01-01)"
// @Param end_date query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	start, end, startStr, endStr, ok := exportWindow(c)
	if !ok {
		return
	}

	var incomes []models.Income
	if err := database.DB.Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询收入失败"))
		return
	}
	var outcomes []models.Outcome
	if err := database.DB.Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").Find(&outcomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	headers := []string{"ID", "日期", "类别", "金额", "描述"}

	writeSheet := func(sheetName string, rows [][]interface{}, total float64) {
		f.SetColWidth(sheetName, "A", "A", 10)
		f.SetColWidth(sheetName, "B", "B", 15)
		f.SetColWidth(sheetName, "C", "C", 12)
		f.SetColWidth(sheetName, "D", "D", 12)
		f.SetColWidth(sheetName, "E", "E", 30)

		for i, header := range headers {
			cell := fmt.Sprintf("%c1", 'A'+i)
			f.SetCellValue(sheetName, cell, header)
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}
		for i, row := range rows {
			r := i + 2
			for j, val := range row {
				f.SetCellValue(sheetName, fmt.Sprintf("%c%d", 'A'+j, r), val)
			}
			f.SetCellStyle(sheetName, fmt.Sprintf("A%d", r), fmt.Sprintf("E%d", r), dataStyle)
		}

		summaryRow := len(rows) + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计")
		f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), total)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("共 %d 条记录", len(rows)))
	}

	incomeSheet := "收入"
	f.SetSheetName("Sheet1", incomeSheet)
	var incomeRows [][]interface{}
	var incomeTotal float64
	for _, in := range incomes {
		incomeRows = append(incomeRows, []interface{}{
			in.ID, in.Date.Format("2006-01-02"), in.Category.Name, in.Amount, in.Description,
		})
		incomeTotal += in.Amount
	}
	writeSheet(incomeSheet, incomeRows, incomeTotal)

	outcomeSheet := "支出"
	f.NewSheet(outcomeSheet)
	var outcomeRows [][]interface{}
	var outcomeTotal float64
	for _, out := range outcomes {
		amount := math.Abs(out.Amount)
		outcomeRows = append(outcomeRows, []interface{}{
			out.ID, out.Date.Format("2006-01-02"), out.Category.Name, amount, out.Description,
		})
		outcomeTotal += amount
	}
	writeSheet(outcomeSheet, outcomeRows, outcomeTotal)

	filename := fmt.Sprintf("收支明细_%s_%s.xlsx", startStr, endStr)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}
