package api

import (
	"errors"
	"strconv"

	"github.com/Katsiatyna/BudgetTracker/database"
	"github.com/Katsiatyna/BudgetTracker/middleware"
	"github.com/Katsiatyna/BudgetTracker/models"
	"github.com/Katsiatyna/BudgetTracker/service"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 统计分析处理器
type AnalyticsHandler struct{}

func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{}
}

var errDateFormat = errors.New("日期格式错误，应为: 2006-01-02")

// listIncomeTransactions 加载用户全部收入流水（带类别名）
func listIncomeTransactions(userID uint) ([]service.Transaction, error) {
	var txs []service.Transaction
	err := database.DB.Model(&models.Income{}).
		Select("incomes.id, incomes.user_id, incomes.category_id, categories.name AS category_name, incomes.amount, incomes.date, incomes.description").
		Joins("LEFT JOIN categories ON incomes.category_id = categories.id").
		Where("incomes.user_id = ?", userID).
		Order("incomes.date ASC, incomes.id ASC").
		Scan(&txs).Error
	return txs, err
}

// listOutcomeTransactions 加载用户全部支出流水（带类别名）
func listOutcomeTransactions(userID uint) ([]service.Transaction, error) {
	var txs []service.Transaction
	err := database.DB.Model(&models.Outcome{}).
		Select("outcomes.id, outcomes.user_id, outcomes.category_id, categories.name AS category_name, outcomes.amount, outcomes.date, outcomes.description").
		Joins("LEFT JOIN categories ON outcomes.category_id = categories.id").
		Where("outcomes.user_id = ?", userID).
		Order("outcomes.date ASC, outcomes.id ASC").
		Scan(&txs).Error
	return txs, err
}

// listBudgetLimits 加载用户全部预算限额（带类别名）
func listBudgetLimits(userID uint) ([]service.BudgetLimit, error) {
	var limits []service.BudgetLimit
	err := database.DB.Model(&models.Budget{}).
		Select("budgets.user_id, budgets.category_id, categories.name AS category_name, budgets.limit_amount").
		Joins("LEFT JOIN categories ON budgets.category_id = categories.id").
		Where("budgets.user_id = ?", userID).
		Order("budgets.id ASC").
		Scan(&limits).Error
	return limits, err
}

// GetSummary 获取总览
// @Summary 获取收支总览
// @Description 返回收入总和、支出总和（负数）、净值与预算限额总和
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=service.SummaryTotals} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	incomes, err := listIncomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询收入失败"))
		return
	}
	outcomes, err := listOutcomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}
	limits, err := listBudgetLimits(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询预算失败"))
		return
	}

	Success(c, service.Summary(incomes, outcomes, limits))
}

// LatestResponse 最近流水响应
type LatestResponse struct {
	Incomes  []models.Income  `json:"incomes"`
	Outcomes []models.Outcome `json:"outcomes"`
}

// GetLatest 获取最近流水
// @Summary 获取最近流水
// @Description 返回最近的 5 条收入与 5 条支出，按日期倒序
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=LatestResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/latest [get]
func (h *AnalyticsHandler) GetLatest(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var incomes []models.Income
	if err := database.DB.Preload("Category").Where("user_id = ?", userID).
		Order("date DESC, id DESC").Limit(5).Find(&incomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询收入失败"))
		return
	}
	var outcomes []models.Outcome
	if err := database.DB.Preload("Category").Where("user_id = ?", userID).
		Order("date DESC, id DESC").Limit(5).Find(&outcomes).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	Success(c, LatestResponse{Incomes: incomes, Outcomes: outcomes})
}

// CategorySummaryResponse 按类别汇总响应，金额均为绝对值
type CategorySummaryResponse struct {
	Incomes  map[string]float64 `json:"incomes"`
	Outcomes map[string]float64 `json:"outcomes"`
}

// GetCategorySummary 获取按类别汇总
// @Summary 获取按类别汇总
// @Description 在日期区间内按类别名称汇总收入与支出的绝对值，用于饼图
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=CategorySummaryResponse} "获取成功"
// @Failure 400 {object} Response "日期格式错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/category-summary [get]
func (h *AnalyticsHandler) GetCategorySummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	from, to, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	incomes, err := listIncomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询收入失败"))
		return
	}
	outcomes, err := listOutcomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	Success(c, CategorySummaryResponse{
		Incomes:  service.SumByCategory(incomes, from, to),
		Outcomes: service.SumByCategory(outcomes, from, to),
	})
}

// GetChart 获取图表序列
// @Summary 获取图表序列
// @Description 在日期区间内按 day/month/year 分桶，返回对齐的收入与支出序列（带符号）
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Param group_by query string false "分组粒度 day/month/year" default(day)
// @Success 200 {object} Response{data=service.ChartSeries} "获取成功"
// @Failure 400 {object} Response "日期格式错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/chart [get]
func (h *AnalyticsHandler) GetChart(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	from, to, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	groupBy := c.DefaultQuery("group_by", "day")

	incomes, err := listIncomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询收入失败"))
		return
	}
	outcomes, err := listOutcomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	Success(c, service.BuildSeries(incomes, outcomes, from, to, groupBy))
}

// SpentResponse 某类别累计支出响应
type SpentResponse struct {
	CategoryID uint    `json:"category_id"`
	Spent      float64 `json:"spent"`
}

// GetSpentForCategory 获取某类别累计支出
// @Summary 获取某类别累计支出
// @Description 返回当前用户在某类别上全部时间内的支出绝对值之和
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param categoryId path int true "类别ID"
// @Success 200 {object} Response{data=SpentResponse} "获取成功"
// @Failure 400 {object} Response "无效的类别ID"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/spent/{categoryId} [get]
func (h *AnalyticsHandler) GetSpentForCategory(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	categoryID, err := strconv.ParseUint(c.Param("categoryId"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的类别ID")
		return
	}

	outcomes, err := listOutcomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	Success(c, SpentResponse{
		CategoryID: uint(categoryID),
		Spent:      service.TotalSpentForCategory(outcomes, uint(categoryID)),
	})
}

// GetTopSpendings 获取支出排行
// @Summary 获取支出排行
// @Description 返回日期区间内支出最高的前 N 个类别，默认前 5
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Param limit query int false "返回条数" default(5)
// @Success 200 {object} Response{data=[]service.CategoryTotal} "获取成功"
// @Failure 400 {object} Response "日期格式错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/analytics/top-spendings [get]
func (h *AnalyticsHandler) GetTopSpendings(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	from, to, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	n := 5
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			n = v
		}
	}

	outcomes, err := listOutcomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	Success(c, service.TopSpending(outcomes, from, to, n))
}
