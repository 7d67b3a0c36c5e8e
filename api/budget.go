package api

import (
	"strconv"
	"time"

	"github.com/Katsiatyna/BudgetTracker/database"
	"github.com/Katsiatyna/BudgetTracker/middleware"
	"github.com/Katsiatyna/BudgetTracker/models"
	"github.com/Katsiatyna/BudgetTracker/service"

	"github.com/gin-gonic/gin"
)

// BudgetHandler 预算处理器
type BudgetHandler struct{}

func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

type SetBudgetRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required" example:"1"`
	LimitAmount float64 `json:"limit_amount" binding:"required" example:"1000.00"`
}

type UpdateBudgetRequest struct {
	LimitAmount float64 `json:"limit_amount" binding:"required" example:"1500.00"`
}

// List 获取预算列表
// @Summary 获取预算列表
// @Description 获取当前用户的全部预算限额
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Budget} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var list []models.Budget
	if err := database.DB.Preload("Category").Where("user_id = ?", userID).Order("id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Set 设置预算
// @Summary 设置预算
// @Description 为某类别设置限额。每个用户每个类别只有一条预算，已存在则覆盖
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetBudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "设置成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets [post]
func (h *BudgetHandler) Set(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	var cat models.Category
	if err := database.DB.First(&cat, req.CategoryID).Error; err != nil {
		BadRequest(c, "类别不存在")
		return
	}

	// 同一类别已有预算则覆盖
	var budget models.Budget
	if err := database.DB.Where("user_id = ? AND category_id = ?", userID, req.CategoryID).First(&budget).Error; err == nil {
		if err := database.DB.Model(&budget).Update("limit_amount", req.LimitAmount).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新预算失败"))
			return
		}
		database.DB.Preload("Category").First(&budget, budget.ID)
		SuccessWithMessage(c, "预算已更新", budget)
		return
	}

	budget = models.Budget{UserID: userID, CategoryID: req.CategoryID, LimitAmount: req.LimitAmount}
	if err := database.DB.Create(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建预算失败"))
		return
	}
	budget.Category = cat
	SuccessWithMessage(c, "预算已设置", budget)
}

// Update 更新预算
// @Summary 更新预算
// @Description 更新指定预算的限额
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Param request body UpdateBudgetRequest true "预算信息"
// @Success 200 {object} Response{data=models.Budget} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if err := database.DB.Model(&budget).Update("limit_amount", req.LimitAmount).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.Preload("Category").First(&budget, budget.ID)
	SuccessWithMessage(c, "更新成功", budget)
}

// Delete 删除预算
// @Summary 删除预算
// @Description 删除指定的预算限额（软删除）
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param id path int true "预算ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var budget models.Budget
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	if err := database.DB.Delete(&budget).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Warnings 获取预算预警
// @Summary 获取预算预警
// @Description 返回累计支出达到限额 90% 及以上的类别列表
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]service.CategoryWarning} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets/warnings [get]
func (h *BudgetHandler) Warnings(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	limits, err := listBudgetLimits(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询预算失败"))
		return
	}
	outcomes, err := listOutcomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	Success(c, service.CategoryWarnings(limits, outcomes))
}

// WithSpent 获取预算及已花费
// @Summary 获取预算及已花费
// @Description 返回每个预算在给定日期区间内的已花费金额，区间缺省为不限
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=[]service.BudgetWithSpent} "获取成功"
// @Failure 400 {object} Response "日期格式错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budgets/with-spent [get]
func (h *BudgetHandler) WithSpent(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	from, to, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	limits, err := listBudgetLimits(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询预算失败"))
		return
	}
	outcomes, err := listOutcomeTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}

	Success(c, service.BudgetsWithSpent(limits, outcomes, from, to))
}

// parseDateRange 解析可选的日期区间查询参数。
// 缺省开始日期取极早时间，缺省结束日期取极晚时间，相当于不限。
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	from := time.Date(1970, 1, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(9999, 12, 31, 23, 59, 59, 0, time.Local)

	if startStr != "" {
		t, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			return from, to, errDateFormat
		}
		from = t
	}
	if endStr != "" {
		t, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			return from, to, errDateFormat
		}
		to = t.Add(24*time.Hour - time.Second)
	}
	return from, to, nil
}
