package api

import (
	"math"
	"strconv"
	"time"

	"github.com/Katsiatyna/BudgetTracker/database"
	"github.com/Katsiatyna/BudgetTracker/middleware"
	"github.com/Katsiatyna/BudgetTracker/models"

	"github.com/gin-gonic/gin"
)

// OutcomeHandler 支出处理器
type OutcomeHandler struct{}

func NewOutcomeHandler() *OutcomeHandler {
	return &OutcomeHandler{}
}

type CreateOutcomeRequest struct {
	Amount      float64 `json:"amount" binding:"required" example:"45.50"`
	CategoryID  uint    `json:"category_id" binding:"required" example:"1"`
	Date        string  `json:"date" binding:"required" example:"2024-01-15"`
	Description string  `json:"description" binding:"omitempty,max=255" example:"午餐"`
}

type UpdateOutcomeRequest struct {
	Amount      *float64 `json:"amount"`
	CategoryID  uint     `json:"category_id"`
	Date        string   `json:"date"`
	Description *string  `json:"description"`
}

type OutcomeListRequest struct {
	Page       int    `form:"page" example:"1"`
	PageSize   int    `form:"page_size" example:"10"`
	CategoryID uint   `form:"category_id"`
	StartDate  string `form:"start_date" example:"2024-01-01"`
	EndDate    string `form:"end_date" example:"2024-12-31"`
}

// Create 创建支出
// @Summary 创建支出
// @Description 创建一条新的支出记录。无论客户端传正传负，金额统一存为 -abs(amount)
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOutcomeRequest true "支出信息"
// @Success 200 {object} Response{data=models.Outcome} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/outcomes [post]
func (h *OutcomeHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req CreateOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	t, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}
	var cat models.Category
	if err := database.DB.First(&cat, req.CategoryID).Error; err != nil {
		BadRequest(c, "类别不存在")
		return
	}
	out := models.Outcome{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      -math.Abs(req.Amount), // 支出统一为负
		Date:        t,
		Description: req.Description,
	}
	if err := database.DB.Create(&out).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建支出失败"))
		return
	}
	out.Category = cat
	SuccessWithMessage(c, "创建成功", out)
}

// List 获取支出列表
// @Summary 获取支出列表
// @Description 获取当前用户的支出列表，支持分页、类别与日期范围筛选
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param category_id query int false "类别ID筛选"
// @Param start_date query string false "开始日期 (2024-01-01)"
// @Param end_date query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Outcome}} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/outcomes [get]
func (h *OutcomeHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req OutcomeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	query := database.DB.Model(&models.Outcome{}).Where("user_id = ?", userID)
	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}
	if req.StartDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if req.EndDate != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local); err == nil {
			t = t.Add(24*time.Hour - time.Second)
			query = query.Where("date <= ?", t)
		}
	}

	var total int64
	query.Count(&total)
	var list []models.Outcome
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Category").Order("date DESC").Offset(offset).Limit(req.PageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: req.Page, PageSize: req.PageSize, List: list})
}

// Get 获取单条支出
// @Summary 获取单条支出
// @Description 根据ID获取支出详情
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response{data=models.Outcome} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/outcomes/{id} [get]
func (h *OutcomeHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var out models.Outcome
	if err := database.DB.Preload("Category").Where("id = ? AND user_id = ?", id, userID).First(&out).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	Success(c, out)
}

// Update 更新支出
// @Summary 更新支出
// @Description 更新指定的支出记录，金额保持负数约定
// @Tags 支出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Param request body UpdateOutcomeRequest true "支出信息"
// @Success 200 {object} Response{data=models.Outcome} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/outcomes/{id} [put]
func (h *OutcomeHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var out models.Outcome
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&out).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	var req UpdateOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	updates := map[string]interface{}{}
	if req.Amount != nil {
		updates["amount"] = -math.Abs(*req.Amount)
	}
	if req.CategoryID > 0 {
		var cat models.Category
		if err := database.DB.First(&cat, req.CategoryID).Error; err != nil {
			BadRequest(c, "类别不存在")
			return
		}
		updates["category_id"] = req.CategoryID
	}
	if req.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		updates["date"] = t
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if err := database.DB.Model(&out).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.Preload("Category").First(&out, out.ID)
	SuccessWithMessage(c, "更新成功", out)
}

// Delete 删除支出
// @Summary 删除支出
// @Description 删除指定的支出记录（软删除）
// @Tags 支出
// @Produce json
// @Security BearerAuth
// @Param id path int true "支出ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/outcomes/{id} [delete]
func (h *OutcomeHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var out models.Outcome
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&out).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	if err := database.DB.Delete(&out).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
