package api

import (
	"strconv"
	"time"

	"github.com/Katsiatyna/BudgetTracker/database"
	"github.com/Katsiatyna/BudgetTracker/middleware"
	"github.com/Katsiatyna/BudgetTracker/models"

	"github.com/gin-gonic/gin"
)

// GoalHandler 理财目标处理器
type GoalHandler struct{}

func NewGoalHandler() *GoalHandler {
	return &GoalHandler{}
}

type CreateGoalRequest struct {
	Type         string  `json:"type" binding:"required" example:"Savings"`
	Name         string  `json:"name" binding:"required,min=1,max=100" example:"存一笔应急金"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0" example:"20000"`
	StartDate    string  `json:"start_date" binding:"required" example:"2024-01-01"`
	EndDate      string  `json:"end_date" binding:"required" example:"2024-12-31"`
	GoalCategory string  `json:"goal_category" binding:"omitempty,max=50"`
}

type UpdateGoalRequest struct {
	Name         string   `json:"name" binding:"omitempty,min=1,max=100"`
	TargetAmount *float64 `json:"target_amount"`
	EndDate      string   `json:"end_date"`
	GoalCategory *string  `json:"goal_category"`
}

type UpdateGoalProgressRequest struct {
	CurrentAmount float64 `json:"current_amount" binding:"required" example:"5000"`
}

// List 获取目标列表
// @Summary 获取理财目标列表
// @Description 获取当前用户的全部理财目标
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Goal} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var list []models.Goal
	if err := database.DB.Where("user_id = ?", userID).Order("end_date ASC, id ASC").Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}

// Create 创建目标
// @Summary 创建理财目标
// @Description 创建储蓄/还款/房贷目标，类型为 Savings、Debt 或 Mortgage
// @Tags 目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=models.Goal} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if !models.IsValidGoalType(req.Type) {
		BadRequest(c, "无效的目标类型，应为 Savings、Debt 或 Mortgage")
		return
	}
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
	if err != nil {
		BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
		return
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
	if err != nil {
		BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
		return
	}
	if end.Before(start) {
		BadRequest(c, "结束日期不能早于开始日期")
		return
	}

	goal := models.Goal{
		UserID:       userID,
		Type:         req.Type,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		StartDate:    start,
		EndDate:      end,
		GoalCategory: req.GoalCategory,
	}
	if err := database.DB.Create(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建目标失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", goal)
}

// Update 更新目标
// @Summary 更新理财目标
// @Description 更新指定目标的名称、目标金额、截止日期等
// @Tags 目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body UpdateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=models.Goal} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount <= 0 {
			BadRequest(c, "目标金额必须大于 0")
			return
		}
		updates["target_amount"] = *req.TargetAmount
	}
	if req.EndDate != "" {
		end, err := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
		if err != nil {
			BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
			return
		}
		updates["end_date"] = end
	}
	if req.GoalCategory != nil {
		updates["goal_category"] = *req.GoalCategory
	}
	if err := database.DB.Model(&goal).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&goal, goal.ID)
	SuccessWithMessage(c, "更新成功", goal)
}

// UpdateProgress 更新目标进度
// @Summary 更新目标进度
// @Description 更新指定目标的当前已完成金额
// @Tags 目标
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Param request body UpdateGoalProgressRequest true "进度信息"
// @Success 200 {object} Response{data=models.Goal} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/goals/{id}/progress [put]
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	var req UpdateGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if err := database.DB.Model(&goal).Update("current_amount", req.CurrentAmount).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&goal, goal.ID)
	SuccessWithMessage(c, "进度已更新", goal)
}

// Delete 删除目标
// @Summary 删除理财目标
// @Description 删除指定的理财目标（软删除）
// @Tags 目标
// @Produce json
// @Security BearerAuth
// @Param id path int true "目标ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var goal models.Goal
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	if err := database.DB.Delete(&goal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
