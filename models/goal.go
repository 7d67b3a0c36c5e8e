package models

import (
	"time"

	"gorm.io/gorm"
)

// 目标类型常量
const (
	GoalTypeSavings  = "Savings"
	GoalTypeDebt     = "Debt"
	GoalTypeMortgage = "Mortgage"
)

// Goal 财务目标模型，例如攒一笔旅行基金或偿还一笔贷款
type Goal struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	Type          string         `json:"type" gorm:"size:20;not null"` // Savings/Debt/Mortgage
	Name          string         `json:"name" gorm:"size:100;not null"`
	TargetAmount  float64        `json:"target_amount" gorm:"type:decimal(10,2);not null"`
	CurrentAmount float64        `json:"current_amount" gorm:"type:decimal(10,2);default:0"`
	StartDate     time.Time      `json:"start_date" gorm:"type:date"`
	EndDate       time.Time      `json:"end_date" gorm:"type:date"`
	GoalCategory  string         `json:"goal_category" gorm:"size:50"` // 目标标签，如 旅行、教育
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
	User          User           `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Goal) TableName() string {
	return "goals"
}

// IsValidGoalType 检查目标类型是否合法
func IsValidGoalType(t string) bool {
	switch t {
	case GoalTypeSavings, GoalTypeDebt, GoalTypeMortgage:
		return true
	}
	return false
}
