package models

import (
	"time"

	"gorm.io/gorm"
)

// Budget 预算限额模型，每个 (用户, 类别) 最多一条生效限额
type Budget struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	CategoryID  uint           `json:"category_id" gorm:"index;not null"`
	LimitAmount float64        `json:"limit_amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
	Category    Category       `json:"category" gorm:"foreignKey:CategoryID"`
}

// TableName 设置表名
func (Budget) TableName() string {
	return "budgets"
}
