package models

import (
	"time"

	"gorm.io/gorm"
)

// Income 收入记录模型，金额约定为正数
type Income struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	CategoryID  uint           `json:"category_id" gorm:"index;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description string         `json:"description" gorm:"size:255"`
	Date        time.Time      `json:"date" gorm:"type:date;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
	Category    Category       `json:"category" gorm:"foreignKey:CategoryID"`
}

// TableName 设置表名
func (Income) TableName() string {
	return "incomes"
}
