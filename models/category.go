package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 收支类别，收入和支出共用同一张类别表
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Description string         `json:"description" gorm:"size:255"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}

// 默认类别常量
const (
	CategoryFood      = "餐饮"
	CategoryTransport = "交通"
	CategoryShopping  = "购物"
	CategoryHousing   = "住房"
	CategorySalary    = "工资"
	CategoryOther     = "其他"
)

// GetDefaultCategories 获取默认类别
func GetDefaultCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryHousing,
		CategorySalary,
		CategoryOther,
	}
}
