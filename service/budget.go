package service

import "time"

// CategoryWarning 某类别支出达到限额 90% 以上时产生的预警
type CategoryWarning struct {
	CategoryName string  `json:"category_name"`
	Spent        float64 `json:"spent"`
	LimitAmount  float64 `json:"limit_amount"`
	PercentUsed  float64 `json:"percent_used"`
}

// BudgetWithSpent 预算限额及其对应的已花费金额，用于预算页展示
type BudgetWithSpent struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Spent    float64 `json:"spent"`
}

// dedupLimits 同一 (用户, 类别) 只取首次出现的限额，之后的重复条目忽略。
// 这是既定策略：上层保证唯一性，这里不视为错误。
func dedupLimits(limits []BudgetLimit) []BudgetLimit {
	seen := make(map[uint]bool, len(limits))
	result := limits[:0:0]
	for _, l := range limits {
		if seen[l.CategoryID] {
			continue
		}
		seen[l.CategoryID] = true
		result = append(result, l)
	}
	return result
}

// CategoryWarnings 对每个限额计算全部时间内的支出绝对值，
// spent >= 0.9*limit 时产生预警。limit <= 0 时百分比记为 0。
// 结果顺序与输入限额顺序一致。
func CategoryWarnings(limits []BudgetLimit, outcomes []Transaction) []CategoryWarning {
	warnings := []CategoryWarning{}
	for _, l := range dedupLimits(limits) {
		spent := TotalSpentForCategory(outcomes, l.CategoryID)
		if spent < 0.9*l.LimitAmount {
			continue
		}
		percent := 0.0
		if l.LimitAmount > 0 {
			percent = spent / l.LimitAmount * 100
		}
		warnings = append(warnings, CategoryWarning{
			CategoryName: l.CategoryName,
			Spent:        spent,
			LimitAmount:  l.LimitAmount,
			PercentUsed:  percent,
		})
	}
	return warnings
}

// BudgetsWithSpent 返回每个限额在 [from, to] 内的已花费金额。
// 这是展示列表而非过滤：所有关联了类别的限额都会出现，
// 没有关联类别的限额跳过。
func BudgetsWithSpent(limits []BudgetLimit, outcomes []Transaction, from, to time.Time) []BudgetWithSpent {
	result := []BudgetWithSpent{}
	for _, l := range dedupLimits(limits) {
		if l.CategoryID == 0 {
			continue
		}
		spent := TotalSpentForCategoryBetween(outcomes, l.CategoryID, from, to)
		result = append(result, BudgetWithSpent{
			Category: l.CategoryName,
			Limit:    l.LimitAmount,
			Spent:    spent,
		})
	}
	return result
}
