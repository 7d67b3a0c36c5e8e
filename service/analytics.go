package service

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Transaction 统一的收支流水视图，供聚合计算使用。
// 金额带符号：收入为正、支出为负，这是全局约定，在收支录入接口处统一保证。
type Transaction struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user_id"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category"`
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
}

// BudgetLimit 某用户在某类别上的预算限额视图
type BudgetLimit struct {
	UserID       uint    `json:"user_id"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category"`
	LimitAmount  float64 `json:"limit_amount"`
}

// CategoryTotal 按类别汇总的金额，用于饼图和排行
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// ChartSeries 折线/柱状图数据：labels 与两组数值一一对齐
type ChartSeries struct {
	Labels   []string  `json:"labels"`
	Incomes  []float64 `json:"incomes"`
	Outcomes []float64 `json:"outcomes"`
}

// SummaryTotals 总览数据。Budget = Income + Outcome（支出为负，相加即净值）
type SummaryTotals struct {
	Income  float64 `json:"income"`
	Outcome float64 `json:"outcome"`
	Budget  float64 `json:"budget"`
	Limit   float64 `json:"limit"`
}

// BucketKey 把日期映射为分组键，粒度为 day/month/year（不区分大小写）。
// 未识别的粒度按 day 处理。三种格式都是定宽、高位在前，
// 因此字典序排序即时间序排序。
func BucketKey(date time.Time, groupBy string) string {
	switch strings.ToLower(groupBy) {
	case "month":
		return date.Format("2006-01")
	case "year":
		return date.Format("2006")
	default:
		return date.Format("2006-01-02")
	}
}

// inRange 判断日期是否落在 [from, to] 闭区间内。from > to 时恒为 false。
func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}

// SumByCategory 在 [from, to] 范围内按类别名称汇总金额绝对值。
// 收入和支出的汇总都用绝对值，保证图表数值非负。
// 没有匹配记录时返回空 map。
func SumByCategory(txs []Transaction, from, to time.Time) map[string]float64 {
	result := make(map[string]float64)
	for _, tx := range txs {
		if !inRange(tx.Date, from, to) {
			continue
		}
		result[tx.CategoryName] += math.Abs(tx.Amount)
	}
	return result
}

// TotalSpentForCategory 汇总某个类别（按ID）的全部金额绝对值，不限日期
func TotalSpentForCategory(txs []Transaction, categoryID uint) float64 {
	var total float64
	for _, tx := range txs {
		if tx.CategoryID == categoryID {
			total += math.Abs(tx.Amount)
		}
	}
	return total
}

// TotalSpentForCategoryBetween 汇总某个类别（按ID）在 [from, to] 内的金额绝对值
func TotalSpentForCategoryBetween(txs []Transaction, categoryID uint, from, to time.Time) float64 {
	var total float64
	for _, tx := range txs {
		if tx.CategoryID == categoryID && inRange(tx.Date, from, to) {
			total += math.Abs(tx.Amount)
		}
	}
	return total
}

// BuildSeries 构建图表序列：按 BucketKey 分桶，对带符号金额求和，
// labels 为两侧桶键的有序并集，缺失一侧的桶补 0。
// 与 SumByCategory 不同，这里保留符号，折线图才能体现净流向。
func BuildSeries(incomes, outcomes []Transaction, from, to time.Time, groupBy string) ChartSeries {
	incomeMap := make(map[string]float64)
	outcomeMap := make(map[string]float64)

	for _, tx := range incomes {
		if !inRange(tx.Date, from, to) {
			continue
		}
		key := BucketKey(tx.Date, groupBy)
		incomeMap[key] += tx.Amount
	}
	for _, tx := range outcomes {
		if !inRange(tx.Date, from, to) {
			continue
		}
		key := BucketKey(tx.Date, groupBy)
		outcomeMap[key] += tx.Amount
	}

	labels := make([]string, 0, len(incomeMap)+len(outcomeMap))
	for key := range incomeMap {
		labels = append(labels, key)
	}
	for key := range outcomeMap {
		if _, ok := incomeMap[key]; !ok {
			labels = append(labels, key)
		}
	}
	sort.Strings(labels)

	series := ChartSeries{
		Labels:   labels,
		Incomes:  make([]float64, len(labels)),
		Outcomes: make([]float64, len(labels)),
	}
	for i, label := range labels {
		series.Incomes[i] = incomeMap[label]
		series.Outcomes[i] = outcomeMap[label]
	}
	return series
}

// TopSpending 返回 [from, to] 内支出金额最高的前 n 个类别，按总额降序。
// 并列时保持类别在输入中首次出现的顺序（稳定排序，不做二级字母序）。
func TopSpending(outcomes []Transaction, from, to time.Time, n int) []CategoryTotal {
	var totals []CategoryTotal
	index := make(map[string]int)

	for _, tx := range outcomes {
		if !inRange(tx.Date, from, to) {
			continue
		}
		i, ok := index[tx.CategoryName]
		if !ok {
			i = len(totals)
			index[tx.CategoryName] = i
			totals = append(totals, CategoryTotal{Category: tx.CategoryName})
		}
		totals[i].Total += math.Abs(tx.Amount)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})

	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// Summary 计算总览：收入总和、支出总和（为负）、净预算与限额总和。
// 不做日期过滤，需要窗口汇总时由调用方先过滤集合。
func Summary(incomes, outcomes []Transaction, limits []BudgetLimit) SummaryTotals {
	var s SummaryTotals
	for _, tx := range incomes {
		s.Income += tx.Amount
	}
	for _, tx := range outcomes {
		s.Outcome += tx.Amount
	}
	s.Budget = s.Income + s.Outcome
	for _, l := range limits {
		s.Limit += l.LimitAmount
	}
	return s
}
