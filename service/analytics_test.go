package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestBucketKey(t *testing.T) {
	d := date(2024, time.March, 5)

	assert.Equal(t, "2024-03-05", BucketKey(d, "day"))
	assert.Equal(t, "2024-03", BucketKey(d, "month"))
	assert.Equal(t, "2024", BucketKey(d, "year"))

	// 大小写不敏感
	assert.Equal(t, "2024-03", BucketKey(d, "Month"))
	assert.Equal(t, "2024", BucketKey(d, "YEAR"))

	// 未识别的粒度回退到按天
	assert.Equal(t, "2024-03-05", BucketKey(d, "week"))
	assert.Equal(t, "2024-03-05", BucketKey(d, ""))
}

func TestBucketKey_LexicographicIsChronologic(t *testing.T) {
	// 定宽格式保证字典序即时间序，包括补零的月/日
	earlier := date(2024, time.September, 30)
	later := date(2024, time.October, 1)

	for _, groupBy := range []string{"day", "month", "year"} {
		a := BucketKey(earlier, groupBy)
		b := BucketKey(later, groupBy)
		assert.LessOrEqual(t, a, b, "groupBy=%s", groupBy)
	}
}

func TestSumByCategory(t *testing.T) {
	txs := []Transaction{
		{CategoryID: 1, CategoryName: "餐饮", Amount: -40, Date: date(2024, time.January, 10)},
		{CategoryID: 1, CategoryName: "餐饮", Amount: -50, Date: date(2024, time.January, 20)},
		{CategoryID: 2, CategoryName: "住房", Amount: -500, Date: date(2024, time.January, 15)},
		{CategoryID: 3, CategoryName: "工资", Amount: 3000, Date: date(2024, time.February, 1)}, // 窗口外
	}
	from, to := date(2024, time.January, 1), date(2024, time.January, 31)

	result := SumByCategory(txs, from, to)
	assert.Equal(t, map[string]float64{"餐饮": 90, "住房": 500}, result)
}

func TestSumByCategory_UsesMagnitudes(t *testing.T) {
	// 无论输入符号如何，汇总结果不会出现负数
	txs := []Transaction{
		{CategoryName: "餐饮", Amount: -40, Date: date(2024, time.January, 1)},
		{CategoryName: "餐饮", Amount: 15, Date: date(2024, time.January, 2)},
		{CategoryName: "其他", Amount: 0, Date: date(2024, time.January, 3)},
	}
	result := SumByCategory(txs, date(2024, time.January, 1), date(2024, time.January, 31))
	for name, total := range result {
		assert.GreaterOrEqual(t, total, 0.0, "category %s", name)
	}
	assert.Equal(t, 55.0, result["餐饮"])
	assert.Equal(t, 0.0, result["其他"])
}

func TestSumByCategory_InclusiveBounds(t *testing.T) {
	txs := []Transaction{
		{CategoryName: "餐饮", Amount: -10, Date: date(2024, time.January, 1)},
		{CategoryName: "餐饮", Amount: -20, Date: date(2024, time.January, 31)},
		{CategoryName: "餐饮", Amount: -40, Date: date(2024, time.February, 1)},
	}
	result := SumByCategory(txs, date(2024, time.January, 1), date(2024, time.January, 31))
	assert.Equal(t, 30.0, result["餐饮"])
}

func TestSumByCategory_EmptyAndInvertedRange(t *testing.T) {
	txs := []Transaction{
		{CategoryName: "餐饮", Amount: -10, Date: date(2024, time.January, 5)},
	}

	// 无匹配返回空 map 而不是 nil 错误
	result := SumByCategory(nil, date(2024, time.January, 1), date(2024, time.January, 31))
	assert.Empty(t, result)

	// from > to 时不匹配任何记录
	result = SumByCategory(txs, date(2024, time.February, 1), date(2024, time.January, 1))
	assert.Empty(t, result)
}

func TestTotalSpentForCategory(t *testing.T) {
	txs := []Transaction{
		{CategoryID: 1, Amount: -40, Date: date(2024, time.January, 10)},
		{CategoryID: 1, Amount: -50, Date: date(2024, time.March, 10)},
		{CategoryID: 2, Amount: -500, Date: date(2024, time.January, 15)},
	}

	// 不限日期，按ID汇总绝对值
	assert.Equal(t, 90.0, TotalSpentForCategory(txs, 1))
	assert.Equal(t, 500.0, TotalSpentForCategory(txs, 2))
	assert.Equal(t, 0.0, TotalSpentForCategory(txs, 99))

	// 窗口变体
	spent := TotalSpentForCategoryBetween(txs, 1, date(2024, time.January, 1), date(2024, time.January, 31))
	assert.Equal(t, 40.0, spent)
}

func TestBuildSeries_Alignment(t *testing.T) {
	incomes := []Transaction{
		{Amount: 3000, Date: date(2024, time.January, 5)},
		{Amount: 200, Date: date(2024, time.March, 1)},
	}
	outcomes := []Transaction{
		{Amount: -100, Date: date(2024, time.January, 10)},
		{Amount: -250, Date: date(2024, time.February, 20)},
	}

	series := BuildSeries(incomes, outcomes, date(2024, time.January, 1), date(2024, time.December, 31), "month")

	// 三个序列等长且一一对齐，单侧缺失的桶补 0
	require.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, series.Labels)
	require.Len(t, series.Incomes, len(series.Labels))
	require.Len(t, series.Outcomes, len(series.Labels))
	assert.Equal(t, []float64{3000, 0, 200}, series.Incomes)
	assert.Equal(t, []float64{-100, -250, 0}, series.Outcomes)
}

func TestBuildSeries_SignedSums(t *testing.T) {
	// 与 SumByCategory 不同，图表序列保留符号
	outcomes := []Transaction{
		{Amount: -40, Date: date(2024, time.January, 1)},
		{Amount: -50, Date: date(2024, time.January, 2)},
	}
	series := BuildSeries(nil, outcomes, date(2024, time.January, 1), date(2024, time.January, 31), "month")
	require.Equal(t, []string{"2024-01"}, series.Labels)
	assert.Equal(t, []float64{-90}, series.Outcomes)
	assert.Equal(t, []float64{0}, series.Incomes)
}

func TestBuildSeries_ChronologicalLabels(t *testing.T) {
	var incomes, outcomes []Transaction
	for d := 1; d <= 28; d += 3 {
		incomes = append(incomes, Transaction{Amount: 10, Date: date(2024, time.February, d)})
		outcomes = append(outcomes, Transaction{Amount: -5, Date: date(2023, time.December, d)})
	}

	for _, groupBy := range []string{"day", "month", "year"} {
		series := BuildSeries(incomes, outcomes, date(2023, time.January, 1), date(2024, time.December, 31), groupBy)
		for i := 1; i < len(series.Labels); i++ {
			assert.Less(t, series.Labels[i-1], series.Labels[i], "groupBy=%s", groupBy)
		}
	}
}

func TestBuildSeries_Empty(t *testing.T) {
	series := BuildSeries(nil, nil, date(2024, time.January, 1), date(2024, time.December, 31), "day")
	assert.Empty(t, series.Labels)
	assert.Empty(t, series.Incomes)
	assert.Empty(t, series.Outcomes)
}

func TestTopSpending(t *testing.T) {
	outcomes := []Transaction{
		{CategoryName: "餐饮", Amount: -40, Date: date(2024, time.January, 10)},
		{CategoryName: "住房", Amount: -500, Date: date(2024, time.January, 15)},
		{CategoryName: "餐饮", Amount: -50, Date: date(2024, time.January, 20)},
		{CategoryName: "交通", Amount: -120, Date: date(2024, time.January, 5)},
	}
	from, to := date(2024, time.January, 1), date(2024, time.January, 31)

	result := TopSpending(outcomes, from, to, 5)
	require.Len(t, result, 3)
	assert.Equal(t, CategoryTotal{Category: "住房", Total: 500}, result[0])
	assert.Equal(t, CategoryTotal{Category: "交通", Total: 120}, result[1])
	assert.Equal(t, CategoryTotal{Category: "餐饮", Total: 90}, result[2])

	// 降序性质
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Total, result[i].Total)
	}
}

func TestTopSpending_Truncation(t *testing.T) {
	var outcomes []Transaction
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, name := range names {
		outcomes = append(outcomes, Transaction{
			CategoryName: name,
			Amount:       float64(-(i + 1) * 10),
			Date:         date(2024, time.January, i+1),
		})
	}

	result := TopSpending(outcomes, date(2024, time.January, 1), date(2024, time.January, 31), 5)
	require.Len(t, result, 5)
	assert.Equal(t, "G", result[0].Category)
	assert.Equal(t, 70.0, result[0].Total)
}

func TestTopSpending_StableTieBreak(t *testing.T) {
	// 总额并列时按类别在输入中首次出现的顺序
	outcomes := []Transaction{
		{CategoryName: "娱乐", Amount: -100, Date: date(2024, time.January, 1)},
		{CategoryName: "购物", Amount: -100, Date: date(2024, time.January, 2)},
		{CategoryName: "餐饮", Amount: -100, Date: date(2024, time.January, 3)},
	}
	result := TopSpending(outcomes, date(2024, time.January, 1), date(2024, time.January, 31), 5)
	require.Len(t, result, 3)
	assert.Equal(t, "娱乐", result[0].Category)
	assert.Equal(t, "购物", result[1].Category)
	assert.Equal(t, "餐饮", result[2].Category)
}

func TestSummary(t *testing.T) {
	incomes := []Transaction{
		{Amount: 3000, Date: date(2024, time.January, 1)},
		{Amount: 500, Date: date(2024, time.February, 1)},
	}
	outcomes := []Transaction{
		{Amount: -590, Date: date(2024, time.January, 15)},
		{Amount: -210, Date: date(2024, time.March, 10)},
	}
	limits := []BudgetLimit{
		{CategoryID: 1, LimitAmount: 100},
		{CategoryID: 2, LimitAmount: 500},
	}

	s := Summary(incomes, outcomes, limits)
	assert.Equal(t, 3500.0, s.Income)
	assert.Equal(t, -800.0, s.Outcome)
	assert.Equal(t, 600.0, s.Limit)

	// 净值不变式：budget == income + outcome，严格相等
	assert.Equal(t, s.Income+s.Outcome, s.Budget)
	assert.Equal(t, 2700.0, s.Budget)
}

func TestSummary_Empty(t *testing.T) {
	s := Summary(nil, nil, nil)
	assert.Equal(t, SummaryTotals{}, s)
}
