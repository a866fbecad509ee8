package core

// CategoryTotal is an expense amount aggregated by category name.
type CategoryTotal struct {
	Category string
	Total    Money
}

// TypeCategoryTotal is a ledger amount aggregated by (type, category).
type TypeCategoryTotal struct {
	Type     TransactionType
	Category string
	Total    float64
}

// Overview is the aggregated read the UI renders on load.
type Overview struct {
	TotalIncome        float64
	TotalExpenses      float64
	Balance            float64
	ByTypeAndCategory  []TypeCategoryTotal
	RecentTransactions []Transaction
}
