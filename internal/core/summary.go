package core

// Summary holds the income/expense/balance totals for a set of transactions.
type Summary struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// Summarize totals a transaction set. It is order-independent, exact
// (integer cents), and returns the zero Summary for empty input. By
// construction Balance = Income - Expense.
func Summarize(transactions []Transaction) Summary {
	var s Summary
	for _, t := range transactions {
		switch t.Type {
		case Income:
			s.Income.Cents += t.Amount.Cents
		case Expense:
			s.Expense.Cents += t.Amount.Cents
		}
	}
	s.Balance.Cents = s.Income.Cents - s.Expense.Cents
	return s
}

// CategoryBreakdown accumulates expense amounts per category label. Labels
// match case-sensitively; income transactions are ignored and categories
// absent from the input are absent from the result.
func CategoryBreakdown(transactions []Transaction) map[string]Money {
	byCategory := make(map[string]Money)
	for _, t := range transactions {
		if t.Type != Expense {
			continue
		}
		m := byCategory[t.Category]
		m.Cents += t.Amount.Cents
		byCategory[t.Category] = m
	}
	return byCategory
}
