package core

import "testing"

func tx(typ TransactionType, category string, cents int64) Transaction {
	return Transaction{
		Amount:   Money{Cents: cents},
		Type:     typ,
		Category: category,
		Date:     NewDate(2025, 1, 1),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Balance.Cents != 0 {
		t.Fatalf("empty input should yield all-zero summary, got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	transactions := []Transaction{
		tx(Income, "salary", 100_00),
		tx(Expense, "food", 10_00),
		tx(Expense, "food", 5_00),
		tx(Income, "gift", 25_50),
	}
	s := Summarize(transactions)
	if s.Income.Cents != 125_50 {
		t.Fatalf("income expected 12550, got %d", s.Income.Cents)
	}
	if s.Expense.Cents != 15_00 {
		t.Fatalf("expense expected 1500, got %d", s.Expense.Cents)
	}
	if s.Balance.Cents != s.Income.Cents-s.Expense.Cents {
		t.Fatalf("balance must equal income-expense, got %d", s.Balance.Cents)
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	a := []Transaction{tx(Income, "a", 100), tx(Expense, "b", 30), tx(Expense, "c", 20)}
	b := []Transaction{tx(Expense, "c", 20), tx(Income, "a", 100), tx(Expense, "b", 30)}
	if Summarize(a) != Summarize(b) {
		t.Fatalf("summarize must be order-independent")
	}
}

func TestCategoryBreakdown(t *testing.T) {
	transactions := []Transaction{
		tx(Expense, "food", 10_00),
		tx(Expense, "food", 5_00),
		tx(Income, "salary", 100_00),
	}
	got := CategoryBreakdown(transactions)
	if len(got) != 1 {
		t.Fatalf("income categories must be excluded, got %v", got)
	}
	if got["food"].Cents != 15_00 {
		t.Fatalf("food expected 1500, got %d", got["food"].Cents)
	}
}

func TestCategoryBreakdownCaseSensitive(t *testing.T) {
	transactions := []Transaction{
		tx(Expense, "Food", 100),
		tx(Expense, "food", 200),
	}
	got := CategoryBreakdown(transactions)
	if len(got) != 2 || got["Food"].Cents != 100 || got["food"].Cents != 200 {
		t.Fatalf("labels must match case-sensitively, got %v", got)
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	if got := CategoryBreakdown(nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}
