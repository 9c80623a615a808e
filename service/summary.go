package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"artha/models"
)

// Budget adherence states.
const (
	AdherenceOver  = "over"
	AdherenceUnder = "under"
)

// CategoryTotal is the accumulated spend for one category.
type CategoryTotal struct {
	Category string
	Total    float64
}

// Adherence compares actual spend against the configured budget for the
// same category.
type Adherence struct {
	Category   string
	Status     string
	Difference float64
	Budget     float64
	Spent      float64
}

// FinancialData is the aggregated view of one calendar month.
type FinancialData struct {
	IncomeTotal  float64
	ExpenseTotal float64
	NetBalance   float64
	// Categories holds spend categories sorted by total, highest first.
	Categories []CategoryTotal
	// Budgets maps lower-cased category names to budgeted amounts.
	Budgets map[string]float64
	// Adherence lists budget comparisons in Categories order.
	Adherence []Adherence
}

// AggregateFinancialData partitions transactions into income (amount > 0)
// and spend (amount <= 0, magnitude accumulated per category) and compares
// spend against the month's budgets.
func AggregateFinancialData(expenses []models.Expense, budgets []models.Budget) FinancialData {
	data := FinancialData{Budgets: make(map[string]float64)}

	totals := make(map[string]float64)
	var order []string
	for _, exp := range expenses {
		if exp.Amount > 0 {
			data.IncomeTotal += exp.Amount
			continue
		}
		spent := -exp.Amount
		data.ExpenseTotal += spent
		category := exp.Category
		if category == "" {
			category = "Uncategorized"
		}
		if _, ok := totals[category]; !ok {
			order = append(order, category)
		}
		totals[category] += spent
	}
	data.NetBalance = data.IncomeTotal - data.ExpenseTotal

	for _, category := range order {
		data.Categories = append(data.Categories, CategoryTotal{Category: category, Total: totals[category]})
	}
	sort.SliceStable(data.Categories, func(i, j int) bool {
		return data.Categories[i].Total > data.Categories[j].Total
	})

	for _, bgt := range budgets {
		data.Budgets[strings.ToLower(bgt.Category)] = bgt.Amount
	}

	for _, ct := range data.Categories {
		budgetAmount, ok := data.Budgets[strings.ToLower(ct.Category)]
		if !ok {
			continue
		}
		a := Adherence{Category: ct.Category, Budget: budgetAmount, Spent: ct.Total}
		if ct.Total > budgetAmount {
			a.Status = AdherenceOver
			a.Difference = ct.Total - budgetAmount
		} else {
			a.Status = AdherenceUnder
			a.Difference = budgetAmount - ct.Total
		}
		data.Adherence = append(data.Adherence, a)
	}

	return data
}

// MonthlySummary renders the deterministic natural-language paragraph for
// one month of transactions and budgets.
func MonthlySummary(expenses []models.Expense, budgets []models.Budget, month time.Month, year int) string {
	data := AggregateFinancialData(expenses, budgets)

	// Months with no data short-circuit to a fixed prompt.
	if len(expenses) == 0 && len(budgets) == 0 {
		return fmt.Sprintf("No financial activity or budgets recorded for %s %d. "+
			"Start tracking your expenses and setting budgets to see your financial summary!", month, year)
	}
	if len(expenses) == 0 {
		return fmt.Sprintf("You set budgets for %d categories this month, but no expenses were recorded. "+
			"Start adding expenses to track your progress!", len(data.Budgets))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your financial overview for %s %d: ", month, year)

	if data.IncomeTotal > 0 {
		fmt.Fprintf(&b, "You earned a total of ₹%.2f. ", data.IncomeTotal)
	} else {
		b.WriteString("You had no recorded income. ")
	}

	if data.ExpenseTotal > 0 {
		fmt.Fprintf(&b, "Your total expenses were ₹%.2f. ", data.ExpenseTotal)
	} else {
		b.WriteString("You had no recorded expenses. ")
	}

	fmt.Fprintf(&b, "Your net balance is ₹%.2f. ", data.NetBalance)

	// Call out the top one or two spend categories.
	if len(data.Categories) == 1 {
		fmt.Fprintf(&b, "Your highest spending was on %s (₹%.2f). ",
			data.Categories[0].Category, data.Categories[0].Total)
	} else if len(data.Categories) > 1 {
		fmt.Fprintf(&b, "Your top spending areas were %s (₹%.2f) and %s (₹%.2f). ",
			data.Categories[0].Category, data.Categories[0].Total,
			data.Categories[1].Category, data.Categories[1].Total)
	}

	var over, under []string
	for _, a := range data.Adherence {
		switch a.Status {
		case AdherenceOver:
			over = append(over, a.Category)
		case AdherenceUnder:
			under = append(under, a.Category)
		}
	}

	if len(over) > 0 {
		fmt.Fprintf(&b, "Be careful! You went over budget in %s. ", strings.Join(over, ", "))
	}
	if len(under) > 0 {
		fmt.Fprintf(&b, "Great job! You stayed under budget in %s. ", strings.Join(under, ", "))
	} else if len(over) == 0 && len(data.Adherence) > 0 {
		b.WriteString("You managed to stay within all your set budgets. ")
	}

	return strings.TrimSpace(b.String())
}
