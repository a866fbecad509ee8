package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expensetracker/internal/cli"
	"expensetracker/internal/core"
	"expensetracker/internal/events"
	"expensetracker/internal/services"
)

func main() {
	var (
		from     = flag.String("from", "", "start date (YYYY-MM-DD) for the category breakdown")
		to       = flag.String("to", "", "end date (YYYY-MM-DD) for the category breakdown")
		add      = flag.String("add", "", "record an expense with this name (requires -amount and -category)")
		amount   = flag.String("amount", "", "amount for -add, decimal such as 12.50")
		category = flag.String("category", "", "category name for -add")
		date     = flag.String("date", "", "date (YYYY-MM-DD) for -add, defaults to today")
	)
	flag.Parse()

	cli.LoadEnvFile()

	logger := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := cli.InitStore(ctx, logger, cfg)

	var eventsClient *events.Client
	if cfg.AMQPURL != "" {
		var err error
		eventsClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Event stream unavailable, continuing without it", "error", err)
		}
	}

	tracker := services.NewTracker(db, eventsClient)
	defer func() {
		if err := tracker.Close(); err != nil {
			logger.Error("Close failed", "error", err)
		}
	}()

	if *add != "" {
		if err := addExpense(ctx, tracker, *add, *amount, *category, *date); err != nil {
			logger.Error("Add expense failed", "error", err)
			os.Exit(1)
		}
	}

	if err := printOverview(ctx, tracker); err != nil {
		logger.Error("Overview failed", "error", err)
		os.Exit(1)
	}

	if *from != "" && *to != "" {
		if err := printBreakdown(ctx, tracker, *from, *to); err != nil {
			logger.Error("Category breakdown failed", "error", err)
			os.Exit(1)
		}
	}
}

// addExpense records one expense from command-line input. The amount is a
// decimal string (dot or comma separator) converted to cents before it ever
// touches the store; the category is matched by name against the existing
// categories.
func addExpense(ctx context.Context, tracker *services.Tracker, name, amount, categoryName, dateStr string) error {
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		return fmt.Errorf("parse -amount %q: %w", amount, err)
	}

	if categoryName == "" {
		return fmt.Errorf("-category is required with -add")
	}
	categories, err := tracker.Categories().List(ctx)
	if err != nil {
		return err
	}
	var categoryID int64
	for _, c := range categories {
		if c.Name == categoryName {
			categoryID = c.ID
			break
		}
	}
	if categoryID == 0 {
		return fmt.Errorf("unknown category %q", categoryName)
	}

	now := time.Now()
	date := core.NewDate(now.Year(), int(now.Month()), now.Day())
	if dateStr != "" {
		if date, err = core.ParseDate(dateStr); err != nil {
			return fmt.Errorf("parse -date: %w", err)
		}
	}

	expense, err := tracker.AddExpense(ctx, core.Expense{
		Name:       name,
		CategoryID: categoryID,
		Amount:     core.Money{Cents: cents},
		Date:       date,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %q: %s in %s on %s\n", expense.Name, expense.Amount, categoryName, expense.Date)
	return nil
}

func printOverview(ctx context.Context, tracker *services.Tracker) error {
	overview, err := tracker.Overview(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Income:   %10.2f\n", overview.TotalIncome)
	fmt.Printf("Expenses: %10.2f\n", overview.TotalExpenses)
	fmt.Printf("Balance:  %10.2f\n", overview.Balance)

	if len(overview.ByTypeAndCategory) > 0 {
		fmt.Println("\nBy type and category:")
		for _, row := range overview.ByTypeAndCategory {
			fmt.Printf("  %-8s %-24s %10.2f\n", row.Type, row.Category, row.Total)
		}
	}

	if len(overview.RecentTransactions) > 0 {
		fmt.Println("\nRecent transactions:")
		for _, tx := range overview.RecentTransactions {
			fmt.Printf("  %s  %-8s %-24s %10.2f\n", tx.Date, tx.Type, tx.Category, tx.Amount)
		}
	}

	return nil
}

func printBreakdown(ctx context.Context, tracker *services.Tracker, from, to string) error {
	start, err := core.ParseDate(from)
	if err != nil {
		return fmt.Errorf("parse -from: %w", err)
	}
	end, err := core.ParseDate(to)
	if err != nil {
		return fmt.Errorf("parse -to: %w", err)
	}

	totals, err := tracker.Reports().ExpensesByCategory(ctx, start, end)
	if err != nil {
		return err
	}

	fmt.Printf("\nExpenses by category (%s to %s):\n", start, end)
	var sum core.Money
	for _, ct := range totals {
		fmt.Printf("  %-24s %10s\n", ct.Category, ct.Total)
		sum = sum.Add(ct.Total)
	}
	fmt.Printf("  %-24s %10s\n", "Total", sum)

	return nil
}
