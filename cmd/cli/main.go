package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"github.com/amirasaad/balancebook/infra/initializer"
	"github.com/amirasaad/balancebook/pkg/app"
	"github.com/amirasaad/balancebook/pkg/config"
	"github.com/amirasaad/balancebook/pkg/dto"
	transactionsvc "github.com/amirasaad/balancebook/pkg/service/transaction"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <username> <email>")
	fmt.Println("  open <user_id> [initial_balance]")
	fmt.Println("  close <user_id> <account_number>")
	fmt.Println("  balance <user_id> <account_number>")
	fmt.Println("  use <user_id> <account_number> <amount>")
	fmt.Println("  cancel <transaction_id> <account_number> <amount>")
	fmt.Println("  tx <transaction_id>")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}
	application := app.New(deps, cfg)

	ctx := context.Background()
	if err := dispatch(ctx, application, os.Args[1], os.Args[2:]); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, a *app.App, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: register <username> <email>")
		}
		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		u, err := a.UserService.Register(ctx, dto.UserCreate{
			Username: args[0],
			Email:    args[1],
			Password: string(password),
		})
		if err != nil {
			return fmt.Errorf("failed to register user: %w", err)
		}
		color.Green("User registered: %s (%s)", u.Username, u.ID)
	case "open":
		if len(args) < 1 {
			return fmt.Errorf("usage: open <user_id> [initial_balance]")
		}
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		var initial int64
		if len(args) > 1 {
			initial, err = strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid initial balance: %w", err)
			}
		}
		acct, err := a.AccountService.CreateAccount(ctx, dto.AccountCreate{
			UserID:         userID,
			InitialBalance: initial,
		})
		if err != nil {
			return fmt.Errorf("failed to open account: %w", err)
		}
		color.Green("Account opened: %s, balance %d", acct.Number, acct.Balance)
	case "close":
		if len(args) < 2 {
			return fmt.Errorf("usage: close <user_id> <account_number>")
		}
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		acct, err := a.AccountService.CloseAccount(ctx, userID, args[1])
		if err != nil {
			return fmt.Errorf("failed to close account: %w", err)
		}
		color.Green("Account closed: %s", acct.Number)
	case "balance":
		if len(args) < 2 {
			return fmt.Errorf("usage: balance <user_id> <account_number>")
		}
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		balance, err := a.AccountService.GetBalance(ctx, userID, args[1])
		if err != nil {
			return fmt.Errorf("failed to fetch balance: %w", err)
		}
		color.Green("Account %s balance: %d", args[1], balance)
	case "use":
		if len(args) < 3 {
			return fmt.Errorf("usage: use <user_id> <account_number> <amount>")
		}
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		amount, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		tx, err := a.TransactionService.UseBalance(ctx, transactionsvc.UseBalanceRequest{
			UserID:        userID,
			AccountNumber: args[1],
			Amount:        amount,
		})
		if err != nil {
			return fmt.Errorf("failed to use balance: %w", err)
		}
		color.Green("Used %d from %s. Transaction %s, balance %d",
			tx.Amount, tx.AccountNumber, tx.TransactionID, tx.BalanceSnapshot)
	case "cancel":
		if len(args) < 3 {
			return fmt.Errorf("usage: cancel <transaction_id> <account_number> <amount>")
		}
		amount, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		tx, err := a.TransactionService.CancelBalance(ctx, transactionsvc.CancelBalanceRequest{
			TransactionID: args[0],
			AccountNumber: args[1],
			Amount:        amount,
		})
		if err != nil {
			return fmt.Errorf("failed to cancel balance use: %w", err)
		}
		color.Green("Canceled %d on %s. Transaction %s, balance %d",
			tx.Amount, tx.AccountNumber, tx.TransactionID, tx.BalanceSnapshot)
	case "tx":
		if len(args) < 1 {
			return fmt.Errorf("usage: tx <transaction_id>")
		}
		tx, err := a.TransactionService.QueryTransaction(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to query transaction: %w", err)
		}
		color.Green("Transaction %s: %s/%s amount %d on %s at %s",
			tx.TransactionID, tx.Type, tx.Result, tx.Amount, tx.AccountNumber, tx.TransactedAt)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}
