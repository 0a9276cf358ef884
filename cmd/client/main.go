package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/ContactKeeper/internal/client/storage"
	"github.com/atinyakov/ContactKeeper/internal/config"
	"github.com/atinyakov/ContactKeeper/internal/logger"
	"github.com/atinyakov/ContactKeeper/internal/models"
	"github.com/atinyakov/ContactKeeper/internal/service"
)

var (
	version   string
	buildDate string
)

// accountRegistry is the part of storage.RemoteAccounts the shell needs.
type accountRegistry interface {
	service.AccountSource
	AddAccount(ctx context.Context, account models.AccountWithDataSet) error
}

// shell runs the interactive loop. The default account is resolved locally
// from the server's accounts and the local preference file.
type shell struct {
	in       *bufio.Scanner
	out      io.Writer
	accounts accountRegistry
	defaults *service.DefaultAccountService
}

func (s *shell) run(ctx context.Context) {
	for {
		fmt.Fprint(s.out, "contactkeeper> ")
		if !s.in.Scan() {
			return
		}
		args := strings.Fields(strings.TrimSpace(s.in.Text()))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Fprintln(s.out, "Available commands: help, list, add, default, use <name>, clear, exit")
		case "list":
			s.list(ctx)
		case "add":
			account, ok := storage.PromptForAccount(s.in, s.out)
			if !ok {
				fmt.Fprintln(s.out, "Account name is required")
				continue
			}
			if err := s.accounts.AddAccount(ctx, account); err != nil {
				fmt.Fprintln(s.out, "Failed to add account:", err)
				continue
			}
			fmt.Fprintln(s.out, "Account added")
		case "default":
			if account, ok := s.defaults.DefaultGoogleAccount(ctx); ok {
				fmt.Fprintf(s.out, "Default account: %s\n", account.Name)
			} else {
				fmt.Fprintln(s.out, "No Google accounts")
			}
		case "use":
			if len(args) < 2 {
				fmt.Fprintln(s.out, "Usage: use <name>")
				continue
			}
			account := models.NewAccountWithDataSet(args[1], models.GoogleAccountType)
			if err := s.defaults.SetDefaultAccount(ctx, account); err != nil {
				fmt.Fprintln(s.out, "Failed to save default:", err)
				continue
			}
			fmt.Fprintln(s.out, "Default account saved")
		case "clear":
			if err := s.defaults.ClearDefaultAccount(ctx); err != nil {
				fmt.Fprintln(s.out, "Failed to clear default:", err)
				continue
			}
			fmt.Fprintln(s.out, "Default account cleared")
		case "exit":
			fmt.Fprintln(s.out, "Bye")
			return
		default:
			fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func (s *shell) list(ctx context.Context) {
	accounts, err := s.accounts.AccountsByType(ctx, models.GoogleAccountType)
	if err != nil {
		fmt.Fprintln(s.out, "Failed to list accounts:", err)
		return
	}
	current, _ := s.defaults.ResolveFrom(ctx, accounts)
	fmt.Fprintln(s.out, "Google accounts:")
	for _, a := range accounts {
		marker := " "
		if a == current {
			marker = "*"
		}
		fmt.Fprintf(s.out, "%s %s\n", marker, a.Name)
	}
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL   string
		caFile    string
		prefsFile string
		prefKey   string
		logLevel  string
		showVer   bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&caFile, "ca", "", "path to CA cert for HTTPS servers")
	flag.StringVar(&prefsFile, "prefs", storage.DefaultPreferencesFile, "path to local preference file")
	flag.StringVar(&prefKey, "key", config.DefaultAccountKey, "default account preference key")
	flag.StringVar(&logLevel, "log", "error", "log level")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("ContactKeeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	lg := logger.New()
	if err := lg.Init(logLevel); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Log.Sync() }()

	client, err := storage.NewHTTPClient(caFile)
	if err != nil {
		log.Fatal(err)
	}
	prefs := storage.NewLocalPreferences(prefsFile)
	if err := prefs.Load(); err != nil {
		lg.Log.Warn("ignoring unreadable preference file", zap.String("path", prefsFile), zap.Error(err))
	}
	remote := &storage.RemoteAccounts{Client: client, BaseURL: baseURL}

	sh := &shell{
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
		accounts: remote,
		defaults: service.NewDefaultAccountService(remote, prefs, prefKey, lg.Log, nil),
	}
	sh.run(context.Background())
}
