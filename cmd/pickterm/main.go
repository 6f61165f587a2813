package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pickterm/internal/gmail"
	"pickterm/internal/logging"
	"pickterm/internal/model"
	"pickterm/internal/roster"
	"pickterm/internal/store"
	"pickterm/internal/tui"
)

var (
	dbPath     string
	rosterPath string
	debug      bool

	fromGmail   bool
	maxMessages int64

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pickterm",
	Short: "Pick email recipients, grouped by domain",
	Long: `pickterm is a two-panel recipient picker for the terminal.

The left panel lists available candidates grouped by email domain, the
right panel the recipients you have selected. Search either panel, expand
domain groups, and move recipients one at a time or a whole domain at once.

The candidate roster comes from the local database (see "pickterm import")
or from a YAML file given with --roster, which is watched for changes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := configDir()
		if err != nil {
			return err
		}
		logger, err = logging.New(dir, debug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPicker,
}

var importCmd = &cobra.Command{
	Use:   "import [FILE]",
	Short: "Import a roster into the local database",
	Long: `Loads candidate recipients into the roster database, replacing
whatever was imported before.

With FILE, reads a YAML roster. With --gmail, collects the distinct sender
addresses from your INBOX instead (requires client_secret.json in the
config dir).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pickterm"), nil
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pickterm.db"), nil
}

func runPicker(cmd *cobra.Command, args []string) error {
	var src roster.Source
	var watcher *roster.Watcher

	if rosterPath != "" {
		src = roster.FileSource{Path: rosterPath}
		w, err := roster.Watch(rosterPath)
		if err != nil {
			logger.Warn("roster watch unavailable", zap.Error(err))
		} else {
			watcher = w
			defer watcher.Close()
		}
	} else {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		db, err := store.NewRosterStore(path)
		if err != nil {
			return fmt.Errorf("open roster db: %w", err)
		}
		defer db.Close()
		src = roster.StoreSource{Store: db}
	}

	appModel := tui.NewAppModel(src, logger)
	p := tea.NewProgram(&appModel, tea.WithAltScreen())

	if watcher != nil {
		go func() {
			for range watcher.Events() {
				p.Send(tui.RosterChangedMsg{})
			}
		}()
	}

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	if m, ok := finalModel.(*tui.AppModel); ok && m.Err != nil {
		return m.Err
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var recs []model.RawRecipient
	var source string
	switch {
	case fromGmail:
		dir, err := configDir()
		if err != nil {
			return err
		}
		svc, err := gmail.NewService(ctx, dir)
		if err != nil {
			return err
		}
		recs, err = gmail.FetchSenders(ctx, svc, maxMessages)
		if err != nil {
			return fmt.Errorf("fetch senders: %w", err)
		}
		source = "gmail"
	case len(args) == 1:
		var err error
		recs, err = roster.LoadFile(args[0])
		if err != nil {
			return err
		}
		source = "file:" + args[0]
	default:
		return errors.New("pass a roster FILE or --gmail")
	}

	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	db, err := store.NewRosterStore(path)
	if err != nil {
		return fmt.Errorf("open roster db: %w", err)
	}
	defer db.Close()

	if err := db.ReplaceRoster(ctx, recs, source); err != nil {
		return fmt.Errorf("store roster: %w", err)
	}
	logger.Info("roster imported", zap.Int("records", len(recs)), zap.String("source", source))
	fmt.Printf("Imported %d recipients from %s\n", len(recs), source)
	return nil
}

func main() {
	rootCmd.Flags().StringVar(&rosterPath, "roster", "", "YAML roster file to load and watch (bypasses the db)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the roster database (default ~/.config/pickterm/pickterm.db)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to the config dir")
	importCmd.Flags().BoolVar(&fromGmail, "gmail", false, "import distinct INBOX senders via the Gmail API")
	importCmd.Flags().Int64Var(&maxMessages, "max-messages", 2000, "cap on INBOX messages scanned with --gmail")
	rootCmd.AddCommand(importCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
