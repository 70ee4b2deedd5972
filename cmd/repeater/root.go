package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"repeater/internal/config"
	"repeater/internal/store"
)

var (
	configPath string
	cfg        config.Config
	st         *store.SQLiteStore
	dbPath     string
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "repeater",
	Short: "A terminal-native spaced-repetition study tool",
	Long: `repeater turns Markdown decks into a spaced-repetition queue.

Write cards directly in your notes with Q:/A: blocks, C: cloze blocks, or
inline Q :: A lines, then index and study them from the command line.`,
	PersistentPreRunE:  openStore,
	PersistentPostRunE: closeStore,
}

// Execute runs rootCmd, whose child commands are registered in init. Called by
// main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to config file (default: $XDG_CONFIG_HOME/repeater/config.yml)")

	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newStudyCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newRestoreCmd())
}

func openStore(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}

	dataDir, err = config.DataDir(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	dbPath = filepath.Join(dataDir, "cards.db")
	log.Printf("opening card store at %s", dbPath)
	st, err = store.Open(dbPath)
	return err
}

func closeStore(cmd *cobra.Command, args []string) error {
	if st == nil {
		return nil
	}
	return st.Close()
}

// deckPaths returns args if given, else the configured deck paths.
func deckPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Decks) == 0 {
		return nil, fmt.Errorf("no deck paths given and none configured; pass paths or set \"decks\" in the config file")
	}
	return cfg.Decks, nil
}
