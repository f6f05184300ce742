// Package main provides the CLI entry point for tabopt.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/tabopt-go/pkg/tabopt"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/logging"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/optimizer"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/output"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/store"
)

var (
	dbPath       string
	sessionName  string
	keywordsPath string
	verbose      bool
	pretty       bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabopt",
		Short: "Review and optimize tables extracted from documents",
		Long: `tabopt finds extracted tables that share a structure or carry little data,
suggests merges and removals, and applies them with full undo history.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "tabopt.db", "SQLite database holding sessions")
	rootCmd.PersistentFlags().StringVarP(&sessionName, "session", "s", "default", "Session name")
	rootCmd.PersistentFlags().StringVar(&keywordsPath, "keywords", "", "JSON keyword file extending the classifier keywords")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		newImportCmd(),
		newAnalyzeCmd(),
		newApplyCmd(),
		newUndoCmd(),
		newUndoAllCmd(),
		newHistoryCmd(),
		newTablesCmd(),
		newExportCmd(),
		newSessionsCmd(),
	)
	return rootCmd
}

// options builds session options from the command-line flags.
func options() (tabopt.Options, error) {
	opts := tabopt.DefaultOptions()
	if keywordsPath == "" {
		return opts, nil
	}
	kw, err := optimizer.LoadKeywordsFile(keywordsPath, opts.Keywords)
	if err != nil {
		return opts, fmt.Errorf("failed to load keywords: %w", err)
	}
	opts.Keywords = kw
	return opts, nil
}

// withStore opens the session database for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store) error) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(cmd.Context(), st)
}

// withSession loads the selected session, runs fn, and saves the session when
// fn reports a change.
func withSession(cmd *cobra.Command, fn func(sess *tabopt.Session) (bool, error)) error {
	opts, err := options()
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		rec, err := st.Load(ctx, sessionName)
		if err != nil {
			return err
		}
		sess := tabopt.RestoreSession(rec.Tables, rec.Changes, opts)
		changed, err := fn(sess)
		if err != nil || !changed {
			return err
		}
		return st.Save(ctx, sessionName, sess.Tables(), sess.History())
	})
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
