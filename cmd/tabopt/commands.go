package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/tabopt-go/pkg/tabopt"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/models"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/output"
	"github.com/ukaji3/tabopt-go/pkg/tabopt/store"
)

func newImportCmd() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import [extraction.json|workbook.xlsx]",
		Short: "Start a session from an extraction result or workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options()
			if err != nil {
				return err
			}
			result, err := tabopt.Load(args[0], opts)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				if replace {
					if err := st.Delete(ctx, sessionName); err != nil && !errors.Is(err, store.ErrSessionNotFound) {
						return err
					}
				}
				if err := st.Create(ctx, sessionName, result.Tables, result.Warnings); err != nil {
					return err
				}
				for _, w := range result.Warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d tables into session %q\n", len(result.Tables), sessionName)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing session with the same name")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "List optimization suggestions for the current tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(sess *tabopt.Session) (bool, error) {
				return false, printJSON(cmd, sess.Analyze())
			})
		},
	}
}

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply [suggestion-id]",
		Short: "Apply a suggestion from the current analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(sess *tabopt.Session) (bool, error) {
				change, err := sess.ApplyByID(args[0])
				if err != nil {
					return false, fmt.Errorf("%w: %s (run analyze for current ids)", err, args[0])
				}
				return true, printJSON(cmd, summarize(change))
			})
		},
	}
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo [change-id]",
		Short: "Undo a change and every change after it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(sess *tabopt.Session) (bool, error) {
				if !sess.Undo(args[0]) {
					fmt.Fprintf(cmd.ErrOrStderr(), "no change with id %q\n", args[0])
					return false, nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored %d tables\n", len(sess.Tables()))
				return true, nil
			})
		},
	}
}

func newUndoAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo-all",
		Short: "Undo every change of the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(sess *tabopt.Session) (bool, error) {
				if !sess.UndoAll() {
					fmt.Fprintln(cmd.ErrOrStderr(), "nothing to undo")
					return false, nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored %d tables\n", len(sess.Tables()))
				return true, nil
			})
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List applied changes, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(sess *tabopt.Session) (bool, error) {
				changes := sess.History()
				out := make([]changeSummary, 0, len(changes))
				for _, c := range changes {
					out = append(out, summarize(c))
				}
				return false, printJSON(cmd, out)
			})
		},
	}
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the current tables as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(sess *tabopt.Session) (bool, error) {
				return false, printJSON(cmd, sess.Tables())
			})
		},
	}
}

func newExportCmd() *cobra.Command {
	var (
		format     string
		outputPath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current tables as json, xlsx or csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				return fmt.Errorf("--output is required")
			}
			return withSession(cmd, func(sess *tabopt.Session) (bool, error) {
				return false, export(sess.Tables(), format, outputPath)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "Export format: json, xlsx, csv")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (json, xlsx) or directory (csv)")
	return cmd
}

func export(tables []models.Table, format, path string) error {
	switch format {
	case "json":
		data, err := output.ToJSON(tables, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	case "xlsx":
		if err := output.SaveXLSX(path, tables); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	case "csv":
		if _, err := output.WriteCSVDir(path, tables); err != nil {
			return fmt.Errorf("failed to write csv files: %w", err)
		}
	default:
		return fmt.Errorf("invalid format: %s (must be json, xlsx, or csv)", format)
	}
	return nil
}

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st *store.Store) error {
				sums, err := st.List(ctx)
				if err != nil {
					return err
				}
				if sums == nil {
					sums = []store.Summary{}
				}
				return printJSON(cmd, sums)
			})
		},
	}
}

// changeSummary is an AppliedChange without its table snapshot.
type changeSummary struct {
	ID                 string                `json:"id"`
	Type               models.SuggestionType `json:"type"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	Timestamp          time.Time             `json:"timestamp"`
	TablesBeforeCount  int                   `json:"tables_before_count"`
	TablesAfterCount   int                   `json:"tables_after_count"`
	AffectedTableNames []string              `json:"affected_table_names"`
}

func summarize(c models.AppliedChange) changeSummary {
	return changeSummary{
		ID:                 c.ID,
		Type:               c.Type,
		Title:              c.Title,
		Description:        c.Description,
		Timestamp:          c.Timestamp,
		TablesBeforeCount:  c.TablesBeforeCount,
		TablesAfterCount:   c.TablesAfterCount,
		AffectedTableNames: c.AffectedTableNames,
	}
}
