package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pavelanni/wordquiz/internal/export"
	"github.com/pavelanni/wordquiz/internal/importer"
	"github.com/pavelanni/wordquiz/internal/model"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add WORD MEANING",
		Short: "Add words; separate several with commas",
		Example: `  wordquiz add apple リンゴ
  wordquiz add "apple, banana" "リンゴ, バナナ"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			pairs, err := model.ParseBatch(args[0], args[1])
			if err != nil {
				return err
			}
			entries, err := db.AddWords(pairs)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "added %d: %s = %s\n", e.ID, e.Word, e.Meaning)
			}
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Import word,meaning pairs from CSV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			im := importer.New(db)
			for _, path := range args {
				n, err := importFile(im, path)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: imported %d words\n", path, n)
			}
			return nil
		},
	}
}

func importFile(im *importer.Importer, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return im.Import(f)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			words, err := db.ListWords()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tWORD\tMEANING")
			for _, e := range words {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", e.ID, e.Word, e.Meaning)
			}
			return tw.Flush()
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete words by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid word id %q", a)
				}
				ids = append(ids, id)
			}

			_, _, db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			for _, id := range ids {
				if err := db.DeleteWord(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			}
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent quiz results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, cfg, db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			limit := cfg.HistoryLimit
			if cmd.Flags().Changed("limit") {
				limit = v.GetInt("limit")
			}
			results, err := db.RecentResults(limit)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "Number of results (defaults to --history-limit)")
	return cmd
}

func printHistory(w io.Writer, results []model.ResultRecord) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "no results yet")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYED\tMODE\tSCORE\tPERCENT")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%.1f%%\n",
			r.PlayedAt.Local().Format(time.DateTime), r.Mode, r.Correct, r.Total, r.Percent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	sum := model.Summarize(results)
	_, err := fmt.Fprintf(w, "average over %d results: %.1f%%\n", sum.Count, sum.AveragePercent)
	return err
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export words and results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, cfg, db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			format, err := export.ParseFormat(v.GetString("format"))
			if err != nil {
				return err
			}
			snap, err := db.Snapshot(cfg.HistoryLimit)
			if err != nil {
				return fmt.Errorf("snapshot: %w", err)
			}

			outPath := v.GetString("output")
			var w io.Writer
			if outPath == "" || outPath == "-" {
				w = cmd.OutOrStdout()
			} else {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				w = f
			}
			if err := export.Write(w, format, snap); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringP("format", "f", string(export.FormatCSV), "Output format (csv, json, xlsx)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	return cmd
}
