// Command analyzer computes statistics over a folder of series JSON files.
package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/actuallystonmai/series-analyzer/internal/domain"
	"github.com/actuallystonmai/series-analyzer/internal/loader"
	"github.com/actuallystonmai/series-analyzer/internal/logger"
	"github.com/actuallystonmai/series-analyzer/internal/stats"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "analyzer",
		Short:         "Aggregate series JSON files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logLevel, "")
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
	root.AddCommand(newStatsCmd(), newTopCmd())
	return root
}

type statsOptions struct {
	dir     string
	by      string
	workers int
	xmlPath string
	json    bool
}

func newStatsCmd() *cobra.Command {
	var opts statsOptions
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count records per attribute value",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runStats(cmd.OutOrStdout(), opts); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
				return err
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.dir, "dir", "", "folder with *.json files")
	f.StringVar(&opts.by, "by", "", "attribute to group by (title, genre, seasons, rating, year, finished)")
	f.IntVar(&opts.workers, "workers", loader.DefaultWorkers, "parallel file parsers")
	f.StringVar(&opts.xmlPath, "xml", "", "also write the XML document to this file")
	f.BoolVar(&opts.json, "json", false, "print JSON instead of text")
	cmd.MarkFlagRequired("dir")
	cmd.MarkFlagRequired("by")
	return cmd
}

func runStats(out io.Writer, opts statsOptions) error {
	if opts.workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", opts.workers)
	}
	attr, err := stats.ParseAttribute(opts.by)
	if err != nil {
		return err
	}
	records, err := loader.LoadFolder(opts.dir, opts.workers)
	if err != nil {
		return err
	}
	logger.Log.Debugf("loaded %d records from %s", len(records), opts.dir)

	table, err := stats.Aggregate(records, string(attr))
	if err != nil {
		return err
	}
	logger.Log.Debugf("counted %d values in %d groups", table.Total(), len(table))
	doc := stats.NewDocument(attr, table)

	if opts.xmlPath != "" {
		if err := writeXMLFile(opts.xmlPath, doc); err != nil {
			return err
		}
	}
	if opts.json {
		return doc.WriteJSON(out)
	}
	return table.WriteText(out)
}

func writeXMLFile(path string, doc stats.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := doc.WriteXML(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func newTopCmd() *cobra.Command {
	var (
		dir     string
		n       int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the best-rated series",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loader.LoadFolder(dir, workers)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
				return err
			}
			for _, s := range topRated(records, n) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", stats.FormatRating(s.Rating), s.Title, s.Year)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "folder with *.json files")
	cmd.Flags().IntVarP(&n, "n", "n", 5, "number of series")
	cmd.Flags().IntVar(&workers, "workers", loader.DefaultWorkers, "parallel file parsers")
	cmd.MarkFlagRequired("dir")
	return cmd
}

// topRated orders by rating descending, keeping file order for ties.
func topRated(records []domain.Series, n int) []domain.Series {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.Series) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return sorted[:min(max(n, 0), len(sorted))]
}
