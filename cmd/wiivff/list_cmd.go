package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	wiivff "github.com/AndrewPiroli/WiiVFF"
	"github.com/AndrewPiroli/WiiVFF/internal/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output format command flags
var outputFormat string = "text"

// createListCommand creates the list subcommand
func createListCommand() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list [flags] VFF_FILE",
		Short: "list the contents of a VFF container",
		Long: `List walks the container's directory tree depth-first and prints one
row per entry. With --show-deleted, deleted entries are included and rows
whose cluster chains were partially reclaimed are flagged as partial.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "text", "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unsupported --format %q (supported: text, json, yaml)", outputFormat)
			}
		},
		RunE: executeList,
	}

	listCmd.Flags().StringVar(&outputFormat, "format", "text",
		"Specify the output format for the listing")

	return listCmd
}

// executeList handles the list command execution logic
func executeList(cmd *cobra.Command, args []string) error {
	vol, f, err := openVolume(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	listing, err := vol.List(wiivff.ListOptions{ShowDeleted: showDeleted})
	if err != nil {
		return err
	}
	if listing.SkippedLongNames > 0 {
		logger.Logger().Warnf("skipped %d long filename entries (unsupported)", listing.SkippedLongNames)
	}

	return writeListing(cmd.OutOrStdout(), listing, outputFormat)
}

func writeListing(w io.Writer, listing *wiivff.Listing, format string) error {
	switch format {
	case "text":
		printListing(w, listing)
		return nil

	case "json":
		b, err := json.MarshalIndent(listing.Rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, _ = fmt.Fprintln(w, string(b))
		return nil

	case "yaml":
		b, err := yaml.Marshal(listing.Rows)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, _ = fmt.Fprint(w, string(b))
		return nil

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func printListing(w io.Writer, listing *wiivff.Listing) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSIZE\tSTATUS\tATTRS\tMODIFIED\tNOTES")
	for _, row := range listing.Rows {
		modified := "-"
		if !row.Modified.IsZero() {
			modified = row.Modified.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(tw, "%s\t%#06x\t%s\t%s\t%s\t%s\n",
			row.Path,
			row.Size,
			row.Status,
			row.Attributes,
			modified,
			rowNotes(row),
		)
	}
	_ = tw.Flush()
}

func rowNotes(row wiivff.Row) string {
	switch {
	case row.Partial && row.Issue != "":
		return "partial; " + row.Issue
	case row.Partial:
		return "partial"
	case row.Issue != "":
		return row.Issue
	default:
		return "-"
	}
}
