package main

import (
	"fmt"
	"os"

	wiivff "github.com/AndrewPiroli/WiiVFF"
	"github.com/AndrewPiroli/WiiVFF/internal/logger"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var onlyPath string

// createDumpCommand creates the dump subcommand
func createDumpCommand() *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump [flags] VFF_FILE DEST_DIR",
		Short: "extract the contents of a VFF container to a directory",
		Long: `Dump mirrors the container's directory structure under DEST_DIR and
writes every file's reconstructed bytes. With --show-deleted, deleted
entries are recovered as far as their cluster chains still allow; entries
whose chains are no longer recoverable are skipped with a warning. A dump
that fails partway keeps the files already written.`,
		Args: cobra.ExactArgs(2),
		RunE: executeDump,
	}

	dumpCmd.Flags().StringVar(&onlyPath, "only", "",
		"extract a single entry by its path inside the container (e.g. /SUBDIR/SAVE.DAT)")

	return dumpCmd
}

// executeDump handles the dump command execution logic
func executeDump(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	vol, f, err := openVolume(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	destRoot := args[1]
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return fmt.Errorf("creating destination %s: %w", destRoot, err)
	}
	dest := afero.NewBasePathFs(afero.NewOsFs(), destRoot)

	if onlyPath != "" {
		return dumpSingle(vol, dest, destRoot)
	}

	// Walk once without payload reads to size the progress bar.
	listing, err := vol.List(wiivff.ListOptions{ShowDeleted: showDeleted})
	if err != nil {
		return err
	}
	if listing.SkippedLongNames > 0 {
		log.Warnf("skipped %d long filename entries (unsupported)", listing.SkippedLongNames)
	}
	total := 0
	for _, row := range listing.Rows {
		if row.Status == "live" || row.Status == "deleted" {
			total++
		}
	}

	bar := progressbar.Default(int64(total), "dumping")
	result, err := vol.Dump(dest, wiivff.DumpOptions{
		ShowDeleted: showDeleted,
		Progress: func(path string) {
			_ = bar.Add(1)
		},
	})
	_ = bar.Finish()

	for _, skipped := range result.Skipped {
		log.Warnf("skipped %s: cluster chain is no longer recoverable", skipped)
	}
	if err != nil {
		return fmt.Errorf("dump aborted: %w (files already written were kept in %s)", err, destRoot)
	}

	log.Infof("wrote %d files to %s", result.Files, destRoot)
	return nil
}

func dumpSingle(vol *wiivff.Volume, dest afero.Fs, destRoot string) error {
	log := logger.Logger()

	ent, err := vol.Lookup(onlyPath, showDeleted)
	if err != nil {
		return err
	}
	if ent.IsDir() {
		return fmt.Errorf("%s is a directory, --only extracts files", onlyPath)
	}

	content, err := vol.ReadFile(ent)
	if err != nil {
		return err
	}
	if content.Partial {
		log.Warnf("%s: recovered %d of %d declared bytes", onlyPath, len(content.Data), ent.Size)
	}

	if err := afero.WriteFile(dest, ent.Name, content.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ent.Name, err)
	}
	log.Infof("wrote %s/%s (%d bytes)", destRoot, ent.Name, len(content.Data))
	return nil
}
