package main

import (
	"os"

	wiivff "github.com/AndrewPiroli/WiiVFF"
	"github.com/AndrewPiroli/WiiVFF/internal/logger"
	"github.com/spf13/cobra"
)

// Flags shared by all subcommands.
var (
	showDeleted bool
	verbose     bool
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wiivff",
		Short: "list and extract the contents of Wii VFF save containers",
		Long: `wiivff decodes VFF container files, the FAT16-formatted virtual disk
images embedded in Wii system save data (such as the message board cdb.vff),
and lists or extracts their contents. Entries marked deleted but not yet
overwritten can be recovered with --show-deleted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&showDeleted, "show-deleted", false,
		"include entries marked deleted but not yet overwritten")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(createListCommand())
	rootCmd.AddCommand(createDumpCommand())

	return rootCmd
}

// openVolume opens a VFF image from the host filesystem. The caller owns
// closing the returned file.
func openVolume(path string) (*wiivff.Volume, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	vol, err := wiivff.Open(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if cluster, ok := vol.MirrorMismatch(); ok {
		logger.Logger().Warnf("FAT copies disagree starting at cluster %d, using the first copy", cluster)
	}
	return vol, f, nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Logger().Error(err)
		os.Exit(1)
	}
}
