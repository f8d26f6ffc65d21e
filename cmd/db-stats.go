package cmd

import (
	"fmt"
	"os"

	"github.com/ccoveille/go-safecast"
	"github.com/dustin/go-humanize"
	"github.com/jon4hz/admindash/internal/config"
	"github.com/jon4hz/admindash/internal/database"
	"github.com/mergestat/timediff"
	"github.com/spf13/cobra"
)

var dbStatsCmd = &cobra.Command{
	Use:   "db-stats",
	Short: "Show database statistics",
	Long:  `Display statistics about the devices and preferences kept in the preference database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint: errcheck

		stats, err := db.GetPreferenceStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}

		fmt.Println("Database Statistics:")
		if info, err := os.Stat(cfg.Database.Path); err == nil {
			if size, err := safecast.ToUint64(info.Size()); err == nil {
				fmt.Printf("Database Size: %s\n", humanize.Bytes(size))
			}
		}
		fmt.Printf("Devices: %s\n", humanize.Comma(stats.Devices))
		fmt.Printf("Authenticated Devices: %s\n", humanize.Comma(stats.AuthenticatedDevices))
		fmt.Printf("Dark Mode: %s\n", humanize.Comma(stats.DarkDevices))
		fmt.Printf("Light Mode: %s\n", humanize.Comma(stats.LightDevices))

		if stats.LastWrite != nil {
			fmt.Printf("Last Write: %s\n", timediff.TimeDiff(*stats.LastWrite))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbStatsCmd)
}
