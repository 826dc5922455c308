package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/resep/pkg/config"
	"github.com/zfogg/resep/pkg/formatter"
	"github.com/zfogg/resep/pkg/output"
)

// configKeys are the settings shown by config show
var configKeys = []string{
	"api.base_url",
	"api.timeout",
	"catalog.page_size",
	"fetch.concurrency",
	"storage.dir",
	"share.base_url",
	"output.format",
	"log.level",
	"log.file",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		record := make(map[string]interface{}, len(configKeys)+1)
		for _, key := range configKeys {
			record[key] = config.GetString(key)
		}
		record["config_dir"] = config.GetConfigDir()
		return output.PrintRecord("Configuration", record)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting to the user config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(args[0], args[1]); err != nil {
			return err
		}
		formatter.PrintSuccess("Saved %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
