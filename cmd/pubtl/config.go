package main

import (
	"github.com/spf13/cobra"

	"github.com/pubtimeline/pubtl/internal/config"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect configuration.

Configuration is read from $XDG_CONFIG_HOME/pubtl/config.yml (or --config).
Every key can be overridden with a PUBTL_<KEY> environment variable, also read
from a .env file in the working directory.

Keys:
  researcher    Researcher whose author position is located
  rankings_dir  Directory with CORE<year>.csv tables
  rankings_db   SQLite ranking cache
  editions      Edition years to load (default: every table found)
  dblp_url      DBLP base URL
  dblp_rate     DBLP requests per second
  log_level     trace, debug, info, warn, error, disabled
  log_format    console or json`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// ConfigResponse is the response for config show.
type ConfigResponse struct {
	Path        string  `json:"path"`
	Researcher  string  `json:"researcher"`
	RankingsDir string  `json:"rankings_dir"`
	RankingsDB  string  `json:"rankings_db"`
	Editions    []int   `json:"editions"`
	DBLPURL     string  `json:"dblp_url,omitempty"`
	DBLPRate    float64 `json:"dblp_rate,omitempty"`
	LogLevel    string  `json:"log_level"`
	LogFormat   string  `json:"log_format"`
}

func newConfigResponse(path string, c *config.GlobalConfig) ConfigResponse {
	editions := c.Editions
	if editions == nil {
		editions = []int{}
	}
	return ConfigResponse{
		Path:        path,
		Researcher:  c.Researcher,
		RankingsDir: c.RankingsDir,
		RankingsDB:  c.RankingsDB,
		Editions:    editions,
		DBLPURL:     c.DBLPURL,
		DBLPRate:    c.DBLPRate,
		LogLevel:    c.LogLevel,
		LogFormat:   c.LogFormat,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.GlobalConfigPath()
	}
	resp := newConfigResponse(path, cfg)

	if humanOutput {
		outputHuman("config:       %s\n", resp.Path)
		outputHuman("researcher:   %s\n", resp.Researcher)
		outputHuman("rankings_dir: %s\n", resp.RankingsDir)
		outputHuman("rankings_db:  %s\n", resp.RankingsDB)
		outputHuman("editions:     %s\n", formatEditions(resp.Editions))
		outputHuman("dblp_url:     %s\n", resp.DBLPURL)
		outputHuman("dblp_rate:    %g\n", resp.DBLPRate)
		outputHuman("log_level:    %s\n", resp.LogLevel)
		outputHuman("log_format:   %s\n", resp.LogFormat)
		return nil
	}
	return outputJSON(resp)
}
