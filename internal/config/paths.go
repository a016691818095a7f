package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DataDirName is the directory name under XDG_DATA_HOME.
	DataDirName = "pubtl"
	// RankingsDirName holds the CORE<year>.csv tables.
	RankingsDirName = "rankings"
	// RankingsDBFile is the SQLite ranking cache.
	RankingsDBFile = "rankings.db"
)

// DataDir returns the pubtl data directory.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/pubtl.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DataDirName
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, DataDirName)
}

// DefaultRankingsDir returns the default ranking tables directory.
func DefaultRankingsDir() string {
	return filepath.Join(DataDir(), RankingsDirName)
}

// DefaultRankingsDB returns the default ranking cache path.
func DefaultRankingsDB() string {
	return filepath.Join(DataDir(), RankingsDBFile)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

// ValidateRankingsDir checks that the ranking tables directory exists.
func ValidateRankingsDir(path string) error {
	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("rankings directory does not exist: %s", expandedPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("rankings path is not a directory: %s", expandedPath)
	}
	return nil
}
