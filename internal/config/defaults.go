package config

// DefaultExtensions is the default source-file allow-list. Markdown is
// always included regardless of this list.
var DefaultExtensions = []string{
	".c", ".cc", ".cpp", ".cs", ".csx", ".cxx",
	".go", ".h", ".hh", ".hpp", ".hs",
	".java", ".jl", ".js", ".json", ".jsx",
	".kt", ".m", ".mm",
	".php", ".pl", ".ps1", ".py",
	".r", ".rb", ".rs",
	".scala", ".sh", ".sql", ".swift",
	".toml", ".ts", ".tsx",
	".vue", ".yaml", ".yml", ".zig",
}

// DefaultIgnoreDirs are directory names never descended into.
var DefaultIgnoreDirs = []string{
	".git",
	".hg",
	".svn",
	".tox",
	".venv",
	".idea",
	".vscode",
	"__pycache__",
	"node_modules",
	"dist",
	"build",
	"target",
	"venv",
}

// DefaultIgnoreFiles are file names never included.
var DefaultIgnoreFiles = []string{
	".DS_Store",
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Extensions:  append([]string(nil), DefaultExtensions...),
			IgnoreDirs:  append([]string(nil), DefaultIgnoreDirs...),
			IgnoreFiles: append([]string(nil), DefaultIgnoreFiles...),
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// DefaultTheme returns the default picker theme.
func DefaultTheme() map[string]string {
	return map[string]string{
		"background":       "black",
		"foreground":       "white",
		"selection":        "blue",
		"status":           "green",
		"error":            "red",
		"search_highlight": "yellow",
	}
}
