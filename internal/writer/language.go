package writer

import "strings"

// languageHints maps file extensions to the info string used on fenced
// code blocks. Unknown extensions get an untagged fence.
var languageHints = map[string]string{
	".c":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "csharp",
	".csx":   "csharp",
	".cxx":   "cpp",
	".go":    "go",
	".h":     "c",
	".hh":    "cpp",
	".hpp":   "cpp",
	".hs":    "haskell",
	".java":  "java",
	".jl":    "julia",
	".js":    "javascript",
	".json":  "json",
	".jsx":   "jsx",
	".kt":    "kotlin",
	".m":     "objectivec",
	".mm":    "objectivec",
	".php":   "php",
	".pl":    "perl",
	".ps1":   "powershell",
	".py":    "python",
	".r":     "r",
	".rb":    "ruby",
	".rs":    "rust",
	".scala": "scala",
	".sh":    "bash",
	".sql":   "sql",
	".swift": "swift",
	".toml":  "toml",
	".ts":    "typescript",
	".tsx":   "tsx",
	".vue":   "vue",
	".yaml":  "yaml",
	".yml":   "yaml",
	".zig":   "zig",
}

// LanguageHint returns the fence info string for a file extension. The
// extension is compared case-insensitively; unknown extensions yield "".
func LanguageHint(ext string) string {
	return languageHints[strings.ToLower(ext)]
}
