package config

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"mongo_uri":               "mongodb://localhost:27017",
		"database_name":           "nmdc",
		"schema_path":             "",
		"reference_report":        "references.tsv",
		"violation_report":        "violations.tsv",
		"connect_timeout_seconds": 5,
		"show_progress":           true,
		"omit_misplaced_column":   false,
	}
}
