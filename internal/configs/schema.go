package configs

// Schema constrains every configuration file. Unknown fields are rejected.
const Schema = `
keywords?: [...{
	lexeme: string & =~"^[^ \t\n]+$"
	tag:    "id" | "type" | "symbol" | "compare" | "bool" | "none"
}]
defaults?:         bool
log_level?:        "debug" | "info" | "warn" | "error"
strict_redeclare?: bool
`
