package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install AI assistant rule documents into your project"
	MsgInstallShort    = "Install rules for a project type, language, and framework"
	MsgListShort       = "List available rules in the catalog"
	MsgListLong        = "List displays the project types, languages, and frameworks the rules repository offers.\nWith --type and --language it shows the files an install would copy."
	MsgStatusShort     = "Show the state of installed rules"
	MsgShowShort       = "Render a rule document in the terminal"
	MsgUpdateShort     = "Refresh the cached rules repository"
	MsgInitShort       = "Write a starter .cursor-rules.toml"
	MsgUninstallShort  = "Remove installed rules"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgConfigCreated = "Created %s\n"
	MsgConfigExists  = "%s already exists, use --force to overwrite\n"
)
