package main

// Short messages (one-liners)
const (
	MsgRootShort       = "Build a hardlinked Data folder from a mod list"
	MsgBuildShort      = "Merge all enabled mods into the Data folder"
	MsgCheckShort      = "Show which mod provides a specific file"
	MsgGenConfigShort  = "Generate the default games.toml"
	MsgDocsShort       = "Show the moddeck manual"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgOutputAdjusted = "Note: Output path adjusted to: %s\n"
	MsgOutputExists   = "Data folder already exists: %s\n"
	MsgDeleteConfirm  = "Delete existing folder and create a new one?"
	MsgDeleteAborted  = "Aborted. Existing Data folder was not modified."
	MsgDeletingOutput = "Deleting existing Data folder..."
	MsgPluginsLinked  = "Plugins list symlinked."
	MsgPluginsSkipped = "No plugins.txt to link."
	MsgCachePreserved = "ShaderCache synced to overwrite folder (%d files)\n"
	MsgCacheRestored  = "ShaderCache copied to Data folder (%d files)\n"
	MsgCacheNone      = "No ShaderCache to sync"
	MsgConfigWritten  = "Wrote default game config to %s\n"
	MsgCheckNotFound  = "File not found in any enabled mod!"
	MsgCheckFoundIn   = "File found in %d mods:\n"
)
