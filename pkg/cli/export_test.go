package cli

// Exported for testing
var (
	EnvFileArg           = envFileArg
	LoadEnvFile          = loadEnvFile
	ParseReminderOffsets = parseReminderOffsets
	GetIndexConfig       = getIndexConfig
	NewTerminalSink      = newTerminalSink
	ResultError          = resultError
	ClaimCriteria        = claimCriteria
)

const DefaultEnvFile = defaultEnvFile
