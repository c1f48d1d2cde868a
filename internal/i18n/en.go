package i18n

var messagesEN = map[string]string{
	// ========== Codegen ==========
	ErrUnknownType:       "cannot encode type %s",
	ErrUnknownClass:      "unknown class '%s'",
	ErrUnknownMember:     "class '%s' has no member '%s'",
	ErrUnknownVariable:   "unknown variable '%s'",
	ErrStackMismatch:     "inconsistent operand stack at %s: %d vs %d",
	ErrUnsupportedNode:   "unsupported node %s",
	ErrNoLoopTarget:      "no enclosing target for '%s'",
	ErrUntypedExpression: "cannot determine type of '%s'",
	ErrUndefinedLabel:    "jump to undefined label '%s'",

	// ========== Build ==========
	ErrReadInput:    "failed to read input '%s'",
	ErrDecodeInput:  "failed to decode program '%s'",
	ErrLoadConfig:   "failed to load config '%s'",
	ErrPrepareOut:   "failed to prepare output directory '%s'",
	ErrWriteUnit:    "failed to write unit '%s'",
	ErrClassFailed:  "code generation failed for class '%s'",
	ErrBuildAborted: "build aborted",
	ErrReservedName: "class name '%s' is reserved for a runtime helper",
	ErrConfigExists: "config file '%s' already exists",
	ErrSaveConfig:   "failed to write config '%s'",

	// ========== Hints ==========
	HintUpstreamBug:  "the input passed semantic analysis but is inconsistent; this is a bug in an earlier phase",
	HintCheckConfig:  "check the syntax of sophia.toml",
	HintCheckInput:   "the input must be a type-checked program in JSON form",
	HintOutputAccess: "check that the output directory is writable",
	HintRenameClass:  "rename the class, or set build.runtime = false and supply your own helpers",

	// ========== Notes ==========
	NoteUnitSkipped: "no unit was written for class '%s'; other classes are unaffected",

	// ========== CLI ==========
	CLIUsage:     "Usage: sophiac [options] <program.json>\n       sophiac -init [dir]",
	CLIVersion:   "sophiac %s",
	CLIBuildDone: "%d unit(s) written, %d unchanged, output in %s",
	CLIFailed:    "build failed",
	CLIMissing:   "no input file",
	CLIInitDone:  "created %s",
}
