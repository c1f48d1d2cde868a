package i18n

// 消息 ID
const (
	// ========== 代码生成 ==========
	ErrUnknownType       = "codegen.unknown_type"
	ErrUnknownClass      = "codegen.unknown_class"
	ErrUnknownMember     = "codegen.unknown_member"
	ErrUnknownVariable   = "codegen.unknown_variable"
	ErrStackMismatch     = "codegen.stack_mismatch"
	ErrUnsupportedNode   = "codegen.unsupported_node"
	ErrNoLoopTarget      = "codegen.no_loop_target"
	ErrUntypedExpression = "codegen.untyped_expression"
	ErrUndefinedLabel    = "codegen.undefined_label"

	// ========== 构建 ==========
	ErrReadInput    = "build.read_input"
	ErrDecodeInput  = "build.decode_input"
	ErrLoadConfig   = "build.load_config"
	ErrPrepareOut   = "build.prepare_output"
	ErrWriteUnit    = "build.write_unit"
	ErrClassFailed  = "build.class_failed"
	ErrBuildAborted = "build.aborted"
	ErrReservedName = "build.reserved_name"
	ErrConfigExists = "build.config_exists"
	ErrSaveConfig   = "build.save_config"

	// ========== 提示 ==========
	HintUpstreamBug  = "hint.upstream_bug"
	HintCheckConfig  = "hint.check_config"
	HintCheckInput   = "hint.check_input"
	HintOutputAccess = "hint.output_access"
	HintRenameClass  = "hint.rename_class"

	// ========== 说明 ==========
	NoteUnitSkipped = "note.unit_skipped"

	// ========== 命令行 ==========
	CLIUsage     = "cli.usage"
	CLIVersion   = "cli.version"
	CLIBuildDone = "cli.build_done"
	CLIFailed    = "cli.failed"
	CLIMissing   = "cli.missing_input"
	CLIInitDone  = "cli.init_done"
)
