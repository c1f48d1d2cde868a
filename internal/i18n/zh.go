package i18n

var messagesZH = map[string]string{
	// ========== 代码生成 ==========
	ErrUnknownType:       "无法编码类型 %s",
	ErrUnknownClass:      "未知的类 '%s'",
	ErrUnknownMember:     "类 '%s' 没有成员 '%s'",
	ErrUnknownVariable:   "未知的变量 '%s'",
	ErrStackMismatch:     "%s 处操作数栈深度不一致: %d 与 %d",
	ErrUnsupportedNode:   "不支持的节点 %s",
	ErrNoLoopTarget:      "'%s' 没有可跳转的目标",
	ErrUntypedExpression: "无法确定 '%s' 的类型",
	ErrUndefinedLabel:    "跳转到未定义的标签 '%s'",

	// ========== 构建 ==========
	ErrReadInput:    "读取输入文件 '%s' 失败",
	ErrDecodeInput:  "解码程序 '%s' 失败",
	ErrLoadConfig:   "加载配置文件 '%s' 失败",
	ErrPrepareOut:   "准备输出目录 '%s' 失败",
	ErrWriteUnit:    "写入编译单元 '%s' 失败",
	ErrClassFailed:  "类 '%s' 代码生成失败",
	ErrBuildAborted: "构建已中止",
	ErrReservedName: "类名 '%s' 已被运行时辅助类占用",
	ErrConfigExists: "配置文件 '%s' 已存在",
	ErrSaveConfig:   "写入配置文件 '%s' 失败",

	// ========== 提示 ==========
	HintUpstreamBug:  "输入通过了语义分析但内容不一致，这是前面阶段的缺陷",
	HintCheckConfig:  "检查 sophia.toml 的语法",
	HintCheckInput:   "输入必须是经过类型检查的 JSON 形式程序",
	HintOutputAccess: "检查输出目录是否可写",
	HintRenameClass:  "重命名该类，或者设置 build.runtime = false 并自行提供辅助类",

	// ========== 说明 ==========
	NoteUnitSkipped: "类 '%s' 没有生成编译单元，其他类不受影响",

	// ========== 命令行 ==========
	CLIUsage:     "用法: sophiac [选项] <program.json>\n      sophiac -init [目录]",
	CLIVersion:   "sophiac %s",
	CLIBuildDone: "写入 %d 个编译单元，%d 个未变化，输出目录 %s",
	CLIFailed:    "构建失败",
	CLIMissing:   "没有输入文件",
	CLIInitDone:  "已创建 %s",
}
