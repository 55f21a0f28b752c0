package i18n

var chineseTranslations = map[string]string{
	// 导出通知
	"export.section_not_found":  "未找到章节 \"%s\"",
	"export.unsupported_format": "不支持的格式 \"%s\"",
	"export.success":            "%s 已生成",
	"export.failed":             "生成 %s 失败，请重试。",
	"export.all_success":        "已导出 %d 个文件到 %s",
	"export.all_partial":        "已导出 %d/%d 个文件，%d 个失败",

	// 练习页面
	"practice.saved":            "练习页面已保存到 %s",
	"practice.invalid_selector": "无效的选择器：%s",
	"practice.selector_unique":  "选择器恰好匹配一个元素",
	"practice.selector_many":    "选择器匹配了 %d 个元素，请更精确",
	"practice.selector_none":    "选择器没有匹配任何元素",

	// 服务器
	"server.started":        "服务器监听于 %s",
	"server.stopped":        "服务器已停止",
	"server.internal_error": "服务器内部错误",
	"server.bad_request":    "请求无效：%s",

	// 历史记录
	"history.unavailable": "导出历史不可用",

	// 恢复建议
	"suggest.check_section_id":      "请检查章节 ID",
	"suggest.list_sections":         "GET /api/v1/sections 可列出全部章节",
	"suggest.use_supported_format":  "请使用 pptx、pdf、docx 或 xlsx",
	"suggest.try_again":             "请重试",
	"suggest.check_logs":            "如果持续失败，请查看服务器日志",
	"suggest.check_selector_syntax": "请检查 CSS 选择器语法",
}
