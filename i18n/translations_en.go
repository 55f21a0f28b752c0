package i18n

var englishTranslations = map[string]string{
	// Export notifications
	"export.section_not_found":  "Section \"%s\" was not found",
	"export.unsupported_format": "Format \"%s\" is not supported",
	"export.success":            "%s is ready",
	"export.failed":             "Could not generate %s. Please try again.",
	"export.all_success":        "Exported %d files to %s",
	"export.all_partial":        "Exported %d of %d files, %d failed",

	// Practice page
	"practice.saved":            "Practice page saved to %s",
	"practice.invalid_selector": "Invalid selector: %s",
	"practice.selector_unique":  "Selector matches exactly one element",
	"practice.selector_many":    "Selector matches %d elements, make it more specific",
	"practice.selector_none":    "Selector matches nothing",

	// Server
	"server.started":        "Server listening on %s",
	"server.stopped":        "Server stopped",
	"server.internal_error": "Internal server error",
	"server.bad_request":    "Invalid request: %s",

	// History
	"history.unavailable": "Export history is unavailable",

	// Recovery suggestions
	"suggest.check_section_id":      "Check the section id",
	"suggest.list_sections":         "GET /api/v1/sections lists every section",
	"suggest.use_supported_format":  "Use one of pptx, pdf, docx or xlsx",
	"suggest.try_again":             "Try again",
	"suggest.check_logs":            "If it keeps failing, check the server log",
	"suggest.check_selector_syntax": "Check the CSS selector syntax",
}
