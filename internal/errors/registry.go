package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://tinyvue.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	"E001": {
		Category: CategoryComponent,
		Message:  "Component file not found",
		Detail:   "The component file passed on the command line does not exist or cannot be read.",
		DocURL:   docBase + "E001",
	},
	"E002": {
		Category: CategoryComponent,
		Message:  "Invalid component file",
		Detail:   "The component file is not valid YAML or does not match the component schema (name, template, data, setup).",
		DocURL:   docBase + "E002",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Mount failed",
		Detail:   "The component could not be mounted. The selector may not match the container, or the template may be malformed.",
		DocURL:   docBase + "E003",
	},
	"E004": {
		Category: CategoryCLI,
		Message:  "Invalid --set argument",
		Detail:   "Each --set takes the form path=value, where path is a key or a dotted path into nested state and value is a YAML scalar.",
		DocURL:   docBase + "E004",
	},
	"E005": {
		Category: CategoryRuntime,
		Message:  "Cyclic update",
		Detail:   "A render wrote to state it reads, which would re-render forever. Move the write out of the render.",
		DocURL:   docBase + "E005",
	},
	"E006": {
		Category: CategoryRuntime,
		Message:  "Render failed",
		Detail:   "The component rendered a tree that cannot be serialized to HTML.",
		DocURL:   docBase + "E006",
	},
	"E007": {
		Category: CategoryCLI,
		Message:  "Preview server failed",
		Detail:   "The preview server could not listen on the requested address or stopped unexpectedly.",
		DocURL:   docBase + "E007",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
