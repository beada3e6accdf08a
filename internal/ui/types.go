package ui

// View represents different UI views
type View int

const (
	ViewForm View = iota
	ViewLoading
	ViewResult
	ViewFunctions
	ViewFiles
	ViewHelp
)

// String returns the view name
func (v View) String() string {
	switch v {
	case ViewForm:
		return "form"
	case ViewLoading:
		return "loading"
	case ViewResult:
		return "result"
	case ViewFunctions:
		return "functions"
	case ViewFiles:
		return "files"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}
