package exporter

// Reason classifies an export outcome.
type Reason string

const (
	ReasonNone              Reason = "none"
	ReasonMissingParameters Reason = "missing_parameters"
	ReasonSourceNotFound    Reason = "source_not_found"
	ReasonIOError           Reason = "io_error"
)

// Display markers prefixed to Message.
const (
	SuccessMarker = "✅"
	FailureMarker = "❌"
)

// Result is the terminal state of one export.
type Result struct {
	OK     bool
	Reason Reason
	// Destination is the directory the file was copied into; set on success.
	Destination string
	// Err is the underlying error for ReasonIOError.
	Err error
}

func succeeded(dest string) Result { return Result{OK: true, Reason: ReasonNone, Destination: dest} }

func failed(r Reason, err error) Result { return Result{Reason: r, Err: err} }

// Message renders the result for display.
func (r Result) Message() string {
	if r.OK {
		return SuccessMarker + " exported to " + r.Destination
	}
	switch r.Reason {
	case ReasonMissingParameters:
		return FailureMarker + " missing required parameters"
	case ReasonSourceNotFound:
		return FailureMarker + " source file does not exist"
	default:
		msg := "unknown failure"
		if r.Err != nil {
			msg = r.Err.Error()
		}
		return FailureMarker + " error: " + msg
	}
}

// Error lets a failed Result travel as an error. It returns "" for success.
func (r Result) Error() string {
	if r.OK {
		return ""
	}
	return r.Message()
}
