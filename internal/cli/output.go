package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Entries:
		o.printEntries(v)
	case MessageResult:
		fmt.Fprintln(o.w, v.Message)
	case ValidateResult:
		o.printValidateResult(v)
	case VisitorResult:
		fmt.Fprintf(o.w, "Visitors: %d\n", v.Count)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Entry response type (matches API)
type Entry struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Entries is the guestbook listing
type Entries []Entry

// MessageResult is a bare {"message"} response
type MessageResult struct {
	Message string `json:"message"`
}

// User response type
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ValidateResult response type
type ValidateResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// VisitorResult response type
type VisitorResult struct {
	Count int64 `json:"count"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printEntries(entries Entries) {
	fmt.Fprintf(o.w, "Entries (%d):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(o.w, "  %s: %s\n", e.Username, e.Message)
	}
}

func (o *Output) printValidateResult(v ValidateResult) {
	fmt.Fprintln(o.w, v.Message)
	fmt.Fprintf(o.w, "User: %s <%s>\n", v.User.Username, v.User.Email)
}
