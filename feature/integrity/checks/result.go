package checks

// Status is the outcome of one check.
type Status string

const (
	StatusOK      Status = "ok"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Result is the report of one check.
type Result struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the check passed or did not apply.
func (r Result) OK() bool {
	return r.Status != StatusError
}

func passed(name, detail string) Result {
	return Result{Name: name, Status: StatusOK, Detail: detail}
}

func failed(name string, err error) Result {
	return Result{Name: name, Status: StatusError, Error: err.Error()}
}

func skipped(name, detail string) Result {
	return Result{Name: name, Status: StatusSkipped, Detail: detail}
}
