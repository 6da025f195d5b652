package purge

import "fmt"

// StepResult is the internal outcome of a single deletion step
type StepResult struct {
	Deleted int64
	Err     error
}

// StepOutcome is the externally visible outcome of a single deletion step
type StepOutcome struct {
	Deleted int64  `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// Summary aggregates the per-table outcomes of a run
type Summary struct {
	TotalRecordsDeleted int64 `json:"totalRecordsDeleted"`
	TablesProcessed     int   `json:"tablesProcessed"`
	HasErrors           bool  `json:"hasErrors"`
}

// Report is the structured result of a reclamation run
type Report struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Results map[string]StepOutcome `json:"results"`
	Summary Summary                `json:"summary"`
}

// buildReport reduces the per-table results into the final report
func buildReport(results map[string]StepResult) *Report {
	report := &Report{
		Results: make(map[string]StepOutcome, len(results)),
	}

	failed := 0
	for name, res := range results {
		outcome := StepOutcome{Deleted: res.Deleted}
		if res.Err != nil {
			outcome.Error = res.Err.Error()
			failed++
		}
		report.Results[name] = outcome
		report.Summary.TotalRecordsDeleted += res.Deleted
	}
	report.Summary.TablesProcessed = len(results)
	report.Summary.HasErrors = failed > 0
	report.Success = !report.Summary.HasErrors

	if report.Summary.HasErrors {
		report.Message = fmt.Sprintf("Reclaimed %d records across %d tables; %d tables failed",
			report.Summary.TotalRecordsDeleted, report.Summary.TablesProcessed, failed)
	} else {
		report.Message = fmt.Sprintf("Reclaimed %d records across %d tables",
			report.Summary.TotalRecordsDeleted, report.Summary.TablesProcessed)
	}
	return report
}

// FailedReport describes a run that never started: the protected sets could
// not be resolved and no deletion step executed. Results is an empty map, not
// a partial one, so callers can tell "ran with step failures" apart from
// "never ran".
func FailedReport(err error) *Report {
	return &Report{
		Success: false,
		Message: fmt.Sprintf("Tenant data reclamation aborted: %v", err),
		Results: map[string]StepOutcome{},
	}
}
