package purge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildReportAggregates(t *testing.T) {
	report := buildReport(map[string]StepResult{
		"products":  {Deleted: 3},
		"suppliers": {Err: errors.New("boom")},
		"sales":     {Deleted: 2},
	})

	assert.False(t, report.Success)
	assert.True(t, report.Summary.HasErrors)
	assert.EqualValues(t, 5, report.Summary.TotalRecordsDeleted)
	assert.Equal(t, 3, report.Summary.TablesProcessed)
	assert.Equal(t, "boom", report.Results["suppliers"].Error)
	assert.Empty(t, report.Results["products"].Error)
	assert.Contains(t, report.Message, "1 tables failed")
}

func TestBuildReportCleanRun(t *testing.T) {
	report := buildReport(map[string]StepResult{
		"products": {Deleted: 4},
		"sales":    {},
	})

	assert.True(t, report.Success)
	assert.False(t, report.Summary.HasErrors)
	assert.EqualValues(t, 4, report.Summary.TotalRecordsDeleted)
	assert.Contains(t, report.Message, "Reclaimed 4 records across 2 tables")
}

func TestFailedReportHasEmptyResults(t *testing.T) {
	report := FailedReport(errors.New("resolver down"))

	assert.False(t, report.Success)
	assert.NotNil(t, report.Results)
	assert.Empty(t, report.Results)
	assert.Contains(t, report.Message, "resolver down")
}
