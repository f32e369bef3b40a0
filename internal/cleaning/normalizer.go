package cleaning

import (
	"time"

	"github.com/minowang/jobcorpus/internal/record"
)

// now is swappable in tests.
var now = time.Now

// Normalize returns a normalized copy of the job: text fields cleaned,
// education and location mapped to their canonical values, and a cleaning
// timestamp stamped. The input is not mutated.
func Normalize(job *record.Job) *record.Job {
	normalized := *job

	normalized.CompanyName = record.CleanText(job.CompanyName)
	normalized.JobTitle = record.CleanText(job.JobTitle)
	normalized.Location = record.CleanText(job.Location)
	normalized.Description = record.CleanText(job.Description)
	normalized.Requirements = record.CleanText(job.Requirements)

	if job.Education != "" {
		normalized.Education = record.CanonicalEducation(job.Education)
	}
	if job.Location != "" {
		normalized.Location = record.CanonicalCity(job.Location)
	}

	normalized.CleanedTime = now().Format(time.RFC3339)

	return &normalized
}
