package cleaning

import (
	"net/url"
	"strings"
	"time"

	"github.com/minowang/jobcorpus/internal/record"
)

// deadlineFormats is ordered; the first layout that parses wins.
var deadlineFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

func hasRequiredFields(job *record.Job) bool {
	required := []string{job.CompanyName, job.JobTitle, job.ApplyURL}
	for _, value := range required {
		if strings.TrimSpace(value) == "" {
			return false
		}
	}
	return true
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isExpired reports whether the deadline lies strictly before ref. An empty
// or unparseable deadline is treated as not expired.
func isExpired(deadline string, ref time.Time) bool {
	if deadline == "" {
		return false
	}

	for _, layout := range deadlineFormats {
		parsed, err := time.ParseInLocation(layout, deadline, ref.Location())
		if err != nil {
			continue
		}
		return parsed.Before(ref)
	}

	return false
}
