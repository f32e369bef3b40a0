package cleaning

import (
	"go.uber.org/zap"

	"github.com/minowang/jobcorpus/internal/record"
)

// Stats accumulates per-reason rejection counts for one cleaning run.
// Total == Valid + Duplicates + MissingFields + InvalidURL + Expired.
type Stats struct {
	Total         int `json:"total"`
	Duplicates    int `json:"duplicates"`
	MissingFields int `json:"missing_fields"`
	InvalidURL    int `json:"invalid_url"`
	Expired       int `json:"expired"`
	Valid         int `json:"valid"`
}

// Pipeline runs the cleaning gates over a batch of raw jobs. It owns its
// Deduper, so each Pipeline instance defines one dedup scope.
type Pipeline struct {
	deduper *Deduper
	logger  *zap.Logger
}

func NewPipeline(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		deduper: NewDeduper(),
		logger:  logger,
	}
}

// Clean applies, in order: dedup check, required-field check, URL check,
// expiry check, normalization. Dedup runs on the raw keys before any
// normalization happens. Rejected jobs are counted, never returned as errors.
func (p *Pipeline) Clean(jobs record.Jobs) (record.Jobs, Stats) {
	p.logger.Info("cleaning jobs", zap.Int("count", jobs.Len()))

	stats := Stats{Total: jobs.Len()}
	ref := now()

	cleaned := make(record.Jobs, 0, jobs.Len())
	for _, job := range jobs {
		if p.deduper.IsDuplicate(job) {
			stats.Duplicates++
			continue
		}

		if !hasRequiredFields(job) {
			p.logger.Debug("missing required field",
				zap.String("company", job.CompanyName),
				zap.String("title", job.JobTitle),
			)
			stats.MissingFields++
			continue
		}

		if !isValidURL(job.ApplyURL) {
			stats.InvalidURL++
			continue
		}

		if isExpired(job.Deadline, ref) {
			stats.Expired++
			continue
		}

		cleaned = append(cleaned, Normalize(job))
		stats.Valid++
	}

	p.logger.Info("cleaning complete",
		zap.Int("total", stats.Total),
		zap.Int("valid", stats.Valid),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("missing_fields", stats.MissingFields),
		zap.Int("invalid_url", stats.InvalidURL),
		zap.Int("expired", stats.Expired),
	)

	return cleaned, stats
}
