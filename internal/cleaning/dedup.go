package cleaning

import "github.com/minowang/jobcorpus/internal/record"

// Deduper tracks job fingerprints seen during a single cleaning run. The seen
// set grows unbounded and is never persisted: a new run gets a new Deduper.
//
// Fingerprints are computed on the raw, pre-normalization field values, so
// near-duplicates differing only in whitespace are not collapsed. Downstream
// duplicate counts depend on this granularity.
type Deduper struct {
	seen map[string]bool
}

func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]bool)}
}

// IsDuplicate reports whether the job's fingerprint was already seen, and
// records it otherwise.
func (d *Deduper) IsDuplicate(job *record.Job) bool {
	fp := job.Fingerprint()
	if d.seen[fp] {
		return true
	}
	d.seen[fp] = true
	return false
}

func (d *Deduper) Len() int {
	return len(d.seen)
}
