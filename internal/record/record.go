package record

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"os"
	"reflect"
	"strings"
)

// Job is a single recruitment listing as produced by a crawler. Sources are
// duck-typed: only company, title and apply URL are required, everything a
// source emits beyond the known fields survives in Extra.
type Job struct {
	Source       string   `json:"source,omitempty"`
	JobID        string   `json:"job_id,omitempty"`
	CompanyName  string   `json:"company_name,omitempty"`
	JobTitle     string   `json:"job_title,omitempty"`
	Category     string   `json:"category,omitempty"`
	Location     string   `json:"location,omitempty"`
	Education    string   `json:"education,omitempty"`
	Major        string   `json:"major,omitempty"`
	Salary       string   `json:"salary,omitempty"`
	Description  string   `json:"description,omitempty"`
	Requirements string   `json:"requirements,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	ApplyURL     string   `json:"apply_url,omitempty"`
	Deadline     string   `json:"deadline,omitempty"`
	PublishTime  string   `json:"publish_time,omitempty"`
	CrawlTime    string   `json:"crawl_time,omitempty"`
	CleanedTime  string   `json:"cleaned_time,omitempty"`

	Extra map[string]any `json:"-"`
}

// jobAlias avoids recursion into the custom (un)marshallers.
type jobAlias Job

var knownJobKeys = collectJSONKeys(reflect.TypeOf(Job{}))

func collectJSONKeys(t reflect.Type) map[string]bool {
	keys := make(map[string]bool)
	for _, field := range reflect.VisibleFields(t) {
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		keys[name] = true
	}
	return keys
}

// UnmarshalJSON fills the typed fields and keeps unrecognized keys in Extra.
func (j *Job) UnmarshalJSON(data []byte) error {
	var alias jobAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	raw := make(map[string]any)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key := range raw {
		if knownJobKeys[key] {
			delete(raw, key)
		}
	}
	if len(raw) == 0 {
		raw = nil
	}

	*j = Job(alias)
	j.Extra = raw
	return nil
}

// MarshalJSON folds Extra back into the object alongside the typed fields.
// A typed field always wins over an Extra entry with the same key.
func (j *Job) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(jobAlias(*j))
	if err != nil {
		return nil, err
	}

	if len(j.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]any, len(j.Extra))
	for key, value := range j.Extra {
		if !knownJobKeys[key] {
			merged[key] = value
		}
	}
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}

	return json.Marshal(merged)
}

// Fingerprint is the dedup key: an md5 over the raw company, title and
// location strings, concatenated without separators. It is intentionally
// computed on raw values, so two postings differing only in whitespace hash
// differently.
func (j *Job) Fingerprint() string {
	sum := md5.Sum([]byte(j.CompanyName + j.JobTitle + j.Location))
	return hex.EncodeToString(sum[:])
}

type Jobs []*Job

func (j Jobs) Len() int {
	return len(j)
}

func (j Jobs) Companies() []string {
	names := make([]string, 0, len(j))
	for _, job := range j {
		names = append(names, job.CompanyName)
	}
	return names
}

// ToFile writes the jobs as an indented JSON array, the interchange format
// between crawl, clean and annotate stages.
func (j Jobs) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(j)
}

func FromFile(path string) (Jobs, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var jobs Jobs
	if err := json.NewDecoder(file).Decode(&jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
