package store

import (
	"fmt"

	"github.com/minowang/jobcorpus/internal/record"
)

// SaveJobs archives cleaned jobs, ignoring fingerprints already present.
// Returns the number of newly added rows.
func (d *DB) SaveJobs(jobs record.Jobs) (int, error) {
	tx, err := d.pool.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
INSERT OR IGNORE INTO jobs
(fingerprint, source, job_id, company_name, job_title, category, location,
 education, salary, description, requirements, apply_url, deadline,
 publish_time, cleaned_time)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, job := range jobs {
		res, err := stmt.Exec(
			job.Fingerprint(), job.Source, job.JobID, job.CompanyName,
			job.JobTitle, job.Category, job.Location, job.Education,
			job.Salary, job.Description, job.Requirements, job.ApplyURL,
			job.Deadline, job.PublishTime, job.CleanedTime,
		)
		if err != nil {
			return added, fmt.Errorf("inserting job %s/%s: %w", job.CompanyName, job.JobTitle, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return added, err
	}
	return added, nil
}

// ListJobs returns up to limit archived jobs; limit <= 0 means all.
func (d *DB) ListJobs(limit int) (record.Jobs, error) {
	query := `
SELECT source, job_id, company_name, job_title, category, location,
       education, salary, description, requirements, apply_url, deadline,
       publish_time, cleaned_time
FROM jobs ORDER BY rowid`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.pool.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs record.Jobs
	for rows.Next() {
		job := &record.Job{}
		if err := rows.Scan(
			&job.Source, &job.JobID, &job.CompanyName, &job.JobTitle,
			&job.Category, &job.Location, &job.Education, &job.Salary,
			&job.Description, &job.Requirements, &job.ApplyURL,
			&job.Deadline, &job.PublishTime, &job.CleanedTime,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// Count returns the number of archived jobs.
func (d *DB) Count() (int, error) {
	var n int
	err := d.pool.QueryRow(`SELECT COUNT(*) FROM jobs;`).Scan(&n)
	return n, err
}
