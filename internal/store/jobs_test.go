package store

import (
	"path/filepath"
	"testing"

	"github.com/minowang/jobcorpus/internal/record"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open: %s", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleJobs() record.Jobs {
	return record.Jobs{
		{
			Source:      "campus",
			JobID:       "1",
			CompanyName: "字节跳动",
			JobTitle:    "后端开发",
			Location:    "北京",
			Education:   "本科",
			ApplyURL:    "https://jobs.example.com/1",
			CleanedTime: "2026-03-01T12:00:00Z",
		},
		{
			Source:      "campus",
			JobID:       "2",
			CompanyName: "腾讯",
			JobTitle:    "产品经理",
			Location:    "深圳",
			ApplyURL:    "https://jobs.example.com/2",
		},
	}
}

func TestSaveJobsAndList(t *testing.T) {
	db := testDB(t)

	added, err := db.SaveJobs(sampleJobs())
	if err != nil {
		t.Fatalf("save: %s", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}

	jobs, err := db.ListJobs(0)
	if err != nil {
		t.Fatalf("list: %s", err)
	}
	if jobs.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", jobs.Len())
	}
	if jobs[0].CompanyName != "字节跳动" || jobs[0].Location != "北京" {
		t.Fatalf("unexpected first job: %+v", jobs[0])
	}
	if jobs[0].CleanedTime != "2026-03-01T12:00:00Z" {
		t.Fatalf("cleaned time lost: %q", jobs[0].CleanedTime)
	}
}

func TestSaveJobsIgnoresArchivedFingerprints(t *testing.T) {
	db := testDB(t)

	if _, err := db.SaveJobs(sampleJobs()); err != nil {
		t.Fatalf("first save: %s", err)
	}

	// The same postings again plus one new: only the new row is added.
	batch := sampleJobs()
	batch = append(batch, &record.Job{
		CompanyName: "美团",
		JobTitle:    "数据分析",
		ApplyURL:    "https://jobs.example.com/3",
	})

	added, err := db.SaveJobs(batch)
	if err != nil {
		t.Fatalf("second save: %s", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 added, got %d", added)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("count: %s", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 archived jobs, got %d", count)
	}
}

func TestListJobsHonorsLimit(t *testing.T) {
	db := testDB(t)

	if _, err := db.SaveJobs(sampleJobs()); err != nil {
		t.Fatalf("save: %s", err)
	}

	jobs, err := db.ListJobs(1)
	if err != nil {
		t.Fatalf("list: %s", err)
	}
	if jobs.Len() != 1 {
		t.Fatalf("expected 1 job, got %d", jobs.Len())
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %s", err)
	}
	if _, err := db.SaveJobs(sampleJobs()); err != nil {
		t.Fatalf("save: %s", err)
	}
	db.Close()

	// Reopening runs the migration again against the existing schema.
	db, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %s", err)
	}
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		t.Fatalf("count: %s", err)
	}
	if count != 2 {
		t.Fatalf("archive lost across reopen: %d jobs", count)
	}
}
