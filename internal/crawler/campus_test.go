package crawler

import (
	"testing"
)

func campusFixture() *CampusSource {
	return NewCampusSource(CampusConfig{
		Name:    "campus-test",
		BaseURL: "https://campus.example.com",
		JobsURL: "https://campus.example.com/api/jobs",
	}, nil)
}

func TestParseJSONListing(t *testing.T) {
	body := []byte(`{
		"data": {
			"rows": [
				{
					"id": 1001,
					"companyName": " 字节跳动 ",
					"jobName": "后端开发工程师",
					"city": "北京",
					"education": "本科",
					"salary": "25-40K",
					"applyUrl": "https://campus.example.com/apply/1001",
					"deadline": "2026-12-31",
					"publishTime": "2026-08-01"
				},
				{
					"id": "j-2002",
					"companyName": "腾讯",
					"jobName": "产品经理",
					"city": "深圳",
					"applyUrl": "https://campus.example.com/apply/2002"
				}
			]
		}
	}`)

	jobs := campusFixture().parseJSON(body)

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].JobID != "1001" {
		t.Fatalf("numeric id not stringified: %q", jobs[0].JobID)
	}
	if jobs[1].JobID != "j-2002" {
		t.Fatalf("string id mangled: %q", jobs[1].JobID)
	}
	if jobs[0].CompanyName != "字节跳动" {
		t.Fatalf("company not cleaned: %q", jobs[0].CompanyName)
	}
	if jobs[0].Source != "campus-test" {
		t.Fatalf("source not stamped: %q", jobs[0].Source)
	}
	if jobs[0].CrawlTime == "" {
		t.Fatalf("crawl time not stamped")
	}
}

func TestParseJSONFallsThroughOnHTML(t *testing.T) {
	if jobs := campusFixture().parseJSON([]byte("<html><body></body></html>")); jobs != nil {
		t.Fatalf("HTML payload must not parse as a listing: %v", jobs)
	}
	if jobs := campusFixture().parseJSON([]byte(`{"data": {"rows": []}}`)); jobs != nil {
		t.Fatalf("an empty listing must fall through to the HTML parser")
	}
}

func TestParseHTMLListing(t *testing.T) {
	body := []byte(`
		<html><body>
			<div class="job-item">
				<span class="job-title">算法工程师</span>
				<span class="company-name">阿里巴巴</span>
				<span class="job-location">杭州</span>
				<a href="/position/3003">查看</a>
			</div>
			<div class="job-item">
				<span class="job-title"></span>
				<a href="/position/3004">无标题，应跳过</a>
			</div>
			<div class="position-item">
				<span class="position-name">测试工程师</span>
				<a href="https://other.example.com/p/5">查看</a>
			</div>
		</body></html>`)

	jobs := campusFixture().parseHTML(body)

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].JobTitle != "算法工程师" || jobs[0].CompanyName != "阿里巴巴" {
		t.Fatalf("unexpected first job: %+v", jobs[0])
	}
	if jobs[0].ApplyURL != "https://campus.example.com/position/3003" {
		t.Fatalf("relative link not resolved: %q", jobs[0].ApplyURL)
	}
	if jobs[1].ApplyURL != "https://other.example.com/p/5" {
		t.Fatalf("absolute link mangled: %q", jobs[1].ApplyURL)
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{float64(42), "42"},
		{true, "true"},
	}

	for _, tc := range cases {
		if got := stringify(tc.in); got != tc.want {
			t.Fatalf("stringify(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	s := campusFixture()

	cases := []struct {
		in   string
		want string
	}{
		{"/apply/1", "https://campus.example.com/apply/1"},
		{"apply/2", "https://campus.example.com/apply/2"},
		{"https://done.example.com/x", "https://done.example.com/x"},
	}

	for _, tc := range cases {
		if got := s.absoluteURL(tc.in); got != tc.want {
			t.Fatalf("absoluteURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
