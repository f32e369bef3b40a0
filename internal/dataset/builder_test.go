package dataset

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/minowang/jobcorpus/internal/annotation"
	"github.com/minowang/jobcorpus/internal/record"
)

func inputParsingAnnotation() *annotation.Annotation {
	return &annotation.Annotation{
		Type:      annotation.TypeInputParsing,
		ID:        "input_0000",
		UserInput: "我是本科计算机科学专业，想找互联网大厂的后端开发全职，地点在北京",
		StructuredParams: &annotation.Params{
			Major:             "计算机科学",
			Education:         "本科",
			TargetCompanyType: "互联网大厂",
			Location:          "北京",
			JobType:           "全职",
			Position:          "后端开发",
		},
	}
}

func scoredJob(company, title, location string, score float64) annotation.ScoredJob {
	return annotation.ScoredJob{
		Job:        &record.Job{CompanyName: company, JobTitle: title, Location: location},
		MatchScore: score,
		Reason:     "基本匹配",
	}
}

func jobMatchingAnnotation(jobs []annotation.ScoredJob) *annotation.Annotation {
	return &annotation.Annotation{
		Type:       annotation.TypeJobMatching,
		ID:         "match_0000",
		UserParams: &annotation.Params{Major: "计算机", Education: "本科", TargetCompanyType: "互联网", Location: "北京"},
		Jobs:       jobs,
	}
}

func adviceAnnotation() *annotation.Annotation {
	return &annotation.Annotation{
		Type:     annotation.TypeAdvice,
		ID:       "advice_0000",
		Scenario: "计算机本科应届生求职互联网大厂后端开发",
		Advice: &annotation.Advice{
			ResumeOptimization:   []string{"突出项目经验", "控制在一页"},
			InterviewPreparation: []string{"复习计算机基础"},
			ApplicationStrategy:  []string{"提前批优先"},
		},
	}
}

func TestBuildInputParsing(t *testing.T) {
	sample, err := Build(inputParsingAnnotation())
	if err != nil {
		t.Fatalf("build: %s", err)
	}

	if !strings.HasPrefix(sample.Text, InstructionOpen+" ") {
		t.Fatalf("sample does not open with the instruction tag: %q", sample.Text)
	}
	if !strings.HasSuffix(sample.Text, EndOfSample) {
		t.Fatalf("sample does not close with the end tag: %q", sample.Text)
	}
	if !strings.Contains(sample.Text, "解析用户的求职需求") {
		t.Fatalf("instruction marker missing: %q", sample.Text)
	}
	if !strings.Contains(sample.Text, "用户输入：我是本科计算机科学专业") {
		t.Fatalf("user input missing from instruction: %q", sample.Text)
	}

	// The response must be the params as valid JSON with stable key order.
	_, after, found := strings.Cut(sample.Text, InstructionClose+" ")
	if !found {
		t.Fatalf("no response section: %q", sample.Text)
	}
	response := strings.TrimSuffix(after, EndOfSample)

	var params annotation.Params
	if err := json.Unmarshal([]byte(response), &params); err != nil {
		t.Fatalf("response is not valid JSON: %s\n%s", err, response)
	}
	if params.Major != "计算机科学" || params.Position != "后端开发" {
		t.Fatalf("response params corrupted: %+v", params)
	}
	if strings.Index(response, `"major"`) > strings.Index(response, `"education"`) {
		t.Fatalf("key order changed: %s", response)
	}
}

func TestBuildInputParsingRendersAllSixKeys(t *testing.T) {
	ann := inputParsingAnnotation()
	ann.StructuredParams.JobType = ""
	ann.StructuredParams.Position = ""

	sample, err := Build(ann)
	if err != nil {
		t.Fatalf("build: %s", err)
	}

	_, after, _ := strings.Cut(sample.Text, InstructionClose+" ")
	response := strings.TrimSuffix(after, EndOfSample)

	for _, key := range []string{`"major"`, `"education"`, `"target_company_type"`, `"location"`, `"job_type"`, `"position"`} {
		if !strings.Contains(response, key) {
			t.Fatalf("key %s dropped from the response:\n%s", key, response)
		}
	}
}

func TestBuildInputParsingRequiresParams(t *testing.T) {
	ann := inputParsingAnnotation()
	ann.StructuredParams = nil

	if _, err := Build(ann); err == nil {
		t.Fatalf("expected an error without structured params")
	}
}

func TestBuildJobMatchingTakesTopFive(t *testing.T) {
	jobs := []annotation.ScoredJob{
		scoredJob("a", "后端开发", "北京", 0.3),
		scoredJob("b", "后端开发", "北京", 0.9),
		scoredJob("c", "后端开发", "北京", 0.7),
		scoredJob("d", "后端开发", "北京", 0.8),
		scoredJob("e", "后端开发", "北京", 0.5),
		scoredJob("f", "后端开发", "北京", 0.6),
		scoredJob("g", "后端开发", "北京", 0.4),
	}

	sample, err := Build(jobMatchingAnnotation(jobs))
	if err != nil {
		t.Fatalf("build: %s", err)
	}

	_, after, _ := strings.Cut(sample.Text, InstructionClose+" ")
	response := strings.TrimSuffix(after, EndOfSample)

	var results []matchResult
	if err := json.Unmarshal([]byte(response), &results); err != nil {
		t.Fatalf("response is not valid JSON: %s\n%s", err, response)
	}

	if len(results) != 5 {
		t.Fatalf("expected top 5 matches, got %d", len(results))
	}
	wantOrder := []string{"b", "d", "c", "f", "e"}
	for i, res := range results {
		if res.Company != wantOrder[i] {
			t.Fatalf("unexpected ranking at %d: got %q, want %q", i, res.Company, wantOrder[i])
		}
		if res.Rank != i+1 {
			t.Fatalf("rank %d not renumbered: %d", i, res.Rank)
		}
	}

	// The instruction lists the candidates in their original order.
	if !strings.Contains(sample.Text, "1. a - 后端开发 (北京)") {
		t.Fatalf("candidate list missing or reordered: %q", sample.Text)
	}
}

func TestBuildJobMatchingInstructionLayout(t *testing.T) {
	jobs := []annotation.ScoredJob{
		scoredJob("a", "后端开发", "北京", 0.5),
		scoredJob("b", "前端开发", "上海", 0.6),
	}

	sample, err := Build(jobMatchingAnnotation(jobs))
	if err != nil {
		t.Fatalf("build: %s", err)
	}

	// The candidate block keeps its per-line trailing newline and is
	// followed by a blank line before the output request.
	want := "候选岗位：\n1. a - 后端开发 (北京)\n2. b - 前端开发 (上海)\n\n\n请输出匹配结果（JSON格式）"
	if !strings.Contains(sample.Text, want) {
		t.Fatalf("candidate block layout changed:\n%q", sample.Text)
	}
}

func TestBuildJobMatchingKeepsTieOrder(t *testing.T) {
	jobs := []annotation.ScoredJob{
		scoredJob("first", "后端开发", "北京", 0.7),
		scoredJob("second", "后端开发", "北京", 0.7),
		scoredJob("third", "后端开发", "北京", 0.7),
	}

	sample, err := Build(jobMatchingAnnotation(jobs))
	if err != nil {
		t.Fatalf("build: %s", err)
	}

	_, after, _ := strings.Cut(sample.Text, InstructionClose+" ")
	var results []matchResult
	if err := json.Unmarshal([]byte(strings.TrimSuffix(after, EndOfSample)), &results); err != nil {
		t.Fatalf("response is not valid JSON: %s", err)
	}

	for i, want := range []string{"first", "second", "third"} {
		if results[i].Company != want {
			t.Fatalf("tie order changed: got %q at %d, want %q", results[i].Company, i, want)
		}
	}
}

func TestBuildJobMatchingRequiresJobs(t *testing.T) {
	if _, err := Build(jobMatchingAnnotation(nil)); err == nil {
		t.Fatalf("expected an error for an empty job list")
	}

	ann := jobMatchingAnnotation([]annotation.ScoredJob{scoredJob("a", "b", "c", 0.5)})
	ann.UserParams = nil
	if _, err := Build(ann); err == nil {
		t.Fatalf("expected an error without user params")
	}
}

func TestBuildAdvice(t *testing.T) {
	sample, err := Build(adviceAnnotation())
	if err != nil {
		t.Fatalf("build: %s", err)
	}

	for _, section := range []string{"## 简历优化建议", "## 面试准备建议", "## 投递策略建议"} {
		if !strings.Contains(sample.Text, section) {
			t.Fatalf("missing section %q in %q", section, sample.Text)
		}
	}
	if !strings.Contains(sample.Text, "- 突出项目经验") {
		t.Fatalf("tips not rendered as bullets: %q", sample.Text)
	}
	if !strings.Contains(sample.Text, "求职场景：计算机本科应届生求职互联网大厂后端开发") {
		t.Fatalf("scenario missing from instruction: %q", sample.Text)
	}
}

func TestBuildRejectsUnknownType(t *testing.T) {
	if _, err := Build(&annotation.Annotation{Type: "mystery"}); err == nil {
		t.Fatalf("expected an error for an unknown type")
	}
}
