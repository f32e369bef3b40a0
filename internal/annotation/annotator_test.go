package annotation

import (
	"math"
	"strings"
	"testing"

	"github.com/minowang/jobcorpus/internal/record"
)

func TestInputParsingSamples(t *testing.T) {
	a := New(42, nil, nil)

	samples := a.InputParsingSamples(5)

	if len(samples) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(samples))
	}
	for i, s := range samples {
		if s.Type != TypeInputParsing {
			t.Fatalf("sample %d: unexpected type %q", i, s.Type)
		}
		if s.ID == "" || !strings.HasPrefix(s.ID, "input_") {
			t.Fatalf("sample %d: unexpected id %q", i, s.ID)
		}
		if s.UserInput == "" {
			t.Fatalf("sample %d: empty user input", i)
		}
		p := s.StructuredParams
		if p == nil || p.Major == "" || p.Education == "" || p.TargetCompanyType == "" || p.Location == "" {
			t.Fatalf("sample %d: incomplete params %+v", i, p)
		}
		if !strings.Contains(s.UserInput, p.Major) {
			t.Fatalf("sample %d: user input %q does not mention major %q", i, s.UserInput, p.Major)
		}
	}
}

func TestInputParsingSamplesAreDeterministic(t *testing.T) {
	first := New(7, nil, nil).InputParsingSamples(20)
	second := New(7, nil, nil).InputParsingSamples(20)

	for i := range first {
		if first[i].UserInput != second[i].UserInput {
			t.Fatalf("sample %d differs between runs with the same seed", i)
		}
		if *first[i].StructuredParams != *second[i].StructuredParams {
			t.Fatalf("sample %d params differ between runs with the same seed", i)
		}
	}
}

func TestJobMatchingSamplesWithPool(t *testing.T) {
	pool := record.Jobs{
		{CompanyName: "字节跳动", JobTitle: "后端开发", Location: "北京", Education: "本科"},
		{CompanyName: "腾讯", JobTitle: "前端开发", Location: "深圳", Education: "本科"},
		{CompanyName: "阿里巴巴", JobTitle: "算法工程师", Location: "杭州", Education: "硕士"},
	}

	samples := New(42, nil, nil).JobMatchingSamples(pool, 10)

	if len(samples) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(samples))
	}
	for i, s := range samples {
		if s.Type != TypeJobMatching {
			t.Fatalf("sample %d: unexpected type %q", i, s.Type)
		}
		if s.UserParams == nil {
			t.Fatalf("sample %d: missing user params", i)
		}
		if len(s.Jobs) == 0 || len(s.Jobs) > len(pool) {
			t.Fatalf("sample %d: unexpected candidate count %d", i, len(s.Jobs))
		}
		for j, scored := range s.Jobs {
			if scored.MatchScore < 0 || scored.MatchScore > 1 {
				t.Fatalf("sample %d job %d: score %v out of range", i, j, scored.MatchScore)
			}
			if scored.Reason == "" {
				t.Fatalf("sample %d job %d: empty reason", i, j)
			}
			if j > 0 && s.Jobs[j-1].MatchScore < scored.MatchScore {
				t.Fatalf("sample %d: jobs not sorted by descending score", i)
			}
		}
	}
}

func TestJobMatchingSamplesFallBackToMockPool(t *testing.T) {
	samples := New(42, nil, nil).JobMatchingSamples(nil, 3)

	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	for i, s := range samples {
		if len(s.Jobs) != 10 {
			t.Fatalf("sample %d: expected 10 mock candidates, got %d", i, len(s.Jobs))
		}
		for j, scored := range s.Jobs {
			if scored.Job.CompanyName == "" || scored.Job.JobTitle == "" {
				t.Fatalf("sample %d job %d: incomplete mock job %+v", i, j, scored.Job)
			}
		}
	}
}

func TestAdviceSamples(t *testing.T) {
	samples := New(42, nil, nil).AdviceSamples(6)

	if len(samples) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(samples))
	}

	known := make(map[string]bool)
	for _, s := range defaultScenarios {
		known[s.Scenario] = true
	}

	for i, s := range samples {
		if s.Type != TypeAdvice {
			t.Fatalf("sample %d: unexpected type %q", i, s.Type)
		}
		if !known[s.Scenario] {
			t.Fatalf("sample %d: scenario %q not in the bank", i, s.Scenario)
		}
		if s.Advice == nil {
			t.Fatalf("sample %d: missing advice", i)
		}
		if len(s.Advice.ResumeOptimization) != 3 {
			t.Fatalf("sample %d: expected 3 resume tips, got %d", i, len(s.Advice.ResumeOptimization))
		}
		if len(s.Advice.InterviewPreparation) != 3 {
			t.Fatalf("sample %d: expected 3 interview tips, got %d", i, len(s.Advice.InterviewPreparation))
		}
		if len(s.Advice.ApplicationStrategy) != 2 {
			t.Fatalf("sample %d: expected 2 strategy tips, got %d", i, len(s.Advice.ApplicationStrategy))
		}
	}
}

func TestMatchScoreBounds(t *testing.T) {
	a := New(1, nil, nil)
	params := &Params{Location: "北京", Education: "本科"}
	job := &record.Job{Location: "北京", Education: "本科"}

	for i := 0; i < 100; i++ {
		score := a.matchScore(params, job)
		if score < 0 || score > 1 {
			t.Fatalf("score %v out of [0,1]", score)
		}
		cents := score * 100
		if math.Abs(cents-math.Round(cents)) > 1e-9 {
			t.Fatalf("score %v not rounded to two decimals", score)
		}
	}
}

func TestStableSortByScoreKeepsTieOrder(t *testing.T) {
	scored := []ScoredJob{
		{Job: &record.Job{CompanyName: "a"}, MatchScore: 0.5},
		{Job: &record.Job{CompanyName: "b"}, MatchScore: 0.9},
		{Job: &record.Job{CompanyName: "c"}, MatchScore: 0.5},
		{Job: &record.Job{CompanyName: "d"}, MatchScore: 0.9},
	}

	stableSortByScore(scored)

	got := make([]string, 0, len(scored))
	for _, s := range scored {
		got = append(got, s.Job.CompanyName)
	}
	want := []string{"b", "d", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", got, want)
		}
	}
}

func TestSampleTipsNeverExceedsPool(t *testing.T) {
	a := New(3, nil, nil)
	tips := []string{"one", "two"}

	picked := a.sampleTips(tips, 5)
	if len(picked) != 2 {
		t.Fatalf("expected the whole pool, got %d tips", len(picked))
	}
}

func TestLoadScenariosDefaults(t *testing.T) {
	scenarios, err := LoadScenarios("")
	if err != nil {
		t.Fatalf("empty path must yield the built-in bank: %s", err)
	}
	if len(scenarios) != len(defaultScenarios) {
		t.Fatalf("expected %d built-in scenarios, got %d", len(defaultScenarios), len(scenarios))
	}

	if _, err := LoadScenarios("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
