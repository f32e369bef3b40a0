package annotation

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/minowang/jobcorpus/internal/record"
)

var (
	majors = []string{
		"计算机科学", "软件工程", "人工智能", "数据科学", "电子工程",
		"机械工程", "金融学", "会计学", "市场营销", "工商管理",
		"新闻传播", "英语", "法学", "医学", "建筑学",
	}

	educations = []string{"本科", "硕士", "博士", "专科"}

	companyTypes = []string{
		"互联网大厂", "外企", "国企", "创业公司", "金融机构",
		"咨询公司", "制造业", "教育培训", "医疗健康", "游戏公司",
	}

	locations = []string{
		"北京", "上海", "深圳", "杭州", "广州", "成都", "南京",
		"武汉", "西安", "苏州", "不限",
	}

	jobTypes = []string{"全职", "实习", "兼职", "远程", "外派"}

	positions = []string{
		"后端开发", "前端开发", "算法工程师", "数据分析", "产品经理",
		"UI设计师", "运营专员", "市场推广", "财务分析", "人力资源",
	}
)

// Annotator synthesizes labeled annotation records from templates. All
// randomness flows through the seeded rng, so a fixed seed reproduces the
// same annotations.
type Annotator struct {
	rng       *rand.Rand
	logger    *zap.Logger
	scenarios []Scenario
}

func New(seed int64, scenarios []Scenario, logger *zap.Logger) *Annotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(scenarios) == 0 {
		scenarios = defaultScenarios
	}
	return &Annotator{
		rng:       rand.New(rand.NewSource(seed)),
		logger:    logger,
		scenarios: scenarios,
	}
}

// InputParsingSamples generates natural-language request → structured params
// pairs from sentence templates.
func (a *Annotator) InputParsingSamples(n int) []*Annotation {
	samples := make([]*Annotation, 0, n)

	for i := 0; i < n; i++ {
		params := &Params{
			Major:             pick(a.rng, majors),
			Education:         pick(a.rng, educations),
			TargetCompanyType: pick(a.rng, companyTypes),
			Location:          pick(a.rng, locations),
			JobType:           pick(a.rng, jobTypes),
			Position:          pick(a.rng, positions),
		}

		templates := []string{
			fmt.Sprintf("我是%s%s专业，想找%s的%s%s，地点在%s",
				params.Education, params.Major, params.TargetCompanyType, params.Position, params.JobType, params.Location),
			fmt.Sprintf("%s应届生，%s背景，目标%s，岗位：%s，%s优先",
				params.Education, params.Major, params.TargetCompanyType, params.Position, params.Location),
			fmt.Sprintf("求职意向：%s，%s学历，专业%s，想去%s，%s地区",
				params.Position, params.Education, params.Major, params.TargetCompanyType, params.Location),
			fmt.Sprintf("%s专业%s毕业生，希望找%s的%s%s岗位",
				params.Major, params.Education, params.Location, params.TargetCompanyType, params.Position),
			fmt.Sprintf("本人%s%s，寻找%s在%s的%s机会",
				params.Major, params.Education, params.TargetCompanyType, params.Location, params.Position),
		}

		samples = append(samples, &Annotation{
			Type:             TypeInputParsing,
			ID:               fmt.Sprintf("input_%04d", i),
			UserInput:        pick(a.rng, templates),
			StructuredParams: params,
		})
	}

	a.logger.Info("generated input parsing annotations", zap.Int("count", len(samples)))
	return samples
}

// JobMatchingSamples generates user query → scored job list pairs. Candidate
// jobs are drawn from the provided pool; when the pool is empty a small mock
// pool is synthesized instead.
func (a *Annotator) JobMatchingSamples(jobs record.Jobs, n int) []*Annotation {
	samples := make([]*Annotation, 0, n)

	for i := 0; i < n; i++ {
		userParams := a.randomUserParams()

		candidates := a.sampleJobs(jobs, 10)
		if len(candidates) == 0 {
			candidates = a.mockJobs(10)
		}

		scored := make([]ScoredJob, 0, len(candidates))
		for _, job := range candidates {
			score := a.matchScore(userParams, job)
			scored = append(scored, ScoredJob{
				Job:        job,
				MatchScore: score,
				Reason:     matchReason(userParams, job, score),
			})
		}

		// Highest score first; order within equal scores is the draw order.
		stableSortByScore(scored)

		samples = append(samples, &Annotation{
			Type:       TypeJobMatching,
			ID:         fmt.Sprintf("match_%04d", i),
			UserParams: userParams,
			Jobs:       scored,
		})
	}

	a.logger.Info("generated job matching annotations", zap.Int("count", len(samples)))
	return samples
}

// AdviceSamples generates scenario → categorized tips pairs, sampling tip
// subsets from the scenario bank. Subsetting happens here, not in the sample
// builder, which stays deterministic.
func (a *Annotator) AdviceSamples(n int) []*Annotation {
	samples := make([]*Annotation, 0, n)

	for i := 0; i < n; i++ {
		scenario := a.scenarios[a.rng.Intn(len(a.scenarios))]

		samples = append(samples, &Annotation{
			Type:     TypeAdvice,
			ID:       fmt.Sprintf("advice_%04d", i),
			Scenario: scenario.Scenario,
			Advice: &Advice{
				ResumeOptimization:   a.sampleTips(scenario.ResumeTips, 3),
				InterviewPreparation: a.sampleTips(scenario.InterviewTips, 3),
				ApplicationStrategy:  a.sampleTips(scenario.StrategyTips, 2),
			},
		})
	}

	a.logger.Info("generated advice annotations", zap.Int("count", len(samples)))
	return samples
}

func (a *Annotator) randomUserParams() *Params {
	return &Params{
		Major:             pick(a.rng, []string{"计算机", "软件工程", "金融", "市场营销", "会计"}),
		Education:         pick(a.rng, []string{"本科", "硕士", "博士"}),
		TargetCompanyType: pick(a.rng, []string{"互联网", "外企", "国企", "创业公司"}),
		Location:          pick(a.rng, []string{"北京", "上海", "深圳", "杭州", "不限"}),
	}
}

// matchScore starts from a 0.5 base, adds 0.2 for a location match and 0.2
// for an education match, with a ±0.1 jitter, clamped to [0,1] and rounded
// to two decimals.
func (a *Annotator) matchScore(params *Params, job *record.Job) float64 {
	score := 0.5

	if params.Location == job.Location || params.Location == "不限" {
		score += 0.2
	}
	if params.Education != "" && strings.Contains(job.Education, params.Education) {
		score += 0.2
	}

	score += a.rng.Float64()*0.2 - 0.1

	score = math.Min(math.Max(score, 0), 1)
	return math.Round(score*100) / 100
}

func matchReason(params *Params, job *record.Job, score float64) string {
	var reasons []string

	if params.Location == job.Location {
		reasons = append(reasons, "地点匹配")
	}
	if params.Education != "" && strings.Contains(job.Education, params.Education) {
		reasons = append(reasons, "学历要求符合")
	}

	switch {
	case score > 0.7:
		reasons = append(reasons, "高度匹配")
	case score > 0.5:
		reasons = append(reasons, "基本匹配")
	default:
		reasons = append(reasons, "部分匹配")
	}

	return strings.Join(reasons, "，")
}

func (a *Annotator) sampleJobs(jobs record.Jobs, n int) []*record.Job {
	if len(jobs) == 0 {
		return nil
	}
	if n > len(jobs) {
		n = len(jobs)
	}

	perm := a.rng.Perm(len(jobs))
	picked := make([]*record.Job, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, jobs[idx])
	}
	return picked
}

func (a *Annotator) sampleTips(tips []string, n int) []string {
	if n > len(tips) {
		n = len(tips)
	}

	perm := a.rng.Perm(len(tips))
	picked := make([]string, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, tips[idx])
	}
	return picked
}

func (a *Annotator) mockJobs(n int) []*record.Job {
	companies := []string{"字节跳动", "腾讯", "阿里巴巴", "美团", "京东"}
	titles := []string{"后端开发", "前端开发", "算法工程师", "产品经理"}
	cities := []string{"北京", "上海", "深圳", "杭州"}

	jobs := make([]*record.Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, &record.Job{
			CompanyName: pick(a.rng, companies),
			JobTitle:    pick(a.rng, titles),
			Location:    pick(a.rng, cities),
			Education:   pick(a.rng, []string{"本科", "硕士"}),
		})
	}
	return jobs
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}

// stableSortByScore orders descending by score, keeping the original order of
// equal scores.
func stableSortByScore(scored []ScoredJob) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
}
