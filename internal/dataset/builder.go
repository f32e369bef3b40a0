package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minowang/jobcorpus/internal/annotation"
)

// Task marker phrases embedded in the rendered instructions. The validator
// relies on them for naive task-share estimation, so they are constants
// shared by both sides.
const (
	markerInputParsing = "解析用户的求职需求"
	markerJobMatching  = "匹配合适的岗位"
	markerAdvice       = "职业规划"
)

const topMatches = 5

// Build renders one annotation into one formatted sample, dispatching on the
// annotation's type tag.
func Build(ann *annotation.Annotation) (*Sample, error) {
	switch ann.Type {
	case annotation.TypeInputParsing:
		return buildInputParsing(ann)
	case annotation.TypeJobMatching:
		return buildJobMatching(ann)
	case annotation.TypeAdvice:
		return buildAdvice(ann)
	default:
		return nil, fmt.Errorf("unknown annotation type: %q", ann.Type)
	}
}

func buildInputParsing(ann *annotation.Annotation) (*Sample, error) {
	if ann.StructuredParams == nil {
		return nil, fmt.Errorf("annotation %s: structured params are required", ann.ID)
	}

	instruction := fmt.Sprintf(`你是一个招聘助手，负责解析用户的求职需求。
请根据用户输入，提取关键信息并以 JSON 格式输出，包括：专业(major)、学历(education)、目标企业类型(target_company_type)、地点(location)、岗位类型(job_type)、职位(position)。

用户输入：%s`, ann.UserInput)

	// Struct field order gives the stable key order the consumer expects.
	response, err := marshalIndent(ann.StructuredParams)
	if err != nil {
		return nil, fmt.Errorf("annotation %s: %w", ann.ID, err)
	}

	return &Sample{Text: Render(instruction, response)}, nil
}

type matchResult struct {
	Rank       int     `json:"rank"`
	Company    string  `json:"company"`
	Position   string  `json:"position"`
	Location   string  `json:"location"`
	MatchScore float64 `json:"match_score"`
	Reason     string  `json:"reason"`
}

func buildJobMatching(ann *annotation.Annotation) (*Sample, error) {
	if ann.UserParams == nil {
		return nil, fmt.Errorf("annotation %s: user params are required", ann.ID)
	}
	if len(ann.Jobs) == 0 {
		return nil, fmt.Errorf("annotation %s: job list is empty", ann.ID)
	}

	var jobList strings.Builder
	for i, scored := range ann.Jobs {
		fmt.Fprintf(&jobList, "%d. %s - %s (%s)\n",
			i+1, scored.Job.CompanyName, scored.Job.JobTitle, scored.Job.Location)
	}

	instruction := fmt.Sprintf(`你是一个招聘助手，负责为用户匹配合适的岗位。
根据用户需求和岗位列表，选出最匹配的前5个岗位，并说明推荐理由。

用户需求：
- 专业：%s
- 学历：%s
- 目标企业：%s
- 地点：%s

候选岗位：
%s

请输出匹配结果（JSON格式），包含岗位序号、匹配度分数(0-1)、推荐理由。`,
		ann.UserParams.Major,
		ann.UserParams.Education,
		ann.UserParams.TargetCompanyType,
		ann.UserParams.Location,
		jobList.String(),
	)

	// Top entries by descending score; ties keep their input order.
	top := make([]annotation.ScoredJob, len(ann.Jobs))
	copy(top, ann.Jobs)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].MatchScore > top[j].MatchScore
	})
	if len(top) > topMatches {
		top = top[:topMatches]
	}

	results := make([]matchResult, 0, len(top))
	for i, scored := range top {
		results = append(results, matchResult{
			Rank:       i + 1,
			Company:    scored.Job.CompanyName,
			Position:   scored.Job.JobTitle,
			Location:   scored.Job.Location,
			MatchScore: scored.MatchScore,
			Reason:     scored.Reason,
		})
	}

	response, err := marshalIndent(results)
	if err != nil {
		return nil, fmt.Errorf("annotation %s: %w", ann.ID, err)
	}

	return &Sample{Text: Render(instruction, response)}, nil
}

func buildAdvice(ann *annotation.Annotation) (*Sample, error) {
	if ann.Advice == nil {
		return nil, fmt.Errorf("annotation %s: advice payload is required", ann.ID)
	}

	instruction := fmt.Sprintf(`你是一个资深的职业规划顾问，请根据求职场景提供针对性的建议。

求职场景：%s

请提供以下三方面的建议（每方面3-5条）：
1. 简历优化建议
2. 面试准备建议
3. 投递策略建议`, ann.Scenario)

	response := fmt.Sprintf(`## 简历优化建议

%s

## 面试准备建议

%s

## 投递策略建议

%s`,
		formatTips(ann.Advice.ResumeOptimization),
		formatTips(ann.Advice.InterviewPreparation),
		formatTips(ann.Advice.ApplicationStrategy),
	)

	return &Sample{Text: Render(instruction, response)}, nil
}

// formatTips renders tips as a dash-prefixed bullet list in input order.
func formatTips(tips []string) string {
	lines := make([]string, 0, len(tips))
	for _, tip := range tips {
		lines = append(lines, "- "+tip)
	}
	return strings.Join(lines, "\n")
}
