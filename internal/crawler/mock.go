package crawler

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/minowang/jobcorpus/internal/record"
)

var (
	mockCompanies = []string{
		"字节跳动", "腾讯", "阿里巴巴", "百度", "美团",
		"京东", "网易", "小米", "快手", "拼多多",
		"微软", "谷歌", "亚马逊", "苹果", "Meta",
		"中信证券", "华泰证券", "招商银行", "工商银行",
		"华为", "比亚迪", "宁德时代", "海尔",
	}

	mockPositions = map[string][]string{
		"技术": {
			"后端开发工程师", "前端开发工程师", "算法工程师",
			"数据工程师", "测试工程师", "运维工程师",
			"移动开发工程师", "全栈工程师", "架构师",
		},
		"产品": {
			"产品经理", "产品运营", "数据产品经理",
			"用户研究", "交互设计师", "UI设计师",
		},
		"市场": {
			"市场营销", "品牌推广", "商务拓展",
			"销售经理", "渠道经理",
		},
		"职能": {
			"人力资源", "财务分析", "法务专员",
			"行政助理", "项目经理",
		},
	}

	mockCategories = []string{"技术", "产品", "市场", "职能"}

	mockCities = []string{
		"北京", "上海", "深圳", "杭州", "广州",
		"成都", "南京", "武汉", "西安", "苏州",
	}

	mockEducations = []string{"本科", "硕士", "博士", "不限"}
)

// MockSource generates realistic listings without touching the network, for
// offline runs and pipeline tests. A fixed seed reproduces the same batch
// apart from the relative deadline/publish dates.
type MockSource struct {
	count  int
	rng    *rand.Rand
	logger *zap.Logger
}

func NewMockSource(count int, seed int64, logger *zap.Logger) *MockSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if count <= 0 {
		count = 500
	}
	return &MockSource{
		count:  count,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

func (s *MockSource) Name() string { return "mock" }

func (s *MockSource) Crawl(_ context.Context, _ *Client) (record.Jobs, error) {
	s.logger.Info("generating mock jobs", zap.Int("count", s.count))

	now := time.Now()
	jobs := make(record.Jobs, 0, s.count)

	for i := 0; i < s.count; i++ {
		category := mockCategories[s.rng.Intn(len(mockCategories))]
		titles := mockPositions[category]
		title := titles[s.rng.Intn(len(titles))]

		deadline := now.AddDate(0, 0, 30+s.rng.Intn(61))
		published := now.AddDate(0, 0, -(1 + s.rng.Intn(30)))

		jobs = append(jobs, &record.Job{
			Source:       "mock",
			JobID:        fmt.Sprintf("mock_%04d", i),
			CompanyName:  mockCompanies[s.rng.Intn(len(mockCompanies))],
			JobTitle:     title,
			Category:     category,
			Location:     mockCities[s.rng.Intn(len(mockCities))],
			Education:    mockEducations[s.rng.Intn(len(mockEducations))],
			Salary:       s.salary(title),
			Description:  fmt.Sprintf("负责%s相关工作，参与%s团队的核心项目。", title, category),
			Requirements: fmt.Sprintf("%s及以上学历，有%s相关经验者优先。", mockEducations[s.rng.Intn(2)], title),
			Tags:         []string{category, "校招"},
			ApplyURL:     fmt.Sprintf("https://jobs.example.com/position/%d", i),
			Deadline:     deadline.Format("2006-01-02"),
			PublishTime:  published.Format("2006-01-02"),
			CrawlTime:    now.Format(time.RFC3339),
		})
	}

	return jobs, nil
}

func (s *MockSource) salary(title string) string {
	low := 8 + s.rng.Intn(13)
	spread := 5 + s.rng.Intn(11)
	if strings.Contains(title, "工程师") || strings.Contains(title, "经理") {
		low = 15 + s.rng.Intn(16)
		spread = 10 + s.rng.Intn(11)
	}
	return fmt.Sprintf("%d-%dK", low, low+spread)
}
