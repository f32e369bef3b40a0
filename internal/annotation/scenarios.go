package annotation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one advice setting with its full tip pools. The annotator
// samples subsets from the pools when synthesizing advice annotations.
type Scenario struct {
	Scenario      string   `yaml:"scenario"`
	ResumeTips    []string `yaml:"resume_tips"`
	InterviewTips []string `yaml:"interview_tips"`
	StrategyTips  []string `yaml:"strategy_tips"`
}

// defaultScenarios is the built-in advice bank, replaceable via a YAML file.
var defaultScenarios = []Scenario{
	{
		Scenario: "计算机本科应届生求职互联网大厂后端开发",
		ResumeTips: []string{
			"突出算法和数据结构项目经验，展示在 LeetCode 或牛客网的刷题成果",
			"强调参与的开源项目或 GitHub 贡献，体现代码质量",
			"列出熟悉的技术栈（Java/Python/Go）和框架（Spring Boot/Django）",
			"简历控制在1页，使用清晰的格式和排版",
		},
		InterviewTips: []string{
			"系统复习计算机基础（操作系统、网络、数据库）",
			"刷 LeetCode 中等难度题目至少 200 道",
			"准备常见的系统设计问题（如设计短链接服务）",
			"了解目标公司的技术栈和业务场景",
		},
		StrategyTips: []string{
			"提前批投递效率更高，关注公司官网和牛客网动态",
			"多投递几家公司，保底 offer 很重要",
			"参加公司举办的技术分享会或线下活动",
		},
	},
	{
		Scenario: "金融硕士应届生求职投行或咨询公司",
		ResumeTips: []string{
			"强调金融建模、估值分析等专业技能",
			"突出实习经历，尤其是在券商、投行或咨询公司的实习",
			"展示 CFA、CPA 等相关证书",
			"列出参与的案例分析比赛或商业竞赛获奖经历",
		},
		InterviewTips: []string{
			"准备常见的估值和财务建模问题",
			"了解宏观经济形势和金融市场动态",
			"练习 Case Interview 技巧",
			"准备英文面试，提升商务英语表达能力",
		},
		StrategyTips: []string{
			"提前申请暑期实习，转正机会较大",
			"通过校友内推提高通过率",
			"关注行业论坛和招聘公众号",
		},
	},
	{
		Scenario: "社会人士转行互联网产品经理",
		ResumeTips: []string{
			"突出之前工作中的产品思维和用户洞察",
			"展示独立完成的产品设计案例或原型",
			"列出熟悉的产品工具（Axure、Figma、墨刀）",
			"强调数据分析能力和用户研究经验",
		},
		InterviewTips: []string{
			"准备产品设计题目（如设计一款XX产品）",
			"了解常见的产品分析方法（AARRR、用户画像）",
			"准备竞品分析案例",
			"展示对行业和目标公司产品的理解",
		},
		StrategyTips: []string{
			"先从初级产品岗位或产品运营岗位切入",
			"参加产品经理培训课程，系统学习",
			"多投递中小型公司或创业公司",
		},
	},
}

// LoadScenarios reads an advice scenario bank from a YAML file. An empty path
// returns the built-in bank.
func LoadScenarios(path string) ([]Scenario, error) {
	if path == "" {
		return defaultScenarios, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var scenarios []Scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("parsing scenario file %q: %w", path, err)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %q contains no scenarios", path)
	}

	return scenarios, nil
}
