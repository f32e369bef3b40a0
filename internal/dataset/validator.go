package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Length band outside which a sample draws a warning, in characters.
const (
	minSampleLength = 50
	maxSampleLength = 2048
)

// minSamples below which the dataset-size warning fires.
const minSamples = 1000

// minTaskShare is the smallest acceptable fraction of any one task family.
const minTaskShare = 0.15

// Validator re-reads an assembled dataset and checks its structural and
// statistical health. Structural violations become errors and fail the
// dataset; everything else becomes warnings.
type Validator struct {
	logger   *zap.Logger
	errors   []string
	warnings []string
}

func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Validate runs the full check sequence against the dataset at path. Only a
// load failure short-circuits; all other checks run to completion and
// accumulate independently, so one pass surfaces every issue. Passed means
// the error list is empty; warnings never block.
func (v *Validator) Validate(path string) (bool, []string, []string) {
	v.logger.Info("validating dataset", zap.String("path", path))

	v.errors = nil
	v.warnings = nil

	items, err := loadItems(path)
	if err != nil {
		v.errors = append(v.errors, fmt.Sprintf("Failed to load dataset: %v", err))
		return false, v.errors, v.warnings
	}
	if len(items) == 0 {
		v.errors = append(v.errors, "Dataset is empty")
		return false, v.errors, v.warnings
	}

	v.checkFormat(items)
	v.checkCompleteness(items)
	v.checkQuality(items)
	v.checkStatistics(items)

	passed := len(v.errors) == 0
	v.logger.Info("validation finished",
		zap.Bool("passed", passed),
		zap.Int("errors", len(v.errors)),
		zap.Int("warnings", len(v.warnings)),
	)

	return passed, v.errors, v.warnings
}

// loadItems reads either a line-delimited file (.jsonl) or a single JSON
// array, chosen by extension.
func loadItems(path string) ([]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if !strings.HasSuffix(path, ".jsonl") {
		var items []any
		if err := json.NewDecoder(file).Decode(&items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var items []any
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var item any
		if err := json.Unmarshal([]byte(text), &item); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (v *Validator) checkFormat(items []any) {
	v.logger.Debug("checking data format")

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			v.errors = append(v.errors, fmt.Sprintf("Item %d: not an object", i))
			continue
		}

		text, present := obj["text"]
		if !present {
			v.errors = append(v.errors, fmt.Sprintf("Item %d: missing 'text' field", i))
			continue
		}
		if _, ok := text.(string); !ok {
			v.errors = append(v.errors, fmt.Sprintf("Item %d: 'text' field is not a string", i))
		}
	}
}

func (v *Validator) checkCompleteness(items []any) {
	v.logger.Debug("checking data completeness")

	for i, item := range items {
		text := itemText(item)

		if !strings.HasPrefix(text, InstructionOpen) {
			v.warnings = append(v.warnings, fmt.Sprintf("Item %d: does not start with instruction tag", i))
		}
		// Without the closing tag the response cannot be located at all.
		if !strings.Contains(text, InstructionClose) {
			v.errors = append(v.errors, fmt.Sprintf("Item %d: missing instruction closing tag", i))
		}
		if !strings.HasSuffix(text, EndOfSample) {
			v.warnings = append(v.warnings, fmt.Sprintf("Item %d: does not end with closing tag", i))
		}

		length := utf8.RuneCountInString(text)
		if length < minSampleLength {
			v.warnings = append(v.warnings, fmt.Sprintf("Item %d: text too short (%d chars)", i, length))
		} else if length > maxSampleLength {
			v.warnings = append(v.warnings, fmt.Sprintf("Item %d: text very long (%d chars), may need truncation", i, length))
		}
	}
}

func (v *Validator) checkQuality(items []any) {
	v.logger.Debug("checking content quality")

	seen := make(map[string]bool)
	duplicates := 0
	for i, item := range items {
		text := itemText(item)
		if seen[text] {
			duplicates++
			v.warnings = append(v.warnings, fmt.Sprintf("Item %d: duplicate text found", i))
			continue
		}
		seen[text] = true
	}
	if duplicates > 0 {
		v.warnings = append(v.warnings, fmt.Sprintf("Total %d duplicate items found", duplicates))
	}

	// Naive task membership by marker phrases; good enough to catch a
	// grossly skewed corpus.
	taskCounts := map[string]int{}
	for _, item := range items {
		text := itemText(item)
		if strings.Contains(text, markerInputParsing) || strings.Contains(text, "提取关键信息") {
			taskCounts["user_input_parsing"]++
		}
		if strings.Contains(text, markerJobMatching) || strings.Contains(text, "匹配结果") {
			taskCounts["job_matching"]++
		}
		if strings.Contains(text, markerAdvice) || strings.Contains(text, "简历优化") {
			taskCounts["advice_generation"]++
		}
	}

	total := 0
	for _, count := range taskCounts {
		total += count
	}
	if total > 0 {
		for _, task := range []string{"user_input_parsing", "job_matching", "advice_generation"} {
			ratio := float64(taskCounts[task]) / float64(total)
			if ratio < minTaskShare {
				v.warnings = append(v.warnings, fmt.Sprintf("Task '%s' is underrepresented (%.1f%%)", task, ratio*100))
			}
		}
	}

	v.logger.Debug("task distribution",
		zap.Int("user_input_parsing", taskCounts["user_input_parsing"]),
		zap.Int("job_matching", taskCounts["job_matching"]),
		zap.Int("advice_generation", taskCounts["advice_generation"]),
	)
}

func (v *Validator) checkStatistics(items []any) {
	v.logger.Debug("computing statistics")

	minLen, maxLen, sum := 0, 0, 0
	for i, item := range items {
		length := utf8.RuneCountInString(itemText(item))
		if i == 0 || length < minLen {
			minLen = length
		}
		if length > maxLen {
			maxLen = length
		}
		sum += length
	}

	mean := 0.0
	if len(items) > 0 {
		mean = float64(sum) / float64(len(items))
	}

	v.logger.Info("dataset statistics",
		zap.Int("total_samples", len(items)),
		zap.Int("min_length", minLen),
		zap.Int("max_length", maxLen),
		zap.Float64("avg_length", mean),
	)

	if len(items) < minSamples {
		v.warnings = append(v.warnings, fmt.Sprintf("Dataset is small (%d samples), may need more data", len(items)))
	}
	if maxLen > maxSampleLength {
		v.warnings = append(v.warnings, fmt.Sprintf("Some samples are very long (max %d), consider truncation", maxLen))
	}
}

// itemText extracts the text payload, tolerating malformed items so the
// checks after the format check can still run over them.
func itemText(item any) string {
	obj, ok := item.(map[string]any)
	if !ok {
		return ""
	}
	text, _ := obj["text"].(string)
	return text
}
