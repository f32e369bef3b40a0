package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/minowang/jobcorpus/internal/record"
)

// CampusConfig configures one campus recruitment board.
type CampusConfig struct {
	Name      string `mapstructure:"name"`
	BaseURL   string `mapstructure:"base-url"`
	JobsURL   string `mapstructure:"jobs-url"`
	Keywords  string `mapstructure:"keywords"`
	City      string `mapstructure:"city"`
	PageLimit int    `mapstructure:"page-limit"`
	PageSize  int    `mapstructure:"page-size"`
}

// CampusSource crawls a campus recruitment board that serves either a JSON
// listing API or a plain HTML job list.
type CampusSource struct {
	cfg    CampusConfig
	logger *zap.Logger
}

func NewCampusSource(cfg CampusConfig, logger *zap.Logger) *CampusSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 20
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	return &CampusSource{cfg: cfg, logger: logger}
}

func (s *CampusSource) Name() string { return s.cfg.Name }

type campusListing struct {
	Data struct {
		Rows []campusRow `json:"rows"`
	} `json:"data"`
}

type campusRow struct {
	ID           any    `json:"id"`
	CompanyName  string `json:"companyName"`
	JobName      string `json:"jobName"`
	City         string `json:"city"`
	Education    string `json:"education"`
	Major        string `json:"major"`
	Salary       string `json:"salary"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	ApplyURL     string `json:"applyUrl"`
	Deadline     string `json:"deadline"`
	PublishTime  string `json:"publishTime"`
}

// Crawl pages through the board until the page limit or an empty page.
func (s *CampusSource) Crawl(ctx context.Context, client *Client) (record.Jobs, error) {
	s.logger.Info("crawling campus board", zap.String("source", s.cfg.Name))

	var all record.Jobs
	headers := http.Header{"Referer": []string{s.cfg.BaseURL}}

	for page := 1; page <= s.cfg.PageLimit; page++ {
		query := url.Values{
			"keyword":  []string{s.cfg.Keywords},
			"city":     []string{s.cfg.City},
			"pageNo":   []string{strconv.Itoa(page)},
			"pageSize": []string{strconv.Itoa(s.cfg.PageSize)},
		}

		body, err := client.Get(ctx, s.cfg.JobsURL, query, headers)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			s.logger.Warn("fetching page failed",
				zap.Int("page", page),
				zap.Error(err),
			)
			break
		}

		jobs := s.parseJSON(body)
		if jobs == nil {
			jobs = s.parseHTML(body)
		}
		if len(jobs) == 0 {
			s.logger.Info("no more jobs found", zap.Int("page", page))
			break
		}

		all = append(all, jobs...)
	}

	s.logger.Info("campus crawl complete",
		zap.String("source", s.cfg.Name),
		zap.Int("jobs", all.Len()),
	)
	return all, nil
}

func (s *CampusSource) parseJSON(body []byte) record.Jobs {
	var listing campusListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil
	}

	jobs := make(record.Jobs, 0, len(listing.Data.Rows))
	for _, row := range listing.Data.Rows {
		job := &record.Job{
			Source:       s.cfg.Name,
			JobID:        stringify(row.ID),
			CompanyName:  record.CleanText(row.CompanyName),
			JobTitle:     record.CleanText(row.JobName),
			Location:     record.CleanText(row.City),
			Education:    record.CleanText(row.Education),
			Major:        record.CleanText(row.Major),
			Salary:       record.CleanText(row.Salary),
			Description:  record.CleanText(row.Description),
			Requirements: record.CleanText(row.Requirements),
			ApplyURL:     row.ApplyURL,
			Deadline:     row.Deadline,
			PublishTime:  row.PublishTime,
			CrawlTime:    time.Now().Format(time.RFC3339),
		}
		jobs = append(jobs, job)
	}

	if len(jobs) == 0 {
		return nil
	}
	return jobs
}

func (s *CampusSource) parseHTML(body []byte) record.Jobs {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		s.logger.Warn("parsing HTML failed", zap.Error(err))
		return nil
	}

	var jobs record.Jobs
	doc.Find(".job-item, .position-item").Each(func(_ int, item *goquery.Selection) {
		title := record.CleanText(item.Find(".job-title, .position-name").First().Text())
		link, _ := item.Find("a[href]").First().Attr("href")
		if title == "" || link == "" {
			return
		}

		jobs = append(jobs, &record.Job{
			Source:      s.cfg.Name,
			JobTitle:    title,
			CompanyName: record.CleanText(item.Find(".company-name").First().Text()),
			Location:    record.CleanText(item.Find(".job-location, .location").First().Text()),
			ApplyURL:    s.absoluteURL(link),
			CrawlTime:   time.Now().Format(time.RFC3339),
		})
	})

	return jobs
}

// stringify renders a JSON id that may arrive as a number or a string.
func stringify(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return fmt.Sprintf("%v", id)
	}
}

// absoluteURL resolves board-relative links against the base URL.
func (s *CampusSource) absoluteURL(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}

	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return link
	}
	ref, err := url.Parse(link)
	if err != nil {
		return link
	}
	return base.ResolveReference(ref).String()
}
