package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/minowang/jobcorpus/internal/record"
)

// AdviceConfig configures a career-advice content feed (Q&A topic essence).
type AdviceConfig struct {
	Name    string `mapstructure:"name"`
	APIURL  string `mapstructure:"api-url"`
	TopicID string `mapstructure:"topic-id"`
	Limit   int    `mapstructure:"limit"`
}

// AdviceSource crawls highly-voted career-advice answers. Answers map onto
// raw records with the question as title, the author as the company-name
// equivalent and the answer URL as the reference URL, so the same cleaning
// gates apply.
type AdviceSource struct {
	cfg    AdviceConfig
	logger *zap.Logger
}

func NewAdviceSource(cfg AdviceConfig, logger *zap.Logger) *AdviceSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	return &AdviceSource{cfg: cfg, logger: logger}
}

func (s *AdviceSource) Name() string { return s.cfg.Name }

type adviceFeed struct {
	Data []struct {
		Target struct {
			URL      string `json:"url"`
			Content  string `json:"content"`
			Excerpt  string `json:"excerpt"`
			Voteup   int    `json:"voteup_count"`
			Question struct {
				Title string `json:"title"`
			} `json:"question"`
			Author struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"target"`
	} `json:"data"`
	Paging struct {
		IsEnd bool `json:"is_end"`
	} `json:"paging"`
}

const advicePageSize = 20

func (s *AdviceSource) Crawl(ctx context.Context, client *Client) (record.Jobs, error) {
	s.logger.Info("crawling advice feed",
		zap.String("source", s.cfg.Name),
		zap.String("topic", s.cfg.TopicID),
	)

	var all record.Jobs
	feedURL := fmt.Sprintf("%s/topics/%s/feeds/essence", strings.TrimSuffix(s.cfg.APIURL, "/"), s.cfg.TopicID)

	for offset := 0; len(all) < s.cfg.Limit; offset += advicePageSize {
		query := url.Values{
			"limit":  []string{strconv.Itoa(advicePageSize)},
			"offset": []string{strconv.Itoa(offset)},
		}

		body, err := client.Get(ctx, feedURL, query, nil)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			s.logger.Warn("fetching feed page failed", zap.Int("offset", offset), zap.Error(err))
			break
		}

		var feed adviceFeed
		if err := json.Unmarshal(body, &feed); err != nil {
			s.logger.Warn("parsing feed failed", zap.Error(err))
			break
		}
		if len(feed.Data) == 0 {
			break
		}

		for _, item := range feed.Data {
			target := item.Target
			content := stripHTML(target.Content)
			if content == "" {
				content = record.CleanText(target.Excerpt)
			}
			if target.Question.Title == "" || content == "" {
				continue
			}

			all = append(all, &record.Job{
				Source:      s.cfg.Name,
				JobTitle:    record.CleanText(target.Question.Title),
				CompanyName: record.CleanText(target.Author.Name),
				Description: content,
				ApplyURL:    target.URL,
				CrawlTime:   time.Now().Format(time.RFC3339),
				Extra: map[string]any{
					"voteup_count": target.Voteup,
				},
			})
		}

		if feed.Paging.IsEnd {
			break
		}
	}

	if len(all) > s.cfg.Limit {
		all = all[:s.cfg.Limit]
	}

	s.logger.Info("advice crawl complete",
		zap.String("source", s.cfg.Name),
		zap.Int("items", all.Len()),
	)
	return all, nil
}

// stripHTML flattens answer markup to plain text.
func stripHTML(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record.CleanText(html)
	}
	return record.CleanText(doc.Text())
}
