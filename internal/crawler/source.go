package crawler

import (
	"context"

	"github.com/minowang/jobcorpus/internal/record"
)

// Source produces a batch of raw records from one site or generator. Sources
// only fetch and map fields; all quality gating happens in the cleaning
// pipeline.
type Source interface {
	Name() string
	Crawl(ctx context.Context, client *Client) (record.Jobs, error)
}
