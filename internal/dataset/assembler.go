package dataset

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/minowang/jobcorpus/internal/annotation"
)

// Split holds the three disjoint dataset partitions. Together they are
// exhaustive of the shuffled sample sequence.
type Split struct {
	Train []*Sample
	Eval  []*Sample
	Test  []*Sample
}

func (s *Split) Total() int {
	return len(s.Train) + len(s.Eval) + len(s.Test)
}

// Assembler turns annotation records into a shuffled, partitioned corpus.
type Assembler struct {
	TrainRatio float64
	EvalRatio  float64
	Seed       int64

	logger *zap.Logger
}

func NewAssembler(trainRatio, evalRatio float64, seed int64, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		TrainRatio: trainRatio,
		EvalRatio:  evalRatio,
		Seed:       seed,
		logger:     logger,
	}
}

// Build groups annotations by type, renders each group with its builder,
// shuffles the combined samples with the configured seed and splits by ratio.
// Annotations with unknown type tags or broken payloads are dropped, not
// fatal. No minimum size is enforced; run the validator on the output.
func (a *Assembler) Build(annotations []*annotation.Annotation) *Split {
	a.logger.Info("building dataset", zap.Int("annotations", len(annotations)))

	grouped := map[string][]*annotation.Annotation{
		annotation.TypeInputParsing: nil,
		annotation.TypeJobMatching:  nil,
		annotation.TypeAdvice:       nil,
	}
	for _, ann := range annotations {
		if _, known := grouped[ann.Type]; !known {
			a.logger.Debug("dropping annotation with unknown type",
				zap.String("type", ann.Type),
				zap.String("id", ann.ID),
			)
			continue
		}
		grouped[ann.Type] = append(grouped[ann.Type], ann)
	}

	var samples []*Sample
	for _, typ := range []string{annotation.TypeInputParsing, annotation.TypeJobMatching, annotation.TypeAdvice} {
		built := 0
		for _, ann := range grouped[typ] {
			sample, err := Build(ann)
			if err != nil {
				a.logger.Warn("skipping annotation", zap.Error(err))
				continue
			}
			samples = append(samples, sample)
			built++
		}
		a.logger.Info("built samples", zap.String("type", typ), zap.Int("count", built))
	}

	// Shuffle so partition membership does not correlate with task type.
	// Seeded, so the split is reproducible.
	rng := rand.New(rand.NewSource(a.Seed))
	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})

	split := a.split(samples)

	a.logger.Info("dataset split",
		zap.Int("train", len(split.Train)),
		zap.Int("eval", len(split.Eval)),
		zap.Int("test", len(split.Test)),
	)

	return split
}

func (a *Assembler) split(samples []*Sample) *Split {
	total := len(samples)

	trainSize := int(float64(total) * a.TrainRatio)
	evalSize := int(float64(total) * a.EvalRatio)

	if trainSize > total {
		trainSize = total
	}
	if trainSize+evalSize > total {
		evalSize = total - trainSize
	}

	return &Split{
		Train: samples[:trainSize],
		Eval:  samples[trainSize : trainSize+evalSize],
		Test:  samples[trainSize+evalSize:],
	}
}
