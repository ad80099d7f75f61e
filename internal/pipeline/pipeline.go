// Package pipeline turns a deck file into everything a study session
// needs: parsed slides, image analysis, a summary, a quiz and tutor
// context.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/llm"
	"github.com/abhisek/studydeck/internal/quiz"
	"github.com/abhisek/studydeck/internal/store"
	"github.com/abhisek/studydeck/internal/summary"
	"github.com/abhisek/studydeck/internal/vision"
)

// DefaultVisionTimeout bounds a single image analysis when the study
// config sets none.
const DefaultVisionTimeout = 60 * time.Second

// visionWorkers caps concurrent image analyses.
const visionWorkers = 4

// Stage names a pipeline step.
type Stage string

const (
	StageParsing      Stage = "parsing"
	StageImages       Stage = "images"
	StageSummary      Stage = "summary"
	StageQuiz         Stage = "quiz"
	StageTutorContext Stage = "tutor-context"
	StageDone         Stage = "done"
)

// Step reports progress. Done and Total count items within the stage
// where that makes sense.
type Step struct {
	Stage  Stage
	Detail string
	Done   int
	Total  int
}

// Result is the output of one processing run.
type Result struct {
	RunID   string
	Path    string
	Slides  []deck.Slide
	Summary summary.Summary
	Quiz    quiz.Set
	Context string
}

// RunRecorder persists processing run outcomes.
type RunRecorder interface {
	AppendRunEvent(ctx context.Context, data store.RunEventData) error
}

// Processor runs the pipeline.
type Processor struct {
	provider llm.Provider
	runs     RunRecorder
}

// New creates a Processor. runs may be nil.
func New(provider llm.Provider, runs RunRecorder) *Processor {
	return &Processor{provider: provider, runs: runs}
}

// Process parses the deck at path and generates study material. Only a
// parse failure is fatal; model failures degrade into fallbacks. onStep
// may be nil and may be called from several goroutines, one call at a
// time.
func (p *Processor) Process(ctx context.Context, path string, cfg config.Study, onStep func(Step)) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Path: path}
	report := serialize(onStep)

	report(Step{Stage: StageParsing, Detail: path})
	slides, err := deck.Open(path)
	if err != nil {
		p.record(ctx, res, start, err)
		return nil, err
	}
	res.Slides = slides
	report(Step{Stage: StageParsing, Detail: fmt.Sprintf("%d slides", len(slides)), Done: 1, Total: 1})

	if cfg.ImagesEnabled() {
		if err := p.analyzeImages(ctx, res.Slides, cfg, report); err != nil {
			p.record(ctx, res, start, err)
			return nil, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report(Step{Stage: StageSummary, Total: 1})
		res.Summary = summary.New(p.provider, cfg.Level).Summarize(gctx, res.Slides)
		report(Step{Stage: StageSummary, Done: 1, Total: 1})
		return nil
	})
	g.Go(func() error {
		report(Step{Stage: StageQuiz, Total: 1})
		res.Quiz = quiz.NewGenerator(p.provider, cfg.QuizOptions()).Generate(gctx, res.Slides)
		report(Step{Stage: StageQuiz, Detail: fmt.Sprintf("%d questions", res.Quiz.Count()), Done: 1, Total: 1})
		return nil
	})
	if err := g.Wait(); err != nil {
		p.record(ctx, res, start, err)
		return nil, err
	}

	report(Step{Stage: StageTutorContext})
	res.Context = deck.FormatContext(res.Slides)

	p.record(ctx, res, start, nil)
	report(Step{Stage: StageDone})
	return res, nil
}

// analyzeImages attaches a description of the first image of every
// image-bearing slide.
func (p *Processor) analyzeImages(ctx context.Context, slides []deck.Slide, cfg config.Study, report func(Step)) error {
	var targets []int
	for i, s := range slides {
		if s.HasImages() && s.VisionAnalysis == "" {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	timeout := cfg.VisionTimeout
	if timeout == 0 {
		timeout = DefaultVisionTimeout
	}
	analyzer := vision.New(p.provider, timeout)

	var mu sync.Mutex
	done := 0
	report(Step{Stage: StageImages, Total: len(targets)})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(visionWorkers)
	for _, i := range targets {
		g.Go(func() error {
			s := &slides[i]
			s.VisionAnalysis = analyzer.Analyze(gctx, s.Images[0], deck.CombinedText(*s))

			mu.Lock()
			done++
			n := done
			mu.Unlock()
			report(Step{Stage: StageImages, Detail: fmt.Sprintf("slide %d", s.Index), Done: n, Total: len(targets)})
			return gctx.Err()
		})
	}
	return g.Wait()
}

func (p *Processor) record(ctx context.Context, res *Result, start time.Time, runErr error) {
	if p.runs == nil {
		return
	}
	data := store.RunEventData{
		RunID:           res.RunID,
		DeckPath:        res.Path,
		SlideCount:      len(res.Slides),
		ImageCount:      deck.CountImages(res.Slides),
		QuestionCount:   res.Quiz.Count(),
		SummaryDegraded: res.Summary.Degraded,
		QuizDegraded:    res.Quiz.Fallback,
		DurationMs:      time.Since(start).Milliseconds(),
		Success:         runErr == nil,
	}
	if runErr != nil {
		data.ErrorMessage = runErr.Error()
	}
	if err := p.runs.AppendRunEvent(context.WithoutCancel(ctx), data); err != nil {
		slog.Warn("failed to record processing run", "error", err, "run", res.RunID)
	}
}

func serialize(fn func(Step)) func(Step) {
	if fn == nil {
		return func(Step) {}
	}
	var mu sync.Mutex
	return func(s Step) {
		mu.Lock()
		defer mu.Unlock()
		fn(s)
	}
}
