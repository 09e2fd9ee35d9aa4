// Package pipeline chains wallsy subcommands into a single image pipeline.
//
// A pipeline works on a stream of file paths. Source stages extend the
// stream, effect stages map every file to a processed copy, and sink stages
// pass the stream through after a side effect. Stages are parsed from the
// command line, each with its own flag set.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoInput is returned by stages that need a sourced image.
var ErrNoInput = errors.New("no image in the pipeline, source one with 'add' or 'random' first")

type Stage interface {
	Name() string
	Apply(ctx context.Context, files []string) ([]string, error)
}

// repeater is implemented by the every stage.
type repeater interface {
	Interval() time.Duration
}

func New(logger *zap.Logger, stages ...Stage) *Pipeline {
	p := &Pipeline{
		stages:    stages,
		errorWait: 3 * time.Second,
		log:       logger,
	}

	for _, st := range stages {
		if r, ok := st.(repeater); ok {
			p.repeat = r.Interval()
		}
	}

	return p
}

type Pipeline struct {
	stages    []Stage
	repeat    time.Duration
	errorWait time.Duration
	log       *zap.Logger
}

// Repeat reports the rerun interval requested by an every stage, zero for a
// one-shot pipeline.
func (p *Pipeline) Repeat() time.Duration {
	return p.repeat
}

// Run pushes the seed files through every stage and returns the final
// stream.
func (p *Pipeline) Run(ctx context.Context, seed []string) ([]string, error) {
	files := seed

	for _, st := range p.stages {
		var err error
		if files, err = st.Apply(ctx, files); err != nil {
			return nil, fmt.Errorf("%s: %w", st.Name(), err)
		}

		p.log.With(
			zap.String("stage", st.Name()),
			zap.Int("files", len(files)),
		).Debug("stage done")
	}

	return files, nil
}

// RunLoop runs the pipeline once, or on the every interval until the context
// is canceled. Each successful round reports its final stream to sink.
func (p *Pipeline) RunLoop(ctx context.Context, seed []string, sink func(files []string)) error {
	if p.repeat == 0 {
		files, err := p.Run(ctx, seed)
		if err != nil {
			return err
		}
		sink(files)
		return nil
	}

	timer := time.NewTimer(time.Nanosecond)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			if files, err := p.Run(ctx, seed); err != nil {
				p.log.With(zap.Error(err)).Info("pipeline round failed")
				timer.Reset(p.errorWait)
			} else {
				sink(files)
				timer.Reset(p.repeat)
			}
		}
	}
}

func requireFiles(files []string) error {
	if len(files) == 0 {
		return ErrNoInput
	}
	return nil
}
