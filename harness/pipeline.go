package harness

import (
	"context"
	"time"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/logger"
	"github.com/teranos/sharpgen/syntax"
)

type inputSource struct {
	name string
	text string
}

// Pipeline runs generators in sequence over a fixed set of inputs.
type Pipeline struct {
	generators []Generator
	services   *Services
	inputs     []inputSource
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Add appends generators. They run in the order added.
func (p *Pipeline) Add(gens ...Generator) *Pipeline {
	p.generators = append(p.generators, gens...)
	return p
}

// WithServices sets the collaborators every generator can look up.
func (p *Pipeline) WithServices(s *Services) *Pipeline {
	p.services = s
	return p
}

// WithSource adds an input file.
func (p *Pipeline) WithSource(name, text string) *Pipeline {
	p.inputs = append(p.inputs, inputSource{name: name, text: text})
	return p
}

// Run parses the inputs and runs every generator. It stops at the first
// generator error or when ctx is cancelled between generators. Sources
// produced by a generator are parsed and become inputs of the generators
// after it.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	log := logger.ComponentLogger("harness")
	if len(p.generators) == 0 {
		return nil, errors.InvalidOperationf("pipeline has no generators")
	}
	services := p.services
	if services == nil {
		services = NewServices()
	}

	files := make([]*syntax.File, 0, len(p.inputs))
	for _, in := range p.inputs {
		f, err := syntax.Parse(in.name, in.text)
		if err != nil {
			return nil, errors.Wrapf(err, "parse input %s", in.name)
		}
		files = append(files, f)
	}

	res := &Result{}
	hints := make(map[string]bool)
	for i, gen := range p.generators {
		if err := ctx.Err(); err != nil {
			return res, errors.Wrapf(err, "pipeline cancelled before generator %s", gen.Name())
		}

		start := time.Now()
		gc := &Context{
			generator: gen.Name(),
			files:     files,
			services:  services,
			hints:     hints,
		}
		if err := gen.Generate(ctx, gc); err != nil {
			res.Diagnostics = append(res.Diagnostics, gc.diagnostics...)
			return res, errors.Wrapf(err, "generator %s", gen.Name())
		}
		res.Sources = append(res.Sources, gc.sources...)
		res.Diagnostics = append(res.Diagnostics, gc.diagnostics...)

		log.Debugw("generator finished",
			logger.FieldGenerator, gen.Name(),
			logger.FieldCount, len(gc.sources),
			logger.FieldDiagnostics, len(gc.diagnostics),
			logger.FieldDurationMS, time.Since(start).Milliseconds())

		if i == len(p.generators)-1 {
			break
		}
		for _, src := range gc.sources {
			f, err := syntax.Parse(src.Hint, src.Text)
			if err != nil {
				return res, errors.WithHint(
					errors.Wrapf(err, "generator %s produced unparseable source %s", gen.Name(), src.Hint),
					"later generators read generated sources as input")
			}
			files = append(files, f)
		}
	}
	return res, nil
}

// RunGenerator runs a single generator over sources given as name, text
// pairs.
func RunGenerator(ctx context.Context, gen Generator, sources ...string) (*Result, error) {
	if len(sources)%2 != 0 {
		return nil, errors.InvalidArgumentf("sources must be name, text pairs; got %d values", len(sources))
	}
	p := NewPipeline().Add(gen)
	for i := 0; i < len(sources); i += 2 {
		p.WithSource(sources[i], sources[i+1])
	}
	return p.Run(ctx)
}
