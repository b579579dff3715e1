package convert

import (
	"fmt"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"

	"github.com/typeshift/typeshift/internal/annotate"
)

// Context carries one file through the conversion stages.
type Context struct {
	Path    string
	Source  string
	Program *ast.Program
	Edits   []annotate.Edit
	Output  string
	Err     error
}

// Processor is a single conversion stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func NewPipeline(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order, stopping at the first failure.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Err != nil {
			break
		}
	}
	return ctx
}

type parseStage struct{}

func (parseStage) Process(ctx *Context) *Context {
	prog, err := parser.ParseFile(nil, ctx.Path, ctx.Source, 0)
	if err != nil {
		ctx.Err = fmt.Errorf("parse: %w", err)
		return ctx
	}
	ctx.Program = prog
	return ctx
}

type annotateStage struct{}

func (annotateStage) Process(ctx *Context) *Context {
	ctx.Edits = annotate.New(ctx.Source).Program(ctx.Program)
	return ctx
}

type emitStage struct{}

func (emitStage) Process(ctx *Context) *Context {
	ctx.Output = annotate.Apply(ctx.Source, ctx.Edits)
	return ctx
}

// Source converts one JavaScript source text to TypeScript. path is used in
// parse error positions only.
func Source(path, source string) (string, error) {
	ctx := NewPipeline(parseStage{}, annotateStage{}, emitStage{}).
		Run(&Context{Path: path, Source: source})
	if ctx.Err != nil {
		return "", ctx.Err
	}
	return ctx.Output, nil
}
