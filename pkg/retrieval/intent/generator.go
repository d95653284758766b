package intent

import (
	"context"

	"github.com/lookatitude/beluga-ai/pkg/retrieval/iface"
	"github.com/lookatitude/beluga-ai/pkg/retrieval/schema"
)

// DomainResponseGenerator is the facade the intent retrievers call after a
// query executes: it dispatches to the error strategy on failure, the
// no_results strategy on an empty set, and otherwise to the
// template.result_format strategy (spec §4.8), grounded on the pipeline's
// response/generator facade.
type DomainResponseGenerator struct {
	formatter *ResponseFormatter
	factory   *ResponseStrategyFactory
	inference iface.Inference
}

// NewDomainResponseGenerator wires a formatter, the default strategy set,
// and the inference client used for prose generation.
func NewDomainResponseGenerator(domain *schema.DomainConfig, inference iface.Inference) *DomainResponseGenerator {
	return &DomainResponseGenerator{
		formatter: NewResponseFormatter(domain),
		factory:   NewResponseStrategyFactory(),
		inference: inference,
	}
}

// Factory exposes the underlying strategy factory so callers can register
// custom strategies before Generate is first called.
func (g *DomainResponseGenerator) Factory() *ResponseStrategyFactory { return g.factory }

// Generate renders the final natural-language response plus any
// structured payload (table_data / summary_data) for one query's results.
func (g *DomainResponseGenerator) Generate(ctx context.Context, query string, tmpl schema.Template, entityName string, rows []map[string]any, queryErr error) (string, map[string]any) {
	req := ResponseRequest{
		Query:      query,
		Template:   tmpl,
		EntityName: entityName,
		Rows:       rows,
		Err:        queryErr,
		Inference:  g.inference,
		Formatter:  g.formatter,
	}

	var strategyName string
	switch {
	case queryErr != nil:
		strategyName = "error"
	case len(rows) == 0:
		strategyName = "no_results"
	case tmpl.ResultFormat == schema.ResultFormatSummary:
		strategyName = "summary"
	default:
		strategyName = "table"
	}

	strategy, ok := g.factory.Get(strategyName)
	if !ok {
		strategy = TableResponseStrategy{}
	}
	return strategy.Respond(ctx, req)
}
