package report

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// DefaultMaxDepth bounds query nesting for ExecuteQuery
const DefaultMaxDepth = 6

// ExecuteQuery runs query against schema after checking its depth
func ExecuteQuery(schema graphql.Schema, query string, variables map[string]any) *graphql.Result {
	return ExecuteWithDepthLimit(schema, query, DefaultMaxDepth, variables)
}

// ExecuteWithDepthLimit rejects queries nested deeper than maxDepth before
// executing them.
func ExecuteWithDepthLimit(schema graphql.Schema, query string, maxDepth int, variables map[string]any) *graphql.Result {
	if err := ValidateQueryDepth(query, maxDepth); err != nil {
		return &graphql.Result{
			Errors: []gqlerrors.FormattedError{gqlerrors.FormatError(err)},
		}
	}

	params := graphql.Params{
		Schema:        schema,
		RequestString: query,
	}
	if variables != nil {
		params.VariableValues = variables
	}
	return graphql.Do(params)
}

// ValidateQueryDepth parses query and compares its selection depth to maxDepth
func ValidateQueryDepth(query string, maxDepth int) error {
	document, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return fmt.Errorf("failed to parse query: %w", err)
	}

	if depth := queryDepth(document); depth > maxDepth {
		return fmt.Errorf("query depth %d exceeds maximum allowed depth %d", depth, maxDepth)
	}
	return nil
}

func queryDepth(document *ast.Document) int {
	fragments := make(map[string]*ast.FragmentDefinition)
	for _, definition := range document.Definitions {
		if frag, ok := definition.(*ast.FragmentDefinition); ok {
			fragments[frag.Name.Value] = frag
		}
	}

	maxDepth := 0
	for _, definition := range document.Definitions {
		if op, ok := definition.(*ast.OperationDefinition); ok {
			if d := selectionDepth(op.SelectionSet, 0, fragments, map[string]bool{}); d > maxDepth {
				maxDepth = d
			}
		}
	}
	return maxDepth
}

// selectionDepth counts object-valued levels; leaf fields add nothing.
func selectionDepth(set *ast.SelectionSet, depth int, fragments map[string]*ast.FragmentDefinition, visiting map[string]bool) int {
	if set == nil {
		return depth
	}

	maxDepth := depth
	for _, selection := range set.Selections {
		var d int
		switch sel := selection.(type) {
		case *ast.Field:
			if strings.HasPrefix(sel.Name.Value, "__") || sel.SelectionSet == nil {
				continue
			}
			d = selectionDepth(sel.SelectionSet, depth+1, fragments, visiting)
		case *ast.InlineFragment:
			d = selectionDepth(sel.SelectionSet, depth, fragments, visiting)
		case *ast.FragmentSpread:
			name := sel.Name.Value
			frag, ok := fragments[name]
			if !ok || visiting[name] {
				continue
			}
			visiting[name] = true
			d = selectionDepth(frag.SelectionSet, depth, fragments, visiting)
			delete(visiting, name)
		}
		if d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}
