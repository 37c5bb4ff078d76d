// Package configquery evaluates JSONPath expressions over a Config.
package configquery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/bangs/internal/domain"
)

// Query evaluates expr (for example "$.bangs[0].urls") against cfg's JSON form.
func Query(cfg domain.Config, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, &domain.OpError{
			Op:   "configquery.query",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("empty expression: %w", domain.ErrInvalidConfig),
		}
	}

	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, &domain.OpError{Op: "configquery.marshal", Kind: domain.KindExecution, Err: err}
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &domain.OpError{Op: "configquery.unmarshal", Kind: domain.KindExecution, Err: err}
	}

	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "configquery.query",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("%s: %w", expr, err),
		}
	}
	return v, nil
}
