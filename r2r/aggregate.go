/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package r2r

import (
	"fmt"

	"github.com/rulego/rspql/quad"
	"github.com/spf13/cast"
)

// computeAggregate reduces every surviving binding to a single solution
// row carrying the aggregate's result, named by its AS variable. Aggregate
// projections (spec.md Scenario S3, COUNT) always produce exactly one row,
// even over zero bindings (COUNT(*) = 0).
func computeAggregate(agg *Aggregate, bindings []binding) (SolutionBinding, error) {
	switch agg.Func {
	case AggCount:
		n := len(bindings)
		if agg.Arg != "*" {
			n = 0
			for _, b := range bindings {
				if _, ok := b[agg.Arg]; ok {
					n++
				}
			}
		}
		return scalarSolution(agg.As, quad.NewTypedLiteral(fmt.Sprintf("%d", n), xsdInteger)), nil

	case AggSum, AggAvg, AggMin, AggMax:
		values, err := numericValues(agg.Arg, bindings)
		if err != nil {
			return SolutionBinding{}, err
		}
		return scalarSolution(agg.As, reduceNumeric(agg.Func, values)), nil

	default:
		return SolutionBinding{}, fmt.Errorf("unsupported aggregate function %q", agg.Func)
	}
}

const xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"
const xsdDouble = "http://www.w3.org/2001/XMLSchema#double"

func numericValues(varName string, bindings []binding) ([]float64, error) {
	out := make([]float64, 0, len(bindings))
	for _, b := range bindings {
		t, ok := b[varName]
		if !ok {
			continue
		}
		f, err := cast.ToFloat64E(t.Value)
		if err != nil {
			return nil, fmt.Errorf("aggregate over non-numeric value %q: %w", t.Value, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func reduceNumeric(fn AggregateFunc, values []float64) quad.Term {
	if len(values) == 0 {
		return quad.NewTypedLiteral("0", xsdDouble)
	}
	var result float64
	switch fn {
	case AggSum, AggAvg:
		for _, v := range values {
			result += v
		}
		if fn == AggAvg {
			result /= float64(len(values))
		}
	case AggMin:
		result = values[0]
		for _, v := range values[1:] {
			if v < result {
				result = v
			}
		}
	case AggMax:
		result = values[0]
		for _, v := range values[1:] {
			if v > result {
				result = v
			}
		}
	}
	return quad.NewTypedLiteral(fmt.Sprintf("%g", result), xsdDouble)
}

func scalarSolution(varName string, value quad.Term) SolutionBinding {
	return SolutionBinding{
		Vars:   []string{varName},
		Values: map[string]quad.Term{varName: value},
	}
}
