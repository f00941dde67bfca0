/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
	"github.com/suparena/customerstore/storagemodels"
)

// ScanDocuments performs one Scan request and returns its page.
func (c *Client) ScanDocuments(ctx context.Context, params *storagemodels.ScanParams) (*storagemodels.ScanPage, error) {
	input, err := scanInput(params)
	if err != nil {
		return nil, err
	}

	out, err := c.api.Scan(ctx, input)
	if err != nil {
		return nil, classify("Scan", params.Table, err)
	}

	page := &storagemodels.ScanPage{
		Items: make([]document.Document, 0, len(out.Items)),
	}
	for _, item := range out.Items {
		page.Items = append(page.Items, document.FromAttributeValueMap(item))
	}
	if len(out.LastEvaluatedKey) > 0 {
		page.LastEvaluatedKey = document.FromAttributeValueMap(out.LastEvaluatedKey)
	}

	c.logger.Trace().
		Str("table", params.Table).
		Int("items", len(page.Items)).
		Bool("more", page.LastEvaluatedKey != nil).
		Msg("scan page")
	return page, nil
}

func scanInput(params *storagemodels.ScanParams) (*sdk.ScanInput, error) {
	input := &sdk.ScanInput{
		TableName: aws.String(params.Table),
	}
	if params.Limit > 0 {
		input.Limit = aws.Int32(params.Limit)
	}
	if params.ConsistentRead {
		input.ConsistentRead = aws.Bool(true)
	}
	if len(params.ExclusiveStartKey) > 0 {
		startKey, err := document.ToAttributeValueMap(params.ExclusiveStartKey)
		if err != nil {
			return nil, invalidDocument(err)
		}
		input.ExclusiveStartKey = startKey
	}

	if len(params.Filter) == 0 && len(params.Projection) == 0 {
		return input, nil
	}

	builder := expression.NewBuilder()
	if len(params.Filter) > 0 {
		cond, err := filterCondition(params.Filter)
		if err != nil {
			return nil, err
		}
		builder = builder.WithFilter(cond)
	}
	if len(params.Projection) > 0 {
		names := make([]expression.NameBuilder, 0, len(params.Projection))
		for _, p := range params.Projection {
			names = append(names, expression.Name(p))
		}
		builder = builder.WithProjection(expression.NamesList(names[0], names[1:]...))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan expression: %w", err)
	}
	input.FilterExpression = expr.Filter()
	input.ProjectionExpression = expr.Projection()
	input.ExpressionAttributeNames = expr.Names()
	input.ExpressionAttributeValues = expr.Values()
	return input, nil
}

// filterCondition ANDs one equality per filter entry. Only string and number
// values can be compared.
func filterCondition(filter map[string]document.Value) (expression.ConditionBuilder, error) {
	names := make([]string, 0, len(filter))
	for name := range filter {
		names = append(names, name)
	}
	sort.Strings(names)

	var cond expression.ConditionBuilder
	for i, name := range names {
		var operand interface{}
		switch v := filter[name].(type) {
		case document.String:
			operand = string(v)
		case document.Number:
			if !v.Valid() {
				return cond, errors.NewValidationError(name, "filter value is not a number")
			}
			operand = attributevalue.Number(v)
		default:
			return cond, errors.NewValidationError(name, "filter values must be strings or numbers")
		}

		eq := expression.Name(name).Equal(expression.Value(operand))
		if i == 0 {
			cond = eq
		} else {
			cond = cond.And(eq)
		}
	}
	return cond, nil
}
