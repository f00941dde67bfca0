/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/customerstore/errors"
	"github.com/suparena/customerstore/storagemodels"
)

// CreateTable issues a single CreateTable request. An existing table is reported
// as an AlreadyExistsError.
func (c *Client) CreateTable(ctx context.Context, schema storagemodels.TableSchema) (*storagemodels.TableDescriptor, error) {
	input, err := createTableInput(schema)
	if err != nil {
		return nil, err
	}

	out, err := c.api.CreateTable(ctx, input)
	if err != nil {
		return nil, classify("CreateTable", schema.Name, err)
	}

	desc := descriptorFrom(out.TableDescription)
	c.logger.Debug().
		Str("table", schema.Name).
		Str("status", string(desc.Status)).
		Msg("CreateTable accepted")
	return desc, nil
}

// DescribeTable returns the live description of a table.
func (c *Client) DescribeTable(ctx context.Context, name string) (*storagemodels.TableDescriptor, error) {
	out, err := c.api.DescribeTable(ctx, &sdk.DescribeTableInput{
		TableName: aws.String(name),
	})
	if err != nil {
		return nil, classify("DescribeTable", name, err)
	}
	return descriptorFrom(out.Table), nil
}

func createTableInput(schema storagemodels.TableSchema) (*sdk.CreateTableInput, error) {
	pkType, err := scalarType(schema.PartitionKey)
	if err != nil {
		return nil, err
	}

	input := &sdk.CreateTableInput{
		TableName: aws.String(schema.Name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(schema.PartitionKey.Name), AttributeType: pkType},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(schema.PartitionKey.Name), KeyType: types.KeyTypeHash},
		},
	}

	if schema.SortKey != nil {
		skType, err := scalarType(*schema.SortKey)
		if err != nil {
			return nil, err
		}
		input.AttributeDefinitions = append(input.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(schema.SortKey.Name), AttributeType: skType,
		})
		input.KeySchema = append(input.KeySchema, types.KeySchemaElement{
			AttributeName: aws.String(schema.SortKey.Name), KeyType: types.KeyTypeRange,
		})
	}

	if schema.Throughput != nil {
		input.BillingMode = types.BillingModeProvisioned
		input.ProvisionedThroughput = &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(schema.Throughput.ReadCapacityUnits),
			WriteCapacityUnits: aws.Int64(schema.Throughput.WriteCapacityUnits),
		}
	} else {
		input.BillingMode = types.BillingModePayPerRequest
	}
	return input, nil
}

func scalarType(attr storagemodels.KeyAttribute) (types.ScalarAttributeType, error) {
	switch attr.Type {
	case storagemodels.KeyTypeString:
		return types.ScalarAttributeTypeS, nil
	case storagemodels.KeyTypeNumber:
		return types.ScalarAttributeTypeN, nil
	default:
		return "", errors.NewValidationError(attr.Name, "key type must be S or N")
	}
}

func descriptorFrom(td *types.TableDescription) *storagemodels.TableDescriptor {
	if td == nil {
		return &storagemodels.TableDescriptor{}
	}
	desc := &storagemodels.TableDescriptor{
		Name:      aws.ToString(td.TableName),
		Status:    storagemodels.TableStatus(td.TableStatus),
		ItemCount: aws.ToInt64(td.ItemCount),
		CreatedAt: aws.ToTime(td.CreationDateTime),
	}
	for _, ks := range td.KeySchema {
		desc.KeySchema = append(desc.KeySchema, storagemodels.KeySchemaElement{
			AttributeName: aws.ToString(ks.AttributeName),
			KeyType:       string(ks.KeyType),
		})
	}
	return desc
}
