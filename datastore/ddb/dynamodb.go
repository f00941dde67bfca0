/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog"

	"github.com/suparena/customerstore/datastore"
	"github.com/suparena/customerstore/document"
)

// API is the subset of *dynamodb.Client used by Client.
type API interface {
	CreateTable(ctx context.Context, params *sdk.CreateTableInput, optFns ...func(*sdk.Options)) (*sdk.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *sdk.DescribeTableInput, optFns ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

var (
	_ API              = (*sdk.Client)(nil)
	_ datastore.Client = (*Client)(nil)
)

// Client implements datastore.Client on top of Amazon DynamoDB.
type Client struct {
	api            API
	logger         zerolog.Logger
	consistentGets bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "ddb").Logger()
	}
}

// WithConsistentGets makes GetDocument use strongly consistent reads.
func WithConsistentGets(enabled bool) Option {
	return func(c *Client) {
		c.consistentGets = enabled
	}
}

// New wraps an existing DynamoDB API client.
func New(api API, opts ...Option) *Client {
	c := &Client{
		api:    api,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConnectionConfig holds what is needed to reach DynamoDB. Empty credentials
// fall back to the default AWS credential chain; Endpoint targets a local
// DynamoDB or another compatible server.
type ConnectionConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// LoadAWSConfig resolves the shared AWS configuration for cc. Static
// credentials are used when an access key is set.
func LoadAWSConfig(ctx context.Context, cc ConnectionConfig) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cc.Region),
	}
	if cc.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cc.AccessKey, cc.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return cfg, nil
}

// NewDynamoDBClient initializes a DynamoDB SDK client.
func NewDynamoDBClient(ctx context.Context, cc ConnectionConfig) (*sdk.Client, error) {
	cfg, err := LoadAWSConfig(ctx, cc)
	if err != nil {
		return nil, err
	}

	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if cc.Endpoint != "" {
			o.BaseEndpoint = aws.String(cc.Endpoint)
		}
	}), nil
}

// NewFromConfig builds an SDK client from cc and wraps it.
func NewFromConfig(ctx context.Context, cc ConnectionConfig, opts ...Option) (*Client, error) {
	api, err := NewDynamoDBClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	c := New(api, opts...)
	c.logger.Debug().
		Str("region", cc.Region).
		Str("endpoint", cc.Endpoint).
		Msg("DynamoDB client initialized")
	return c, nil
}

// PutDocument writes doc, replacing any item with the same key unless
// datastore.IfNotExists is given.
func (c *Client) PutDocument(ctx context.Context, table string, doc document.Document, opts ...datastore.PutOption) error {
	options := datastore.ApplyPutOptions(opts...)

	item, err := document.ToAttributeValueMap(doc)
	if err != nil {
		return invalidDocument(err)
	}

	input := &sdk.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	}
	if options.IfNotExists != "" {
		expr, err := expression.NewBuilder().
			WithCondition(expression.AttributeNotExists(expression.Name(options.IfNotExists))).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build put condition: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
	}

	if _, err := c.api.PutItem(ctx, input); err != nil {
		return classify("PutItem", table, err)
	}
	return nil
}

// GetDocument fetches the item stored under key.
func (c *Client) GetDocument(ctx context.Context, table string, key document.Document) (document.Document, bool, error) {
	k, err := document.ToAttributeValueMap(key)
	if err != nil {
		return nil, false, invalidDocument(err)
	}

	out, err := c.api.GetItem(ctx, &sdk.GetItemInput{
		TableName:      aws.String(table),
		Key:            k,
		ConsistentRead: aws.Bool(c.consistentGets),
	})
	if err != nil {
		return nil, false, classify("GetItem", table, err)
	}
	if out.Item == nil {
		return nil, false, nil
	}
	return document.FromAttributeValueMap(out.Item), true, nil
}
