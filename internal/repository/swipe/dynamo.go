package swipe

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoConfig locates the swipes table.
type DynamoConfig struct {
	Table    string
	Region   string
	Endpoint string // local emulators only
}

// swipeItem is the projected shape of a swipes item (pk userId, sk listingId).
type swipeItem struct {
	ListingID string `dynamodbav:"listingId"`
}

// DynamoRepo reads swipes from DynamoDB.
type DynamoRepo struct {
	client dynamodb.QueryAPIClient
	table  string
}

// NewDynamo creates a DynamoDB-backed swipe repository.
func NewDynamo(client dynamodb.QueryAPIClient, table string) *DynamoRepo {
	return &DynamoRepo{client: client, table: table}
}

// NewDynamoClient builds a DynamoDB client from the default AWS credential chain.
func NewDynamoClient(ctx context.Context, cfg DynamoConfig) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// SwipedIDs returns every listing id userID swiped on, following query pages.
func (r *DynamoRepo) SwipedIDs(ctx context.Context, userID string) ([]string, error) {
	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("userId = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ProjectionExpression: aws.String("listingId"),
	})

	var ids []string
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query swipes for %s: %w", userID, err)
		}
		var items []swipeItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal swipes: %w", err)
		}
		for _, it := range items {
			if it.ListingID != "" {
				ids = append(ids, it.ListingID)
			}
		}
	}
	return ids, nil
}
