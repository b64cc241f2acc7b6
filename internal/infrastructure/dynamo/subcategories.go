package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/codeedexprojects/poky-backend/internal/domain"
)

// SubCategoryRepo provides typed DynamoDB operations for the subcategories table.
// PK: subcategory_id, GSI on category_id for by-category listing.
type SubCategoryRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSubCategoryRepo(client *dynamodb.Client, tableName string) *SubCategoryRepo {
	return &SubCategoryRepo{client: client, tableName: tableName}
}

func (r *SubCategoryRepo) Put(ctx context.Context, sc *domain.SubCategory) error {
	item, err := attributevalue.MarshalMap(sc)
	if err != nil {
		return fmt.Errorf("marshal subcategory: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SubCategoryRepo) Get(ctx context.Context, subCategoryID string) (*domain.SubCategory, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("subcategory_id", subCategoryID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("subcategory not found: %w", domain.ErrNotFound)
	}
	var sc domain.SubCategory
	if err := attributevalue.UnmarshalMap(out.Item, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *SubCategoryRepo) Scan(ctx context.Context) ([]domain.SubCategory, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var subs []domain.SubCategory
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubCategoryRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("category_id-index"),
		KeyConditionExpression:    aws.String("#c = :v"),
		ExpressionAttributeNames:  map[string]string{"#c": "category_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: categoryID}},
	})
	if err != nil {
		return nil, err
	}
	var subs []domain.SubCategory
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubCategoryRepo) Update(ctx context.Context, subCategoryID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("subcategory_id", subCategoryID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *SubCategoryRepo) Delete(ctx context.Context, subCategoryID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("subcategory_id", subCategoryID),
	})
	return err
}
