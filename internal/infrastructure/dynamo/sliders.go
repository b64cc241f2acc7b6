package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/codeedexprojects/poky-backend/internal/domain"
)

// SliderRepo provides typed DynamoDB operations for the sliders table.
type SliderRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSliderRepo(client *dynamodb.Client, tableName string) *SliderRepo {
	return &SliderRepo{client: client, tableName: tableName}
}

func (r *SliderRepo) Put(ctx context.Context, s *domain.Slider) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal slider: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SliderRepo) Get(ctx context.Context, sliderID string) (*domain.Slider, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("slider_id", sliderID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("slider not found: %w", domain.ErrNotFound)
	}
	var s domain.Slider
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SliderRepo) Scan(ctx context.Context) ([]domain.Slider, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var sliders []domain.Slider
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &sliders); err != nil {
		return nil, err
	}
	return sliders, nil
}

func (r *SliderRepo) Update(ctx context.Context, sliderID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("slider_id", sliderID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *SliderRepo) Delete(ctx context.Context, sliderID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("slider_id", sliderID),
	})
	return err
}
