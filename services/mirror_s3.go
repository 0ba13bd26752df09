package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"preptrack/models"
)

// S3Sink mirrors engine state as JSON documents in a bucket. Profile and goal
// live at fixed keys per user; log entries get append-only timestamped keys.
type S3Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Sink(ctx context.Context, bucket, region, prefix string) (*S3Sink, error) {
	cfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Sink{client: s3.NewFromConfig(cfg), bucket: bucket, prefix: prefix}, nil
}

func (s *S3Sink) SaveProfile(ctx context.Context, p *models.Profile) error {
	return s.putJSON(ctx, s.prefix+"profiles/"+p.UserID+".json", p)
}

func (s *S3Sink) SaveGoal(ctx context.Context, g *models.GoalConfig) error {
	return s.putJSON(ctx, s.prefix+"goals/"+g.UserID+".json", g)
}

func (s *S3Sink) SaveStudyEntry(ctx context.Context, entry *models.StudyEntry) error {
	key := fmt.Sprintf("%sstudy/%s/%d.json", s.prefix, entry.UserID, time.Now().UnixNano())
	return s.putJSON(ctx, key, entry)
}

func (s *S3Sink) SaveMealEntry(ctx context.Context, entry *models.MealEntry) error {
	key := fmt.Sprintf("%smeals/%s/%d.json", s.prefix, entry.UserID, time.Now().UnixNano())
	return s.putJSON(ctx, key, entry)
}

func (s *S3Sink) LoadProfile(ctx context.Context, userID string) (models.Profile, models.GoalConfig, bool, error) {
	var p models.Profile
	found, err := s.getJSON(ctx, s.prefix+"profiles/"+userID+".json", &p)
	if err != nil || !found {
		return models.Profile{}, models.GoalConfig{}, false, err
	}
	var g models.GoalConfig
	found, err = s.getJSON(ctx, s.prefix+"goals/"+userID+".json", &g)
	if err != nil || !found {
		return models.Profile{}, models.GoalConfig{}, false, err
	}
	return p, g, true, nil
}

func (s *S3Sink) putJSON(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *S3Sink) getJSON(ctx context.Context, key string, v any) (bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
