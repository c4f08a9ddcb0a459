package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"linebook/internal/domain/line"
	lberrors "linebook/internal/errors"
)

const linesCollection = "lines"

type LineRepository struct {
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewLineRepository(log *zap.SugaredLogger, mongo *mongo.Database) *LineRepository {
	return &LineRepository{
		log:   log,
		mongo: mongo,
	}
}

func (l *LineRepository) NewID() string {
	return uuid.New().String()
}

func (l *LineRepository) SaveLine(ctx context.Context, saved line.SavedLine) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := l.mongo.Collection(linesCollection).InsertOne(ctx, saved)
	if err != nil {
		l.log.Errorf("failed to insert line %s: %v", saved.ID, err)
		return fmt.Errorf("insert line: %w", err)
	}

	l.log.Infof("line saved with id: %s", saved.ID)
	return nil
}

func (l *LineRepository) GetLine(ctx context.Context, id string) (line.SavedLine, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var saved line.SavedLine
	err := l.mongo.Collection(linesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&saved)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return line.SavedLine{}, lberrors.ErrLineNotFound
	}
	if err != nil {
		l.log.Errorf("failed to load line %s: %v", id, err)
		return line.SavedLine{}, fmt.Errorf("find line: %w", err)
	}
	return saved, nil
}

func (l *LineRepository) ListLines(ctx context.Context, limit int64) ([]line.SavedLine, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"text": 0})

	cursor, err := l.mongo.Collection(linesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	defer cursor.Close(ctx)

	lines := make([]line.SavedLine, 0)
	if err = cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("decode lines: %w", err)
	}
	return lines, nil
}
