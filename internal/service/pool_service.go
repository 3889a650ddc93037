package service

import (
	"bytes"
	"context"
	"math/rand"
	"path"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
)

// PoolService manages topic pools and draws quizzes from them.
type PoolService interface {
	SavePool(ctx context.Context, instructorID, topic string, questions []string) (*domain.Pool, error)
	ImportPools(ctx context.Context, instructorID string, pools domain.Pools) (int, error)
	ListPools(ctx context.Context, instructorID string) ([]*domain.Pool, error)
	DeletePool(ctx context.Context, instructorID, id string) error
	GenerateQuiz(ctx context.Context, instructorID string, settings domain.PoolSettings, seed *int64) ([]string, error)
	SaveTemplate(ctx context.Context, instructorID, name string, settings domain.PoolSettings) (string, error)
}

type poolService struct {
	repo      domain.PoolRepository
	txManager domain.TransactionManager
	blobs     domain.BlobStore
}

// NewPoolService creates a PoolService. blobs stores pool templates.
func NewPoolService(repo domain.PoolRepository, txManager domain.TransactionManager, blobs domain.BlobStore) PoolService {
	return &poolService{repo: repo, txManager: txManager, blobs: blobs}
}

func (s *poolService) SavePool(ctx context.Context, instructorID, topic string, questions []string) (*domain.Pool, error) {
	pool := &domain.Pool{
		InstructorID: instructorID,
		Topic:        strings.TrimSpace(topic),
		Questions:    questions,
	}
	if err := s.repo.SavePool(ctx, pool); err != nil {
		return nil, domain.NewInternalError("failed to save pool", err)
	}
	logger.Get().Info("Pool saved",
		zap.String("topic", pool.Topic),
		zap.Int("questions", len(questions)))
	return pool, nil
}

// ImportPools saves every pool in one transaction and returns how many were written.
func (s *poolService) ImportPools(ctx context.Context, instructorID string, pools domain.Pools) (int, error) {
	topics := make([]string, 0, len(pools))
	for topic := range pools {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	save := func(ctx context.Context) error {
		for _, topic := range topics {
			pool := &domain.Pool{InstructorID: instructorID, Topic: topic, Questions: pools[topic]}
			if err := s.repo.SavePool(ctx, pool); err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if s.txManager != nil {
		err = s.txManager.WithTransaction(ctx, save)
	} else {
		err = save(ctx)
	}
	if err != nil {
		logger.Get().Error("Pool import failed", zap.Error(err), zap.Int("pools", len(topics)))
		return 0, domain.NewInternalError("failed to import pools", err)
	}
	return len(topics), nil
}

func (s *poolService) ListPools(ctx context.Context, instructorID string) ([]*domain.Pool, error) {
	pools, err := s.repo.ListPools(ctx, instructorID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list pools", err)
	}
	if pools == nil {
		pools = []*domain.Pool{}
	}
	return pools, nil
}

func (s *poolService) DeletePool(ctx context.Context, instructorID, id string) error {
	return s.repo.DeletePool(ctx, instructorID, id)
}

// GenerateQuiz draws from the instructor's stored pools. A nil seed draws a fresh quiz.
func (s *poolService) GenerateQuiz(ctx context.Context, instructorID string, settings domain.PoolSettings, seed *int64) ([]string, error) {
	list, err := s.ListPools(ctx, instructorID)
	if err != nil {
		return nil, err
	}

	src := time.Now().UnixNano()
	if seed != nil {
		src = *seed
	}
	questions, err := domain.GenerateFromPools(domain.PoolsFrom(list), settings, rand.New(rand.NewSource(src)))
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []string{}
	}
	return questions, nil
}

// SaveTemplate stores settings under templates/<instructor>/<name>. An empty
// name uses the default template file name.
func (s *poolService) SaveTemplate(ctx context.Context, instructorID, name string, settings domain.PoolSettings) (string, error) {
	if s.blobs == nil {
		return "", domain.NewInternalError("template storage is not configured", nil)
	}
	if strings.TrimSpace(name) == "" {
		name = domain.DefaultTemplateFile
	}
	owner := instructorID
	if owner == "" {
		owner = "shared"
	}

	var buf bytes.Buffer
	if err := domain.SaveTemplate(&buf, settings); err != nil {
		return "", domain.NewInternalError("failed to encode template", err)
	}
	key := path.Join("templates", owner, path.Base(name))
	if err := s.blobs.Put(ctx, key, "application/json", &buf); err != nil {
		return "", domain.NewInternalError("failed to store template", err)
	}
	logger.Get().Info("Pool template saved", zap.String("key", key))
	return key, nil
}
