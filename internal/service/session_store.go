package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"quizcraft/internal/cache"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
	"quizcraft/internal/util"
)

// SessionStore keeps quiz sessions in the cache between requests.
type SessionStore interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

type cacheSessionStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionStore returns a SessionStore backed by cache. Every Save and every
// successful Get resets the TTL, so active sessions do not expire mid-quiz.
func NewSessionStore(cache domain.Cache, ttl time.Duration) SessionStore {
	return &cacheSessionStore{cache: cache, ttl: ttl}
}

func (s *cacheSessionStore) Create(ctx context.Context) (*domain.Session, error) {
	session := domain.NewSession(util.NewULID())
	if err := s.Save(ctx, session); err != nil {
		return nil, err
	}
	logger.Get().Debug("Session created", zap.String("sessionID", session.ID))
	return session, nil
}

func (s *cacheSessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := s.cache.Get(ctx, cache.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		}
		return nil, domain.NewInternalError("failed to load session", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		logger.Get().Error("Failed to unmarshal session", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, domain.NewInternalError("failed to decode session", err)
	}
	if session.State.Questions == nil {
		session.State.Questions = []domain.Question{}
	}
	if session.State.QuestionTypes == nil {
		session.State.QuestionTypes = []domain.QuestionType{}
	}
	if err := s.cache.Expire(ctx, cache.SessionKey(sessionID), s.ttl); err != nil {
		logger.Get().Warn("Failed to refresh session TTL", zap.Error(err), zap.String("sessionID", sessionID))
	}
	return &session, nil
}

func (s *cacheSessionStore) Save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to encode session", err)
	}
	key := cache.SessionKey(session.ID)
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to store session %s", session.ID), err)
	}
	return nil
}
