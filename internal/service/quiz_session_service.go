package service

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"path"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quizcraft/internal/analysis"
	"quizcraft/internal/domain"
	"quizcraft/internal/export"
	"quizcraft/internal/ingestion"
	"quizcraft/internal/logger"
	"quizcraft/internal/util"
)

const defaultExplainConcurrency = 4

// GenerateInput is everything Generate needs besides the session id.
type GenerateInput struct {
	Format        domain.SourceFormat
	Input         string
	Uploads       []domain.Upload
	MaterialID    string
	InstructorID  string
	NumQuestions  int
	QuestionTypes []domain.QuestionType
	Difficulty    domain.Difficulty
	Seed          int64
}

// DownloadResult is the outcome of an export. Data is nil unless the export succeeded.
type DownloadResult struct {
	Message     string
	Filename    string
	ContentType string
	Data        []byte
}

// QuizSessionService drives the quiz of one session: generate, analyze,
// shuffle, explain and download.
type QuizSessionService interface {
	CreateSession(ctx context.Context) (*domain.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	Generate(ctx context.Context, sessionID string, in GenerateInput) (string, error)
	Analyze(ctx context.Context, sessionID string) (string, error)
	Shuffle(ctx context.Context, sessionID string, seed *int64) (string, error)
	Explain(ctx context.Context, sessionID string) (string, error)
	Download(ctx context.Context, sessionID, format string) (*DownloadResult, error)
	FilterByDifficulty(ctx context.Context, sessionID, level string, n int) ([]domain.Question, error)
	SaveQuiz(ctx context.Context, sessionID, title, instructorID string) (*domain.SavedQuiz, error)
	GetQuiz(ctx context.Context, id string) (*domain.SavedQuiz, error)
}

type quizSessionService struct {
	sessions       SessionStore
	generator      domain.QuestionGenerator
	explainer      domain.Explainer
	analyzer       AnalysisService
	materials      MaterialService
	quizzes        domain.QuizRepository
	blobs          domain.BlobStore
	maxConcurrency int
}

// NewQuizSessionService creates the session service. explainer, materials,
// quizzes and blobs may be nil; the operations that need them then fail or skip.
func NewQuizSessionService(
	sessions SessionStore,
	generator domain.QuestionGenerator,
	explainer domain.Explainer,
	analyzer AnalysisService,
	materials MaterialService,
	quizzes domain.QuizRepository,
	blobs domain.BlobStore,
	maxConcurrency int,
) QuizSessionService {
	if maxConcurrency <= 0 {
		maxConcurrency = defaultExplainConcurrency
	}
	return &quizSessionService{
		sessions:       sessions,
		generator:      generator,
		explainer:      explainer,
		analyzer:       analyzer,
		materials:      materials,
		quizzes:        quizzes,
		blobs:          blobs,
		maxConcurrency: maxConcurrency,
	}
}

func (s *quizSessionService) CreateSession(ctx context.Context) (*domain.Session, error) {
	return s.sessions.Create(ctx)
}

func (s *quizSessionService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// canonicalTypes resolves aliases such as "mcq" for the generator. The session
// keeps the types exactly as requested.
func canonicalTypes(types []domain.QuestionType) []domain.QuestionType {
	out := make([]domain.QuestionType, 0, len(types))
	for _, t := range types {
		if c, ok := domain.ParseQuestionType(string(t)); ok {
			t = c
		}
		out = append(out, t)
	}
	return out
}

// sourceText resolves the text Generate works on.
func (s *quizSessionService) sourceText(ctx context.Context, in GenerateInput) (string, error) {
	switch in.Format {
	case domain.SourceText:
		return in.Input, nil
	case domain.SourceFile:
		if s.materials == nil {
			return "", domain.NewInternalError("file ingestion is not configured", nil)
		}
		if len(in.Uploads) == 0 {
			return "", nil
		}
		materials, err := s.materials.Ingest(ctx, in.InstructorID, in.Uploads)
		if err != nil {
			return "", err
		}
		return ingestion.JoinText(materials), nil
	case domain.SourceMaterial:
		if s.materials == nil {
			return "", domain.NewNotFoundError("material " + in.MaterialID + " not found")
		}
		m, err := s.materials.Get(ctx, in.MaterialID)
		if err != nil {
			return "", err
		}
		return m.Text, nil
	default:
		return "", domain.NewUnsupportedFormatError(string(in.Format))
	}
}

func (s *quizSessionService) Generate(ctx context.Context, sessionID string, in GenerateInput) (string, error) {
	ctx, span := otel.Tracer("quizcraft/service").Start(ctx, "session.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("source.format", string(in.Format)),
		attribute.Int("questions.requested", in.NumQuestions))

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	text, err := s.sourceText(ctx, in)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return domain.MsgEmptyInput, nil
	}

	seed := in.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	questions, err := s.generator.Generate(ctx, domain.GenerateRequest{
		SourceText:    text,
		NumQuestions:  in.NumQuestions,
		QuestionTypes: canonicalTypes(in.QuestionTypes),
		Difficulty:    in.Difficulty,
		Seed:          seed,
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	if questions == nil {
		questions = []domain.Question{}
	}

	types := make([]domain.QuestionType, len(in.QuestionTypes))
	copy(types, in.QuestionTypes)

	session.InputText = text
	session.State = domain.QuizState{
		Questions:     questions,
		NumQuestions:  in.NumQuestions,
		QuestionTypes: types,
	}
	session.Markdown = export.Markdown(questions)

	if err := s.sessions.Save(ctx, session); err != nil {
		return "", err
	}

	span.SetAttributes(attribute.Int("questions.generated", len(questions)))
	logger.Get().Info("Quiz generated",
		zap.String("sessionID", sessionID),
		zap.Int("requested", in.NumQuestions),
		zap.Int("generated", len(questions)))
	return session.Markdown, nil
}

func (s *quizSessionService) Analyze(ctx context.Context, sessionID string) (string, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(session.InputText) == "" {
		return domain.MsgEmptyInput, nil
	}

	result, err := s.analyzer.Analyze(ctx, session.InputText)
	if err != nil {
		return "", err
	}
	session.Markdown += analysis.RenderMarkdown(result)
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return session.Markdown, nil
}

// Shuffle renders a shuffled copy of the quiz. The stored order is kept.
func (s *quizSessionService) Shuffle(ctx context.Context, sessionID string, seed *int64) (string, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.State.IsEmpty() {
		return domain.MsgShuffleBeforeGen, nil
	}

	src := time.Now().UnixNano()
	if seed != nil {
		src = *seed
	}
	shuffled := domain.ShuffleQuiz(session.State.Questions, rand.New(rand.NewSource(src)))
	return export.Markdown(shuffled), nil
}

// Explain asks the explainer about every multiple-choice question concurrently
// and stores the answers on the questions.
func (s *quizSessionService) Explain(ctx context.Context, sessionID string) (string, error) {
	ctx, span := otel.Tracer("quizcraft/service").Start(ctx, "session.Explain")
	defer span.End()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if session.State.IsEmpty() {
		return "", domain.NewEmptyQuizError("Please generate a quiz first before asking for explanations")
	}
	if s.explainer == nil {
		return "", domain.NewLLMServiceError("explanation", fmt.Errorf("no language model configured"))
	}

	questions := session.State.Questions
	explanations := make([]string, len(questions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, q := range questions {
		if !q.Type.IsMultipleChoice() || len(q.Options) == 0 {
			continue
		}
		g.Go(func() error {
			text, err := s.explainer.Explain(gctx, domain.QuestionBlock(i+1, q))
			if err != nil {
				return err
			}
			explanations[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return "", err
	}

	explained := 0
	for i, text := range explanations {
		if text != "" {
			questions[i].Explanation = text
			explained++
		}
	}
	session.Markdown = export.Markdown(questions)
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", err
	}

	span.SetAttributes(attribute.Int("questions.explained", explained))
	logger.Get().Info("Quiz explained", zap.String("sessionID", sessionID), zap.Int("explained", explained))
	return session.Markdown, nil
}

// Download exports the quiz. Failures to render are reported in the message,
// not as errors; only a missing session is an error.
func (s *quizSessionService) Download(ctx context.Context, sessionID, format string) (*DownloadResult, error) {
	ctx, span := otel.Tracer("quizcraft/service").Start(ctx, "session.Download")
	defer span.End()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State.IsEmpty() {
		return &DownloadResult{Message: domain.MsgNothingToExport}, nil
	}

	f := export.ParseFormat(format)
	span.SetAttributes(attribute.String("export.format", string(f)))

	var buf bytes.Buffer
	quiz := export.Quiz{Questions: session.State.Questions, Markdown: session.Markdown}
	if err := export.Write(&buf, f, quiz); err != nil {
		span.RecordError(err)
		logger.Get().Error("Quiz export failed", zap.Error(err), zap.String("format", string(f)))
		return &DownloadResult{Message: fmt.Sprintf("Error downloading quiz: %v", err)}, nil
	}

	filename := f.Filename()
	if s.blobs != nil {
		key := path.Join("exports", sessionID, filename)
		if err := s.blobs.Put(ctx, key, f.ContentType(), bytes.NewReader(buf.Bytes())); err != nil {
			logger.Get().Warn("Failed to store export", zap.Error(err), zap.String("key", key))
		}
	}

	return &DownloadResult{
		Message:     "Quiz downloaded: " + filename,
		Filename:    filename,
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func (s *quizSessionService) FilterByDifficulty(ctx context.Context, sessionID, level string, n int) ([]domain.Question, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return domain.FilterByDifficulty(session.State.Questions, level, n)
}

func (s *quizSessionService) SaveQuiz(ctx context.Context, sessionID, title, instructorID string) (*domain.SavedQuiz, error) {
	if s.quizzes == nil {
		return nil, domain.NewInternalError("quiz storage is not configured", nil)
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State.IsEmpty() {
		return nil, domain.NewEmptyQuizError(domain.MsgNothingToExport)
	}

	now := time.Now()
	quiz := &domain.SavedQuiz{
		ID:           util.NewULID(),
		Title:        title,
		InstructorID: instructorID,
		State:        session.State,
		Markdown:     session.Markdown,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.quizzes.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}
	logger.Get().Info("Quiz saved", zap.String("quizID", quiz.ID), zap.String("sessionID", sessionID))
	return quiz, nil
}

func (s *quizSessionService) GetQuiz(ctx context.Context, id string) (*domain.SavedQuiz, error) {
	if s.quizzes == nil {
		return nil, domain.NewNotFoundError("quiz " + id + " not found")
	}
	quiz, err := s.quizzes.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("quiz " + id + " not found")
	}
	return quiz, nil
}
