package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/dto"
	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
	"github.com/noah-isme/parecer-api/pkg/llm"
)

const studentNotFoundMessage = "Aluno não encontrado"

type parecerRepository interface {
	Create(ctx context.Context, p *models.Parecer) error
	FindByID(ctx context.Context, id string) (*models.Parecer, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Parecer, error)
	UpdateContent(ctx context.Context, p *models.Parecer) error
}

type periodObservationReader interface {
	ListForStudentInPeriod(ctx context.Context, studentID, start, end string) ([]models.ObservationRecord, error)
}

type milestoneReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Milestone, error)
}

type completionClient interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

type audioSource interface {
	Fetch(ctx context.Context, rawURL string) (llm.InlineData, error)
}

// ParecerDeps bundles the collaborators of ParecerService.
type ParecerDeps struct {
	Pareceres    parecerRepository
	Students     studentReader
	Observations periodObservationReader
	Milestones   milestoneReader
	Classes      classReader
	Profiles     profileReader
	AI           completionClient
	Audio        audioSource
	Metrics      *MetricsService
	Location     *time.Location
}

// ParecerService drafts descriptive reports with the generative model and manages the
// resulting drafts.
type ParecerService struct {
	deps      ParecerDeps
	validator *validator.Validate
	logger    *zap.Logger
}

// NewParecerService constructs a ParecerService.
func NewParecerService(deps ParecerDeps, validate *validator.Validate, logger *zap.Logger) *ParecerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	return &ParecerService{deps: deps, validator: validate, logger: logger}
}

// Generate aggregates the student's observations and milestones for the period, asks the model
// for a draft and stores it. Nothing is written unless the model answers. Repeating a request
// creates another draft.
func (s *ParecerService) Generate(ctx context.Context, callerID string, req dto.GenerateParecerRequest) (*models.Parecer, error) {
	if req.StudentID == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, studentNotFoundMessage)
	}

	student, err := s.deps.Students.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, lookupError(err, studentNotFoundMessage, "failed to load student")
	}
	if err := ensureStudentOwner(student, callerID); err != nil {
		return nil, err
	}

	records, err := s.deps.Observations.ListForStudentInPeriod(ctx, req.StudentID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, persistenceError(err, "failed to load observation records")
	}

	milestones, err := s.deps.Milestones.ListByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, persistenceError(err, "failed to load milestones")
	}

	prefs, err := ResolveGenerationPreferences(ctx, s.deps.Classes, s.deps.Profiles, req.ClassID)
	if err != nil {
		return nil, err
	}
	if prefs.OwnerID != "" && prefs.OwnerID != callerID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "turma pertence a outro professor")
	}

	instructions := ""
	if req.Instructions != nil {
		instructions = *req.Instructions
	}
	audioURL := ""
	if req.AudioURL != nil {
		audioURL = *req.AudioURL
	}

	prompt := BuildPrompt(PromptInput{
		StudentName:   student.Nome,
		BirthDate:     student.BirthDate,
		Preferences:   prefs,
		Observations:  RenderObservations(records, s.deps.Location),
		Milestones:    RenderMilestones(milestones),
		Instructions:  instructions,
		HasAudioInput: audioURL != "",
	})

	aiReq := llm.Request{Prompt: prompt}
	mode := "text"
	if audioURL != "" {
		mode = "audio"
		audio, err := s.deps.Audio.Fetch(ctx, audioURL)
		if errors.Is(err, ErrAudioHostNotAllowed) {
			return nil, appErrors.As(appErrors.ErrValidation, err, "audio_url não permitida")
		}
		if err != nil {
			return nil, appErrors.As(appErrors.ErrUpstream, err, "falha ao obter áudio")
		}
		aiReq.Media = []llm.InlineData{audio}
	}

	start := time.Now()
	completion, err := s.deps.AI.Generate(ctx, aiReq)
	s.deps.Metrics.ObserveAIGeneration(mode, err == nil, time.Since(start))
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return nil, appErrors.As(appErrors.ErrConfiguration, err, "falha ao gerar parecer")
		}
		return nil, appErrors.As(appErrors.ErrUpstream, err, "falha ao gerar parecer")
	}

	parecer := &models.Parecer{
		StudentID:        req.StudentID,
		ClassID:          req.ClassID,
		GeneratedContent: completion,
		EditedContent:    completion,
		Status:           models.ParecerDraft,
		Period:           req.PeriodStart + " a " + req.PeriodEnd,
	}
	if err := s.deps.Pareceres.Create(ctx, parecer); err != nil {
		return nil, persistenceError(err, "falha ao salvar parecer")
	}

	s.logger.Info("parecer generated",
		zap.String("parecer_id", parecer.ID),
		zap.String("aluno_id", req.StudentID),
		zap.String("mode", mode),
		zap.Int("registros", len(records)),
		zap.Int("marcos", len(milestones)),
	)
	return parecer, nil
}

// ListByStudent returns the drafts of a student the caller teaches.
func (s *ParecerService) ListByStudent(ctx context.Context, callerID, studentID string) ([]models.Parecer, error) {
	student, err := s.deps.Students.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, studentNotFoundMessage, "failed to load student")
	}
	if err := ensureStudentOwner(student, callerID); err != nil {
		return nil, err
	}
	items, err := s.deps.Pareceres.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, persistenceError(err, "failed to list pareceres")
	}
	return items, nil
}

// Get returns a draft whose student the caller teaches.
func (s *ParecerService) Get(ctx context.Context, callerID, id string) (*models.Parecer, error) {
	parecer, err := s.deps.Pareceres.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Parecer não encontrado", "failed to load parecer")
	}
	student, err := s.deps.Students.FindByID(ctx, parecer.StudentID)
	if err != nil {
		return nil, lookupError(err, studentNotFoundMessage, "failed to load student")
	}
	if err := ensureStudentOwner(student, callerID); err != nil {
		return nil, err
	}
	return parecer, nil
}

// Update stores the teacher's edited text and review status. The generated text is kept.
func (s *ParecerService) Update(ctx context.Context, callerID, id string, req dto.UpdateParecerRequest) (*models.Parecer, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid parecer payload")
	}
	parecer, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if req.EditedContent != nil {
		parecer.EditedContent = *req.EditedContent
	}
	if req.Status != nil {
		status := models.ParecerStatus(*req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "status inválido")
		}
		parecer.Status = status
	}
	if err := s.deps.Pareceres.UpdateContent(ctx, parecer); err != nil {
		return nil, persistenceError(err, "failed to update parecer")
	}
	return parecer, nil
}
