package applicationsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/pkg/fsx"
	"github.com/Abraxas-365/hirely/pkg/iam/auth"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/pkg/metrics"
	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/capture"
	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/Abraxas-365/hirely/recruitment/job"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
	"github.com/google/uuid"
)

// FieldLoader resolves the field set a job asks for
type FieldLoader interface {
	LoadForJob(ctx context.Context, reqs profilefield.Requirements) (*profilefield.Registry, error)
}

// Config tunes the submission pipeline
type Config struct {
	SubmitLockTTL time.Duration
	PhotoPrefix   string
}

// Service runs the application form for applicants
type Service struct {
	repo     application.Repository
	jobs     job.Repository
	fields   FieldLoader
	photos   fsx.FileSystem
	guard    application.SubmitGuard
	notifier application.Notifier
	config   Config
}

// NewService creates a new application service. notifier may be nil.
func NewService(
	repo application.Repository,
	jobs job.Repository,
	fields FieldLoader,
	photos fsx.FileSystem,
	guard application.SubmitGuard,
	notifier application.Notifier,
	config Config,
) *Service {
	if config.SubmitLockTTL <= 0 {
		config.SubmitLockTTL = 30 * time.Second
	}
	return &Service{
		repo:     repo,
		jobs:     jobs,
		fields:   fields,
		photos:   photos,
		guard:    guard,
		notifier: notifier,
		config:   config,
	}
}

// Submission is what the applicant sent
type Submission struct {
	JobID  kernel.JobID
	Values map[kernel.FieldID]string
	Photo  *capture.Photo
}

// ============================================================================
// Form
// ============================================================================

// FormFor loads a job's form and its initial state for the signed-in applicant
func (s *Service) FormFor(ctx context.Context, session *auth.Session, jobID kernel.JobID) (*application.FormResponse, error) {
	posting, err := s.activeJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	registry, err := s.fields.LoadForJob(ctx, posting.ProfileRequirements)
	if err != nil {
		return nil, err
	}

	fields := registry.Fields()
	state := form.Initialize(fields, knownAttributes(session))

	photoRequired := false
	if f, ok := registry.Get(profilefield.FieldPhotoProfile); ok {
		photoRequired = f.Mandatory
	}

	return &application.FormResponse{
		Job:           posting.ToResponse(),
		Fields:        form.DescribeAll(fields),
		Values:        state.Values(),
		PhotoRequired: photoRequired,
	}, nil
}

// ============================================================================
// Submit
// ============================================================================

// Submit validates, serializes and stores one application. At most one
// submission per user and job runs at a time.
func (s *Service) Submit(ctx context.Context, session *auth.Session, sub Submission) (app *application.Application, err error) {
	start := time.Now()
	defer func() {
		metrics.SubmitDuration.Observe(time.Since(start).Seconds())
		metrics.ApplicationsSubmitted.WithLabelValues(outcome(err)).Inc()
	}()

	if session == nil {
		return nil, auth.ErrMissingToken()
	}

	key := lockKey(session.User.ID, sub.JobID)
	token, err := s.guard.Acquire(ctx, key, s.config.SubmitLockTTL)
	if err != nil {
		return nil, errx.Wrap(err, "failed to acquire submission lock", errx.TypeInternal)
	}
	if token == "" {
		return nil, application.ErrSubmissionInFlight().WithDetail("job_id", sub.JobID.String())
	}
	defer func() {
		// the request context may already be cancelled
		if rerr := s.guard.Release(context.WithoutCancel(ctx), key, token); rerr != nil {
			logx.Warnf("releasing submission lock %s: %v", key, rerr)
		}
	}()

	posting, err := s.activeJob(ctx, sub.JobID)
	if err != nil {
		return nil, err
	}

	registry, err := s.fields.LoadForJob(ctx, posting.ProfileRequirements)
	if err != nil {
		return nil, err
	}
	fields := registry.Fields()

	state := form.Initialize(fields, knownAttributes(session)).Apply(sub.Values)
	photoPresent := sub.Photo != nil && len(sub.Photo.Data) > 0

	if verdict := form.IsSubmittable(fields, state, photoPresent); !verdict.OK {
		metrics.ValidationFailures.WithLabelValues(verdict.Field.String()).Inc()
		return nil, verdict.Err()
	}

	photo := form.NoPhoto
	var photoPath string
	if photoPresent {
		if _, wanted := registry.Get(profilefield.FieldPhotoProfile); wanted {
			photoPath, err = s.storePhoto(ctx, session.User.ID, sub.JobID, sub.Photo)
			if err != nil {
				return nil, err
			}
			photo = form.NewCapturedPhoto(photoPath)
		}
	}

	entries := form.Serialize(fields, state, photo)
	if err := application.ValidateProfileData(entries); err != nil {
		s.discardPhoto(ctx, photoPath)
		return nil, err
	}

	app = &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		JobID:       sub.JobID,
		UserID:      session.User.ID,
		ProfileData: entries,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, app); err != nil {
		s.discardPhoto(ctx, photoPath)
		logx.Errorf("storing application for job %s: %v", sub.JobID, err)
		return nil, application.ErrSubmission(err)
	}

	logx.With(logx.Fields{
		"application_id": app.ID,
		"job_id":         app.JobID,
		"user_id":        app.UserID,
		"fields":         len(entries),
	}).Info("application submitted")

	s.notify(ctx, posting, session, app)
	return app, nil
}

// GetApplication returns a stored application
func (s *Service) GetApplication(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) activeJob(ctx context.Context, jobID kernel.JobID) (*job.JobPosting, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !posting.IsActive() {
		return nil, application.ErrJobNotActive().
			WithDetail("job_id", jobID.String()).
			WithDetail("status", string(posting.Status))
	}
	return posting, nil
}

func (s *Service) storePhoto(ctx context.Context, userID kernel.UserID, jobID kernel.JobID, photo *capture.Photo) (string, error) {
	name := fmt.Sprintf("%s-%s%s", userID, uuid.NewString(), photo.Extension())
	path := s.photos.Join(s.config.PhotoPrefix, jobID.String(), name)

	if err := s.photos.WriteFile(ctx, path, photo.Data); err != nil {
		logx.Errorf("storing photo for job %s: %v", jobID, err)
		return "", application.ErrSubmission(err).WithDetail("step", "photo_upload")
	}
	return path, nil
}

func (s *Service) discardPhoto(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.photos.DeleteFile(context.WithoutCancel(ctx), path); err != nil {
		logx.Warnf("removing orphaned photo %s: %v", path, err)
	}
}

func (s *Service) notify(ctx context.Context, posting *job.JobPosting, session *auth.Session, app *application.Application) {
	if s.notifier == nil {
		return
	}

	email := kernel.Email(app.Value(profilefield.FieldEmail))
	if email == "" {
		email = session.User.Email
	}
	name := kernel.FullName(app.Value(profilefield.FieldFullName))
	if name == "" {
		name = session.User.FullName
	}

	event := application.SubmittedEvent{
		ApplicationID: app.ID,
		JobID:         posting.ID,
		JobName:       posting.JobName,
		UserID:        app.UserID,
		Email:         email,
		FullName:      name,
		SubmittedAt:   app.CreatedAt,
	}

	// best effort, the application is already stored
	if err := s.notifier.ApplicationSubmitted(ctx, event); err != nil {
		logx.Warnf("enqueueing notification for application %s: %v", app.ID, err)
	}
}

func knownAttributes(session *auth.Session) form.KnownAttributes {
	if session == nil {
		return form.KnownAttributes{}
	}
	return form.KnownAttributes{
		FullName: session.User.FullName,
		Email:    session.User.Email,
	}
}

func lockKey(userID kernel.UserID, jobID kernel.JobID) string {
	return "submit:" + userID.String() + ":" + jobID.String()
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if e, ok := errx.As(err); ok {
		return string(e.Type)
	}
	return "error"
}
