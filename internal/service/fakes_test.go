package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
	"github.com/noah-isme/parecer-api/pkg/llm"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

type fakeStudentRepo struct {
	students    map[string]models.StudentDetail
	created     []models.Student
	updated     []models.Student
	deactivated []string
	lastFilter  models.StudentFilter
	calls       int
}

func (f *fakeStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	f.lastFilter = filter
	out := make([]models.StudentDetail, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	f.calls++
	s, ok := f.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = fmt.Sprintf("stu-%d", len(f.created)+1)
	f.created = append(f.created, *student)
	return nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	f.updated = append(f.updated, *student)
	return nil
}

func (f *fakeStudentRepo) Deactivate(ctx context.Context, id string) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

type fakeClassRepo struct {
	classes     map[string]models.Class
	err         error
	created     []models.Class
	deactivated []string
}

func (f *fakeClassRepo) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	var out []models.Class
	for _, c := range f.classes {
		if c.OwnerID == filter.OwnerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (f *fakeClassRepo) Create(ctx context.Context, class *models.Class) error {
	class.ID = "turma-new"
	f.created = append(f.created, *class)
	return nil
}

func (f *fakeClassRepo) Update(ctx context.Context, class *models.Class) error { return nil }

func (f *fakeClassRepo) Deactivate(ctx context.Context, id string) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]models.TeacherProfile
	saved    []models.TeacherProfile
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *models.TeacherProfile) error {
	f.saved = append(f.saved, *profile)
	return nil
}

type fakeObservationReader struct {
	records          []models.ObservationRecord
	calls            int
	start, end, stud string
}

func (f *fakeObservationReader) ListForStudentInPeriod(ctx context.Context, studentID, start, end string) ([]models.ObservationRecord, error) {
	f.calls++
	f.stud, f.start, f.end = studentID, start, end
	return f.records, nil
}

type fakeMilestoneRepo struct {
	items   []models.Milestone
	created []models.Milestone
	deleted bool
}

func (f *fakeMilestoneRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Milestone, error) {
	return f.items, nil
}

func (f *fakeMilestoneRepo) Create(ctx context.Context, item *models.Milestone) error {
	item.ID = "m-new"
	f.created = append(f.created, *item)
	return nil
}

func (f *fakeMilestoneRepo) Delete(ctx context.Context, studentID, id string) (bool, error) {
	return f.deleted, nil
}

type fakeParecerRepo struct {
	mu       sync.Mutex
	inserted []models.Parecer
	stored   map[string]models.Parecer
	updated  []models.Parecer
	err      error
}

func (f *fakeParecerRepo) Create(ctx context.Context, p *models.Parecer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p.ID = fmt.Sprintf("par-%d", len(f.inserted)+1)
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	f.inserted = append(f.inserted, *p)
	return nil
}

func (f *fakeParecerRepo) FindByID(ctx context.Context, id string) (*models.Parecer, error) {
	p, ok := f.stored[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (f *fakeParecerRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Parecer, error) {
	var out []models.Parecer
	for _, p := range f.stored {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParecerRepo) UpdateContent(ctx context.Context, p *models.Parecer) error {
	f.updated = append(f.updated, *p)
	return nil
}

type fakeCompletion struct {
	requests []llm.Request
	reply    string
	err      error
}

func (f *fakeCompletion) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeAudio struct {
	urls []string
	data llm.InlineData
	err  error
}

func (f *fakeAudio) Fetch(ctx context.Context, rawURL string) (llm.InlineData, error) {
	f.urls = append(f.urls, rawURL)
	return f.data, f.err
}

type fakeCacheRepo struct {
	store       map[string][]byte
	sets        int
	invalidated []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: map[string][]byte{}}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.sets++
	f.store[key] = raw
	return nil
}

func (f *fakeCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	f.invalidated = append(f.invalidated, pattern)
	f.store = map[string][]byte{}
	return nil
}
