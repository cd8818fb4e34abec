package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

func TestMilestoneCreateDefaultsDate(t *testing.T) {
	owner := "prof-1"
	students := &fakeStudentRepo{students: map[string]models.StudentDetail{"stu-1": {Student: models.Student{ID: "stu-1"}, OwnerID: &owner}}}
	repo := &fakeMilestoneRepo{}
	svc := NewMilestoneService(repo, students, nil, nil)

	item, err := svc.Create(context.Background(), "prof-1", "stu-1", MilestoneRequest{Titulo: "Reconhece cores", Area: "Cognitivo"})
	require.NoError(t, err)
	assert.Equal(t, "stu-1", item.StudentID)
	assert.WithinDuration(t, time.Now().UTC(), item.AchievedAt, 24*time.Hour)

	err = svc.Delete(context.Background(), "prof-1", "stu-1", "m-missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.List(context.Background(), "prof-2", "stu-1")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestTeacherProfileSaveAndGet(t *testing.T) {
	repo := &fakeProfileRepo{profiles: map[string]models.TeacherProfile{}}
	svc := NewTeacherProfileService(repo, nil, nil)

	_, err := svc.Get(context.Background(), "prof-1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	profile, err := svc.Save(context.Background(), "prof-1", TeacherProfileRequest{Nome: "Marta", ExpectedPages: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, "prof-1", profile.UserID)
	require.Len(t, repo.saved, 1)

	_, err = svc.Save(context.Background(), "prof-1", TeacherProfileRequest{Nome: "Marta", ExpectedPages: intPtr(0)})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
