package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

func newStudentFixture() (*StudentService, *fakeStudentRepo) {
	owner := "prof-1"
	repo := &fakeStudentRepo{students: map[string]models.StudentDetail{
		"stu-1": {Student: models.Student{ID: "stu-1", Nome: "Ana", BirthDate: "2020-01-02", ClassID: strPtr("T1"), Active: true}, OwnerID: &owner},
	}}
	classes := &fakeClassRepo{classes: map[string]models.Class{
		"T1": {ID: "T1", OwnerID: "prof-1"},
		"T2": {ID: "T2", OwnerID: "prof-1"},
		"TX": {ID: "TX", OwnerID: "prof-2"},
	}}
	return NewStudentService(repo, classes, nil, nil), repo
}

func TestStudentCreateRequiresOwnedClass(t *testing.T) {
	svc, repo := newStudentFixture()

	student, err := svc.Create(context.Background(), "prof-1", StudentRequest{Nome: "Bia", BirthDate: "2021-07-15", ClassID: "T1"})
	require.NoError(t, err)
	assert.True(t, student.Active)
	assert.Equal(t, "T1", *student.ClassID)

	_, err = svc.Create(context.Background(), "prof-1", StudentRequest{Nome: "Caio", BirthDate: "2021-07-15", ClassID: "TX"})
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), "prof-1", StudentRequest{Nome: "Caio", BirthDate: "15/07/2021", ClassID: "T1"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.created, 1)
}

func TestStudentGetNotFoundMessage(t *testing.T) {
	svc, _ := newStudentFixture()

	_, err := svc.Get(context.Background(), "prof-1", "ghost")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "Aluno não encontrado", appErr.Message)

	_, err = svc.Get(context.Background(), "prof-2", "stu-1")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestStudentUpdateMovesClassAndDelete(t *testing.T) {
	svc, repo := newStudentFixture()
	inactive := false

	student, err := svc.Update(context.Background(), "prof-1", "stu-1", StudentRequest{Nome: "Ana Luiza", BirthDate: "2020-01-02", ClassID: "T2", Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "T2", *student.ClassID)
	assert.False(t, student.Active)
	require.Len(t, repo.updated, 1)

	require.NoError(t, svc.Delete(context.Background(), "prof-1", "stu-1"))
	assert.Equal(t, []string{"stu-1"}, repo.deactivated)
}

func TestStudentListForcesOwner(t *testing.T) {
	svc, repo := newStudentFixture()

	_, page, err := svc.List(context.Background(), "prof-1", models.StudentFilter{OwnerID: "someone-else", PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, "prof-1", repo.lastFilter.OwnerID)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 1, page.TotalCount)
}
