package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/parecer-api/internal/models"
)

// GenerationPreferences are the writing preferences applied to a draft.
type GenerationPreferences struct {
	WritingStyle  string
	ExpectedPages int
	// OwnerID is the teacher owning the class, empty when the class has none or is unknown.
	OwnerID string
}

type profileReader interface {
	FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error)
}

// ResolveGenerationPreferences follows class → owning teacher → profile. A missing class, an
// ownerless class or a missing profile yields the defaults; a profile with an empty style or
// non-positive page target falls back field by field.
func ResolveGenerationPreferences(ctx context.Context, classes classReader, profiles profileReader, classID string) (GenerationPreferences, error) {
	prefs := GenerationPreferences{WritingStyle: DefaultWritingStyle, ExpectedPages: DefaultExpectedPages}

	class, err := classes.FindByID(ctx, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return prefs, nil
		}
		return prefs, persistenceError(err, "failed to load class")
	}
	if class.OwnerID == "" {
		return prefs, nil
	}
	prefs.OwnerID = class.OwnerID

	profile, err := profiles.FindByUserID(ctx, class.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return prefs, nil
		}
		return prefs, persistenceError(err, "failed to load teacher profile")
	}
	if profile.WritingStyle != nil && *profile.WritingStyle != "" {
		prefs.WritingStyle = *profile.WritingStyle
	}
	if profile.ExpectedPages != nil && *profile.ExpectedPages > 0 {
		prefs.ExpectedPages = *profile.ExpectedPages
	}
	return prefs, nil
}
