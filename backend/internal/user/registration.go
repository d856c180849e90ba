package user

import (
	"context"

	"go.uber.org/zap"

	"lovemining/backend/internal/graph"
	"lovemining/backend/internal/profile"
	apperrors "lovemining/backend/pkg/errors"
)

// RegisterInput carries the caller-supplied fields of a registration. Identity,
// admin flag, interests and review summaries are never taken from input.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Age         int    `json:"age"`
	Sex         string `json:"sex"`
	Orientation string `json:"orientation"`
	Status      string `json:"status"`
	City        string `json:"city"`
	State       string `json:"state"`
	Essay       string `json:"essay"`

	BodyType  string `json:"body_type"`
	Diet      string `json:"diet"`
	Drinks    string `json:"drinks"`
	Education string `json:"education"`
	Ethnicity string `json:"ethnicity"`
	Height    int    `json:"height"`
	Income    int    `json:"income"`
	Job       string `json:"job"`
	Offspring string `json:"offspring"`
	Pets      string `json:"pets"`
	Religion  string `json:"religion"`
	Smokes    string `json:"smokes"`
	Speaks    string `json:"speaks"`
}

// Register creates a user in both stores. The profile document is written
// first and owns the identity; the graph mirror follows. If the graph write
// fails, the profile is deleted again so neither store holds the user, and the
// caller sees a sync failure.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*profile.Profile, error) {
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := validateAge(input.Age); err != nil {
		return nil, err
	}
	if err := validateSex(input.Sex); err != nil {
		return nil, err
	}
	if err := validateOrientation(input.Orientation); err != nil {
		return nil, err
	}

	status := normalize(input.Status)
	if status == "" {
		status = "unknown"
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	city := normalize(input.City)
	state := normalize(input.State)
	if city == "" {
		return nil, apperrors.NewValidation("the 'city' field is mandatory")
	}
	if state == "" {
		return nil, apperrors.NewValidation("the 'state' field is mandatory")
	}

	existing, err := s.profiles.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("profile", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflict("email already in use")
	}

	interests := s.extractor.Extract(input.Essay)

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.NewSyncFailure("credential hashing", err)
	}

	p := &profile.Profile{
		Email:       input.Email,
		Password:    digest,
		IsAdmin:     false,
		Age:         input.Age,
		Status:      status,
		Sex:         input.Sex,
		Orientation: input.Orientation,
		BodyType:    input.BodyType,
		Diet:        input.Diet,
		Drinks:      input.Drinks,
		Education:   input.Education,
		Ethnicity:   input.Ethnicity,
		Height:      input.Height,
		Income:      input.Income,
		Job:         input.Job,
		Offspring:   input.Offspring,
		Pets:        input.Pets,
		Religion:    input.Religion,
		Smokes:      input.Smokes,
		Speaks:      input.Speaks,
		City:        city,
		State:       state,
		Essay:       input.Essay,
		Interests:   interests,
	}

	id, err := s.profiles.Insert(ctx, p)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable("profile", err)
	}

	node := graph.UserNode{
		ID:          id,
		Age:         p.Age,
		Sex:         p.Sex,
		Orientation: p.Orientation,
	}
	if err := s.graph.CreateUser(ctx, node, city, state, interests); err != nil {
		// Compensating action: take the profile back out so neither store
		// holds the user. A failed rollback is logged, not retried.
		if rollbackErr := s.profiles.DeleteByID(ctx, id); rollbackErr != nil {
			s.logger.Error("Registration rollback failed, profile is orphaned",
				zap.String("user_id", id),
				zap.Error(rollbackErr),
			)
		}
		return nil, apperrors.NewSyncFailure("registration graph write", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", id),
		zap.String("city", city),
		zap.String("state", state),
	)
	return p, nil
}
