package user

import (
	"context"

	"go.uber.org/zap"

	apperrors "lovemining/backend/pkg/errors"
)

// UpdateInput carries a partial profile update. Nil fields are left untouched.
type UpdateInput struct {
	Age         *int    `json:"age"`
	Sex         *string `json:"sex"`
	Orientation *string `json:"orientation"`
	Status      *string `json:"status"`
	Password    *string `json:"password"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Essay       *string `json:"essay"`

	BodyType  *string `json:"body_type"`
	Diet      *string `json:"diet"`
	Drinks    *string `json:"drinks"`
	Education *string `json:"education"`
	Ethnicity *string `json:"ethnicity"`
	Height    *int    `json:"height"`
	Income    *int    `json:"income"`
	Job       *string `json:"job"`
	Offspring *string `json:"offspring"`
	Pets      *string `json:"pets"`
	Religion  *string `json:"religion"`
	Smokes    *string `json:"smokes"`
	Speaks    *string `json:"speaks"`
}

// UpdateProfile applies a partial update to both stores. Validation covers
// only the fields present. Graph mutations for each dirty aspect (basic info,
// interests, location) are issued first as independent statements; the profile
// document is written only after every requested graph mutation succeeded, so
// a graph failure never leaves the profile store ahead of the graph.
func (s *Service) UpdateProfile(ctx context.Context, id string, input UpdateInput) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	present, err := s.graph.Exists(ctx, id)
	if err != nil {
		return apperrors.NewStoreUnavailable("graph", err)
	}
	if !present {
		return apperrors.NewSyncFailure("profile update", ErrGraphMirrorMissing{UserID: id})
	}

	var dirtyBasic, dirtyInterests, dirtyLocation bool

	if input.Age != nil {
		if err := validateAge(*input.Age); err != nil {
			return err
		}
		p.Age = *input.Age
		dirtyBasic = true
	}
	if input.Sex != nil {
		sex := normalize(*input.Sex)
		if err := validateSex(sex); err != nil {
			return err
		}
		p.Sex = sex
		dirtyBasic = true
	}
	if input.Orientation != nil {
		orientation := normalize(*input.Orientation)
		if err := validateOrientation(orientation); err != nil {
			return err
		}
		p.Orientation = orientation
		dirtyBasic = true
	}
	if input.Status != nil {
		status := normalize(*input.Status)
		if err := validateStatus(status); err != nil {
			return err
		}
		p.Status = status
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return err
		}
		digest, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return apperrors.NewSyncFailure("credential hashing", err)
		}
		p.Password = digest
	}

	applyString(input.BodyType, &p.BodyType)
	applyString(input.Diet, &p.Diet)
	applyString(input.Drinks, &p.Drinks)
	applyString(input.Education, &p.Education)
	applyString(input.Ethnicity, &p.Ethnicity)
	applyString(input.Job, &p.Job)
	applyString(input.Offspring, &p.Offspring)
	applyString(input.Pets, &p.Pets)
	applyString(input.Religion, &p.Religion)
	applyString(input.Smokes, &p.Smokes)
	applyString(input.Speaks, &p.Speaks)
	if input.Height != nil {
		p.Height = *input.Height
	}
	if input.Income != nil {
		p.Income = *input.Income
	}

	if input.Essay != nil && normalize(*input.Essay) != "" {
		p.Essay = *input.Essay
		p.Interests = s.extractor.Extract(*input.Essay)
		dirtyInterests = true
	}

	cityChanged := input.City != nil && normalize(*input.City) != ""
	stateChanged := input.State != nil && normalize(*input.State) != ""
	if cityChanged || stateChanged {
		city := p.City
		state := p.State
		if cityChanged {
			city = normalize(*input.City)
		}
		if stateChanged {
			state = normalize(*input.State)
		}
		if city == "" || state == "" {
			return apperrors.NewValidation("city and state must both be present to update location")
		}
		p.City = city
		p.State = state
		dirtyLocation = true
	}

	// Graph first. A failure on the second or third statement can leave the
	// graph partially updated, but the profile store stays fully unchanged.
	if dirtyBasic {
		if err := s.graph.UpdateBasicProfile(ctx, id, p.Age, p.Sex, p.Orientation); err != nil {
			return apperrors.NewSyncFailure("basic profile graph update", err)
		}
	}
	if dirtyInterests {
		if err := s.graph.UpdateInterests(ctx, id, p.Interests); err != nil {
			return apperrors.NewSyncFailure("interests graph update", err)
		}
	}
	if dirtyLocation {
		if err := s.graph.UpdateLocation(ctx, id, p.City, p.State); err != nil {
			return apperrors.NewSyncFailure("location graph update", err)
		}
	}

	if err := s.profiles.Replace(ctx, p); err != nil {
		return apperrors.NewStoreUnavailable("profile", err)
	}

	s.logger.Info("Profile updated",
		zap.String("user_id", id),
		zap.Bool("basic", dirtyBasic),
		zap.Bool("interests", dirtyInterests),
		zap.Bool("location", dirtyLocation),
	)
	return nil
}

func applyString(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}

// ErrGraphMirrorMissing reports a profile whose graph counterpart is gone
type ErrGraphMirrorMissing struct {
	UserID string
}

func (e ErrGraphMirrorMissing) Error() string {
	return "graph mirror missing for user " + e.UserID
}
