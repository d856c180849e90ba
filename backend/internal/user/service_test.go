package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"lovemining/backend/internal/graph"
	"lovemining/backend/internal/profile"
	apperrors "lovemining/backend/pkg/errors"
)

// Fake implementations for testing

type fakeProfileStore struct {
	profiles map[string]*profile.Profile
	nextID   int

	insertErr  error
	replaceErr error
	deleteErr  error
	pushErr    error
	removeErr  error

	replaced    []string
	removedRefs []string
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*profile.Profile)}
}

func (f *fakeProfileStore) Get(ctx context.Context, id string) (*profile.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileStore) Insert(ctx context.Context, p *profile.Profile) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.nextID++
	p.ID = fmt.Sprintf("user-%d", f.nextID)
	stored := *p
	f.profiles[p.ID] = &stored
	return p.ID, nil
}

func (f *fakeProfileStore) Replace(ctx context.Context, p *profile.Profile) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	if _, ok := f.profiles[p.ID]; !ok {
		return errors.New("no profile to replace")
	}
	stored := *p
	f.profiles[p.ID] = &stored
	f.replaced = append(f.replaced, p.ID)
	return nil
}

func (f *fakeProfileStore) DeleteByID(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.profiles, id)
	return nil
}

func (f *fakeProfileStore) PushReviewSummary(ctx context.Context, authorID string, summary profile.ReviewSummary) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	p, ok := f.profiles[authorID]
	if !ok {
		return errors.New("no such author")
	}
	p.ReviewsMade = append(p.ReviewsMade, summary)
	return nil
}

func (f *fakeProfileStore) RemoveReviewReferences(ctx context.Context, targetID string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removedRefs = append(f.removedRefs, targetID)
	for _, p := range f.profiles {
		kept := p.ReviewsMade[:0]
		for _, s := range p.ReviewsMade {
			if s.TargetID != targetID {
				kept = append(kept, s)
			}
		}
		p.ReviewsMade = kept
	}
	return nil
}

type fakeReviewStore struct {
	reviews map[string]*profile.Review
	nextID  int

	insertErr         error
	deleteAllErr      error
	deleteByTargetErr error

	deletedIDs     []string
	deletedTargets []string
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[string]*profile.Review)}
}

func (f *fakeReviewStore) Insert(ctx context.Context, rev *profile.Review) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.nextID++
	rev.ID = fmt.Sprintf("review-%d", f.nextID)
	stored := *rev
	f.reviews[rev.ID] = &stored
	return rev.ID, nil
}

func (f *fakeReviewStore) DeleteAllByID(ctx context.Context, ids []string) error {
	if f.deleteAllErr != nil {
		return f.deleteAllErr
	}
	for _, id := range ids {
		delete(f.reviews, id)
	}
	f.deletedIDs = append(f.deletedIDs, ids...)
	return nil
}

func (f *fakeReviewStore) DeleteByTargetID(ctx context.Context, targetID string) error {
	if f.deleteByTargetErr != nil {
		return f.deleteByTargetErr
	}
	for id, rev := range f.reviews {
		if rev.TargetID == targetID {
			delete(f.reviews, id)
		}
	}
	f.deletedTargets = append(f.deletedTargets, targetID)
	return nil
}

type fakeGraphStore struct {
	nodes    map[string]graph.UserNode
	likes    map[string]bool // "from->to"
	dislikes map[string]bool
	matched  map[string]bool // canonical "lo|hi"

	createErr    error
	basicErr     error
	interestsErr error
	locationErr  error
	detachErr    error
	likeErr      error
	dislikeErr   error

	recommendations []string
	calls           []string
}

func newFakeGraphStore() *fakeGraphStore {
	return &fakeGraphStore{
		nodes:    make(map[string]graph.UserNode),
		likes:    make(map[string]bool),
		dislikes: make(map[string]bool),
		matched:  make(map[string]bool),
	}
}

func edgeKey(from, to string) string { return from + "->" + to }

func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}

func (f *fakeGraphStore) CreateUser(ctx context.Context, node graph.UserNode, city, state string, interests []string) error {
	f.calls = append(f.calls, "CreateUser")
	if f.createErr != nil {
		return f.createErr
	}
	f.nodes[node.ID] = node
	return nil
}

func (f *fakeGraphStore) UpdateBasicProfile(ctx context.Context, id string, age int, sex, orientation string) error {
	f.calls = append(f.calls, "UpdateBasicProfile")
	if f.basicErr != nil {
		return f.basicErr
	}
	f.nodes[id] = graph.UserNode{ID: id, Age: age, Sex: sex, Orientation: orientation}
	return nil
}

func (f *fakeGraphStore) UpdateInterests(ctx context.Context, id string, interests []string) error {
	f.calls = append(f.calls, "UpdateInterests")
	return f.interestsErr
}

func (f *fakeGraphStore) UpdateLocation(ctx context.Context, id, city, state string) error {
	f.calls = append(f.calls, "UpdateLocation")
	return f.locationErr
}

func (f *fakeGraphStore) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.nodes[id]
	return ok, nil
}

func (f *fakeGraphStore) DetachDeleteUser(ctx context.Context, id string) error {
	f.calls = append(f.calls, "DetachDeleteUser")
	if f.detachErr != nil {
		return f.detachErr
	}
	delete(f.nodes, id)
	return nil
}

func (f *fakeGraphStore) HasLiked(ctx context.Context, fromID, toID string) (bool, error) {
	return f.likes[edgeKey(fromID, toID)], nil
}

func (f *fakeGraphStore) AreMatched(ctx context.Context, userID, targetID string) (bool, error) {
	return f.matched[pairKey(userID, targetID)], nil
}

func (f *fakeGraphStore) MergeLike(ctx context.Context, actorID, targetID string) error {
	f.calls = append(f.calls, "MergeLike")
	if f.likeErr != nil {
		return f.likeErr
	}
	f.likes[edgeKey(actorID, targetID)] = true
	return nil
}

func (f *fakeGraphStore) MergeDislike(ctx context.Context, actorID, targetID string) error {
	f.calls = append(f.calls, "MergeDislike")
	if f.dislikeErr != nil {
		return f.dislikeErr
	}
	f.dislikes[edgeKey(actorID, targetID)] = true
	return nil
}

func (f *fakeGraphStore) TransformLikeToMatch(ctx context.Context, actorID, targetID string) error {
	f.calls = append(f.calls, "TransformLikeToMatch")
	delete(f.likes, edgeKey(actorID, targetID))
	delete(f.likes, edgeKey(targetID, actorID))
	f.matched[pairKey(actorID, targetID)] = true
	return nil
}

func (f *fakeGraphStore) FindRecommendations(ctx context.Context, userID string, scope graph.Scope, minAge, maxAge int) ([]string, error) {
	return f.recommendations, nil
}

func (f *fakeGraphStore) FindMatches(ctx context.Context, userID string) ([]graph.UserNode, error) {
	return nil, nil
}

type fakeExtractor struct {
	tags []string
}

func (f *fakeExtractor) Extract(text string) []string {
	if text == "" {
		return nil
	}
	return f.tags
}

type fakeHasher struct {
	err error
}

func (f *fakeHasher) Hash(plaintext string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hashed:" + plaintext, nil
}

func newTestService() (*Service, *fakeProfileStore, *fakeReviewStore, *fakeGraphStore) {
	profiles := newFakeProfileStore()
	reviews := newFakeReviewStore()
	g := newFakeGraphStore()
	svc := NewService(profiles, reviews, g, &fakeExtractor{tags: []string{"Hiking", "Yoga"}}, &fakeHasher{})
	return svc, profiles, reviews, g
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Email:       "alice@example.com",
		Password:    "secret",
		Age:         30,
		Sex:         "f",
		Orientation: "straight",
		Status:      "single",
		City:        "Oakland",
		State:       "California",
		Essay:       "I love hiking and yoga",
	}
}

// registerPair registers two users and returns their ids
func registerPair(t *testing.T, svc *Service) (string, string) {
	t.Helper()
	a, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	input := validRegisterInput()
	input.Email = "bob@example.com"
	input.Sex = "m"
	b, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return a.ID, b.ID
}

func TestRegister_Success(t *testing.T) {
	svc, profiles, _, g := newTestService()

	p, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.ID == "" {
		t.Fatal("Expected a generated id")
	}
	if p.Password != "hashed:secret" {
		t.Errorf("Expected hashed password, got %q", p.Password)
	}
	if p.City != "oakland" || p.State != "california" {
		t.Errorf("Expected lowercased location, got %q/%q", p.City, p.State)
	}
	if len(p.Interests) != 2 {
		t.Errorf("Expected 2 extracted interests, got %v", p.Interests)
	}

	stored, _ := profiles.Get(context.Background(), p.ID)
	if stored == nil {
		t.Fatal("Profile not persisted")
	}
	if _, ok := g.nodes[p.ID]; !ok {
		t.Error("Graph mirror not created")
	}
}

func TestRegister_DefaultsStatusToUnknown(t *testing.T) {
	svc, _, _, _ := newTestService()

	input := validRegisterInput()
	input.Status = ""
	p, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.Status != "unknown" {
		t.Errorf("Expected status 'unknown', got %q", p.Status)
	}
}

func TestRegister_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"email without at sign", func(in *RegisterInput) { in.Email = "alice.example.com" }},
		{"short password", func(in *RegisterInput) { in.Password = "abc" }},
		{"underage", func(in *RegisterInput) { in.Age = 17 }},
		{"overage", func(in *RegisterInput) { in.Age = 101 }},
		{"bad sex", func(in *RegisterInput) { in.Sex = "x" }},
		{"bad orientation", func(in *RegisterInput) { in.Orientation = "unknown" }},
		{"bad status", func(in *RegisterInput) { in.Status = "complicated" }},
		{"missing city", func(in *RegisterInput) { in.City = "  " }},
		{"missing state", func(in *RegisterInput) { in.State = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, profiles, _, g := newTestService()
			input := validRegisterInput()
			tc.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			if !apperrors.IsValidation(err) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if len(profiles.profiles) != 0 {
				t.Error("Validation failure must not write to the profile store")
			}
			if len(g.calls) != 0 {
				t.Error("Validation failure must not touch the graph")
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), validRegisterInput())
	if !apperrors.IsConflict(err) {
		t.Fatalf("Expected conflict error, got %v", err)
	}
}

func TestRegister_GraphFailureRollsBackProfile(t *testing.T) {
	svc, profiles, _, g := newTestService()
	g.createErr = errors.New("bolt connection refused")

	_, err := svc.Register(context.Background(), validRegisterInput())
	if !apperrors.IsSyncFailure(err) {
		t.Fatalf("Expected sync failure, got %v", err)
	}
	if len(profiles.profiles) != 0 {
		t.Error("Profile must be rolled back after a graph write failure")
	}
}

func TestRegister_RollbackFailureStillReportsSyncFailure(t *testing.T) {
	svc, profiles, _, g := newTestService()
	g.createErr = errors.New("bolt connection refused")
	profiles.deleteErr = errors.New("mongo down too")

	_, err := svc.Register(context.Background(), validRegisterInput())
	if !apperrors.IsSyncFailure(err) {
		t.Fatalf("Expected sync failure, got %v", err)
	}
}

func TestUpdateProfile_GraphBeforeProfile(t *testing.T) {
	svc, profiles, _, g := newTestService()
	id, _ := registerPair(t, svc)
	g.calls = nil

	age := 35
	essay := "I love hiking"
	city := "Portland"
	state := "Oregon"
	err := svc.UpdateProfile(context.Background(), id, UpdateInput{
		Age:   &age,
		Essay: &essay,
		City:  &city,
		State: &state,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	want := []string{"UpdateBasicProfile", "UpdateInterests", "UpdateLocation"}
	if len(g.calls) != len(want) {
		t.Fatalf("Expected graph calls %v, got %v", want, g.calls)
	}
	for i, call := range want {
		if g.calls[i] != call {
			t.Fatalf("Expected graph calls %v, got %v", want, g.calls)
		}
	}

	p, _ := profiles.Get(context.Background(), id)
	if p.Age != 35 || p.City != "portland" || p.State != "oregon" {
		t.Errorf("Profile not updated: age=%d city=%q state=%q", p.Age, p.City, p.State)
	}
}

func TestUpdateProfile_UntouchedAspectsSkipGraph(t *testing.T) {
	svc, _, _, g := newTestService()
	id, _ := registerPair(t, svc)
	g.calls = nil

	status := "married"
	if err := svc.UpdateProfile(context.Background(), id, UpdateInput{Status: &status}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if len(g.calls) != 0 {
		t.Errorf("Status-only update must not touch the graph, got %v", g.calls)
	}
}

func TestUpdateProfile_GraphFailureLeavesProfileUnchanged(t *testing.T) {
	svc, profiles, _, g := newTestService()
	id, _ := registerPair(t, svc)
	g.interestsErr = errors.New("bolt timeout")

	essay := "I love yoga now"
	err := svc.UpdateProfile(context.Background(), id, UpdateInput{Essay: &essay})
	if !apperrors.IsSyncFailure(err) {
		t.Fatalf("Expected sync failure, got %v", err)
	}
	if len(profiles.replaced) != 0 {
		t.Error("Profile store must stay unchanged when a graph update fails")
	}

	p, _ := profiles.Get(context.Background(), id)
	if p.Essay == essay {
		t.Error("Essay must not be persisted after a graph failure")
	}
}

func TestUpdateProfile_ValidationBeforeAnyWrite(t *testing.T) {
	svc, profiles, _, g := newTestService()
	id, _ := registerPair(t, svc)
	g.calls = nil

	age := 12
	err := svc.UpdateProfile(context.Background(), id, UpdateInput{Age: &age})
	if !apperrors.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if len(g.calls) != 0 || len(profiles.replaced) != 0 {
		t.Error("Validation failure must not write anywhere")
	}
}

func TestUpdateProfile_MissingGraphMirror(t *testing.T) {
	svc, _, _, g := newTestService()
	id, _ := registerPair(t, svc)
	delete(g.nodes, id)

	age := 40
	err := svc.UpdateProfile(context.Background(), id, UpdateInput{Age: &age})
	if !apperrors.IsSyncFailure(err) {
		t.Fatalf("Expected sync failure for missing graph mirror, got %v", err)
	}
	var missing ErrGraphMirrorMissing
	if !errors.As(err, &missing) || missing.UserID != id {
		t.Errorf("Expected ErrGraphMirrorMissing for %s, got %v", id, err)
	}
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService()

	age := 40
	err := svc.UpdateProfile(context.Background(), "nope", UpdateInput{Age: &age})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}

func TestDeleteUser_RemovesEverything(t *testing.T) {
	svc, profiles, reviews, g := newTestService()
	aliceID, bobID := registerPair(t, svc)
	g.matched[pairKey(aliceID, bobID)] = true

	if _, err := svc.AddReview(context.Background(), aliceID, bobID, 4, "great"); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if _, err := svc.AddReview(context.Background(), bobID, aliceID, 2, "meh"); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), aliceID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, ok := g.nodes[aliceID]; ok {
		t.Error("Graph node must be gone")
	}
	if p, _ := profiles.Get(context.Background(), aliceID); p != nil {
		t.Error("Profile must be gone")
	}
	if len(reviews.reviews) != 0 {
		t.Errorf("Reviews by and about the user must be gone, got %d left", len(reviews.reviews))
	}
	bob, _ := profiles.Get(context.Background(), bobID)
	if len(bob.ReviewsMade) != 0 {
		t.Error("Other profiles must no longer reference reviews of the deleted user")
	}
}

func TestDeleteUser_GraphFailureAborts(t *testing.T) {
	svc, profiles, _, g := newTestService()
	id, _ := registerPair(t, svc)
	g.detachErr = errors.New("bolt connection refused")

	err := svc.DeleteUser(context.Background(), id)
	if !apperrors.IsSyncFailure(err) {
		t.Fatalf("Expected sync failure, got %v", err)
	}
	if p, _ := profiles.Get(context.Background(), id); p == nil {
		t.Error("Profile must survive an aborted deletion")
	}
}

func TestDeleteUser_ReviewCleanupIsBestEffort(t *testing.T) {
	svc, profiles, reviews, g := newTestService()
	aliceID, bobID := registerPair(t, svc)
	g.matched[pairKey(aliceID, bobID)] = true

	if _, err := svc.AddReview(context.Background(), aliceID, bobID, 4, "great"); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	reviews.deleteAllErr = errors.New("mongo timeout")
	reviews.deleteByTargetErr = errors.New("mongo timeout")
	profiles.removeErr = errors.New("mongo timeout")

	if err := svc.DeleteUser(context.Background(), aliceID); err != nil {
		t.Fatalf("Review cleanup failures must not fail the deletion: %v", err)
	}
	if p, _ := profiles.Get(context.Background(), aliceID); p != nil {
		t.Error("Profile must still be deleted")
	}
}

func TestLike_Self(t *testing.T) {
	svc, _, _, g := newTestService()
	id, _ := registerPair(t, svc)
	g.calls = nil

	_, err := svc.Like(context.Background(), id, id)
	if !apperrors.IsConflict(err) {
		t.Fatalf("Expected conflict error, got %v", err)
	}
	if len(g.calls) != 0 {
		t.Error("Self-like must not touch the graph")
	}
}

func TestLike_FirstLike(t *testing.T) {
	svc, _, _, g := newTestService()
	aliceID, bobID := registerPair(t, svc)

	outcome, err := svc.Like(context.Background(), aliceID, bobID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if outcome != OutcomeLikeSent {
		t.Errorf("Expected %q, got %q", OutcomeLikeSent, outcome)
	}
	if !g.likes[edgeKey(aliceID, bobID)] {
		t.Error("LIKES edge not recorded")
	}
}

func TestLike_ReciprocalCreatesMatch(t *testing.T) {
	svc, _, _, g := newTestService()
	aliceID, bobID := registerPair(t, svc)

	if _, err := svc.Like(context.Background(), aliceID, bobID); err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	outcome, err := svc.Like(context.Background(), bobID, aliceID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if outcome != OutcomeMatch {
		t.Errorf("Expected %q, got %q", OutcomeMatch, outcome)
	}
	if !g.matched[pairKey(aliceID, bobID)] {
		t.Error("MATCHED edge not recorded")
	}
	if g.likes[edgeKey(aliceID, bobID)] || g.likes[edgeKey(bobID, aliceID)] {
		t.Error("LIKES edges must be consumed by the match")
	}
}

func TestLike_AlreadyMatchedIsNoOp(t *testing.T) {
	svc, _, _, g := newTestService()
	aliceID, bobID := registerPair(t, svc)
	g.matched[pairKey(aliceID, bobID)] = true
	g.calls = nil

	outcome, err := svc.Like(context.Background(), aliceID, bobID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if outcome != OutcomeAlreadyMatched {
		t.Errorf("Expected %q, got %q", OutcomeAlreadyMatched, outcome)
	}
	if len(g.calls) != 0 {
		t.Errorf("Already-matched like must not write, got %v", g.calls)
	}
}

func TestLike_UnknownTarget(t *testing.T) {
	svc, _, _, g := newTestService()
	id, _ := registerPair(t, svc)
	g.likeErr = graph.ErrUserNotFound{UserID: "ghost"}

	_, err := svc.Like(context.Background(), id, "ghost")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}

func TestDislike(t *testing.T) {
	svc, _, _, g := newTestService()
	aliceID, bobID := registerPair(t, svc)

	if err := svc.Dislike(context.Background(), aliceID, aliceID); !apperrors.IsConflict(err) {
		t.Fatalf("Expected conflict for self-dislike, got %v", err)
	}

	if err := svc.Dislike(context.Background(), aliceID, bobID); err != nil {
		t.Fatalf("Dislike failed: %v", err)
	}
	if !g.dislikes[edgeKey(aliceID, bobID)] {
		t.Error("DISLIKES edge not recorded")
	}
}

func TestDislike_DoesNotAffectMatches(t *testing.T) {
	svc, _, _, g := newTestService()
	aliceID, bobID := registerPair(t, svc)
	g.matched[pairKey(aliceID, bobID)] = true

	if err := svc.Dislike(context.Background(), aliceID, bobID); err != nil {
		t.Fatalf("Dislike failed: %v", err)
	}
	if !g.matched[pairKey(aliceID, bobID)] {
		t.Error("Dislike must leave existing matches alone")
	}
}

func TestAddReview_RequiresMatch(t *testing.T) {
	svc, _, _, _ := newTestService()
	aliceID, bobID := registerPair(t, svc)

	_, err := svc.AddReview(context.Background(), aliceID, bobID, 3, "fine")
	if !apperrors.IsConflict(err) {
		t.Fatalf("Expected conflict for unmatched review, got %v", err)
	}
}

func TestAddReview_RatingRange(t *testing.T) {
	svc, _, _, g := newTestService()
	aliceID, bobID := registerPair(t, svc)
	g.matched[pairKey(aliceID, bobID)] = true

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.AddReview(context.Background(), aliceID, bobID, rating, ""); !apperrors.IsValidation(err) {
			t.Errorf("Expected validation error for rating %d, got %v", rating, err)
		}
	}
}

func TestAddReview_Success(t *testing.T) {
	svc, profiles, reviews, g := newTestService()
	aliceID, bobID := registerPair(t, svc)
	g.matched[pairKey(aliceID, bobID)] = true

	rev, err := svc.AddReview(context.Background(), aliceID, bobID, 5, "wonderful")
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if rev.ID == "" || rev.TargetID != bobID || rev.Rating != 5 {
		t.Errorf("Unexpected review: %+v", rev)
	}
	if _, ok := reviews.reviews[rev.ID]; !ok {
		t.Error("Review document not persisted")
	}

	alice, _ := profiles.Get(context.Background(), aliceID)
	if len(alice.ReviewsMade) != 1 || alice.ReviewsMade[0].ReviewID != rev.ID {
		t.Errorf("Review summary not appended to author: %+v", alice.ReviewsMade)
	}
}

func TestAddReview_Duplicate(t *testing.T) {
	svc, _, _, g := newTestService()
	aliceID, bobID := registerPair(t, svc)
	g.matched[pairKey(aliceID, bobID)] = true

	if _, err := svc.AddReview(context.Background(), aliceID, bobID, 5, "wonderful"); err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	_, err := svc.AddReview(context.Background(), aliceID, bobID, 1, "changed my mind")
	if !apperrors.IsConflict(err) {
		t.Fatalf("Expected conflict for duplicate review, got %v", err)
	}
}

func TestAddReview_Self(t *testing.T) {
	svc, _, _, _ := newTestService()
	id, _ := registerPair(t, svc)

	_, err := svc.AddReview(context.Background(), id, id, 5, "I am great")
	if !apperrors.IsConflict(err) {
		t.Fatalf("Expected conflict for self-review, got %v", err)
	}
}

func TestRecommend_ScopeValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	id, _ := registerPair(t, svc)

	for _, scope := range []string{"", "country", "CITYish"} {
		if _, err := svc.Recommend(context.Background(), id, scope, 18, 100); !apperrors.IsValidation(err) {
			t.Errorf("Expected validation error for scope %q, got %v", scope, err)
		}
	}

	// Scope is case-insensitive
	if _, err := svc.Recommend(context.Background(), id, "  State ", 18, 100); err != nil {
		t.Errorf("Expected normalized scope to pass, got %v", err)
	}
}

func TestRecommend_AgeRangeValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	id, _ := registerPair(t, svc)

	if _, err := svc.Recommend(context.Background(), id, "city", -1, 50); !apperrors.IsValidation(err) {
		t.Errorf("Expected validation error for negative min age, got %v", err)
	}
	if _, err := svc.Recommend(context.Background(), id, "city", 50, 30); !apperrors.IsValidation(err) {
		t.Errorf("Expected validation error for inverted range, got %v", err)
	}
}

func TestRecommend_EmptyResultIsNotNil(t *testing.T) {
	svc, _, _, _ := newTestService()
	id, _ := registerPair(t, svc)

	ids, err := svc.Recommend(context.Background(), id, "city", 18, 100)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if ids == nil {
		t.Error("Expected empty slice, got nil")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Get(context.Background(), "nope")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("Expected not-found error, got %v", err)
	}
}

func TestReviews_EmptyForNewUser(t *testing.T) {
	svc, _, _, _ := newTestService()
	id, _ := registerPair(t, svc)

	summaries, err := svc.Reviews(context.Background(), id)
	if err != nil {
		t.Fatalf("Reviews failed: %v", err)
	}
	if summaries == nil {
		t.Error("Expected empty slice, got nil")
	}
}
