package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-api/internal/domain"
	"github.com/skillswap/skillswap-api/internal/repository"
)

type ledgerClassStore struct {
	l       *ledger
	classes map[uint]*domain.Class
	posts   map[uint]*domain.ClassPost
	nextID  uint
}

func newLedgerClassStore(l *ledger) *ledgerClassStore {
	return &ledgerClassStore{
		l:       l,
		classes: make(map[uint]*domain.Class),
		posts:   make(map[uint]*domain.ClassPost),
	}
}

func (s *ledgerClassStore) Create(_ context.Context, class domain.Class) (domain.Class, error) {
	s.nextID++
	class.ID = s.nextID
	s.classes[class.ID] = &class

	return class, nil
}

func (s *ledgerClassStore) FindByID(_ context.Context, id uint) (domain.Class, error) {
	class, ok := s.classes[id]
	if !ok {
		return domain.Class{}, repository.ErrClassNotFound
	}

	return *class, nil
}

func (s *ledgerClassStore) FindAll(_ context.Context) ([]domain.Class, error) {
	var classes []domain.Class
	for _, c := range s.classes {
		classes = append(classes, *c)
	}

	return classes, nil
}

func (s *ledgerClassStore) FindByInstructorID(_ context.Context, instructorID uint) ([]domain.Class, error) {
	var classes []domain.Class
	for _, c := range s.classes {
		if c.InstructorID == instructorID {
			classes = append(classes, *c)
		}
	}

	return classes, nil
}

func (s *ledgerClassStore) FindByStudentID(_ context.Context, studentID uint) ([]domain.Class, error) {
	var classes []domain.Class
	for _, c := range s.classes {
		if c.IsEnrolled(studentID) {
			classes = append(classes, *c)
		}
	}

	return classes, nil
}

func (s *ledgerClassStore) Update(_ context.Context, class domain.Class) (domain.Class, error) {
	stored, ok := s.classes[class.ID]
	if !ok {
		return domain.Class{}, repository.ErrClassNotFound
	}
	class.Students = stored.Students
	s.classes[class.ID] = &class

	return class, nil
}

func (s *ledgerClassStore) Delete(_ context.Context, id, instructorID uint) error {
	class, ok := s.classes[id]
	if !ok {
		return repository.ErrClassNotFound
	}
	if class.InstructorID != instructorID {
		return repository.ErrClassNotFound
	}
	delete(s.classes, id)

	return nil
}

func (s *ledgerClassStore) AddStudentWithHold(_ context.Context, classID, userID uint, cost int) error {
	class, ok := s.classes[classID]
	if !ok {
		return repository.ErrClassNotFound
	}
	if class.InstructorID == userID {
		return repository.ErrOwnClass
	}
	if class.IsEnrolled(userID) {
		return repository.ErrAlreadyEnrolled
	}
	if class.IsFull() {
		return repository.ErrClassFull
	}

	user := s.l.users[userID]
	if user.Credits < cost {
		return repository.ErrInsufficientCredits
	}
	user.Credits -= cost
	user.PendingCredits += cost
	class.Students = append(class.Students, *user)

	return nil
}

func (s *ledgerClassStore) CompleteWithTransfer(_ context.Context, classID, instructorID uint) (int, error) {
	class, ok := s.classes[classID]
	if !ok {
		return 0, repository.ErrClassNotFound
	}
	if class.Completed {
		return 0, repository.ErrClassCompleted
	}

	earned := 0
	for _, enrolled := range class.Students {
		student := s.l.users[enrolled.ID]
		if student.PendingCredits > 0 {
			student.PendingCredits--
			earned++
		}
	}
	s.l.users[instructorID].Credits += earned
	class.Completed = true

	return earned, nil
}

func (s *ledgerClassStore) Roster(_ context.Context, classID uint) ([]domain.User, error) {
	class, ok := s.classes[classID]
	if !ok {
		return nil, repository.ErrClassNotFound
	}

	return class.Students, nil
}

func (s *ledgerClassStore) CreatePost(_ context.Context, post domain.ClassPost) (domain.ClassPost, error) {
	s.nextID++
	post.ID = s.nextID
	s.posts[post.ID] = &post

	return post, nil
}

func (s *ledgerClassStore) FindPostsByClassID(_ context.Context, classID uint) ([]domain.ClassPost, error) {
	var posts []domain.ClassPost
	for _, p := range s.posts {
		if p.ClassID == classID {
			posts = append(posts, *p)
		}
	}

	return posts, nil
}

func (s *ledgerClassStore) ReactToPost(_ context.Context, postID uint, reaction domain.ReactionKind) (domain.ClassPost, error) {
	post, ok := s.posts[postID]
	if !ok {
		return domain.ClassPost{}, repository.ErrClassPostNotFound
	}
	switch reaction {
	case domain.ReactionLike:
		post.Reactions.Like++
	case domain.ReactionHeart:
		post.Reactions.Heart++
	case domain.ReactionLaugh:
		post.Reactions.Laugh++
	case domain.ReactionWow:
		post.Reactions.Wow++
	}

	return *post, nil
}

func newClassFixture(t *testing.T) (*ledger, *ledgerClassStore, *ClassService) {
	t.Helper()

	l := newLedger()
	instructor := l.addUser(1, 3)
	instructor.FirstName = "Ada"
	instructor.LastName = "Lovelace"
	l.addUser(2, 2)
	l.addUser(3, 0)
	l.skills[10] = domain.Skill{
		ID:          10,
		Title:       "Sourdough basics",
		Description: "Starter care and first loaf",
		UserID:      1,
	}

	store := newLedgerClassStore(l)
	svc := NewClassService(store, &ledgerUserRepo{l: l}, &ledgerSkillRepo{l: l}, store)

	return l, store, svc
}

func TestCreateClassDefaultsFromSkill(t *testing.T) {
	_, _, svc := newClassFixture(t)

	class, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID:      10,
		InstructorID: 1,
		MaxStudents:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sourdough basics", class.Title)
	assert.Equal(t, "Starter care and first loaf", class.Description)
	assert.Equal(t, "Ada Lovelace", class.InstructorName)
	assert.False(t, class.Completed)
}

func TestCreateClassRequiresSkillOwnership(t *testing.T) {
	_, _, svc := newClassFixture(t)

	_, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID:      10,
		InstructorID: 2,
		MaxStudents:  5,
	})

	assert.ErrorIs(t, err, ErrNotSkillOwner)
}

func TestJoinClassHoldsCredit(t *testing.T) {
	l, _, svc := newClassFixture(t)

	created, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID: 10, InstructorID: 1, MaxStudents: 5,
	})
	require.NoError(t, err)

	class, err := svc.JoinClass(context.Background(), created.ID, 2)
	require.NoError(t, err)

	assert.True(t, class.IsEnrolled(2))
	assert.Equal(t, 1, l.users[2].Credits)
	assert.Equal(t, 1, l.users[2].PendingCredits)
}

func TestJoinClassRejections(t *testing.T) {
	_, _, svc := newClassFixture(t)

	created, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID: 10, InstructorID: 1, MaxStudents: 1,
	})
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), created.ID, 1)
	assert.ErrorIs(t, err, ErrOwnClass)

	_, err = svc.JoinClass(context.Background(), created.ID, 3)
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	_, err = svc.JoinClass(context.Background(), created.ID, 2)
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), created.ID, 2)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestJoinFullClass(t *testing.T) {
	l, _, svc := newClassFixture(t)
	l.addUser(4, 2)

	created, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID: 10, InstructorID: 1, MaxStudents: 1,
	})
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), created.ID, 2)
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), created.ID, 4)
	assert.ErrorIs(t, err, ErrClassFull)
}

func TestCompleteClassTransfersOneCreditPerStudent(t *testing.T) {
	l, _, svc := newClassFixture(t)
	l.addUser(4, 2)

	created, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID: 10, InstructorID: 1, MaxStudents: 5,
	})
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), created.ID, 2)
	require.NoError(t, err)
	_, err = svc.JoinClass(context.Background(), created.ID, 4)
	require.NoError(t, err)

	result, err := svc.CompleteClass(context.Background(), 1, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.CreditsEarned)
	assert.Equal(t, 5, result.InstructorCredit)
	assert.Equal(t, 0, l.users[2].PendingCredits)
	assert.Equal(t, 0, l.users[4].PendingCredits)

	_, err = svc.CompleteClass(context.Background(), 1, created.ID)
	assert.ErrorIs(t, err, ErrClassCompleted)
}

// Completion settles the roster but does not close enrollment; a later join
// still holds a credit.
func TestJoinClassAfterCompletion(t *testing.T) {
	l, _, svc := newClassFixture(t)
	l.addUser(4, 2)

	created, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID: 10, InstructorID: 1, MaxStudents: 5,
	})
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), created.ID, 2)
	require.NoError(t, err)

	_, err = svc.CompleteClass(context.Background(), 1, created.ID)
	require.NoError(t, err)

	class, err := svc.JoinClass(context.Background(), created.ID, 4)
	require.NoError(t, err)

	assert.True(t, class.IsEnrolled(4))
	assert.Equal(t, 1, l.users[4].PendingCredits)
}

func TestCompleteClassRequiresInstructor(t *testing.T) {
	_, _, svc := newClassFixture(t)

	created, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID: 10, InstructorID: 1, MaxStudents: 5,
	})
	require.NoError(t, err)

	_, err = svc.CompleteClass(context.Background(), 2, created.ID)

	assert.ErrorIs(t, err, ErrNotClassInstructor)
}

func TestUpdateClassPreservesOwnershipFields(t *testing.T) {
	_, _, svc := newClassFixture(t)

	created, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID: 10, InstructorID: 1, MaxStudents: 5,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateClass(context.Background(), 1, domain.Class{
		ID:          created.ID,
		Title:       "Sourdough, advanced",
		MaxStudents: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sourdough, advanced", updated.Title)
	assert.Equal(t, uint(10), updated.SkillID)
	assert.Equal(t, uint(1), updated.InstructorID)
	assert.Equal(t, "Ada Lovelace", updated.InstructorName)

	_, err = svc.UpdateClass(context.Background(), 2, domain.Class{ID: created.ID})
	assert.ErrorIs(t, err, ErrNotClassInstructor)
}

func TestClassWallRequiresMembership(t *testing.T) {
	_, _, svc := newClassFixture(t)

	created, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID: 10, InstructorID: 1, MaxStudents: 5,
	})
	require.NoError(t, err)

	_, err = svc.CreatePost(context.Background(), domain.ClassPost{
		ClassID: created.ID,
		UserID:  2,
		Message: "Hello",
	})
	assert.ErrorIs(t, err, ErrNotClassMember)

	_, err = svc.JoinClass(context.Background(), created.ID, 2)
	require.NoError(t, err)

	post, err := svc.CreatePost(context.Background(), domain.ClassPost{
		ClassID: created.ID,
		UserID:  2,
		Message: "Hello",
	})
	require.NoError(t, err)

	reacted, err := svc.ReactToPost(context.Background(), 1, created.ID, post.ID, domain.ReactionHeart)
	require.NoError(t, err)
	assert.Equal(t, 1, reacted.Reactions.Heart)

	posts, err := svc.ListPosts(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	_, err = svc.ListPosts(context.Background(), 3, created.ID)
	assert.ErrorIs(t, err, ErrNotClassMember)
}

func TestRosterInstructorOnly(t *testing.T) {
	_, _, svc := newClassFixture(t)

	created, err := svc.CreateClass(context.Background(), domain.Class{
		SkillID: 10, InstructorID: 1, MaxStudents: 5,
	})
	require.NoError(t, err)

	_, err = svc.JoinClass(context.Background(), created.ID, 2)
	require.NoError(t, err)

	roster, err := svc.Roster(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	_, err = svc.Roster(context.Background(), 2, created.ID)
	assert.ErrorIs(t, err, ErrNotClassInstructor)
}
