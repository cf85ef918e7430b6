package service

import (
	"testing"

	"quiz_room_hub/internal/model"
	"quiz_room_hub/internal/testutil"
	"quiz_room_hub/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostPermissions(t *testing.T) {
	f := newFixture(t)
	owner, ownerProfile := testutil.CreateTeacher(t, f.db, "owner@example.com")
	studentUser, student := testutil.CreateStudent(t, f.db, "student@example.com")
	outsider, _ := testutil.CreateStudent(t, f.db, "outsider@example.com")
	classroom := testutil.CreateClassroom(t, f.db, ownerProfile, "Algebra")
	other := testutil.CreateClassroom(t, f.db, ownerProfile, "Other")
	testutil.Enroll(t, f.db, student, classroom)
	in := &PostInput{Title: strPtr("Welcome"), Content: strPtr("Read chapter 1")}

	_, err := f.post.CreatePost(owner.ID, model.GenerateUUID(), in)
	assert.ErrorIs(t, err, util.ErrNotFound)
	_, err = f.post.CreatePost(studentUser.ID, classroom.ID, in)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	post, err := f.post.CreatePost(owner.ID, classroom.ID, in)
	require.NoError(t, err)

	page, err := f.post.ListPosts(studentUser.ID, classroom.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	_, err = f.post.ListPosts(studentUser.ID, model.GenerateUUID(), firstPage)
	requireFieldError(t, err, util.NonFieldErrorsKey, msgClassroomDoesNotExist)
	_, err = f.post.ListPosts(outsider.ID, classroom.ID, firstPage)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// the post is addressed through its own classroom only
	_, err = f.post.GetPost(owner.ID, other.ID, post.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = f.post.UpdatePost(studentUser.ID, classroom.ID, post.ID, in)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestCommentPermissions(t *testing.T) {
	f := newFixture(t)
	owner, ownerProfile := testutil.CreateTeacher(t, f.db, "owner@example.com")
	author, authorProfile := testutil.CreateStudent(t, f.db, "author@example.com")
	peer, peerProfile := testutil.CreateStudent(t, f.db, "peer@example.com")
	classroom := testutil.CreateClassroom(t, f.db, ownerProfile, "Algebra")
	testutil.Enroll(t, f.db, authorProfile, classroom)
	testutil.Enroll(t, f.db, peerProfile, classroom)

	post, err := f.post.CreatePost(owner.ID, classroom.ID, &PostInput{Title: strPtr("T"), Content: strPtr("C")})
	require.NoError(t, err)

	comment, err := f.post.CreateComment(author.ID, classroom.ID, post.ID, &CommentInput{Content: strPtr("First!")})
	require.NoError(t, err)
	require.NotNil(t, comment.User)
	assert.Equal(t, "author@example.com", comment.User.Email)

	_, err = f.post.ListComments(author.ID, classroom.ID, model.GenerateUUID(), firstPage)
	requireFieldError(t, err, util.NonFieldErrorsKey, msgPostDoesNotExist)

	_, err = f.post.UpdateComment(owner.ID, classroom.ID, post.ID, comment.ID, &CommentInput{Content: strPtr("edited")})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	updated, err := f.post.UpdateComment(author.ID, classroom.ID, post.ID, comment.ID, &CommentInput{Content: strPtr("edited")})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	assert.ErrorIs(t, f.post.DeleteComment(peer.ID, classroom.ID, post.ID, comment.ID), util.ErrPermissionDenied)
	require.NoError(t, f.post.DeleteComment(owner.ID, classroom.ID, post.ID, comment.ID))

	page, err := f.post.ListComments(author.ID, classroom.ID, post.ID, firstPage)
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}
