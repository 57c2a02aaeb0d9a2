package sync

import (
	"context"
	"fmt"
	stdsync "sync"

	"github.com/rs/zerolog"

	"github.com/openboard/boardsync/pkg/notify"
	"github.com/openboard/boardsync/pkg/store"
	"github.com/openboard/boardsync/pkg/types"
)

// CommentAPI describes the resource calls used by the comment syncer.
type CommentAPI interface {
	ListComments(ctx context.Context, postID int) ([]types.Comment, error)
	CreateComment(ctx context.Context, comment types.NewComment) (types.Comment, error)
	UpdateComment(ctx context.Context, id int, patch types.CommentPatch) (types.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// CommentSyncer synchronizes per-post comment caches and drives the
// moderation workflow.
type CommentSyncer struct {
	store    *store.Store
	api      CommentAPI
	notifier notify.Notifier
	log      zerolog.Logger

	// mu makes the cached/in-flight check and the flag set atomic, so at
	// most one comment fetch per post is in flight.
	mu stdsync.Mutex
}

// NewCommentSyncer creates a comment syncer.
func NewCommentSyncer(st *store.Store, api CommentAPI, notifier notify.Notifier, logger zerolog.Logger) *CommentSyncer {
	return &CommentSyncer{
		store:    st,
		api:      api,
		notifier: notifier,
		log:      logger.With().Str("component", "commentsync").Logger(),
	}
}

// Load fetches a post's comments once. Later calls are no-ops while the
// cache entry exists or a fetch is in flight. Comments arriving without a
// moderation status default to pending. A failed fetch leaves the post
// uncached so the next call retries.
func (s *CommentSyncer) Load(ctx context.Context, postID int) error {
	s.mu.Lock()
	st := s.store.State()
	if st.CommentsCached(postID) || st.CommentLoading(postID) {
		s.mu.Unlock()
		return nil
	}
	s.store.Dispatch(store.SetCommentLoading{PostID: postID, Value: true})
	s.mu.Unlock()

	defer s.store.Dispatch(store.SetCommentLoading{PostID: postID, Value: false})

	comments, err := s.api.ListComments(ctx, postID)
	if err != nil {
		s.notifyError("Failed to load comments")
		return err
	}

	withStatus := make([]types.Comment, len(comments))
	for i, comment := range comments {
		if comment.Status == "" {
			comment.Status = types.StatusPending
		}
		withStatus[i] = comment
	}

	s.store.Dispatch(store.SetComments{PostID: postID, Comments: withStatus})
	return nil
}

// Add creates a comment with status fixed to pending. Entry validation
// failures are returned without touching the resource. API failures are both
// notified and returned, so the caller can keep its transient form state.
func (s *CommentSyncer) Add(ctx context.Context, postID int, name, email, body string) error {
	comment := types.NewComment{
		PostID: postID,
		Name:   name,
		Email:  email,
		Body:   body,
		Status: types.StatusPending,
	}
	if err := comment.Validate(); err != nil {
		return err
	}

	created, err := s.api.CreateComment(ctx, comment)
	if err != nil {
		s.notifyError("Failed to add comment")
		return err
	}
	if created.Status == "" {
		created.Status = types.StatusPending
	}

	s.store.Dispatch(store.AddComment{PostID: postID, Comment: created})
	s.notifySuccess("Comment added successfully")
	return nil
}

// Update sends a partial update of the comment's author fields and body. It
// never touches moderation status. Failures are notified and returned.
func (s *CommentSyncer) Update(ctx context.Context, postID, commentID int, name, email, body string) error {
	patch := types.CommentPatch{
		Name:  &name,
		Email: &email,
		Body:  &body,
	}

	if _, err := s.api.UpdateComment(ctx, commentID, patch); err != nil {
		s.notifyError("Failed to update comment")
		return err
	}

	s.store.Dispatch(store.UpdateComment{PostID: postID, CommentID: commentID, Patch: patch})
	s.notifySuccess("Comment updated successfully")
	return nil
}

// Delete removes a comment, confirm-then-apply.
func (s *CommentSyncer) Delete(ctx context.Context, postID, commentID int) error {
	if err := s.api.DeleteComment(ctx, commentID); err != nil {
		s.notifyError("Failed to delete comment")
		return err
	}

	s.store.Dispatch(store.DeleteComment{PostID: postID, CommentID: commentID})
	s.notifySuccess("Comment deleted successfully")
	return nil
}

// ChangeStatus moves a comment through the moderation state machine. The
// approved tally is derived from the cache, so no counter bookkeeping
// happens here.
func (s *CommentSyncer) ChangeStatus(ctx context.Context, postID, commentID int, status types.CommentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown comment status %q", status)
	}

	patch := types.CommentPatch{Status: &status}
	if _, err := s.api.UpdateComment(ctx, commentID, patch); err != nil {
		s.notifyError("Failed to update comment status")
		return err
	}

	s.store.Dispatch(store.UpdateComment{PostID: postID, CommentID: commentID, Patch: patch})
	s.notifySuccess(fmt.Sprintf("Comment %s", status))
	return nil
}

func (s *CommentSyncer) notifyError(msg string) {
	if s.notifier != nil {
		s.notifier.Error(msg)
	}
}

func (s *CommentSyncer) notifySuccess(msg string) {
	if s.notifier != nil {
		s.notifier.Success(msg)
	}
}
