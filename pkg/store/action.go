package store

import (
	"github.com/openboard/boardsync/pkg/types"
)

// Action is the closed set of state transitions. Every variant carries fully
// typed payload fields; Transition switches over them exhaustively and treats
// anything else as a deliberate no-op.
type Action interface {
	isAction()
}

// SetLoading flips one of the scalar loading flags.
type SetLoading struct {
	Key   LoadingKey
	Value bool
}

// SetCommentLoading sets the per-post comment fetch flag.
type SetCommentLoading struct {
	PostID int
	Value  bool
}

// SetPosts replaces the post sequence wholesale. Used by initial loads and
// search results.
type SetPosts struct {
	Posts []types.Post
}

// AppendPosts concatenates a page to the end of the post sequence. Used by
// infinite-scroll continuation.
type AppendPosts struct {
	Posts []types.Post
}

// AddPost prepends a newly created post, newest first.
type AddPost struct {
	Post types.Post
}

// UpdatePost replaces the matching entry in place, preserving its position.
// A no-op when no entry has the post's id.
type UpdatePost struct {
	Post types.Post
}

// DeletePost removes the matching entry. A no-op when absent.
type DeletePost struct {
	ID int
}

// SetPagination merges non-nil fields into the pagination state.
type SetPagination struct {
	CurrentPage *int
	PageSize    *int
	HasMore     *bool
}

// SetSearchQuery replaces the search query. It does not touch Posts.
type SetSearchQuery struct {
	Query string
}

// SetModal merges modal fields. EditingPost is applied when non-nil;
// ClearEditing resets the edit target to create mode.
type SetModal struct {
	Visible      *bool
	EditingPost  *types.Post
	ClearEditing bool
}

// SetComments sets the full cached comment list for a post (first-load path).
type SetComments struct {
	PostID   int
	Comments []types.Comment
}

// AddComment appends to the post's cached list, creating it when absent.
type AddComment struct {
	PostID  int
	Comment types.Comment
}

// UpdateComment merges the patch into the matching cached comment. A no-op
// when the post's list is uncached or the comment is absent.
type UpdateComment struct {
	PostID    int
	CommentID int
	Patch     types.CommentPatch
}

// DeleteComment removes the matching comment from the cached list. A no-op
// when the post's list is uncached or the comment is absent.
type DeleteComment struct {
	PostID    int
	CommentID int
}

func (SetLoading) isAction()        {}
func (SetCommentLoading) isAction() {}
func (SetPosts) isAction()          {}
func (AppendPosts) isAction()       {}
func (AddPost) isAction()           {}
func (UpdatePost) isAction()        {}
func (DeletePost) isAction()        {}
func (SetPagination) isAction()     {}
func (SetSearchQuery) isAction()    {}
func (SetModal) isAction()          {}
func (SetComments) isAction()       {}
func (AddComment) isAction()        {}
func (UpdateComment) isAction()     {}
func (DeleteComment) isAction()     {}
