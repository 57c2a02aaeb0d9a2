package store

import (
	"github.com/openboard/boardsync/pkg/types"
)

// Transition applies one action to a state and returns the next state. It is
// pure and total: it never mutates its inputs, never fails, and returns the
// input state unchanged for nil or unrecognized actions.
func Transition(state State, action Action) State {
	switch a := action.(type) {
	case SetLoading:
		switch a.Key {
		case LoadingPosts:
			state.Loading.Posts = a.Value
		case LoadingSearch:
			state.Loading.Search = a.Value
		case LoadingSubmit:
			state.Loading.Submit = a.Value
		}
		return state

	case SetCommentLoading:
		flags := make(map[int]bool, len(state.Loading.Comments)+1)
		for id, v := range state.Loading.Comments {
			flags[id] = v
		}
		flags[a.PostID] = a.Value
		state.Loading.Comments = flags
		return state

	case SetPosts:
		state.Posts = copyPosts(a.Posts)
		return state

	case AppendPosts:
		combined := make([]types.Post, 0, len(state.Posts)+len(a.Posts))
		combined = append(combined, state.Posts...)
		combined = append(combined, a.Posts...)
		state.Posts = combined
		return state

	case AddPost:
		combined := make([]types.Post, 0, len(state.Posts)+1)
		combined = append(combined, a.Post)
		combined = append(combined, state.Posts...)
		state.Posts = combined
		return state

	case UpdatePost:
		updated := copyPosts(state.Posts)
		for i := range updated {
			if updated[i].ID == a.Post.ID {
				updated[i] = a.Post
			}
		}
		state.Posts = updated
		return state

	case DeletePost:
		remaining := make([]types.Post, 0, len(state.Posts))
		for _, post := range state.Posts {
			if post.ID != a.ID {
				remaining = append(remaining, post)
			}
		}
		state.Posts = remaining
		return state

	case SetPagination:
		if a.CurrentPage != nil {
			state.Pagination.CurrentPage = *a.CurrentPage
		}
		if a.PageSize != nil {
			state.Pagination.PageSize = *a.PageSize
		}
		if a.HasMore != nil {
			state.Pagination.HasMore = *a.HasMore
		}
		return state

	case SetSearchQuery:
		state.Search.Query = a.Query
		return state

	case SetModal:
		if a.Visible != nil {
			state.Modal.Visible = *a.Visible
		}
		if a.ClearEditing {
			state.Modal.EditingPost = nil
		} else if a.EditingPost != nil {
			editing := *a.EditingPost
			state.Modal.EditingPost = &editing
		}
		return state

	case SetComments:
		state.Comments = withCommentList(state.Comments, a.PostID, copyComments(a.Comments))
		return state

	case AddComment:
		existing := state.Comments[a.PostID]
		combined := make([]types.Comment, 0, len(existing)+1)
		combined = append(combined, existing...)
		combined = append(combined, a.Comment)
		state.Comments = withCommentList(state.Comments, a.PostID, combined)
		return state

	case UpdateComment:
		cached, ok := state.Comments[a.PostID]
		if !ok {
			return state
		}
		updated := copyComments(cached)
		for i := range updated {
			if updated[i].ID == a.CommentID {
				updated[i] = a.Patch.Apply(updated[i])
			}
		}
		state.Comments = withCommentList(state.Comments, a.PostID, updated)
		return state

	case DeleteComment:
		cached, ok := state.Comments[a.PostID]
		if !ok {
			return state
		}
		remaining := make([]types.Comment, 0, len(cached))
		for _, comment := range cached {
			if comment.ID != a.CommentID {
				remaining = append(remaining, comment)
			}
		}
		state.Comments = withCommentList(state.Comments, a.PostID, remaining)
		return state

	default:
		return state
	}
}

func copyPosts(posts []types.Post) []types.Post {
	copied := make([]types.Post, len(posts))
	copy(copied, posts)
	return copied
}

func copyComments(comments []types.Comment) []types.Comment {
	copied := make([]types.Comment, len(comments))
	copy(copied, comments)
	return copied
}

func withCommentList(cache map[int][]types.Comment, postID int, list []types.Comment) map[int][]types.Comment {
	next := make(map[int][]types.Comment, len(cache)+1)
	for id, comments := range cache {
		next[id] = comments
	}
	next[postID] = list
	return next
}
