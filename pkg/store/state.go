// Package store holds the application state tree and its pure transition function.
//
// All state belongs to a single immutable State value. Mutation happens only
// by dispatching typed actions through a Store, which applies Transition
// atomically. Snapshots returned by the store share underlying slices and
// maps with the tree and must be treated as read-only.
package store

import (
	"github.com/openboard/boardsync/pkg/types"
)

// DefaultPageSize is the fixed pagination page size when none is configured.
const DefaultPageSize = 20

// LoadingKey names one of the scalar loading flags.
type LoadingKey string

const (
	// LoadingPosts is the paginated list fetch flag.
	LoadingPosts LoadingKey = "posts"
	// LoadingSearch is the search fetch flag.
	LoadingSearch LoadingKey = "search"
	// LoadingSubmit is the create/update submission flag.
	LoadingSubmit LoadingKey = "submit"
)

// Loading holds the independent in-flight flags.
type Loading struct {
	Posts  bool
	Search bool
	Submit bool
	// Comments maps post id to an in-flight comment fetch flag.
	Comments map[int]bool
}

// Pagination tracks the infinite-scroll cursor. HasMore is heuristic: true
// iff the last fetched page was exactly PageSize long, since the resource
// exposes no total count.
type Pagination struct {
	CurrentPage int
	PageSize    int
	HasMore     bool
}

// Search holds the current query. An empty query means paginated mode; a
// non-empty query means search mode, which disables infinite scroll.
type Search struct {
	Query string
}

// Modal tracks the create/edit dialog. A non-nil EditingPost means edit
// mode; nil means create mode.
type Modal struct {
	Visible     bool
	EditingPost *types.Post
}

// State is the single immutable application state tree.
type State struct {
	// Posts is the ordered post sequence: arrival/page order, or search
	// result order. No two entries share an id.
	Posts      []types.Post
	Loading    Loading
	Pagination Pagination
	Search     Search
	Modal      Modal
	// Comments maps post id to its cached comment list. A missing key means
	// "not yet fetched", distinct from an empty fetched list.
	Comments map[int][]types.Comment
}

// NewState returns the initial state for the given page size.
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		Posts: nil,
		Loading: Loading{
			Comments: map[int]bool{},
		},
		Pagination: Pagination{
			CurrentPage: 1,
			PageSize:    pageSize,
			HasMore:     true,
		},
		Comments: map[int][]types.Comment{},
	}
}

// SearchMode reports whether a search query is active.
func (s State) SearchMode() bool {
	return s.Search.Query != ""
}

// CommentsCached reports whether comments for the post were fetched at least
// once. An empty cached list still counts as cached.
func (s State) CommentsCached(postID int) bool {
	_, ok := s.Comments[postID]
	return ok
}

// CommentLoading reports whether a comment fetch is in flight for the post.
func (s State) CommentLoading(postID int) bool {
	return s.Loading.Comments[postID]
}

// VisibleComments returns the post's cached comments with rejected entries
// hidden. The cache itself keeps rejected comments.
func (s State) VisibleComments(postID int) []types.Comment {
	cached, ok := s.Comments[postID]
	if !ok {
		return nil
	}
	visible := make([]types.Comment, 0, len(cached))
	for _, comment := range cached {
		if comment.Status == types.StatusRejected {
			continue
		}
		visible = append(visible, comment)
	}
	return visible
}

// ApprovedCommentCount returns how many cached comments of the post are
// approved. It is derived from the cache on demand so it cannot drift.
func (s State) ApprovedCommentCount(postID int) int {
	count := 0
	for _, comment := range s.Comments[postID] {
		if comment.Status == types.StatusApproved {
			count++
		}
	}
	return count
}

// TotalApprovedComments returns the approved count across every cached post.
func (s State) TotalApprovedComments() int {
	total := 0
	for postID := range s.Comments {
		total += s.ApprovedCommentCount(postID)
	}
	return total
}
