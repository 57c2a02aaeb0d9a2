// Package sync orchestrates resource client calls against the state store.
//
// The post syncer drives pagination, the search-mode switch, and post
// mutations; the comment syncer drives lazy per-post comment loading and the
// moderation workflow. Neither holds domain state of its own: results flow
// back into the store as actions, and failures surface on the notification
// side-channel as well as the returned error.
package sync

import (
	"context"
	"strings"
	stdsync "sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/openboard/boardsync/pkg/notify"
	"github.com/openboard/boardsync/pkg/store"
	"github.com/openboard/boardsync/pkg/types"
)

// DefaultUserID is the owner id stamped on posts created through the syncer.
const DefaultUserID = 1

// PostAPI describes the resource calls used by the post syncer.
type PostAPI interface {
	ListPosts(ctx context.Context, page, limit int) ([]types.Post, error)
	ListAllPosts(ctx context.Context) ([]types.Post, error)
	CreatePost(ctx context.Context, post types.NewPost) (types.Post, error)
	UpdatePost(ctx context.Context, id int, post types.Post) (types.Post, error)
	DeletePost(ctx context.Context, id int) error
}

// PostSyncer synchronizes the post list with the remote resource.
type PostSyncer struct {
	store    *store.Store
	api      PostAPI
	notifier notify.Notifier
	log      zerolog.Logger

	// mu makes the guard-check-then-set-flag step of LoadMore atomic.
	mu stdsync.Mutex

	// loadGen and searchGen tag issued list and search fetches so a late
	// resolution of a superseded request is discarded instead of
	// overwriting fresher state.
	loadGen   atomic.Int64
	searchGen atomic.Int64
}

// NewPostSyncer creates a post syncer.
func NewPostSyncer(st *store.Store, api PostAPI, notifier notify.Notifier, logger zerolog.Logger) *PostSyncer {
	return &PostSyncer{
		store:    st,
		api:      api,
		notifier: notifier,
		log:      logger.With().Str("component", "postsync").Logger(),
	}
}

// Load fetches one page at the configured page size and replaces the post
// list. HasMore flips to false when the page comes back short.
func (s *PostSyncer) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	gen := s.loadGen.Add(1)
	pageSize := s.store.State().Pagination.PageSize

	s.store.Dispatch(store.SetLoading{Key: store.LoadingPosts, Value: true})

	posts, err := s.api.ListPosts(ctx, page, pageSize)
	if gen != s.loadGen.Load() {
		// A newer list fetch owns the loading flag and the result slot.
		s.log.Debug().Int("page", page).Int64("generation", gen).Msg("discarding stale posts load")
		return err
	}
	defer s.store.Dispatch(store.SetLoading{Key: store.LoadingPosts, Value: false})

	if err != nil {
		s.notifyError("Failed to load posts")
		return err
	}

	s.store.Dispatch(store.SetPosts{Posts: posts})
	s.store.Dispatch(store.SetPagination{
		CurrentPage: intPtr(page),
		HasMore:     boolPtr(len(posts) == pageSize),
	})
	return nil
}

// LoadMore fetches the next page and appends it. It is a guarded no-op while
// a posts load is in flight, when the resource is exhausted, and in search
// mode; the guard check and the flag set are atomic against concurrent calls.
func (s *PostSyncer) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	st := s.store.State()
	if st.Loading.Posts || !st.Pagination.HasMore || st.SearchMode() {
		s.mu.Unlock()
		return nil
	}
	gen := s.loadGen.Add(1)
	s.store.Dispatch(store.SetLoading{Key: store.LoadingPosts, Value: true})
	s.mu.Unlock()

	nextPage := st.Pagination.CurrentPage + 1
	pageSize := st.Pagination.PageSize

	posts, err := s.api.ListPosts(ctx, nextPage, pageSize)
	if gen != s.loadGen.Load() {
		s.log.Debug().Int("page", nextPage).Int64("generation", gen).Msg("discarding stale posts load")
		return err
	}
	defer s.store.Dispatch(store.SetLoading{Key: store.LoadingPosts, Value: false})

	if err != nil {
		s.notifyError("Failed to load more posts")
		return err
	}

	s.store.Dispatch(store.AppendPosts{Posts: posts})
	s.store.Dispatch(store.SetPagination{
		CurrentPage: intPtr(nextPage),
		HasMore:     boolPtr(len(posts) == pageSize),
	})
	return nil
}

// Search switches to search mode for a non-empty query: it fetches the full
// candidate set, filters by case-insensitive substring match on the title,
// and replaces the post list. A query that trims to empty clears search mode
// and falls back to the first page.
func (s *PostSyncer) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		s.store.Dispatch(store.SetSearchQuery{Query: ""})
		return s.Load(ctx, 1)
	}

	gen := s.searchGen.Add(1)
	s.store.Dispatch(store.SetLoading{Key: store.LoadingSearch, Value: true})

	posts, err := s.api.ListAllPosts(ctx)
	if gen != s.searchGen.Load() {
		s.log.Debug().Str("query", query).Int64("generation", gen).Msg("discarding stale search")
		return err
	}
	defer s.store.Dispatch(store.SetLoading{Key: store.LoadingSearch, Value: false})

	if err != nil {
		s.notifyError("Failed to search posts")
		return err
	}

	needle := strings.ToLower(query)
	matched := make([]types.Post, 0, len(posts))
	for _, post := range posts {
		if strings.Contains(strings.ToLower(post.Title), needle) {
			matched = append(matched, post)
		}
	}

	s.store.Dispatch(store.SetPosts{Posts: matched})
	s.store.Dispatch(store.SetSearchQuery{Query: query})
	s.store.Dispatch(store.SetPagination{CurrentPage: intPtr(1)})
	return nil
}

// Create submits a new post and prepends the server-assigned entity on
// success. On failure the modal stays open so the user can retry.
func (s *PostSyncer) Create(ctx context.Context, title, body string) error {
	s.store.Dispatch(store.SetLoading{Key: store.LoadingSubmit, Value: true})
	defer s.store.Dispatch(store.SetLoading{Key: store.LoadingSubmit, Value: false})

	created, err := s.api.CreatePost(ctx, types.NewPost{
		UserID:    DefaultUserID,
		Title:     title,
		Body:      body,
		Completed: false,
	})
	if err != nil {
		s.notifyError("Failed to add post")
		return err
	}

	s.store.Dispatch(store.AddPost{Post: created})
	s.store.Dispatch(store.SetModal{Visible: boolPtr(false)})
	s.notifySuccess("Post added successfully")
	return nil
}

// Update sends the full merged entity for the post currently being edited,
// overwriting title and body. A silent no-op without an active edit target.
func (s *PostSyncer) Update(ctx context.Context, title, body string) error {
	editing := s.store.State().Modal.EditingPost
	if editing == nil {
		return nil
	}

	merged := *editing
	merged.Title = title
	merged.Body = body

	s.store.Dispatch(store.SetLoading{Key: store.LoadingSubmit, Value: true})
	defer s.store.Dispatch(store.SetLoading{Key: store.LoadingSubmit, Value: false})

	updated, err := s.api.UpdatePost(ctx, editing.ID, merged)
	if err != nil {
		s.notifyError("Failed to update post")
		return err
	}

	s.store.Dispatch(store.UpdatePost{Post: updated})
	s.store.Dispatch(store.SetModal{Visible: boolPtr(false), ClearEditing: true})
	s.notifySuccess("Post updated successfully")
	return nil
}

// Delete removes a post, confirm-then-apply: the local entry goes away only
// after the resource acknowledges.
func (s *PostSyncer) Delete(ctx context.Context, postID int) error {
	if err := s.api.DeletePost(ctx, postID); err != nil {
		s.notifyError("Failed to delete post")
		return err
	}

	s.store.Dispatch(store.DeletePost{ID: postID})
	s.notifySuccess("Post deleted successfully")
	return nil
}

// PageChange records the requested page and reloads it unless search mode is
// active.
func (s *PostSyncer) PageChange(ctx context.Context, page int) error {
	s.store.Dispatch(store.SetPagination{CurrentPage: intPtr(page)})
	if s.store.State().SearchMode() {
		return nil
	}
	return s.Load(ctx, page)
}

func (s *PostSyncer) notifyError(msg string) {
	if s.notifier != nil {
		s.notifier.Error(msg)
	}
}

func (s *PostSyncer) notifySuccess(msg string) {
	if s.notifier != nil {
		s.notifier.Success(msg)
	}
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
