// Package fakeapi is an in-process fake of the openboard posts/comments API,
// used by client and syncer tests. It speaks the JSONPlaceholder-style
// pagination dialect (_page/_limit) and supports seeding, per-route failure
// injection, and request counting.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/openboard/boardsync/pkg/types"
)

// Server is the fake resource. All methods are safe for concurrent use.
type Server struct {
	mu        sync.Mutex
	posts     map[int]types.Post
	comments  map[int]types.Comment
	nextID    int
	failing   map[string]int
	callCount map[string]int

	httpServer *httptest.Server
}

// New starts a fake resource server. Callers must Close it.
func New() *Server {
	s := &Server{
		posts:     map[int]types.Post{},
		comments:  map[int]types.Comment{},
		nextID:    1,
		failing:   map[string]int{},
		callCount: map[string]int{},
	}

	r := chi.NewRouter()
	r.Get("/posts", s.handleListPosts)
	r.Post("/posts", s.handleCreatePost)
	r.Put("/posts/{id}", s.handleUpdatePost)
	r.Delete("/posts/{id}", s.handleDeletePost)
	r.Get("/posts/{id}/comments", s.handleListComments)
	r.Post("/comments", s.handleCreateComment)
	r.Put("/comments/{id}", s.handleUpdateComment)
	r.Delete("/comments/{id}", s.handleDeleteComment)

	s.httpServer = httptest.NewServer(r)
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// SeedPosts inserts posts, assigning ids where missing.
func (s *Server) SeedPosts(posts ...types.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, post := range posts {
		if post.ID == 0 {
			post.ID = s.nextID
		}
		if post.ID >= s.nextID {
			s.nextID = post.ID + 1
		}
		s.posts[post.ID] = post
	}
}

// SeedComments inserts comments, assigning ids where missing.
func (s *Server) SeedComments(comments ...types.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, comment := range comments {
		if comment.ID == 0 {
			comment.ID = s.nextID
		}
		if comment.ID >= s.nextID {
			s.nextID = comment.ID + 1
		}
		s.comments[comment.ID] = comment
	}
}

// FailNext makes the next n requests on the named route answer 500. Route
// names are "listPosts", "createPost", "updatePost", "deletePost",
// "listComments", "createComment", "updateComment", "deleteComment".
func (s *Server) FailNext(route string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[route] = n
}

// Calls returns how many requests the named route has served, failures
// included.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount[route]
}

// begin records the call and reports whether it should succeed.
func (s *Server) begin(route string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount[route]++
	if s.failing[route] > 0 {
		s.failing[route]--
		return false
	}
	return true
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	if !s.begin("listPosts") {
		respondError(w, http.StatusInternalServerError, "injected failure")
		return
	}

	s.mu.Lock()
	all := make([]types.Post, 0, len(s.posts))
	for _, post := range s.posts {
		all = append(all, post)
	}
	s.mu.Unlock()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	page, _ := strconv.Atoi(r.URL.Query().Get("_page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("_limit"))
	if page > 0 && limit > 0 {
		start := (page - 1) * limit
		if start >= len(all) {
			all = nil
		} else {
			end := start + limit
			if end > len(all) {
				end = len(all)
			}
			all = all[start:end]
		}
	}

	respondJSON(w, http.StatusOK, all)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if !s.begin("createPost") {
		respondError(w, http.StatusInternalServerError, "injected failure")
		return
	}

	var body types.NewPost
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	post := types.Post{
		UserID:    body.UserID,
		ID:        s.nextID,
		Title:     body.Title,
		Body:      body.Body,
		Completed: body.Completed,
	}
	s.nextID++
	s.posts[post.ID] = post
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	if !s.begin("updatePost") {
		respondError(w, http.StatusInternalServerError, "injected failure")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var body types.Post
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	body.ID = id

	s.mu.Lock()
	_, exists := s.posts[id]
	if exists {
		s.posts[id] = body
	}
	s.mu.Unlock()

	if !exists {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondJSON(w, http.StatusOK, body)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if !s.begin("deletePost") {
		respondError(w, http.StatusInternalServerError, "injected failure")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	delete(s.posts, id)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	if !s.begin("listComments") {
		respondError(w, http.StatusInternalServerError, "injected failure")
		return
	}

	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	matched := make([]types.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID == postID {
			matched = append(matched, comment)
		}
	}
	s.mu.Unlock()
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	respondJSON(w, http.StatusOK, matched)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	if !s.begin("createComment") {
		respondError(w, http.StatusInternalServerError, "injected failure")
		return
	}

	var body types.NewComment
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	comment := types.Comment{
		PostID: body.PostID,
		ID:     s.nextID,
		Name:   body.Name,
		Email:  body.Email,
		Body:   body.Body,
		Status: body.Status,
	}
	s.nextID++
	s.comments[comment.ID] = comment
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	if !s.begin("updateComment") {
		respondError(w, http.StatusInternalServerError, "injected failure")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var patch types.CommentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	comment, exists := s.comments[id]
	if exists {
		comment = patch.Apply(comment)
		s.comments[id] = comment
	}
	s.mu.Unlock()

	if !exists {
		respondError(w, http.StatusNotFound, "comment not found")
		return
	}
	respondJSON(w, http.StatusOK, comment)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	if !s.begin("deleteComment") {
		respondError(w, http.StatusInternalServerError, "injected failure")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	delete(s.comments, id)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, struct{}{})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
