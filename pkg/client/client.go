// Package client provides the typed HTTP client for the openboard posts/comments API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openboard/boardsync/pkg/session"
	"github.com/openboard/boardsync/pkg/types"
)

const (
	defaultTimeout = 10 * time.Second
	postsPath      = "/posts"
	commentsPath   = "/comments"

	requestIDHeader = "X-Request-ID"
)

// Config holds resource client configuration.
type Config struct {
	// BaseURL is the root URL of the posts/comments API (for example: http://localhost:3000).
	BaseURL string
	// Session carries the credentials used for API requests. An
	// unauthenticated session sends no Authorization header.
	Session session.Session
	// Timeout is the per-request timeout. Defaults to 10s.
	Timeout time.Duration
	// HTTPClient optionally overrides the underlying HTTP client.
	HTTPClient *http.Client
	// Logger receives per-request debug entries.
	Logger zerolog.Logger
}

// Client is the typed HTTP client for the posts/comments resource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sess       session.Session
	log        zerolog.Logger
}

// New creates a new resource client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("client: BaseURL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		sess:       cfg.Session,
		log:        cfg.Logger.With().Str("component", "client").Logger(),
	}, nil
}

// ListPosts returns one page of posts in resource order.
func (c *Client) ListPosts(ctx context.Context, page, limit int) ([]types.Post, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("_page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("_limit", strconv.Itoa(limit))
	}

	path := postsPath
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var posts []types.Post
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, fmt.Errorf("listing posts page %d: %w", page, err)
	}
	return posts, nil
}

// ListAllPosts returns the full post set. The resource has no server-side
// search; callers filter the result themselves.
func (c *Client) ListAllPosts(ctx context.Context) ([]types.Post, error) {
	var posts []types.Post
	if err := c.do(ctx, http.MethodGet, postsPath, nil, &posts); err != nil {
		return nil, fmt.Errorf("listing all posts: %w", err)
	}
	return posts, nil
}

// CreatePost creates a post. The server assigns the returned ID.
func (c *Client) CreatePost(ctx context.Context, post types.NewPost) (types.Post, error) {
	var created types.Post
	if err := c.do(ctx, http.MethodPost, postsPath, post, &created); err != nil {
		return types.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return created, nil
}

// UpdatePost replaces the post with the given id with the full entity.
func (c *Client) UpdatePost(ctx context.Context, id int, post types.Post) (types.Post, error) {
	var updated types.Post
	path := fmt.Sprintf("%s/%d", postsPath, id)
	if err := c.do(ctx, http.MethodPut, path, post, &updated); err != nil {
		return types.Post{}, fmt.Errorf("updating post %d: %w", id, err)
	}
	return updated, nil
}

// DeletePost removes the post with the given id.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	path := fmt.Sprintf("%s/%d", postsPath, id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting post %d: %w", id, err)
	}
	return nil
}

// ListComments returns all comments attached to a post.
func (c *Client) ListComments(ctx context.Context, postID int) ([]types.Comment, error) {
	var comments []types.Comment
	path := fmt.Sprintf("%s/%d%s", postsPath, postID, commentsPath)
	if err := c.do(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, fmt.Errorf("listing comments for post %d: %w", postID, err)
	}
	return comments, nil
}

// CreateComment creates a comment. The server assigns the returned ID.
func (c *Client) CreateComment(ctx context.Context, comment types.NewComment) (types.Comment, error) {
	var created types.Comment
	if err := c.do(ctx, http.MethodPost, commentsPath, comment, &created); err != nil {
		return types.Comment{}, fmt.Errorf("creating comment: %w", err)
	}
	return created, nil
}

// UpdateComment applies a partial update to the comment with the given id.
func (c *Client) UpdateComment(ctx context.Context, id int, patch types.CommentPatch) (types.Comment, error) {
	var updated types.Comment
	path := fmt.Sprintf("%s/%d", commentsPath, id)
	if err := c.do(ctx, http.MethodPut, path, patch, &updated); err != nil {
		return types.Comment{}, fmt.Errorf("updating comment %d: %w", id, err)
	}
	return updated, nil
}

// DeleteComment removes the comment with the given id.
func (c *Client) DeleteComment(ctx context.Context, id int) error {
	path := fmt.Sprintf("%s/%d", commentsPath, id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting comment %d: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sess.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.sess.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("resource call")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(method, path, resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}
