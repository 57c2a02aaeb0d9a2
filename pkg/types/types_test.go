package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost_Validate(t *testing.T) {
	t.Parallel()

	valid := NewPost{UserID: 1, Title: "hello world", Body: "content"}
	require.NoError(t, valid.Validate())

	t.Run("short title", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.Title = "hey"
		assert.Error(t, p.Validate())
	})

	t.Run("whitespace title does not count", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.Title = "  ab  "
		assert.Error(t, p.Validate())
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.Body = "   "
		assert.Error(t, p.Validate())
	})
}

func TestNewComment_Validate(t *testing.T) {
	t.Parallel()

	valid := NewComment{PostID: 1, Name: "Ada", Email: "ada@example.com", Body: "hi", Status: StatusPending}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*NewComment)
	}{
		{"missing post id", func(c *NewComment) { c.PostID = 0 }},
		{"missing name", func(c *NewComment) { c.Name = " " }},
		{"bad email", func(c *NewComment) { c.Email = "not-an-email" }},
		{"empty body", func(c *NewComment) { c.Body = "" }},
		{"body over cap", func(c *NewComment) { c.Body = strings.Repeat("x", MaxCommentBodyLen+1) }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := valid
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	t.Run("body exactly at cap", func(t *testing.T) {
		t.Parallel()
		c := valid
		c.Body = strings.Repeat("x", MaxCommentBodyLen)
		assert.NoError(t, c.Validate())
	})
}

func TestCommentStatus_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, CommentStatus("archived").Valid())
	assert.False(t, CommentStatus("").Valid())
}

func TestCommentPatch_Apply(t *testing.T) {
	t.Parallel()

	base := Comment{PostID: 1, ID: 2, Name: "Ada", Email: "ada@example.com", Body: "hi", Status: StatusPending}

	name := "Grace"
	status := StatusApproved
	merged := CommentPatch{Name: &name, Status: &status}.Apply(base)

	assert.Equal(t, "Grace", merged.Name)
	assert.Equal(t, StatusApproved, merged.Status)
	assert.Equal(t, "ada@example.com", merged.Email)
	assert.Equal(t, "hi", merged.Body)
	assert.Equal(t, StatusPending, base.Status, "apply must not mutate the input")
}
