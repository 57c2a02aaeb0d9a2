package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openboard/boardsync/pkg/types"
)

func TestStore_DispatchAppliesInOrder(t *testing.T) {
	t.Parallel()

	st := NewStore(NewState(10))
	st.Dispatch(SetPosts{Posts: []types.Post{post(1, "a")}})
	st.Dispatch(AppendPosts{Posts: []types.Post{post(2, "b")}})
	st.Dispatch(AddPost{Post: post(3, "c")})

	state := st.State()
	require.Len(t, state.Posts, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{state.Posts[0].ID, state.Posts[1].ID, state.Posts[2].ID})
}

func TestStore_OnChangeSeesEachNewState(t *testing.T) {
	t.Parallel()

	st := NewStore(NewState(10))

	var mu sync.Mutex
	var lengths []int
	st.OnChange(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		lengths = append(lengths, len(s.Posts))
	})

	st.Dispatch(SetPosts{Posts: []types.Post{post(1, "a")}})
	st.Dispatch(AppendPosts{Posts: []types.Post{post(2, "b")}})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, lengths)
}

func TestStore_ConcurrentDispatchKeepsUniqueAtomicTransitions(t *testing.T) {
	t.Parallel()

	st := NewStore(NewState(10))

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			st.Dispatch(AddPost{Post: post(id, "p")})
		}(i)
	}
	wg.Wait()

	state := st.State()
	require.Len(t, state.Posts, 50)
	seen := map[int]bool{}
	for _, p := range state.Posts {
		assert.False(t, seen[p.ID], "post id %d appears twice", p.ID)
		seen[p.ID] = true
	}
}
