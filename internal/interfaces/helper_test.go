package interfaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkSlice(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	chunks := ChunkSlice(ids, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, chunks)

	assert.Len(t, ChunkSlice(ids, 100), 1, "上限大于长度时一块装下")
	assert.Nil(t, ChunkSlice([]string{}, 2))
	assert.Nil(t, ChunkSlice(ids, 0), "非法块大小直接返回空")
}
