package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	t.Run("First of many pages has next only", func(t *testing.T) {
		p := NewPagination(1, 10, 25)
		assert.NotNil(t, p.Next)
		assert.Equal(t, 2, p.Next.Page)
		assert.Equal(t, 10, p.Next.Limit)
		assert.Nil(t, p.Prev)
	})

	t.Run("Middle page has both", func(t *testing.T) {
		p := NewPagination(2, 10, 25)
		assert.NotNil(t, p.Next)
		assert.NotNil(t, p.Prev)
		assert.Equal(t, 1, p.Prev.Page)
	})

	t.Run("Last page has prev only", func(t *testing.T) {
		p := NewPagination(3, 10, 25)
		assert.Nil(t, p.Next)
		assert.Equal(t, 2, p.Prev.Page)
	})

	t.Run("Exact boundary page*limit == total has no next", func(t *testing.T) {
		p := NewPagination(2, 10, 20)
		assert.Nil(t, p.Next)
	})

	t.Run("Empty result set has neither", func(t *testing.T) {
		p := NewPagination(1, 10, 0)
		assert.Nil(t, p.Next)
		assert.Nil(t, p.Prev)
	})
}
