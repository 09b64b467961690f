package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnique_Ensure(t *testing.T) {
	u := NewUnique()

	assert.Equal(t, "text", u.Ensure("text"))
	assert.Equal(t, "text", u.Ensure("text"))
	assert.Equal(t, "text_1", u.From("text"))
	assert.True(t, u.Issued("text_1"))
}

func TestUnique_From(t *testing.T) {
	u := NewUnique()

	assert.Equal(t, "div_1", u.From("div"))
	assert.Equal(t, "div_2", u.From("div"))
	assert.Equal(t, "div_3", u.Claim("div"))
	assert.Equal(t, "div_4", u.From("div"))
}

func TestUnique_Claim(t *testing.T) {
	u := NewUnique()

	assert.Equal(t, "Button", u.Claim("Button"))
	assert.Equal(t, "Button_1", u.Claim("Button"))
	assert.Equal(t, "Button_2", u.Ensure("Button"))
	assert.Equal(t, "Button_2", u.Ensure("Button"))
}

func TestUnique_ReservedWords(t *testing.T) {
	u := NewUnique()

	assert.Equal(t, "class_", u.Ensure("class"))
	assert.Equal(t, "new_", u.Claim("new"))
	assert.Equal(t, "default_1", u.From("default"))
}

func TestUnique_AvoidsNumberedCollisions(t *testing.T) {
	u := NewUnique()

	assert.Equal(t, "a_1", u.Claim("a_1"))
	assert.Equal(t, "a", u.Claim("a"))
	assert.Equal(t, "a_2", u.From("a"))
}

func TestUnique_Injective(t *testing.T) {
	u := NewUnique()
	names := []string{"text", "div", "class", "text_1", "div", "fragment", "flow", "text"}

	seen := map[string]string{}
	ensured := map[string]string{}
	for round := 0; round < 4; round++ {
		for i, name := range names {
			var ident string
			switch (i + round) % 3 {
			case 0:
				ident = u.Ensure(name)
				if prev, ok := ensured[name]; ok {
					require.Equal(t, prev, ident, "ensure must be idempotent")
					continue
				}
				ensured[name] = ident
			case 1:
				ident = u.From(name)
			default:
				ident = u.Claim(name)
			}

			require.False(t, IsReserved(ident), "%q is reserved", ident)
			_, dup := seen[ident]
			require.False(t, dup, "%q issued twice", ident)
			seen[ident] = name
		}
	}
}

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("b", 4)

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	v, ok = m.Delete("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok = m.Delete("a")
	assert.False(t, ok)
	assert.False(t, m.Has("a"))
	assert.Equal(t, 2, m.Len())

	var visited []string
	err := m.Each(func(k string, _ int) error {
		visited = append(visited, k)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, visited)
}
