package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Constructors(t *testing.T) {
	t.Run("Of is set", func(t *testing.T) {
		v := Of("hello")
		assert.True(t, v.IsSet())
		assert.Equal(t, "hello", v.Val())

		got, ok := v.Get()
		assert.True(t, ok)
		assert.Equal(t, "hello", got)
	})

	t.Run("None and the zero Value are unset", func(t *testing.T) {
		assert.False(t, None[int]().IsSet())

		var zero Value[int]
		assert.False(t, zero.IsSet())
		assert.Zero(t, zero.Val())
	})

	t.Run("Of the zero value is still set", func(t *testing.T) {
		v := Of(0)
		assert.True(t, v.IsSet())
		assert.Zero(t, v.Val())
	})

	t.Run("OrElse falls back only when unset", func(t *testing.T) {
		assert.Equal(t, 7, Of(7).OrElse(9))
		assert.Equal(t, 9, None[int]().OrElse(9))
	})
}

// TestValue_JSON covers the three wire states a partial update
// distinguishes: omitted, explicit null and a concrete value.
func TestValue_JSON(t *testing.T) {
	type payload struct {
		Name Value[string] `json:"name"`
	}

	t.Run("omitted field stays unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Name.IsSet())
	})

	t.Run("null decodes as set with the zero value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &p))
		assert.True(t, p.Name.IsSet())
		assert.Equal(t, "", p.Name.Val())
	})

	t.Run("concrete value decodes as set", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name":"ACME"}`), &p))
		assert.True(t, p.Name.IsSet())
		assert.Equal(t, "ACME", p.Name.Val())
	})

	t.Run("null clears a pointer field", func(t *testing.T) {
		type refPayload struct {
			ParentID Value[*string] `json:"parent_id"`
		}
		var p refPayload
		require.NoError(t, json.Unmarshal([]byte(`{"parent_id":null}`), &p))
		assert.True(t, p.ParentID.IsSet())
		assert.Nil(t, p.ParentID.Val())
	})

	t.Run("type mismatch surfaces the decode error", func(t *testing.T) {
		type intPayload struct {
			Count Value[int] `json:"count"`
		}
		var p intPayload
		assert.Error(t, json.Unmarshal([]byte(`{"count":"three"}`), &p))
	})

	t.Run("marshal round-trips set values and nulls unset ones", func(t *testing.T) {
		out, err := json.Marshal(payload{Name: Of("ACME")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"ACME"}`, string(out))

		out, err = json.Marshal(payload{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":null}`, string(out))
	})
}
