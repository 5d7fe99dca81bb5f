package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/salmankhalil12/Restaurant-Site/pkg/errors"
)

func TestStorage_GetMissing(t *testing.T) {
	s := NewStorage()
	_, err := s.Get(context.Background(), "FoodSprintCart")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStorage_SetOverwrites(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("first")))
	require.NoError(t, s.Set(ctx, "k", []byte("second")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestStorage_CopiesValues(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'x'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestStorage_Ping(t *testing.T) {
	assert.NoError(t, NewStorage().Ping(context.Background()))
}
