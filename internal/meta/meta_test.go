package meta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/credind/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestPutAndGetDocument(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutDocument(ctx, Document{ID: "1", Title: "Flooding downtown"}))

	doc, err := s.GetDocument(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "post", doc.Type, "empty type defaults to post")
	assert.Equal(t, "Flooding downtown", doc.Title)

	require.NoError(t, s.PutDocument(ctx, Document{ID: "1", Type: "page", Title: "About"}))
	doc, err = s.GetDocument(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "page", doc.Type)
	assert.Equal(t, "About", doc.Title)
}

func TestPutDocumentRequiresID(t *testing.T) {
	s := setupTestStore(t)
	assert.Error(t, s.PutDocument(context.Background(), Document{}))
}

func TestGetDocumentNotFound(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDocumentsByType(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, d := range []Document{{ID: "b", Type: "post"}, {ID: "a", Type: "post"}, {ID: "c", Type: "page"}} {
		require.NoError(t, s.PutDocument(ctx, d))
	}

	posts, err := s.ListDocuments(ctx, "post")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "a", posts[0].ID)
	assert.Equal(t, "b", posts[1].ID)

	all, err := s.ListDocuments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteDocumentRemovesMeta(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutDocument(ctx, Document{ID: "1"}))
	require.NoError(t, s.SetField(ctx, "1", "k", map[string]any{"x": true}))
	require.NoError(t, s.DeleteDocument(ctx, "1"))
	assert.ErrorIs(t, s.DeleteDocument(ctx, "1"), ErrNotFound)

	got, err := s.GetField(ctx, "1", "k")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetFieldMissing(t *testing.T) {
	s := setupTestStore(t)
	got, err := s.GetField(context.Background(), "nope", "credibility_indicators")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSetFieldReplacesWholeValue(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutDocument(ctx, Document{ID: "1"}))
	require.NoError(t, s.SetField(ctx, "1", "k", map[string]any{"a": true, "b": true}))
	require.NoError(t, s.SetField(ctx, "1", "k", map[string]any{"c": false}))

	got, err := s.GetField(ctx, "1", "k")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"c": false}, got)
}

func TestSetFieldUnknownDocument(t *testing.T) {
	s := setupTestStore(t)
	err := s.SetField(context.Background(), "ghost", "k", map[string]any{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFieldMalformedIsEmpty(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutDocument(ctx, Document{ID: "1"}))

	for _, raw := range []string{"not json", `["a","b"]`, `"text"`, "null"} {
		require.NoError(t, s.SetRawField(ctx, "1", "k", raw))
		got, err := s.GetField(ctx, "1", "k")
		require.NoError(t, err, "GetField(%q)", raw)
		assert.Empty(t, got, "GetField(%q)", raw)
	}
}

func TestGetFieldKeepsRawValues(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutDocument(ctx, Document{ID: "1"}))
	require.NoError(t, s.SetRawField(ctx, "1", "k", `{"a":"1","b":0,"legacy":true}`))

	got, err := s.GetField(ctx, "1", "k")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1", "b": float64(0), "legacy": true}, got)
}
