package storage_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/themis/pkg/service/storage"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("put and get roundtrip", func(t *testing.T) {
		client := storage.NewMemory()

		n, err := client.Put(ctx, "evidence/a.txt", strings.NewReader("hello"), "text/plain")
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(5))

		data, contentType, ok := client.Get("evidence/a.txt")
		gt.Bool(t, ok).True()
		gt.Value(t, string(data)).Equal("hello")
		gt.Value(t, contentType).Equal("text/plain")
	})

	t.Run("put overwrites an existing object", func(t *testing.T) {
		client := storage.NewMemory()

		_, err := client.Put(ctx, "k", strings.NewReader("v1"), "text/plain")
		gt.NoError(t, err).Required()
		_, err = client.Put(ctx, "k", strings.NewReader("v2"), "application/json")
		gt.NoError(t, err).Required()

		data, contentType, ok := client.Get("k")
		gt.Bool(t, ok).True()
		gt.Value(t, string(data)).Equal("v2")
		gt.Value(t, contentType).Equal("application/json")
	})

	t.Run("signed URL names the object", func(t *testing.T) {
		client := storage.NewMemory()

		_, err := client.Put(ctx, "evidence/b.pdf", strings.NewReader("x"), "application/pdf")
		gt.NoError(t, err).Required()

		url, err := client.SignedURL(ctx, "evidence/b.pdf", 15*time.Minute)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(url, "evidence/b.pdf")).True()
	})

	t.Run("signed URL for unknown key fails", func(t *testing.T) {
		client := storage.NewMemory()
		_, err := client.SignedURL(ctx, "missing", time.Minute)
		gt.Error(t, err)
	})

	t.Run("delete removes the object", func(t *testing.T) {
		client := storage.NewMemory()

		_, err := client.Put(ctx, "k", strings.NewReader("x"), "text/plain")
		gt.NoError(t, err).Required()
		gt.NoError(t, client.Delete(ctx, "k"))

		_, _, ok := client.Get("k")
		gt.Bool(t, ok).False()
		gt.Array(t, client.Keys()).Length(0)

		gt.Error(t, client.Delete(ctx, "k"))
	})
}
