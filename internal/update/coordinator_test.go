package update

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blushhush.app/internal/attach"
	"blushhush.app/internal/storage"
)

type mapReader struct {
	data map[string][]byte
}

func (r mapReader) ReadAsset(_ context.Context, uri string) ([]byte, error) {
	b, ok := r.data[uri]
	if !ok {
		return nil, fmt.Errorf("no such asset: %s", uri)
	}
	return b, nil
}

func testAssets(n int) ([]attach.Asset, mapReader) {
	reader := mapReader{data: make(map[string][]byte)}
	assets := make([]attach.Asset, 0, n)
	for i := 0; i < n; i++ {
		uri := fmt.Sprintf("file:///tmp/img-%d.jpg", i)
		reader.data[uri] = []byte(fmt.Sprintf("bytes-%d", i))
		assets = append(assets, attach.Asset{
			URI:         uri,
			Name:        fmt.Sprintf("img-%d.jpg", i),
			ContentType: "image/jpeg",
		})
	}
	return assets, reader
}

func TestUploadAllPreservesOrder(t *testing.T) {
	assets, reader := testAssets(3)
	store := storage.NewInMemory()

	clock := time.Date(2025, 6, 19, 10, 0, 0, 0, time.UTC)
	c := NewCoordinator(store, reader, WithUploadClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))

	refs, err := c.UploadAll(context.Background(), "proj-1", assets)
	require.NoError(t, err)
	require.Len(t, refs, 3)
	require.Equal(t, 3, store.Len())

	// References come back in stager order; names carry increasing timestamps.
	for i, ref := range refs {
		require.True(t, strings.HasPrefix(ref, "memory://"+storage.DefaultBucket+"/proj-1/"), ref)
		require.Contains(t, ref, fmt.Sprintf("T1000%02d", i+1))
	}
}

func TestUploadAllAbortsOnFirstFailure(t *testing.T) {
	assets, reader := testAssets(3)
	store := storage.NewInMemory()

	c := NewCoordinator(store, reader)
	delete(reader.data, assets[2].URI)

	refs, err := c.UploadAll(context.Background(), "proj-1", assets)
	require.Error(t, err)
	require.Nil(t, refs)
	require.Contains(t, err.Error(), "3/3")

	// Assets 1 and 2 stay behind as orphans.
	require.Equal(t, 2, store.Len())
}

func TestUploadAllEmptyIsNoop(t *testing.T) {
	store := storage.NewInMemory()
	c := NewCoordinator(store, mapReader{})

	refs, err := c.UploadAll(context.Background(), "proj-1", nil)
	require.NoError(t, err)
	require.Empty(t, refs)
	require.Zero(t, store.Len())
}

func TestUploadAllStopsWhenContextCanceled(t *testing.T) {
	assets, reader := testAssets(2)
	store := storage.NewInMemory()
	c := NewCoordinator(store, reader, WithUploadRate(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.UploadAll(ctx, "proj-1", assets)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, store.Len())
}

func TestObjectExtFallback(t *testing.T) {
	require.Equal(t, ".jpg", objectExt(attach.Asset{Name: "a.jpg"}))
	require.Equal(t, ".png", objectExt(attach.Asset{URI: "file:///x/b.png"}))
	require.Equal(t, ".bin", objectExt(attach.Asset{Name: "noext", URI: "content://media/42"}))
}
