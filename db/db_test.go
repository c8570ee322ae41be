package db

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRedisStore(t *testing.T, prefix string) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, prefix, discardLogger()), mr
}

func TestStores(t *testing.T) {
	redisStore, _ := newRedisStore(t, "")
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, store.Set(ctx, "k", []byte(`[{"id":"a"}]`)))
			got, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"a"}]`, string(got))

			require.NoError(t, store.Set(ctx, "k", []byte(`[]`)))
			got, err = store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got))

			require.NoError(t, store.Delete(ctx, "k"))
			_, err = store.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrKeyNotFound)
			assert.NoError(t, store.Delete(ctx, "k"))

			assert.NoError(t, store.Ping(ctx))
		})
	}
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newRedisStore(t, "school1:")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, AdminStudentsKey, []byte("[]")))

	assert.True(t, mr.Exists("school1:"+AdminStudentsKey))
	assert.False(t, mr.Exists(AdminStudentsKey))
}

func TestRedisStore_PingFailure(t *testing.T) {
	store, mr := newRedisStore(t, "")
	mr.Close()

	assert.Error(t, store.Ping(context.Background()))
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", buf))
	buf[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadStudentsFromExcel(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"ID", "Name", "Grade", "Email", "Status"},
		{"STU-201", "Fiona Park", "9-A", "fiona.p@school.edu", "Inactive"},
		{"", "No Id", "9-A", "noid@school.edu"},
		{"STU-202", "George Hall", "9-B", "george.h@school.edu"},
		{"STU-203", ""},
	})

	students, skipped, err := ReadStudentsFromExcel(buf, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 2, skipped)
	require.Len(t, students, 2)
	assert.Equal(t, "STU-201", students[0].ID)
	assert.Equal(t, "Inactive", students[0].Status)
	assert.Equal(t, "George Hall", students[1].Name)
	assert.Equal(t, "9-B", students[1].Grade)
	assert.Equal(t, "Active", students[1].Status)
}

func TestReadStudentsFromExcel_NotAWorkbook(t *testing.T) {
	_, _, err := ReadStudentsFromExcel(bytes.NewBufferString("id,name\n"), discardLogger())
	assert.Error(t, err)
}
