package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nconklindev/journeyload/internal/config"
	"github.com/nconklindev/journeyload/internal/types"
)

func tidyTable(t *testing.T) *types.Table {
	t.Helper()
	tbl, err := types.NewTable([]types.Column{
		{Name: "Journey ID", Values: []types.Value{types.Text("J1"), types.Text("J2")}},
		{Name: "GPS Date Time", Values: []types.Value{
			types.Time(time.Date(2024, 4, 3, 10, 30, 0, 0, time.UTC)),
			types.Missing(),
		}},
		{Name: "Latitude", Values: []types.Value{types.Number(51.5), types.Number(-33.9)}},
		{Name: "Notes", Values: []types.Value{types.Text("ok"), types.Number(7)}},
	})
	require.NoError(t, err)
	return tbl
}

func TestWrite_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tidy.csv")

	require.NoError(t, Write(tidyTable(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "Journey ID,GPS Date Time,Latitude,Notes\n" +
		"J1,2024-04-03 10:30:00,51.5,ok\n" +
		"J2,,-33.9,7\n"
	assert.Equal(t, want, string(data))
}

func TestWrite_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tidy.parquet")

	require.NoError(t, Write(tidyTable(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.True(t, bytes.HasPrefix(data, []byte("PAR1")), "missing leading magic")
	assert.True(t, bytes.HasSuffix(data, []byte("PAR1")), "missing trailing magic")
}

func TestWrite_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tidy.xlsx")

	err := Write(tidyTable(t), path)

	assert.ErrorIs(t, err, config.ErrInvalid)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "file should not be created")
}

func TestSchemaFor(t *testing.T) {
	schema := schemaFor(tidyTable(t))

	require.Equal(t, 4, schema.NumFields())
	assert.Equal(t, "utf8", schema.Field(0).Type.Name())
	assert.Equal(t, "timestamp", schema.Field(1).Type.Name())
	assert.Equal(t, "float64", schema.Field(2).Type.Name())
	assert.Equal(t, "utf8", schema.Field(3).Type.Name())
}

func TestWriteFile_RemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tidy.csv")
	errDiskFull := errors.New("disk full")

	err := writeFile(path, func(f *os.File) error {
		if _, err := f.WriteString("Journey ID,Lat"); err != nil {
			return err
		}
		return errDiskFull
	})

	assert.ErrorIs(t, err, errDiskFull)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial file should be removed")
}
