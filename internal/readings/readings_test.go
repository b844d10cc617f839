package readings

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/banshee-data/deadreckoning/internal/fsutil"
	"github.com/banshee-data/deadreckoning/internal/monitoring"
	"github.com/banshee-data/deadreckoning/internal/odometry"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	monitoring.SetLogger(nil)
}

func TestDefault(t *testing.T) {
	got := Default()
	require.Len(t, got, 81)
	for _, r := range got {
		assert.Equal(t, odometry.RawReading{Right: 230, Left: 460}, r)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		want    odometry.RawReading
		wantErr bool
	}{
		{line: "230,460", want: odometry.RawReading{Right: 230, Left: 460}},
		{line: " -12 , 7 \r\n", want: odometry.RawReading{Right: -12, Left: 7}},
		{line: "0,0", want: odometry.RawReading{}},
		{line: "230", wantErr: true},
		{line: "230,460,1", wantErr: true},
		{line: "a,460", wantErr: true},
		{line: "1.5,2", wantErr: true},
		{line: "99999999999,1", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			got, err := ParseLine(tc.line)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	input := "230,460\n\n100, 200\n-5,5\n"
	got, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	want := []odometry.RawReading{
		{Right: 230, Left: 460},
		{Right: 100, Left: 200},
		{Right: -5, Left: 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{name: "missing column", input: "1,2\n3\n", line: "line 2"},
		{name: "not a number", input: "1,2\n3,4\nx,5\n", line: "line 3"},
		{name: "bad quoting", input: "\"1,2\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			if tc.line != "" {
				assert.Contains(t, err.Error(), tc.line)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad(t *testing.T) {
	m := fsutil.NewMemoryFileSystem()
	m.WriteFile("data/run.csv", []byte("230,460\n230,460\n"))

	got, err := Load(m, "data/run.csv")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = Load(m, "data/missing.csv")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	m.WriteFile("data/bad.csv", []byte("230;460\n"))
	_, err = Load(m, "data/bad.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.Contains(t, err.Error(), "data/bad.csv")
}
