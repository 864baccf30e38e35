package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	text := `# z value kind
0.38 1512.39 DM_over_rd

0.38 81.2087 DH_over_rd # trailing comments drop the whole line
   0.51   0.470   f_sigma8   
`
	tab := Parse([]byte(text))

	if diff := cmp.Diff([]int{2, 5}, tab.Lines); diff != "" {
		t.Errorf("Lines mismatch (-want +got):\n%s", diff)
	}
	want := [][]string{
		{"0.38", "1512.39", "DM_over_rd"},
		{"0.51", "0.470", "f_sigma8"},
	}
	if diff := cmp.Diff(want, tab.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "# only\n#comments\n"} {
		assert.Equal(t, 0, Parse([]byte(text)).Len(), "text = %q", text)
	}
}

func TestColumns(t *testing.T) {
	tab := Parse([]byte("a 1 2.5\nb 3 -4e2\r\n"))

	strs, err := tab.Strings(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, strs)

	ints, err := tab.Ints(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ints)

	floats, err := tab.Floats(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, -400}, floats)

	_, err = tab.Floats(0)
	assert.ErrorContains(t, err, "line 1")
	_, err = tab.Ints(2)
	assert.Error(t, err)
	_, err = tab.Strings(3)
	assert.Error(t, err)
}

func TestCheckWidth(t *testing.T) {
	tab := Parse([]byte("1 2 3\n# skipped\n4 5\n"))
	assert.NoError(t, Parse([]byte("1 2\n3 4\n")).CheckWidth(2))
	err := tab.CheckWidth(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Line 3")
}

func TestMatrix(t *testing.T) {
	m, err := Parse([]byte("1 0.5\n0.5 2\n")).Matrix()
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0.5}, {0.5, 2}}, m)

	_, err = Parse([]byte("1 0.5\n0.5\n")).Matrix()
	assert.Error(t, err)
	_, err = Parse([]byte("1 x\n")).Matrix()
	assert.Error(t, err)
	_, err = Parse(nil).Matrix()
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "cov.txt")
	require.NoError(t, os.WriteFile(fname, []byte("1 2\n"), 0644))

	tab, err := ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, 1, tab.Len())

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestFormatCols(t *testing.T) {
	lines := FormatCols(
		[][]string{{"bao", "elg_total"}},
		[][]float64{{-1.5, -10.25}},
		[]int{0, 1},
	)
	want := []string{
		"bao         -1.5",
		"elg_total -10.25",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("FormatCols mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, FormatCols(nil, nil, nil))
	assert.Panics(t, func() {
		FormatCols([][]string{{"a"}}, [][]float64{{1, 2}}, []int{0, 1})
	})
}
