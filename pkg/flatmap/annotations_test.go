package flatmap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hsorby/cmlibs.exporter/pkg/flatmap"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annotations.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAnnotations(t *testing.T) {
	tests := []struct {
		content string
		want    map[string]string
	}{
		{
			content: "Term ID,Group name\nUBERON:0001759,vagus nerve\nILX:0738324,dorsal root\n",
			want:    map[string]string{"vagus nerve": "UBERON:0001759", "dorsal root": "ILX:0738324"},
		},
		// later records override earlier ones for the same group
		{
			content: "Term ID,Group name\nUBERON:1,vagus nerve\nUBERON:2,vagus nerve\n",
			want:    map[string]string{"vagus nerve": "UBERON:2"},
		},
		// a header only file is a valid, empty annotation set
		{
			content: "Term ID,Group name\n",
			want:    map[string]string{},
		},
		// the header must match exactly, spaces included
		{
			content: "Term ID, Group name\nUBERON:1,vagus nerve\n",
			want:    nil,
		},
		{
			content: "Group name,Term ID\nvagus nerve,UBERON:1\n",
			want:    nil,
		},
		// one malformed record disqualifies the whole file
		{
			content: "Term ID,Group name\nUBERON:1,vagus nerve,extra\n",
			want:    nil,
		},
		{
			content: "Term ID,Group name\nUBERON:1\n",
			want:    nil,
		},
		{
			content: "",
			want:    nil,
		},
	}
	for i, test := range tests {
		got, err := flatmap.LoadAnnotations(writeTempFile(t, test.content))
		if err != nil {
			t.Errorf("Test %d - unexpected error: %s", i, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Test %d - incorrect annotations: %s", i, diff)
		}
	}
}

func TestLoadAnnotationsMissingFile(t *testing.T) {
	if _, err := flatmap.LoadAnnotations(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("want error for missing file")
	}
}
