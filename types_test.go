package idgen_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	idgen "github.com/Madison-Country-Day-School/id-gen"
)

// ---------------------------------------------------------------------------
// TestLoadTemplates - Template directory loading
// ---------------------------------------------------------------------------

func TestLoadTemplates(t *testing.T) {
	t.Parallel()

	writeTemplates := func(t *testing.T, front, back string, skip ...string) string {
		t.Helper()
		dir := t.TempDir()
		files := map[string]string{
			idgen.FrontTemplateFile: front,
			idgen.BackTemplateFile:  back,
		}
		for _, name := range skip {
			delete(files, name)
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
				t.Fatalf("write template: %v", err)
			}
		}
		return dir
	}

	t.Run("both templates loaded", func(t *testing.T) {
		t.Parallel()

		dir := writeTemplates(t, "<svg>front</svg>", "<svg>back</svg>")
		ts, err := idgen.LoadTemplates(dir)
		if err != nil {
			t.Fatalf("LoadTemplates() unexpected error: %v", err)
		}
		if ts.Front != "<svg>front</svg>" || ts.Back != "<svg>back</svg>" {
			t.Errorf("LoadTemplates() = %+v", ts)
		}
	})

	t.Run("missing front template", func(t *testing.T) {
		t.Parallel()

		dir := writeTemplates(t, "", "<svg>back</svg>", idgen.FrontTemplateFile)
		if _, err := idgen.LoadTemplates(dir); !errors.Is(err, idgen.ErrTemplateLoad) {
			t.Errorf("LoadTemplates() error = %v, want ErrTemplateLoad", err)
		}
	})

	t.Run("missing back template", func(t *testing.T) {
		t.Parallel()

		dir := writeTemplates(t, "<svg>front</svg>", "", idgen.BackTemplateFile)
		if _, err := idgen.LoadTemplates(dir); !errors.Is(err, idgen.ErrTemplateLoad) {
			t.Errorf("LoadTemplates() error = %v, want ErrTemplateLoad", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		if _, err := idgen.LoadTemplates(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, idgen.ErrTemplateLoad) {
			t.Errorf("LoadTemplates() error = %v, want ErrTemplateLoad", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestTemplateSetValidate - Template presence checks
// ---------------------------------------------------------------------------

func TestTemplateSetValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ts      *idgen.TemplateSet
		wantErr bool
	}{
		{name: "both populated", ts: &idgen.TemplateSet{Front: "<svg/>", Back: "<svg/>"}},
		{name: "nil set", ts: nil, wantErr: true},
		{name: "empty front", ts: &idgen.TemplateSet{Back: "<svg/>"}, wantErr: true},
		{name: "empty back", ts: &idgen.TemplateSet{Front: "<svg/>"}, wantErr: true},
		{name: "both empty", ts: &idgen.TemplateSet{}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.ts.Validate()
			if tt.wantErr && !errors.Is(err, idgen.ErrEmptyTemplate) {
				t.Errorf("Validate() error = %v, want ErrEmptyTemplate", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStudentRecordFullName
// ---------------------------------------------------------------------------

func TestStudentRecordFullName(t *testing.T) {
	t.Parallel()

	rec := idgen.StudentRecord{FirstName: "Ada", LastName: "Lovelace"}
	if got := rec.FullName(); got != "Ada Lovelace" {
		t.Errorf("FullName() = %q, want %q", got, "Ada Lovelace")
	}
}

// ---------------------------------------------------------------------------
// TestWithTimeout - Option validation
// ---------------------------------------------------------------------------

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("positive duration accepted", func(t *testing.T) {
		t.Parallel()

		if opt := idgen.WithTimeout(5 * time.Second); opt == nil {
			t.Error("WithTimeout() returned nil option")
		}
	})

	t.Run("zero duration panics", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Error("WithTimeout(0) did not panic")
			}
		}()
		idgen.WithTimeout(0)
	})

	t.Run("negative duration panics", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Error("WithTimeout(-1) did not panic")
			}
		}()
		idgen.WithTimeout(-time.Second)
	})
}
