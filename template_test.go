package idgen

import (
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRender - Exact-text token substitution
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		markup        string
		values        map[string]string
		want          string
		wantUnmatched []string
	}{
		{
			name:   "single token replaced once",
			markup: "<svg><text><!-- NAME --></text></svg>",
			values: map[string]string{TokenName: "Ada Lovelace"},
			want:   "<svg><text>Ada Lovelace</text></svg>",
		},
		{
			name:   "all front tokens replaced",
			markup: "<!-- NAME -->|<!-- YEAR -->|<!-- ID -->|<!-- PHOTO -->",
			values: map[string]string{
				TokenName:  "Ada Lovelace",
				TokenYear:  "2099",
				TokenID:    "S1001",
				TokenPhoto: "cGhvdG8=",
			},
			want: "Ada Lovelace|2099|S1001|cGhvdG8=",
		},
		{
			name:          "absent token is a no-op and reported",
			markup:        "<svg>no tokens here</svg>",
			values:        map[string]string{TokenBarcode: "YmFyY29kZQ=="},
			want:          "<svg>no tokens here</svg>",
			wantUnmatched: []string{TokenBarcode},
		},
		{
			name:   "every occurrence replaced",
			markup: "<!-- ID --> and again <!-- ID -->",
			values: map[string]string{TokenID: "S1001"},
			want:   "S1001 and again S1001",
		},
		{
			name:   "value with token-like syntax inserted verbatim",
			markup: "<text><!-- NAME --></text>",
			values: map[string]string{TokenName: "<!-- YEAR -->"},
			want:   "<text><!-- YEAR --></text>",
		},
		{
			name:   "value containing a sibling token is not re-substituted",
			markup: "<svg><!-- NAME -->|<!-- ID --></svg>",
			values: map[string]string{TokenName: "<!-- ID -->", TokenID: "S1001"},
			want:   "<svg><!-- ID -->|S1001</svg>",
		},
		{
			name:   "unrelated text untouched",
			markup: "before <!-- YEAR --> after",
			values: map[string]string{TokenYear: "2099"},
			want:   "before 2099 after",
		},
		{
			name:          "mixed matched and unmatched",
			markup:        "<!-- NAME -->",
			values:        map[string]string{TokenName: "X", TokenYear: "Y", TokenID: "Z"},
			want:          "X",
			wantUnmatched: []string{TokenID, TokenYear},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var r exactTokenRenderer
			got, unmatched := r.Render(tt.markup, tt.values)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if !reflect.DeepEqual(unmatched, tt.wantUnmatched) {
				t.Errorf("Render() unmatched = %v, want %v", unmatched, tt.wantUnmatched)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender_Deterministic - Stable output across repeated renders
// ---------------------------------------------------------------------------

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	// A name that spells out another token must survive substitution
	// identically on every render, whatever order the token map iterates.
	markup := "<svg><!-- NAME -->|<!-- ID --></svg>"
	values := map[string]string{
		TokenName: "<!-- ID -->",
		TokenID:   "S1001",
		TokenYear: "2099",
	}

	var r exactTokenRenderer
	first, firstUnmatched := r.Render(markup, values)
	if first != "<svg><!-- ID -->|S1001</svg>" {
		t.Fatalf("Render() = %q", first)
	}
	for i := 0; i < 500; i++ {
		got, unmatched := r.Render(markup, values)
		if got != first {
			t.Fatalf("Render() iteration %d = %q, want %q", i, got, first)
		}
		if !reflect.DeepEqual(unmatched, firstUnmatched) {
			t.Fatalf("Render() iteration %d unmatched = %v, want %v", i, unmatched, firstUnmatched)
		}
	}
}

// ---------------------------------------------------------------------------
// TestFrontTokenValues / TestBackTokenValues - Token value mapping
// ---------------------------------------------------------------------------

func TestFrontTokenValues(t *testing.T) {
	t.Parallel()

	rec := StudentRecord{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Year:      "2099",
		ID:        "S1001",
		PhotoRef:  "p1",
	}

	values := frontTokenValues(rec, "cGhvdG8=")

	want := map[string]string{
		TokenName:  "Ada Lovelace",
		TokenYear:  "2099",
		TokenID:    "S1001",
		TokenPhoto: "cGhvdG8=",
	}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("frontTokenValues() = %v, want %v", values, want)
	}
}

func TestBackTokenValues(t *testing.T) {
	t.Parallel()

	values := backTokenValues("YmFyY29kZQ==")
	if len(values) != 1 || values[TokenBarcode] != "YmFyY29kZQ==" {
		t.Errorf("backTokenValues() = %v, want only BARCODE", values)
	}
}

// ---------------------------------------------------------------------------
// TestRender_LargeValue - Payload-sized values
// ---------------------------------------------------------------------------

func TestRender_LargeValue(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat("A", 1<<20) // 1MB, photo-payload scale
	var r exactTokenRenderer
	got, _ := r.Render("<image href=\"data:image/jpeg;base64,<!-- PHOTO -->\"/>", map[string]string{TokenPhoto: payload})
	if !strings.Contains(got, payload) {
		t.Error("Render() did not embed the full payload")
	}
	if strings.Contains(got, TokenPhoto) {
		t.Error("Render() left the PHOTO token behind")
	}
}
