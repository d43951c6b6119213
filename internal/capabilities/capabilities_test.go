package capabilities_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/internal/capabilities/capabilitiestest"
)

func TestEmptyRegistry(t *testing.T) {
	reg := capabilities.NewRegistry(capabilities.Ports{})

	for _, k := range capabilities.Kinds {
		if _, ok := reg.Lookup(k); ok {
			t.Errorf("Lookup(%s) should be absent", k)
		}
	}
	if _, ok := reg.Content(); ok {
		t.Error("Content() should be absent")
	}
	if got := reg.Available(); len(got) != 0 {
		t.Errorf("Available() = %v, want empty", got)
	}
}

func TestRegistryLookup(t *testing.T) {
	content := capabilitiestest.NewContent()
	search := capabilitiestest.NewSearch()

	reg := capabilities.NewRegistry(capabilities.Ports{
		Content: content,
		Search:  search,
	})

	h, ok := reg.Lookup(capabilities.KindContent)
	if !ok {
		t.Fatal("content should be present")
	}
	if h.Kind != capabilities.KindContent || h.Port != capabilities.ContentPort(content) {
		t.Errorf("unexpected handle %+v", h)
	}

	if _, ok := reg.Signature(); ok {
		t.Error("signature should be absent")
	}

	want := []capabilities.Kind{capabilities.KindContent, capabilities.KindSearch}
	if got := reg.Available(); !slices.Equal(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}
}

func TestUnavailable(t *testing.T) {
	err := capabilities.Unavailable(capabilities.KindPermission)
	if !errors.Is(err, capabilities.ErrUnavailable) {
		t.Errorf("Unavailable should match ErrUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "permission") {
		t.Errorf("error should name the kind: %s", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := capabilities.ParseKind("version"); err != nil || k != capabilities.KindVersion {
		t.Errorf("ParseKind(version) = %v, %v", k, err)
	}
	if _, err := capabilities.ParseKind("render"); err == nil {
		t.Error("ParseKind(render) should fail")
	}
}

func TestBestEffort(t *testing.T) {
	tests := []struct {
		name    string
		present bool
		err     error
		want    capabilities.Outcome
		wantLog string
	}{
		{"absent", false, nil, capabilities.Skipped, ""},
		{"success", true, nil, capabilities.Applied, ""},
		{"failure", true, fmt.Errorf("index down"), capabilities.Failed, "index down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			called := false
			got := capabilities.BestEffort(
				context.Background(),
				logger,
				capabilities.KindSearch,
				"index",
				tt.present,
				func(ctx context.Context) error {
					called = true
					return tt.err
				},
			)

			if got != tt.want {
				t.Errorf("outcome = %s, want %s", got, tt.want)
			}
			if called != tt.present {
				t.Errorf("fn called = %v, want %v", called, tt.present)
			}
			if tt.wantLog != "" && !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("log missing %q: %s", tt.wantLog, buf.String())
			}
		})
	}
}
