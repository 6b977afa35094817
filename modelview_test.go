package modelview_test

import (
	"path/filepath"
	"strings"
	"testing"

	modelview "github.com/goliatone/go-modelview"
	"github.com/goliatone/go-modelview/pkg/testsupport"
)

func TestRender_DisplayContract(t *testing.T) {
	record := testsupport.MustLoadRecord(t, filepath.Join("testdata", "user.yaml"))

	opts := modelview.NewOptions()
	opts.IncludeCSS = false

	output, err := modelview.Render(record, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "user_display.golden.html")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(output)) {
		return
	}

	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := testsupport.CompareGolden(string(want), output); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderWithConfig(t *testing.T) {
	record := testsupport.MustLoadRecord(t, filepath.Join("testdata", "user.yaml"))

	output, err := modelview.RenderWithConfig(record, map[string]any{
		"editable":   true,
		"includeCss": false,
	})
	if err != nil {
		t.Fatalf("render with config: %v", err)
	}
	if !strings.Contains(output, `<form class="model-form">`) {
		t.Fatalf("expected a form:\n%s", output)
	}

	if _, err := modelview.RenderWithConfig(record, map[string]any{"editable": "yes"}); err == nil {
		t.Fatal("mistyped config should error")
	}
}

func TestRenderStruct(t *testing.T) {
	type Login struct {
		Username string `view:"username,required"`
		Attempts int    `view:"attempts,min=0"`
	}

	opts := modelview.NewOptions()
	opts.IncludeCSS = false

	output, err := modelview.RenderStruct(Login{Username: "jdoe", Attempts: 3}, opts)
	if err != nil {
		t.Fatalf("render struct: %v", err)
	}
	if !strings.Contains(output, `<h2 class="model-title">Login</h2>`) {
		t.Fatalf("struct name should become the title:\n%s", output)
	}
	if !strings.Contains(output, `<td class="field-value">jdoe</td>`) {
		t.Fatalf("struct values should render:\n%s", output)
	}

	if _, err := modelview.RenderStruct(42, opts); err != nil {
		// Non-structs surface a construction error, not bad markup.
		if !strings.Contains(err.Error(), "expected struct") {
			t.Fatalf("unexpected error: %v", err)
		}
	} else {
		t.Fatal("non-struct should error")
	}
}
