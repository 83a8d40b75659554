package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, doc map[string]interface{}) string {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshaling fixture config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	return path
}

func validConfig() map[string]interface{} {
	return map[string]interface{}{
		"version":         "1.0",
		"providers":       map[string]interface{}{"openai-primary": map[string]interface{}{"type": "openai"}},
		"responseSchemas": map[string]interface{}{},
		"prompts": map[string]interface{}{
			"greeting": map[string]interface{}{
				"variants": map[string]interface{}{
					"v1": map[string]interface{}{
						"provider": "openai-primary",
						"model":    "gpt-4o-mini",
						"default":  true,
						"messages": []interface{}{
							map[string]interface{}{"role": "user", "content": map[string]interface{}{"template": "Hello {{name}}"}},
						},
						"responseFormat": map[string]interface{}{"type": "raw_text"},
					},
				},
				"routing": map[string]interface{}{
					"rules": []interface{}{map[string]interface{}{"target": "v1"}},
				},
			},
		},
	}
}

func runCommand(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return buf.String(), err
}

func TestRunValidate_ValidConfig(t *testing.T) {
	path := writeConfig(t, validConfig())

	out, err := runCommand(t, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "valid: version=1.0") {
		t.Errorf("expected summary output, got %q", out)
	}
	if !strings.Contains(out, "prompts=1 providers=1 schemas=0") {
		t.Errorf("expected counts in summary, got %q", out)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	doc := validConfig()
	delete(doc, "version")
	path := writeConfig(t, doc)

	_, err := runCommand(t, path)
	if err == nil {
		t.Fatal("expected an error for a config missing version")
	}
}

func TestRunValidate_MissingArg(t *testing.T) {
	if _, err := runCommand(t); err == nil {
		t.Fatal("expected an error when no config path is given")
	}
}

func TestWriteError_PrintsOffenderDetails(t *testing.T) {
	doc := validConfig()
	delete(doc, "version")
	path := writeConfig(t, doc)

	_, err := runCommand(t, path)
	if err == nil {
		t.Fatal("expected an error")
	}

	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("creating pipe: %v", pipeErr)
	}
	writeError(w, err)
	w.Close()

	var captured bytes.Buffer
	if _, copyErr := captured.ReadFrom(r); copyErr != nil {
		t.Fatalf("reading pipe: %v", copyErr)
	}
	if captured.Len() == 0 {
		t.Error("expected writeError to write something to the file")
	}
}
