package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voiceflow/transcript-web/internal/codec"
	"github.com/voiceflow/transcript-web/internal/models"
)

const testKey = "0123456789abcdef0123456789abcdef"

// run executes transcriptctl with args and stdin, returning stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEncodeDecode(t *testing.T) {
	t.Setenv(KeyEnv, "")
	for _, v := range []string{"v1", "v2"} {
		t.Run(v, func(t *testing.T) {
			envelope, _, err := run(t, `{"id":5,"name":"Retro","length":"5:07","date":"2026-01-02"}`,
				"encode", "--key", testKey, "--version", v)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			envelope = strings.TrimSpace(envelope)
			if tagged := strings.HasPrefix(envelope, "v2."); tagged != (v == "v2") {
				t.Errorf("envelope %q has wrong tag for %s", envelope, v)
			}

			out, _, err := run(t, "", "decode", "-k", testKey, envelope)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			var m models.Meeting
			if err := json.Unmarshal([]byte(out), &m); err != nil {
				t.Fatalf("decode output %q: %v", out, err)
			}
			want := models.Meeting{ID: 5, Date: "2026-01-02", Name: "Retro", Status: models.StatusNew, Length: "05:07"}
			if m.ID != want.ID || m.Date != want.Date || m.Name != want.Name || m.Status != want.Status || m.Length != want.Length {
				t.Errorf("meeting = %+v, want %+v", m, want)
			}
		})
	}
}

func TestDecodeFromStdinAndEnv(t *testing.T) {
	envelope, err := codec.Encode(models.Meeting{ID: 3, Name: "Sync", Date: "2026-02-02"}, testKey)
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv(KeyEnv, testKey)
	out, _, err := run(t, envelope+"\n", "decode", "-")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(out, `"name": "Sync"`) {
		t.Errorf("output = %s", out)
	}
}

func TestEncodeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meeting.json")
	if err := os.WriteFile(path, []byte(`{"id":9,"name":"Planning"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "", "encode", "--key", testKey, path)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	m, err := codec.Decode(strings.TrimSpace(out), testKey)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.ID != 9 || m.Name != "Planning" {
		t.Errorf("meeting = %+v", m)
	}
}

func TestCommandErrors(t *testing.T) {
	t.Setenv(KeyEnv, "")

	if _, _, err := run(t, "", "decode", "AAAA"); err == nil || !strings.Contains(err.Error(), KeyEnv) {
		t.Errorf("missing key: err = %v", err)
	}
	if _, _, err := run(t, "", "decode", "--key", "short", "AAAA"); !errors.Is(err, codec.InvalidKey) {
		t.Errorf("short key: err = %v, want InvalidKey", err)
	}
	if _, _, err := run(t, "", "decode", "--key", testKey, "v9.AAAA"); !errors.Is(err, codec.Malformed) {
		t.Errorf("unknown version: err = %v, want Malformed", err)
	}
	if _, _, err := run(t, `{"id":1,"name":"x"}`, "encode", "--key", testKey, "--version", "v3"); err == nil {
		t.Error("encode --version v3 should fail")
	}
	if _, _, err := run(t, `{"id":0,"name":"x"}`, "encode", "--key", testKey); !errors.Is(err, codec.SchemaInvalid) {
		t.Errorf("zero id: err = %v, want SchemaInvalid", err)
	}
	if _, _, err := run(t, `not json`, "encode", "--key", testKey); err == nil {
		t.Error("encode of invalid JSON should fail")
	}
	if _, _, err := run(t, "", "decode", "--key", testKey, "--log-level", "loud", "AAAA"); err == nil {
		t.Error("unknown log level should fail")
	}
}

func TestDecodeLogsAtDebug(t *testing.T) {
	_, stderr, err := run(t, "", "decode", "--log-level", "debug", "--key", testKey, "AAAA")
	if !errors.Is(err, codec.Malformed) {
		t.Fatalf("err = %v, want Malformed", err)
	}
	if !strings.Contains(stderr, "transcript codec failure") || strings.Contains(stderr, testKey) {
		t.Errorf("stderr = %q", stderr)
	}

	_, stderr, _ = run(t, "", "decode", "--key", testKey, "AAAA")
	if stderr != "" {
		t.Errorf("default level logged %q", stderr)
	}
}

func TestGenkey(t *testing.T) {
	for _, size := range []string{"16", "24", "32"} {
		out, _, err := run(t, "", "genkey", "--size", size)
		if err != nil {
			t.Fatalf("genkey --size %s: %v", size, err)
		}
		key := strings.TrimSpace(out)
		if want := map[string]int{"16": 16, "24": 24, "32": 32}[size]; len(key) != want {
			t.Errorf("key %q has length %d, want %d", key, len(key), want)
		}
		envelope, err := codec.Encode(models.Meeting{ID: 1, Name: "k"}, key)
		if err != nil {
			t.Fatalf("generated key rejected: %v", err)
		}
		if _, err := codec.Decode(envelope, key); err != nil {
			t.Errorf("round trip with generated key: %v", err)
		}
	}
	if _, _, err := run(t, "", "genkey", "--size", "20"); err == nil {
		t.Error("genkey --size 20 should fail")
	}
}
