package version

import "testing"

func TestInfoString(t *testing.T) {
	info := Info{Version: "v1.2.0", BuildDate: "2026-01-01T00:00:00Z", GitCommit: "abc123"}

	want := "v1.2.0 (built 2026-01-01T00:00:00Z, commit abc123)"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGetDefaults(t *testing.T) {
	info := Get()
	if info.Version == "" || info.BuildDate == "" || info.GitCommit == "" {
		t.Errorf("Get() returned empty fields: %+v", info)
	}
}
