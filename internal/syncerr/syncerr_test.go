package syncerr

import (
	"errors"
	"strings"
	"testing"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantConfig bool
		wantRemote bool
	}{
		{"config", Config(nil, "missing value for url"), true, false},
		{"integrity", Integrity(nil, "page response incomplete"), false, true},
		{"remote write", RemoteWrite(errors.New("409 conflict"), "page update failed"), false, true},
		{"plain error", errors.New("boom"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfig(tt.err); got != tt.wantConfig {
				t.Errorf("IsConfig = %v, expected %v", got, tt.wantConfig)
			}
			if got := IsRemote(tt.err); got != tt.wantRemote {
				t.Errorf("IsRemote = %v, expected %v", got, tt.wantRemote)
			}
		})
	}
}

func TestMessageIsKept(t *testing.T) {
	err := Config(nil, "missing value for token")
	if !strings.Contains(err.Error(), "missing value for token") {
		t.Errorf("Expected message in error, got %q", err.Error())
	}
}
