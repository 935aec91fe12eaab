package telemetry

import (
	"context"
	"testing"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		enabled  string
	}{
		{name: "no endpoint", endpoint: "", enabled: ""},
		{name: "explicitly disabled", endpoint: "http://localhost:4318", enabled: "false"},
		{name: "unreachable endpoint", endpoint: "http://192.0.2.1:4318", enabled: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvEndpoint, tt.endpoint)
			t.Setenv(EnvEnabled, tt.enabled)

			shutdown, err := Setup(context.Background(), "campaignwiki-test")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("expected clean shutdown, got %v", err)
			}
		})
	}
}
