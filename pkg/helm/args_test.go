package helm

import (
	"reflect"
	"testing"
)

func TestSplitOverrideArgs(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		wantOverrides   []string
		wantPassthrough []string
	}{
		{
			name: "mixed flags",
			args: []string{"-f", "onap.yaml", "--namespace", "onap", "--set", "log.enabled=false", "--verbose"},
			wantOverrides:   []string{"-f", "onap.yaml", "--set", "log.enabled=false"},
			wantPassthrough: []string{"--namespace", "onap", "--verbose"},
		},
		{
			name:            "repeated set preserves order",
			args:            []string{"--set", "foo=bar", "--set", "foo=baz"},
			wantOverrides:   []string{"--set", "foo=bar", "--set", "foo=baz"},
			wantPassthrough: nil,
		},
		{
			name:            "set-string is not set",
			args:            []string{"--set-string", "image.tag=1.0", "--set", "a=b"},
			wantOverrides:   []string{"--set-string", "image.tag=1.0", "--set", "a=b"},
			wantPassthrough: nil,
		},
		{
			name:            "short flag does not match longer flag",
			args:            []string{"--force", "-f", "values.yaml"},
			wantOverrides:   []string{"-f", "values.yaml"},
			wantPassthrough: []string{"--force"},
		},
		{
			name:            "inline equals form",
			args:            []string{"--values=a.yaml", "--timeout=600"},
			wantOverrides:   []string{"--values=a.yaml"},
			wantPassthrough: []string{"--timeout=600"},
		},
		{
			name:            "trailing flag without value",
			args:            []string{"--timeout", "600", "--set"},
			wantOverrides:   []string{"--set"},
			wantPassthrough: []string{"--timeout", "600"},
		},
		{
			name:            "empty input",
			args:            nil,
			wantOverrides:   nil,
			wantPassthrough: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overrides, passthrough := SplitOverrideArgs(tt.args)
			if !reflect.DeepEqual(overrides, tt.wantOverrides) {
				t.Errorf("overrides = %v, want %v", overrides, tt.wantOverrides)
			}
			if !reflect.DeepEqual(passthrough, tt.wantPassthrough) {
				t.Errorf("passthrough = %v, want %v", passthrough, tt.wantPassthrough)
			}
		})
	}
}

func TestSplitOverrideArgsDoesNotMutateInput(t *testing.T) {
	args := []string{"-f", "a.yaml", "--wait"}
	original := make([]string, len(args))
	copy(original, args)

	SplitOverrideArgs(args)

	if !reflect.DeepEqual(args, original) {
		t.Errorf("input mutated: %v", args)
	}
}
