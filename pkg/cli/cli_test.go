package cli

import (
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

func TestNewRootCommand(t *testing.T) {
	root := New()

	if root.Name != "oom" {
		t.Errorf("root name %q, want oom", root.Name)
	}
	if len(root.Commands) != 2 {
		t.Fatalf("root has %d commands, want 2", len(root.Commands))
	}

	names := map[string]bool{}
	for _, cmd := range root.Commands {
		names[cmd.Name] = true
	}
	for _, want := range []string{"deploy", "undeploy"} {
		if !names[want] {
			t.Errorf("missing command %q", want)
		}
	}
}

func TestDeployCmdFlags(t *testing.T) {
	cmd := deployCmd()

	for _, flagName := range []string{
		"namespace", "create-namespace", "values", "set", "set-string",
		"verbose", "helm-bin", "workdir", "kubeconfig", "format",
	} {
		found := false
		for _, flag := range cmd.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("flag %q not found", flagName)
		}
	}

	if cmd.Action == nil {
		t.Error("Action should not be nil")
	}
}

func TestUndeployCmdFlags(t *testing.T) {
	cmd := undeployCmd()

	for _, flagName := range []string{"helm-bin", "workdir", "format"} {
		found := false
		for _, flag := range cmd.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("flag %q not found", flagName)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"yaml", false},
		{"json", false},
		{"table", false},
		{"xml", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
			}
			_, err := parseOutputFormat(cmd)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseOutputFormat(%q) err = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}

func TestCommandLister(_ *testing.T) {
	commandLister(context.Background(), nil)

	cmd := &cli.Command{Name: "test"}
	commandLister(context.Background(), cmd)

	rootCmd := &cli.Command{
		Name: "root",
		Commands: []*cli.Command{
			{Name: "visible1", Hidden: false},
			{Name: "hidden", Hidden: true},
			{Name: "visible2", Hidden: false},
		},
	}
	commandLister(context.Background(), rootCmd)
}

func hasName(flag cli.Flag, name string) bool {
	if flag == nil {
		return false
	}
	for _, n := range flag.Names() {
		if n == name {
			return true
		}
	}
	return false
}
