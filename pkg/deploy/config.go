package deploy

import (
	"k8s.io/client-go/kubernetes"

	"github.com/vasyly71/oom/pkg/helm"
)

// Config carries the knobs for a deploy run.
type Config struct {
	// Namespace scopes every release operation; empty uses the engine's
	// current context namespace.
	Namespace string

	// CreateNamespace ensures the target namespace exists before deploying.
	CreateNamespace bool

	// Kubeconfig is an explicit kubeconfig path for namespace management.
	Kubeconfig string

	// HelmBinary overrides the engine binary name.
	HelmBinary string

	// WorkRoot overrides the workspace cache root.
	WorkRoot string

	// Verbose echoes per-target engine logs to stdout.
	Verbose bool

	// OverrideArgs are user value flags forwarded to the merge dry run,
	// already tokenized (-f file, --set key=val).
	OverrideArgs []string

	// PassThroughArgs are forwarded verbatim to every apply operation.
	PassThroughArgs []string

	// Engine replaces the default exec-backed release engine.
	Engine helm.Engine

	// KubeClient replaces the kubeconfig-derived client.
	KubeClient kubernetes.Interface
}

// Option mutates the deploy configuration.
type Option func(*Config)

// WithNamespace sets the target namespace.
func WithNamespace(ns string) Option {
	return func(c *Config) { c.Namespace = ns }
}

// WithCreateNamespace ensures the namespace exists before the run.
func WithCreateNamespace(create bool) Option {
	return func(c *Config) { c.CreateNamespace = create }
}

// WithKubeconfig sets an explicit kubeconfig path.
func WithKubeconfig(path string) Option {
	return func(c *Config) { c.Kubeconfig = path }
}

// WithHelmBinary sets the engine binary.
func WithHelmBinary(bin string) Option {
	return func(c *Config) { c.HelmBinary = bin }
}

// WithWorkRoot sets the workspace cache root.
func WithWorkRoot(root string) Option {
	return func(c *Config) { c.WorkRoot = root }
}

// WithVerbose toggles per-target log echo.
func WithVerbose(verbose bool) Option {
	return func(c *Config) { c.Verbose = verbose }
}

// WithOverrideArgs sets the tokenized user value flags.
func WithOverrideArgs(args []string) Option {
	return func(c *Config) { c.OverrideArgs = args }
}

// WithPassThroughArgs sets the verbatim apply flags.
func WithPassThroughArgs(args []string) Option {
	return func(c *Config) { c.PassThroughArgs = args }
}

// WithEngine injects a release engine.
func WithEngine(engine helm.Engine) Option {
	return func(c *Config) { c.Engine = engine }
}

// WithKubeClient injects a Kubernetes client.
func WithKubeClient(client kubernetes.Interface) Option {
	return func(c *Config) { c.KubeClient = client }
}
