// Package registry provides distributed discovery for harness components:
// a coordinator process and its monitors/risk tests running across
// multiple hosts can find each other through a shared etcd cluster
// instead of relying on static configuration. Only external-mode etcd is
// supported; an embedded single-process etcd server is dropped.
package registry

import (
	"context"
	"time"
)

// InstanceInfo describes one running harness component instance.
type InstanceInfo struct {
	// Kind identifies the component type: "coordinator", "monitor",
	// "risktest", or "adapter".
	Kind string `json:"kind"`

	// Name is the component name (e.g. "prompt-injection-test",
	// "keyword-monitor").
	Name string `json:"name"`

	Version    string            `json:"version"`
	InstanceID string            `json:"instance_id"`
	Endpoint   string            `json:"endpoint"`
	Metadata   map[string]string `json:"metadata"`
	StartedAt  time.Time         `json:"started_at"`
}

// Registry is the service registration and discovery interface. A
// background goroutine renews each registration's etcd lease until
// Deregister or Close is called.
//
// Example:
//
//	reg, _ := registry.NewClient(cfg)
//	defer reg.Close()
//	reg.Register(ctx, InstanceInfo{Kind: "monitor", Name: "keyword-monitor", ...})
//	defer reg.Deregister(ctx, info)
type Registry interface {
	// Register adds this instance to the registry under a lease with the
	// configured TTL, and starts a background keepalive. Re-registering
	// the same InstanceID replaces the prior entry.
	Register(ctx context.Context, info InstanceInfo) error

	// Deregister revokes the instance's lease, immediately removing it
	// from discovery. A no-op if the instance was never registered.
	Deregister(ctx context.Context, info InstanceInfo) error

	// Discover finds all currently registered instances of (kind, name).
	Discover(ctx context.Context, kind, name string) ([]InstanceInfo, error)

	// DiscoverAll finds all currently registered instances of kind.
	DiscoverAll(ctx context.Context, kind string) ([]InstanceInfo, error)

	// Watch streams the current instance list for (kind, name) whenever
	// it changes, starting with the current state. The channel closes
	// when ctx is canceled or Close is called.
	Watch(ctx context.Context, kind, name string) (<-chan []InstanceInfo, error)

	// Close stops all background goroutines and releases the underlying
	// etcd connection.
	Close() error
}

// Config holds etcd connection configuration for external-mode discovery.
type Config struct {
	// Endpoints is the list of etcd endpoints, e.g. ["localhost:2379"].
	Endpoints []string `json:"endpoints" yaml:"endpoints"`

	// Namespace is the etcd key prefix under which all harness entries
	// live: /{namespace}/{kind}/{name}/{instance-id}. Default "sentinel".
	Namespace string `json:"namespace" yaml:"namespace"`

	// TTL is the lease time-to-live in seconds. Default 30.
	TTL int `json:"ttl" yaml:"ttl"`

	// TLS holds optional mTLS configuration for the etcd connection.
	TLS *TLSConfig `json:"tls" yaml:"tls"`
}

// TLSConfig holds mTLS certificate paths for etcd communication.
type TLSConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	CertFile string `json:"cert_file" yaml:"cert_file"`
	KeyFile  string `json:"key_file" yaml:"key_file"`
	CAFile   string `json:"ca_file" yaml:"ca_file"`
}
