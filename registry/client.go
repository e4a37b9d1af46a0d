package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/trinityguard/sentinel/harnesserr"
)

// session tracks one active Register call so Deregister/Close can unwind it:
// canceling stops the keepalive goroutine, and leaseID lets us revoke the
// lease directly instead of waiting for it to expire.
type session struct {
	leaseID clientv3.LeaseID
	cancel  context.CancelFunc
}

// Client implements Registry over an external etcd cluster. Each
// registered instance gets its own etcd lease; renewal is delegated to
// etcd's own KeepAlive stream rather than a hand-rolled timer, so presence
// tracks however etcd schedules it rather than a fixed TTL/3 guess.
//
// All methods are safe for concurrent use.
type Client struct {
	client    *clientv3.Client
	namespace string
	ttl       int

	mu       sync.RWMutex
	sessions map[string]session // instance ID -> active registration
	wg       sync.WaitGroup
	closed   bool
	closeCh  chan struct{}
}

// NewClient connects to the etcd cluster described by cfg and verifies
// connectivity with a health check.
func NewClient(cfg Config) (*Client, error) {
	const op = "registry.NewClient"

	if len(cfg.Endpoints) == 0 {
		return nil, harnesserr.New(op, harnesserr.KindConfiguration, fmt.Errorf("endpoints cannot be empty"))
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "sentinel"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30
	}

	dialCfg := clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: 5 * time.Second,
	}
	if tlsConfig, err := buildClientTLSConfig(cfg.TLS); err != nil {
		return nil, harnesserr.New(op, harnesserr.KindConfiguration, fmt.Errorf("configure TLS: %w", err))
	} else if tlsConfig != nil {
		dialCfg.TLS = tlsConfig
	}

	cli, err := clientv3.New(dialCfg)
	if err != nil {
		return nil, harnesserr.New(op, harnesserr.KindInternal, fmt.Errorf("create etcd client: %w", err))
	}

	healthCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := cli.Get(healthCtx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, harnesserr.New(op, harnesserr.KindInternal, fmt.Errorf("etcd health check: %w", err))
	}

	return &Client{
		client:    cli,
		namespace: namespace,
		ttl:       ttl,
		sessions:  make(map[string]session),
		closeCh:   make(chan struct{}),
	}, nil
}

// NewClientFromEnv builds a Client from the SENTINEL_REGISTRY_ENDPOINTS
// environment variable (a comma-separated endpoint list). If the variable
// is unset, it returns (nil, nil): the harness runs without distributed
// discovery rather than failing to start.
func NewClientFromEnv() (*Client, error) {
	raw := os.Getenv("SENTINEL_REGISTRY_ENDPOINTS")
	if raw == "" {
		return nil, nil
	}

	var endpoints []string
	for _, ep := range strings.Split(raw, ",") {
		if ep = strings.TrimSpace(ep); ep != "" {
			endpoints = append(endpoints, ep)
		}
	}
	if len(endpoints) == 0 {
		return nil, nil
	}

	return NewClient(Config{Endpoints: endpoints, Namespace: "sentinel", TTL: 30})
}

// Register puts info under its etcd key on a fresh lease and starts a
// goroutine that drains etcd's own keepalive stream for that lease,
// dropping the session from sessions if the stream ever closes (lease
// expired or revoked out of band). Re-registering the same InstanceID
// first cancels the prior session's keepalive.
func (c *Client) Register(ctx context.Context, info InstanceInfo) error {
	const op = "registry.Register"

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return harnesserr.New(op, harnesserr.KindInternal, fmt.Errorf("registry client is closed"))
	}
	if prior, exists := c.sessions[info.InstanceID]; exists {
		prior.cancel()
		delete(c.sessions, info.InstanceID)
	}
	c.mu.Unlock()

	lease, err := c.client.Grant(ctx, int64(c.ttl))
	if err != nil {
		return harnesserr.New(op, harnesserr.KindInternal, fmt.Errorf("grant lease: %w", err))
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return harnesserr.New(op, harnesserr.KindInternal, fmt.Errorf("marshal instance info: %w", err))
	}

	if _, err := c.client.Put(ctx, c.key(info), string(payload), clientv3.WithLease(lease.ID)); err != nil {
		return harnesserr.New(op, harnesserr.KindInternal, fmt.Errorf("put instance record: %w", err))
	}

	keepCtx, cancel := context.WithCancel(context.Background())
	keepAlive, err := c.client.KeepAlive(keepCtx, lease.ID)
	if err != nil {
		cancel()
		return harnesserr.New(op, harnesserr.KindInternal, fmt.Errorf("start keepalive: %w", err))
	}

	c.mu.Lock()
	c.sessions[info.InstanceID] = session{leaseID: lease.ID, cancel: cancel}
	c.mu.Unlock()

	c.wg.Add(1)
	go c.drainKeepAlive(keepCtx, keepAlive, info.InstanceID)

	return nil
}

// drainKeepAlive consumes etcd's keepalive acks for one lease until the
// session is canceled, the registry is closed, or the stream closes on its
// own (the lease expired server-side without us revoking it).
func (c *Client) drainKeepAlive(ctx context.Context, acks <-chan *clientv3.LeaseKeepAliveResponse, instanceID string) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closeCh:
			return
		case _, ok := <-acks:
			if !ok {
				c.mu.Lock()
				delete(c.sessions, instanceID)
				c.mu.Unlock()
				return
			}
		}
	}
}

// Deregister revokes the instance's lease, removing it from discovery
// immediately instead of waiting out the lease TTL.
func (c *Client) Deregister(ctx context.Context, info InstanceInfo) error {
	const op = "registry.Deregister"

	c.mu.Lock()
	sess, exists := c.sessions[info.InstanceID]
	if exists {
		sess.cancel()
		delete(c.sessions, info.InstanceID)
	}
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return harnesserr.New(op, harnesserr.KindInternal, fmt.Errorf("registry client is closed"))
	}
	if !exists {
		return nil
	}
	if _, err := c.client.Revoke(ctx, sess.leaseID); err != nil {
		return harnesserr.New(op, harnesserr.KindInternal, fmt.Errorf("revoke lease: %w", err))
	}
	return nil
}

// Discover finds all currently registered instances of (kind, name).
func (c *Client) Discover(ctx context.Context, kind, name string) ([]InstanceInfo, error) {
	return c.list(ctx, fmt.Sprintf("/%s/%s/%s/", c.namespace, kind, name))
}

// DiscoverAll finds all currently registered instances of kind.
func (c *Client) DiscoverAll(ctx context.Context, kind string) ([]InstanceInfo, error) {
	return c.list(ctx, fmt.Sprintf("/%s/%s/", c.namespace, kind))
}

func (c *Client) list(ctx context.Context, prefix string) ([]InstanceInfo, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return nil, harnesserr.New("registry.list", harnesserr.KindInternal, fmt.Errorf("registry client is closed"))
	}

	resp, err := c.client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, harnesserr.New("registry.list", harnesserr.KindInternal, fmt.Errorf("query %s: %w", prefix, err))
	}
	return decodeInstances(resp.Kvs), nil
}

func decodeInstances(kvs []*mvccpb.KeyValue) []InstanceInfo {
	instances := make([]InstanceInfo, 0, len(kvs))
	for _, kv := range kvs {
		var info InstanceInfo
		if err := json.Unmarshal(kv.Value, &info); err != nil {
			continue
		}
		instances = append(instances, info)
	}
	return instances
}

// Watch streams the current instance list for (kind, name) starting with
// its present state, then again every time the underlying etcd prefix
// changes. The channel closes when ctx is canceled or Close is called.
func (c *Client) Watch(ctx context.Context, kind, name string) (<-chan []InstanceInfo, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return nil, harnesserr.New("registry.Watch", harnesserr.KindInternal, fmt.Errorf("registry client is closed"))
	}

	initial, err := c.Discover(ctx, kind, name)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("/%s/%s/%s/", c.namespace, kind, name)
	etcdEvents := c.client.Watch(ctx, prefix, clientv3.WithPrefix())

	out := make(chan []InstanceInfo, 1)
	out <- initial

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.closeCh:
				return
			case resp, ok := <-etcdEvents:
				if !ok || resp.Err() != nil {
					return
				}
				refreshed, err := c.Discover(context.Background(), kind, name)
				if err != nil {
					continue
				}
				select {
				case out <- refreshed:
				case <-ctx.Done():
					return
				case <-c.closeCh:
					return
				}
			}
		}
	}()

	return out, nil
}

// Close stops every background keepalive/watch goroutine and the
// underlying etcd connection. Registered instances are not explicitly
// deregistered; their leases simply stop being renewed and expire on
// their own TTL.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	for _, sess := range c.sessions {
		sess.cancel()
	}
	c.sessions = make(map[string]session)
	close(c.closeCh)
	c.mu.Unlock()

	c.wg.Wait()
	return c.client.Close()
}

func (c *Client) key(info InstanceInfo) string {
	return fmt.Sprintf("/%s/%s/%s/%s", c.namespace, info.Kind, info.Name, info.InstanceID)
}
