package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/romantomjak/wolctl/wakeonlan"
)

// DefaultFile is where the command line looks for configuration.
const DefaultFile = "~/.wolctl.hcl"

type Config struct {
	// Port is used for hosts that don't set their own. Zero means the
	// Wake-on-LAN default of 9.
	Port int `hcl:"port,optional"`

	// Broadcast is the destination address for hosts that don't set their own.
	Broadcast string `hcl:"broadcast,optional"`

	TimeoutRaw string `hcl:"timeout,optional"`
	Timeout    time.Duration

	// MetricsTextfile is optional. When set, packet counters are written there
	// in the node_exporter textfile format after every run.
	MetricsTextfile string `hcl:"metrics_textfile,optional"`

	Hosts []Host `hcl:"host,block"`
}

type Host struct {
	Name string `hcl:"name,label"`
	MAC  string `hcl:"mac"`

	// Port is optional and overrides the top-level port.
	Port int `hcl:"port,optional"`

	// Broadcast is optional and overrides the top-level broadcast address.
	//
	// Directed broadcasts such as 192.168.1.255 are needed when the target
	// sits behind a router that drops 255.255.255.255.
	Broadcast string `hcl:"broadcast,optional"`
}

// FromFile decodes filename. A missing file yields an empty configuration so that
// MAC addresses can be woken without one.
func FromFile(filename string) (*Config, error) {
	if strings.HasPrefix(filename, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		filename = strings.Replace(filename, "~", home, 1)
	}

	cfg := &Config{}

	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err := hclsimple.DecodeFile(filename, nil, cfg); err != nil {
		return nil, fmt.Errorf("decode file: %w", err)
	}

	if cfg.TimeoutRaw != "" {
		timeout, err := time.ParseDuration(cfg.TimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = timeout
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if err := validatePort(c.Port); err != nil {
		return err
	}
	if err := validateBroadcast(c.Broadcast); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Hosts))
	for _, h := range c.Hosts {
		name := strings.ToLower(h.Name)
		if _, ok := seen[name]; ok {
			return fmt.Errorf("host %q is defined more than once", h.Name)
		}
		seen[name] = struct{}{}

		if _, err := wakeonlan.ParseMAC(h.MAC); err != nil {
			return fmt.Errorf("host %q: %w", h.Name, err)
		}
		if err := validatePort(h.Port); err != nil {
			return fmt.Errorf("host %q: %w", h.Name, err)
		}
		if err := validateBroadcast(h.Broadcast); err != nil {
			return fmt.Errorf("host %q: %w", h.Name, err)
		}
	}

	return nil
}

// Host returns the host with the given name. Names are case-insensitive.
func (c *Config) Host(name string) (Host, bool) {
	for _, h := range c.Hosts {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return Host{}, false
}

// PortFor returns the port to wake h on.
func (c *Config) PortFor(h Host) uint16 {
	switch {
	case h.Port != 0:
		return uint16(h.Port)
	case c.Port != 0:
		return uint16(c.Port)
	default:
		return wakeonlan.DefaultPort
	}
}

// BroadcastFor returns the destination address for h, or nil for 255.255.255.255.
func (c *Config) BroadcastFor(h Host) net.IP {
	if h.Broadcast != "" {
		return net.ParseIP(h.Broadcast)
	}
	if c.Broadcast != "" {
		return net.ParseIP(c.Broadcast)
	}
	return nil
}

func validatePort(port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("port %d out of range (must be 0-65535)", port)
	}
	return nil
}

func validateBroadcast(addr string) error {
	if addr == "" {
		return nil
	}
	if ip := net.ParseIP(addr); ip == nil || ip.To4() == nil {
		return fmt.Errorf("broadcast %q is not an IPv4 address", addr)
	}
	return nil
}
