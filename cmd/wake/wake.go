package wake

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"

	"github.com/romantomjak/wolctl/config"
	"github.com/romantomjak/wolctl/wakeonlan"
)

var (
	flagPort      string
	flagBroadcast string
	flagTimeout   time.Duration
	flagDryRun    bool
)

var wakeExample = strings.Trim(`
  # Wake a host defined in ~/.wolctl.hcl
  wolctl wake nas

  # Wake a MAC address on port 7
  wolctl wake --port 7 00:11:22:33:44:55

  # Wake several machines through a directed broadcast
  wolctl wake --broadcast 192.168.1.255 nas desktop aa-bb-cc-dd-ee-ff

  # Print the magic packet without sending it
  wolctl wake --dry-run nas
`, "\n")

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "wake [flags] <host|mac>...",
		Short:        "Send Wake-on-LAN magic packets",
		Example:      wakeExample,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         wakeCommandFunc,
	}

	cmd.Flags().StringVarP(&flagPort, "port", "p", "", "UDP port, non-numeric values fall back to 9")
	cmd.Flags().StringVarP(&flagBroadcast, "broadcast", "b", "", "broadcast address (default 255.255.255.255)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "give up sending after this long")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the packets instead of sending them")

	return cmd
}

// target is a single machine to wake, resolved from configuration and flags.
type target struct {
	name      string
	mac       string
	port      uint16
	broadcast net.IP
}

func (t target) addr() string {
	ip := net.IPv4bcast
	if t.broadcast != nil {
		ip = t.broadcast
	}
	return net.JoinHostPort(ip.String(), fmt.Sprint(t.port))
}

func wakeCommandFunc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	targets, err := resolveTargets(cmd, cfg, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagDryRun {
		return dump(cmd, targets)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	timeout := cfg.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout = flagTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log := logr.FromContextOrDiscard(ctx)

	fmt.Fprintf(out, "⚡️ Waking %d target(s)\n", len(targets))

	results := iter.Map(targets, func(t *target) error {
		w := wakeonlan.New(
			wakeonlan.WithSender(&wakeonlan.UDPSender{Broadcast: t.broadcast}),
			wakeonlan.WithLogger(log.WithValues("target", t.name)),
		)
		return w.Wake(ctx, t.mac, t.port)
	})

	failed := 0
	for i, t := range targets {
		if err := results[i]; err != nil {
			failed++
			fmt.Fprintf(out, "  - %s... %s ❌\n", t.name, err)
			continue
		}
		fmt.Fprintf(out, "  - %s (%s)... OK ✅\n", t.name, t.addr())
	}

	if cfg.MetricsTextfile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, wakeonlan.Registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d target(s) failed", failed, len(targets))
	}

	fmt.Fprintln(out, "✅ All done!")

	return nil
}

// resolveTargets looks every argument up as a host name first and treats it as a
// MAC address otherwise. Flags win over configuration.
func resolveTargets(cmd *cobra.Command, cfg *config.Config, args []string) ([]target, error) {
	var (
		port      uint16
		portSet   = cmd.Flags().Changed("port")
		broadcast net.IP
	)

	if portSet {
		p, err := wakeonlan.ParsePort(flagPort)
		if err != nil {
			return nil, err
		}
		port = p
	}

	if flagBroadcast != "" {
		broadcast = net.ParseIP(flagBroadcast).To4()
		if broadcast == nil {
			return nil, fmt.Errorf("broadcast %q is not an IPv4 address", flagBroadcast)
		}
	}

	targets := make([]target, 0, len(args))
	for _, arg := range args {
		host, ok := cfg.Host(arg)
		if !ok {
			host = config.Host{Name: arg, MAC: arg}
		}

		t := target{
			name:      arg,
			mac:       host.MAC,
			port:      cfg.PortFor(host),
			broadcast: cfg.BroadcastFor(host),
		}

		if portSet {
			t.port = port
		}
		if broadcast != nil {
			t.broadcast = broadcast
		}

		targets = append(targets, t)
	}

	return targets, nil
}

func dump(cmd *cobra.Command, targets []target) error {
	out := cmd.OutOrStdout()

	for _, t := range targets {
		mac, err := wakeonlan.ParseMAC(t.mac)
		if err != nil {
			return err
		}

		packet := wakeonlan.Build(mac)

		fmt.Fprintf(out, "📦 %s → %s (%d bytes)\n", mac, t.addr(), len(packet))
		fmt.Fprint(out, hex.Dump(packet[:]))
	}

	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	filename, err := cmd.Flags().GetString("config")
	if err != nil {
		filename = config.DefaultFile
	}
	return config.FromFile(filename)
}
