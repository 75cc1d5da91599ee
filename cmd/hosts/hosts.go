package hosts

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/romantomjak/wolctl/config"
	"github.com/romantomjak/wolctl/table"
	"github.com/romantomjak/wolctl/wakeonlan"
)

func Command() *cobra.Command {
	return &cobra.Command{
		Use:          "hosts",
		Short:        "List configured hosts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, err := cmd.Flags().GetString("config")
			if err != nil {
				filename = config.DefaultFile
			}

			cfg, err := config.FromFile(filename)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			if len(cfg.Hosts) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No hosts defined in %s 💔\n", filename)
				return nil
			}

			t := table.New("NAME", "MAC", "PORT", "BROADCAST")
			for _, h := range cfg.Hosts {
				// Config loading already rejected malformed addresses.
				mac, _ := wakeonlan.Normalize(h.MAC)

				broadcast := cfg.BroadcastFor(h)
				if broadcast == nil {
					broadcast = net.IPv4bcast
				}

				if err := t.AddRow(h.Name, mac.String(), fmt.Sprint(cfg.PortFor(h)), broadcast.String()); err != nil {
					return err
				}
			}

			return t.Print(cmd.OutOrStdout())
		},
	}
}
