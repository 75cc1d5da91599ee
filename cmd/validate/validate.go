package validate

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/romantomjak/wolctl/table"
	"github.com/romantomjak/wolctl/wakeonlan"
)

var validateLong = strings.Trim(`
Check MAC address syntax

  Accepted forms are XX:XX:XX:XX:XX:XX, XX-XX-XX-XX-XX-XX and XXXXXXXXXXXX.
  The NORMALIZED column shows what "wolctl wake" would send to, which is more
  lenient: it also understands Cisco style XXXX.XXXX.XXXX and ignores
  surrounding whitespace.
`, "\n")

var validateExample = strings.Trim(`
  # Check a couple of addresses
  wolctl validate 00:11:22:33:44:55 aabb.ccdd.eeff
`, "\n")

func Command() *cobra.Command {
	return &cobra.Command{
		Use:          "validate <mac>...",
		Short:        "Check MAC address syntax",
		Long:         validateLong,
		Example:      validateExample,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         validateCommandFunc,
	}
}

func validateCommandFunc(cmd *cobra.Command, args []string) error {
	t := table.New("INPUT", "VALID", "NORMALIZED")

	invalid := 0
	for _, arg := range args {
		valid := "yes"
		if !wakeonlan.Validate(arg) {
			valid = "no"
			invalid++
		}

		normalized := "-"
		if mac, ok := wakeonlan.Normalize(arg); ok {
			normalized = mac.String()
		}

		if err := t.AddRow(fmt.Sprintf("%q", arg), valid, normalized); err != nil {
			return err
		}
	}

	if err := t.Print(cmd.OutOrStdout()); err != nil {
		return err
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d address(es) are invalid", invalid, len(args))
	}

	return nil
}
