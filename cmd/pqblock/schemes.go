package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/weiihann/pqblock/signer"
)

func newSchemesCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List supported signature schemes and their sizes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listSchemes(stdout)
		},
	}
}

func listSchemes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCHEME\tPUBLIC KEY\tSIGNATURE")

	for _, name := range signer.Names() {
		s, err := signer.New(name)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}

		pk, sig := "-", "-"
		if sizer, ok := s.(signer.Sizer); ok {
			sizes := sizer.Sizes()
			pk = fmt.Sprintf("%d", sizes.PublicKey)
			sig = fmt.Sprintf("%d", sizes.Signature)
		}

		marker := ""
		if name == signer.Default {
			marker = " (default)"
		}

		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", name, marker, pk, sig)
	}

	return tw.Flush()
}
