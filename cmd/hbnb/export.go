package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/hbnb/pkg/storage"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every record to stdout",
	Long:  `Export encodes the whole storage as a single document, in the format of the backing file unless --format is given.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openStorage()

		codec := s.Codec()
		if exportFormat != "" {
			c, err := storage.CodecByName(exportFormat, strict, true)
			if err != nil {
				fatal("Error selecting format", err)
			}
			codec = c
		}

		data, err := codec.Encode(s.Snapshot())
		if err != nil {
			fatal("Error encoding records", err)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			fatal("Error writing output", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format: json or yaml")
}
