package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConstantsCmd() *cobra.Command {
	var classPathSpec string
	cmd := &cobra.Command{
		Use:   "constants <classfile-or-name>",
		Short: "Print the constant pool of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadClass(args[0], classPathSpec)
			if err != nil {
				return err
			}
			fmt.Print(cf.Constants)
			return nil
		},
	}
	cmd.Flags().StringVarP(&classPathSpec, "classpath", "c", ".", "class path (directories and jars)")
	return cmd
}
