package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/classpath"
	"github.com/dhamidi/jclass/format"
)

var log = commonlog.GetLogger("jclass")

// loadClass accepts either a path to a .class file or a class name to be
// resolved against the given class path.
func loadClass(arg, classPathSpec string) (*classfile.ClassFile, error) {
	if strings.HasSuffix(arg, ".class") {
		log.Infof("parsing class file %s", arg)
		return classfile.ReadFile(arg)
	}

	cp, err := classpath.Parse(classPathSpec)
	if err != nil {
		return nil, err
	}
	name := classfile.SourceToInternalName(arg)
	log.Infof("resolving %s on class path %q", name, classPathSpec)
	return cp.LoadClass(name)
}

func newDumpCmd() *cobra.Command {
	var classPathSpec string
	var outputFormat string
	cmd := &cobra.Command{
		Use:   "dump <classfile-or-name>",
		Short: "Parse a class file and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadClass(args[0], classPathSpec)
			if err != nil {
				return err
			}

			switch outputFormat {
			case "text":
				fmt.Print(cf)
				return nil
			case "json":
				return format.NewJSONEncoder(os.Stdout).Encode(cf)
			case "java":
				return format.NewJavaEncoder(os.Stdout).Encode(cf)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
		},
	}
	cmd.Flags().StringVarP(&classPathSpec, "classpath", "c", ".", "class path (directories and jars)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, java)")
	return cmd
}
