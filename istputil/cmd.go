/*
Copyright © 2020 the ISTPCheck authors.
This file is part of ISTPCheck.

ISTPCheck is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ISTPCheck is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ISTPCheck.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package istputil wires the istp checks and attribute assigners into
// a command-line interface.
package istputil

import (
	"fmt"
	"log"

	"github.com/lnashier/viper"
	"github.com/spacedata/istp"
	"github.com/spacedata/istp/ncfile"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to ISTPCheck.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "vars",
			usage: `
              vars specifies the variables to operate on. If empty,
              every variable in the file is used.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{fillvalCmd.Flags(), formatCmd.Flags()},
		},
		{
			name: "scale",
			usage: `
              scale specifies whether format inference should use
              SCALEMIN/SCALEMAX instead of VALIDMIN/VALIDMAX. Note that
              the checks may complain about the result.`,
			shorthand:  "s",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{formatCmd.Flags()},
		},
		{
			name: "dryrun",
			usage: `
              dryrun specifies whether to print the computed FORMAT
              instead of writing it to the file.`,
			shorthand:  "n",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{formatCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("ISTP")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(checkCmd)
	Root.AddCommand(fillvalCmd)
	Root.AddCommand(formatCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("istpcheck: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "istpcheck",
	Short: "A checker for ISTP-compliant metadata.",
	Long: `istpcheck checks variable and file metadata in self-describing
scientific data files against the ISTP metadata standard, and can infer
and write ISTP-compliant FILLVAL and FORMAT attributes.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'ISTP_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of ISTPCheck.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("ISTPCheck v%s\n", istp.Version)
	},
	DisableAutoGenTag: true,
}

var checkCmd = &cobra.Command{
	Use:   "check file [file...]",
	Short: "Check files for ISTP compliance.",
	Long: `check runs every file-level and variable-level metadata check on the
given files and prints one finding per line. The exit status is nonzero
if any finding is produced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		findings, err := Check(args)
		for _, finding := range findings {
			fmt.Println(finding)
		}
		if err != nil {
			return err
		}
		if len(findings) > 0 {
			return fmt.Errorf("istpcheck: found %d issues", len(findings))
		}
		log.Println("No issues found.")
		return nil
	},
	DisableAutoGenTag: true,
}

var fillvalCmd = &cobra.Command{
	Use:   "fillval file",
	Short: "Set ISTP-compliant FILLVAL attributes.",
	Long: `fillval infers the standard fill value for each selected variable
from its data type and writes it to the file, overwriting any existing
FILLVAL attribute.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return assign(args[0], varNames(), istp.FillVal)
	},
	DisableAutoGenTag: true,
}

var formatCmd = &cobra.Command{
	Use:   "format file",
	Short: "Set ISTP-compliant FORMAT attributes.",
	Long: `format infers a display format for each selected variable from its
data type and declared range and writes it to the file, overwriting any
existing FORMAT attribute. With --dryrun the computed format is printed
instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		useScale := Cfg.GetBool("scale")
		if Cfg.GetBool("dryrun") {
			return apply(args[0], varNames(), func(v istp.Variable) error {
				format, err := istp.FormatString(v, useScale)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", v.Name(), format)
				return nil
			})
		}
		return assign(args[0], varNames(), func(v istp.Variable) error {
			return istp.Format(v, useScale)
		})
	},
	DisableAutoGenTag: true,
}

// varNames returns the variables selected by the vars option.
func varNames() []string {
	return cast.ToStringSlice(Cfg.Get("vars"))
}

// Check opens each file and runs every metadata check on it, returning
// the findings from all files prefixed with the file path.
func Check(paths []string) ([]string, error) {
	var findings []string
	for _, path := range paths {
		f, err := ncfile.Open(path)
		if err != nil {
			return findings, err
		}
		found, err := istp.CheckFile(f)
		for _, e := range found {
			findings = append(findings, fmt.Sprintf("%s: %s", path, e))
		}
		if err != nil {
			return findings, err
		}
	}
	return findings, nil
}

// apply runs fn on the selected variables of the file at path without
// saving the file afterwards.
func apply(path string, vars []string, fn func(istp.Variable) error) error {
	f, err := ncfile.Open(path)
	if err != nil {
		return err
	}
	return applyVars(f, vars, fn)
}

// assign runs fn on the selected variables of the file at path and
// saves the result back to path.
func assign(path string, vars []string, fn func(istp.Variable) error) error {
	f, err := ncfile.Open(path)
	if err != nil {
		return err
	}
	if err := applyVars(f, vars, fn); err != nil {
		return err
	}
	return f.Save(path)
}

func applyVars(f *ncfile.File, vars []string, fn func(istp.Variable) error) error {
	if len(vars) == 0 {
		vars = f.Variables()
	}
	for _, name := range vars {
		v, ok := f.Var(name)
		if !ok {
			return fmt.Errorf("istpcheck: no variable %s in %s", name, f.Path())
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}
