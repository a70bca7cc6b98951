package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag is a command line flag bound to a settings key.
type Flag struct {
	Config string
	Cli    string
	v      *viper.Viper
}

type StringFlag struct {
	f *Flag
}

type StringPFlag struct {
	f  *Flag
	sh string
}

type IntFlag struct {
	f *Flag
}

type BoolFlag struct {
	f *Flag
}

type StringSliceFlag struct {
	f *Flag
}

type EnumFlag struct {
	f       *Flag
	allowed []string
}

func NewFlag(v *viper.Viper, config, cli string) *Flag {
	return &Flag{
		Config: config,
		Cli:    cli,
		v:      v,
	}
}

// bind registers the flag under its settings key.
func (f *Flag) bind(cmd *cobra.Command) {
	if err := f.v.BindPFlag(f.Config, cmd.Flags().Lookup(f.Cli)); err != nil {
		panic(err)
	}
}

func (f *Flag) String() *StringFlag {
	return &StringFlag{f: f}
}

func (f *StringFlag) Bind(cmd *cobra.Command, value, usage string) {
	cmd.Flags().String(f.f.Cli, value, usage)
	f.f.bind(cmd)
}

func (f *Flag) StringP(shorthand string) *StringPFlag {
	return &StringPFlag{f: f, sh: shorthand}
}

func (f *StringPFlag) Bind(cmd *cobra.Command, value, usage string) {
	cmd.Flags().StringP(f.f.Cli, f.sh, value, usage)
	f.f.bind(cmd)
}

func (f *Flag) Int() *IntFlag {
	return &IntFlag{f: f}
}

func (f *IntFlag) Bind(cmd *cobra.Command, value int, usage string) {
	cmd.Flags().Int(f.f.Cli, value, usage)
	f.f.bind(cmd)
}

func (f *Flag) Bool() *BoolFlag {
	return &BoolFlag{f: f}
}

func (f *BoolFlag) Bind(cmd *cobra.Command, value bool, usage string) {
	cmd.Flags().Bool(f.f.Cli, value, usage)
	f.f.bind(cmd)
}

func (f *Flag) StringSlice() *StringSliceFlag {
	return &StringSliceFlag{f: f}
}

// Bind registers a repeatable flag, which also accepts comma separated values.
func (f *StringSliceFlag) Bind(cmd *cobra.Command, usage string) {
	cmd.Flags().StringSlice(f.f.Cli, nil, usage)
	f.f.bind(cmd)
}

func (f *Flag) Enum(allowed ...string) *EnumFlag {
	return &EnumFlag{f: f, allowed: allowed}
}

func (f *EnumFlag) Bind(cmd *cobra.Command, value, usage string) {
	cmd.Flags().Var(newEnumValue(value, f.allowed), f.f.Cli, usage)
	f.f.bind(cmd)
}

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(value string, allowed []string) *enumValue {
	return &enumValue{value: value, allowed: allowed}
}

func (e *enumValue) String() string {
	return e.value
}

func (e *enumValue) Set(s string) error {
	v := strings.ToLower(s)
	if !slices.Contains(e.allowed, v) {
		return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
	}
	e.value = v
	return nil
}

func (e *enumValue) Type() string {
	return strings.Join(e.allowed, "|")
}
