package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/pressgen/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage configuration",
		Annotations: noApp(),
	}
	cmd.AddCommand(newConfigGenerateCmd())
	cmd.AddCommand(newConfigCheckCmd())
	return cmd
}

func newConfigGenerateCmd() *cobra.Command {
	var (
		out       string
		overwrite bool
		update    bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a default config.toml",
		Long: `Write a default config.toml.

An existing file is left alone unless --overwrite (replace with defaults) or
--update (add missing keys, comment out removed ones) is given. Either way the
previous file is kept as <path>.bak.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if overwrite && update {
				return errors.New("--overwrite and --update are mutually exclusive")
			}
			if out == "" {
				out = config.DefaultConfigPath()
			}
			return generateConfig(cmd.OutOrStdout(), out, overwrite, update)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "config path (default $XDG_CONFIG_HOME/pressgen/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing config with defaults")
	cmd.Flags().BoolVar(&update, "update", false, "merge new defaults into an existing config")
	return cmd
}

func newConfigCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := getConfig(cmd)
			if err := checkConfig(v); err != nil {
				return err
			}
			src := v.ConfigFileUsed()
			if src == "" {
				src = "defaults and environment"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config OK (%s)\n", src)
			return nil
		},
	}
}

func checkConfig(v *viper.Viper) error {
	if err := config.CheckConfigValidity(v); err != nil {
		return fmt.Errorf("invalid config:\n%w", err)
	}
	return nil
}

func generateConfig(w io.Writer, path string, overwrite, update bool) error {
	prev, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	content := config.RenderDefaultTOML()
	switch {
	case exists && update:
		merged, changed, err := config.UpdateTOML(string(prev))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !changed {
			fmt.Fprintf(w, "Config already up to date: %s\n", path)
			return nil
		}
		content = merged
	case exists && !overwrite:
		return fmt.Errorf("config already exists at %s; pass --update to merge defaults or --overwrite to replace it", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	var backup string
	if exists {
		if backup, err = keepBackup(path, prev); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	if backup != "" {
		fmt.Fprintf(w, "Backup: %s\n", backup)
	}
	return nil
}

// keepBackup writes data next to path as .bak, or as a timestamped .bak when
// one is already there.
func keepBackup(path string, data []byte) (string, error) {
	for _, name := range []string{path + ".bak", path + ".bak-" + time.Now().Format("20060102-150405")} {
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", err
		}
		return name, f.Close()
	}
	return "", fmt.Errorf("backup of %s already exists", path)
}
