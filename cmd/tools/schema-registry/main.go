// cmd/tools/schema-registry/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"inventory-service/internal/schemas"
	"inventory-service/internal/validation"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "schema-registry",
		Short:        "Inspect the inventory JSON schemas and validate request payloads offline",
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.AddCommand(newExportCommand(), newValidateCommand())
	return cmd
}

func newExportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every registered schema document to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := schemas.NewRegistry()
			if err != nil {
				return err
			}
			return export(registry, dir, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "schemas", "output directory")
	return cmd
}

func export(registry *schemas.Registry, dir string, out io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for _, name := range registry.Names() {
		doc, err := registry.Document(name)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, string(name)+".json")
		if err := os.WriteFile(path, append(doc, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintln(out, path)
	}
	return nil
}

type requestValidator func(raw []byte) (interface{}, error)

func requestValidators(v *validation.Validators) map[string]requestValidator {
	return map[string]requestValidator{
		"org-creation": func(raw []byte) (interface{}, error) {
			return v.OrgCreation.Validate(raw)
		},
		"restaurant-update": func(raw []byte) (interface{}, error) {
			return v.RestaurantUpdate.Validate(raw)
		},
		"menu-section-creation": func(raw []byte) (interface{}, error) {
			return v.MenuSectionCreation.Validate(raw)
		},
		"menu-section-update": func(raw []byte) (interface{}, error) {
			return v.MenuSectionUpdate.Validate(raw)
		},
		"menu-item-creation": func(raw []byte) (interface{}, error) {
			return v.MenuItemCreation.Validate(raw)
		},
		"menu-item-update": func(raw []byte) (interface{}, error) {
			return v.MenuItemUpdate.Validate(raw)
		},
		"platforms-website-update": func(raw []byte) (interface{}, error) {
			return v.PlatformsWebsite.Validate(raw)
		},
		"platforms-callcenter-update": func(raw []byte) (interface{}, error) {
			return v.PlatformsCallcenter.Validate(raw)
		},
		"platforms-emailcenter-update": func(raw []byte) (interface{}, error) {
			return v.PlatformsEmailcenter.Validate(raw)
		},
	}
}

func kinds(m map[string]requestValidator) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func newValidateCommand() *cobra.Command {
	var kind, file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a request payload and print its normalized form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := schemas.NewRegistry()
			if err != nil {
				return err
			}
			validators := requestValidators(validation.NewValidators(registry, validation.DefaultConfig()))

			validate, ok := validators[kind]
			if !ok {
				return fmt.Errorf("unknown request kind %q, expected one of: %s", kind, strings.Join(kinds(validators), ", "))
			}

			raw, err := readPayload(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			req, err := validate(raw)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(req)
		},
	}
	cmd.Flags().StringVarP(&kind, "request", "r", "", "request kind to validate")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "payload file, - reads stdin")
	_ = cmd.MarkFlagRequired("request")
	return cmd
}

func readPayload(file string, stdin io.Reader) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return raw, nil
}
