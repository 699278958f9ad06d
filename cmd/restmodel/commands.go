package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/restmodel/restmodel/pkg/record"
)

var (
	setFlags []string
	dataFlag string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a record (POST to the collection URL)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := loadSchema()
		if err != nil {
			return err
		}
		attrs, err := parseAttrs()
		if err != nil {
			return err
		}

		r := schema.New(attrs)
		if err := r.Save(cmd.Context()); err != nil {
			return describeFailure(r, err)
		}
		return printRecord(r)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a record (PUT to its resource URL)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := loadSchema()
		if err != nil {
			return err
		}
		attrs, err := parseAttrs()
		if err != nil {
			return err
		}

		r := schema.New(map[string]any{schema.PrimaryKey(): args[0]})
		if err := r.Fetch(cmd.Context()); err != nil {
			return err
		}
		r.SetAll(attrs)
		if err := r.Update(cmd.Context()); err != nil {
			return describeFailure(r, err)
		}
		return printRecord(r)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a record (GET its resource URL)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := loadSchema()
		if err != nil {
			return err
		}

		r := schema.New(map[string]any{schema.PrimaryKey(): args[0]})
		if err := r.Fetch(cmd.Context()); err != nil {
			return err
		}
		return printRecord(r)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record (DELETE its resource URL)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := loadSchema()
		if err != nil {
			return err
		}

		r := schema.New(map[string]any{schema.PrimaryKey(): args[0]})
		if err := r.Destroy(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("deleted %s/%s\n", schema.Name(), args[0])
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{createCmd, updateCmd} {
		cmd.Flags().StringArrayVar(&setFlags, "set", nil, "attribute as key=value (repeatable)")
		cmd.Flags().StringVar(&dataFlag, "data", "", "attributes as a JSON object")
	}
	rootCmd.AddCommand(createCmd, updateCmd, getCmd, deleteCmd)
}

// parseAttrs merges --data and --set into one attribute map. --set values
// that parse as JSON keep their parsed type; everything else is a string.
func parseAttrs() (map[string]any, error) {
	attrs := make(map[string]any)
	if dataFlag != "" {
		if err := json.Unmarshal([]byte(dataFlag), &attrs); err != nil {
			return nil, fmt.Errorf("invalid --data: %w", err)
		}
	}
	for _, kv := range setFlags {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", kv)
		}
		var parsed any
		if err := json.Unmarshal([]byte(value), &parsed); err == nil {
			attrs[key] = parsed
		} else {
			attrs[key] = value
		}
	}
	return attrs, nil
}

// describeFailure prints validation details before returning the error, so
// a failed run shows which attributes were rejected.
func describeFailure(r *record.Record, err error) error {
	var ve *record.ValidationError
	if errors.As(err, &ve) {
		for _, fe := range ve.Fields {
			fmt.Fprintf(os.Stderr, "  %s\n", fe)
		}
	}
	return err
}

func printRecord(r *record.Record) error {
	out, err := json.MarshalIndent(r.Attributes(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
