package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"travel-admin/core/utils"
	"travel-admin/feature/links"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	linksOutput   string
	linksChildren string
	linksDryRun   bool
	linksYes      bool
	linksFile     string
	linksSheet    string
	historyLimit  int
)

// linksCmd groups the link maintenance commands.
var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Inspect and reconcile association links",
	Long: `Inspect and reconcile the association tables linking hotels, activities,
restaurants and their options.

Examples:
  # List the relationship kinds
  links kinds

  # Show the amenities of hotel 12
  links show hotel-amenity 12

  # Preview the changes needed to make hotel 12 carry amenities 5 and 9
  links reconcile hotel-amenity 12 --children 5,9 --dry-run

  # Apply them without prompting
  links reconcile hotel-amenity 12 --children 5,9 --yes

  # Replace links from a workbook
  links import hotel-amenity --file amenities.xlsx`,
}

var linksKindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the relationship kinds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printOutput(cmd.OutOrStdout(), linksOutput, links.Relations())
	},
}

var linksListCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List the links of every parent of a kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		grouped, err := env.service.ListGrouped(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), linksOutput, grouped)
	},
}

var linksShowCmd = &cobra.Command{
	Use:   "show <kind> <parent>",
	Short: "Show the linked children of one parent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, err := utils.ParseID(args[1])
		if err != nil {
			return err
		}

		env, err := newEnvironment(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		children, err := env.service.Get(cmd.Context(), args[0], parent)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), linksOutput, links.ParentLinks{ParentID: parent, ChildIDs: children})
	},
}

var linksReconcileCmd = &cobra.Command{
	Use:   "reconcile <kind> <parent>",
	Short: "Make the links of one parent match a list of children",
	Long: `Diffs the live links of a parent against --children and applies the difference.
Removals ask for confirmation unless --yes is given. --dry-run only prints the plan.
An empty --children removes every link of the parent.`,
	Args: cobra.ExactArgs(2),
	RunE: runLinksReconcile,
}

var linksImportCmd = &cobra.Command{
	Use:   "import <kind>",
	Short: "Replace links from an Excel workbook",
	Long: `Reads a workbook whose first sheet (or --sheet) has a header row followed by
parent id and child id columns, then reconciles every parent it names.
Parents absent from the workbook are left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runLinksImport,
}

var linksExportCmd = &cobra.Command{
	Use:   "export <kind>",
	Short: "Write the links of a kind to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if linksFile == "" {
			return fmt.Errorf("--file is required")
		}

		env, err := newEnvironment(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		f, err := os.Create(linksFile)
		if err != nil {
			return err
		}
		if err := env.service.Export(cmd.Context(), args[0], f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		env.logger.Info("Links exported", zap.String("kind", args[0]), zap.String("file", linksFile))
		return nil
	},
}

var linksHistoryCmd = &cobra.Command{
	Use:   "history <kind> <parent>",
	Short: "Show archived reconciliation reports of one parent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, err := utils.ParseID(args[1])
		if err != nil {
			return err
		}

		env, err := newEnvironment(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		history, err := env.service.History(cmd.Context(), args[0], parent, historyLimit)
		if err != nil {
			return err
		}
		return printOutput(cmd.OutOrStdout(), linksOutput, history)
	},
}

func init() {
	linksCmd.PersistentFlags().StringVarP(&linksOutput, "output", "o", "json", "Output format (json|yaml)")

	linksReconcileCmd.Flags().StringVar(&linksChildren, "children", "", "Comma separated child ids the parent should end up with")
	linksReconcileCmd.Flags().BoolVar(&linksDryRun, "dry-run", false, "Print the plan without applying it")
	linksReconcileCmd.Flags().BoolVar(&linksYes, "yes", false, "Auto-confirm removals (non-interactive)")

	linksImportCmd.Flags().StringVar(&linksFile, "file", "", "Workbook to import")
	linksImportCmd.Flags().StringVar(&linksSheet, "sheet", "", "Sheet to read (defaults to the first sheet)")
	linksImportCmd.Flags().BoolVar(&linksYes, "yes", false, "Auto-confirm the import (non-interactive)")
	_ = linksImportCmd.MarkFlagRequired("file")

	linksExportCmd.Flags().StringVar(&linksFile, "file", "", "Workbook to write")

	linksHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of reports")

	linksCmd.AddCommand(
		linksKindsCmd,
		linksListCmd,
		linksShowCmd,
		linksReconcileCmd,
		linksImportCmd,
		linksExportCmd,
		linksHistoryCmd,
	)
	RootCmd.AddCommand(linksCmd)
}

func runLinksReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	parent, err := utils.ParseID(args[1])
	if err != nil {
		return err
	}
	desired, err := utils.ParseIDList(linksChildren)
	if err != nil {
		return err
	}

	env, err := newEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	plan, err := env.service.Preview(ctx, args[0], parent, desired)
	if err != nil {
		return err
	}

	env.logger.Info("Planned link changes",
		zap.String("kind", args[0]),
		zap.Uint("parent", parent),
		zap.String("add", utils.JoinIDs(plan.ToAdd)),
		zap.String("remove", utils.JoinIDs(plan.ToRemove)),
		zap.Int("unchanged", len(plan.Unchanged)),
	)

	if linksDryRun {
		env.logger.Info("Dry-run mode: No changes were made.")
		return printOutput(cmd.OutOrStdout(), linksOutput, plan)
	}
	if plan.Empty() {
		env.logger.Info("No changes required.")
		return nil
	}
	if len(plan.ToRemove) > 0 && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "remove links") {
		env.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	report, err := env.service.Update(ctx, args[0], parent, desired)
	if err != nil {
		return err
	}
	if err := printOutput(cmd.OutOrStdout(), linksOutput, report); err != nil {
		return err
	}
	if report.Partial() {
		return fmt.Errorf("%s", report.Message)
	}
	return nil
}

func runLinksImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := newEnvironment(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "replace the links of every parent in "+linksFile) {
		env.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	f, err := os.Open(linksFile)
	if err != nil {
		return err
	}
	defer f.Close()

	reports, err := env.service.Import(ctx, args[0], f, linksSheet)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Partial() {
			failed++
		}
	}
	env.logger.Info("Import finished", zap.Int("parents", len(reports)), zap.Int("partial", failed))

	if err := printOutput(cmd.OutOrStdout(), linksOutput, reports); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d parents were not fully reconciled", failed, len(reports))
	}
	return nil
}

// confirm prompts the user for confirmation or uses the --yes flag.
func confirm(in io.Reader, out io.Writer, action string) bool {
	if linksYes {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprintf(out, "\n⚠️  Type 'yes' to %s: ", action)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

// printOutput writes v as indented JSON or as YAML.
// YAML is converted from the JSON form so both formats share field names.
func printOutput(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case "json":
	case "yaml":
		if data, err = yaml.JSONToYAML(data); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	_, err = fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
	return err
}
