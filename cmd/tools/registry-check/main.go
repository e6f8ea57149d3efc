// cmd/tools/registry-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"proposal-workers/internal/common/errors"
	buildproposalsummary "proposal-workers/internal/workers/proposal/build-proposal-summary"
	calculateproposal "proposal-workers/internal/workers/proposal/calculate-proposal"
	composeproposalemail "proposal-workers/internal/workers/proposal/compose-proposal-email"
	exportproposaldata "proposal-workers/internal/workers/proposal/export-proposal-data"
	renderproposaldocument "proposal-workers/internal/workers/proposal/render-proposal-document"
	"proposal-workers/pkg/registry"
)

// taskTypes is every task type worker-manager registers.
var taskTypes = []string{
	calculateproposal.TaskType,
	composeproposalemail.TaskType,
	exportproposaldata.TaskType,
	renderproposaldocument.TaskType,
	buildproposalsummary.TaskType,
}

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	statusCmd := flag.NewFlagSet("status", flag.ExitOnError)

	validatePath := validateCmd.String("path", "configs/activity-registry.json", "Path to registry file")
	listPath := listCmd.String("path", "configs/activity-registry.json", "Path to registry file")
	statusPath := statusCmd.String("path", "configs/activity-registry.json", "Path to registry file")
	statusID := statusCmd.String("id", "", "Activity ID to update")
	statusValue := statusCmd.String("value", "", "New status (planned, in-progress, completed, verified)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validate(*validatePath); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}

	case "list":
		listCmd.Parse(os.Args[2:])
		if err := list(*listPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	case "status":
		statusCmd.Parse(os.Args[2:])
		if *statusID == "" || *statusValue == "" {
			fmt.Println("Error: id and value are required for status.")
			statusCmd.Usage()
			os.Exit(1)
		}
		if err := setStatus(*statusPath, *statusID, *statusValue); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s status to %s\n", *statusID, *statusValue)

	default:
		help()
	}
}

func validate(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	problems := reg.Validate(taskTypes, errors.BPMNCodes())
	for _, p := range problems {
		fmt.Printf("  - %v\n", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) found", len(problems))
	}

	fmt.Printf("Registry validation passed. Found %d activities covering %d workers.\n", len(reg.Activities), len(taskTypes))
	return nil
}

func list(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	activities := append([]registry.Activity{}, reg.Activities...)
	sort.Slice(activities, func(i, j int) bool { return activities[i].TaskType < activities[j].TaskType })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TASK TYPE\tSTATUS\tTIMEOUT\tERROR CODES")
	for _, a := range activities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", a.TaskType, a.ImplementationStatus, a.Timeout, a.ErrorCodes)
	}
	return w.Flush()
}

func setStatus(path, id, status string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	found := false
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			reg.Activities[i].ImplementationStatus = status
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	if problems := reg.Validate(nil, nil); len(problems) > 0 {
		return problems[0]
	}
	return registry.Save(reg, path, time.Now())
}

func help() {
	fmt.Println(`
Usage: registry-check <command> [flags]

Commands:
  validate  Check the registry file against the implemented workers
  list      Print the registered activities
  status    Set an activity's implementation status

Examples:
  registry-check validate -path configs/activity-registry.json
  registry-check list
  registry-check status -id render-proposal-document -value verified`)
}
