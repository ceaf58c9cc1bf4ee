package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/yarrowhq/ui-verify/scenario"
)

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
}

func printMessage(message string) {
	fmt.Println(message)
}

func printResult(result *scenario.Result) {
	printMessage(fmt.Sprintf("Status:    %s", result.Status))
	printMessage(fmt.Sprintf("Run ID:    %s", result.RunID))
	printMessage(fmt.Sprintf("Target:    %s", result.TargetURL))
	printMessage(fmt.Sprintf("Duration:  %s", result.Duration().Round(time.Millisecond)))

	if result.Passed() {
		printMessage(fmt.Sprintf("Artifact:  %s (%d bytes)", result.ArtifactPath, result.ArtifactSize))
		return
	}

	printMessage(fmt.Sprintf("Failed at: %s", result.FailedStep))
	printMessage(fmt.Sprintf("Cause:     %s", result.Cause))
}
