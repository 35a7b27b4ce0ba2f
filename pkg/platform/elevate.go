// pkg/platform/elevate.go
package platform

import (
	"fmt"
	"os"
	"os/exec"
)

// elevated lists which commands need elevated rights. The service verbs
// start/stop/status are dispatched by the surrounding OS launcher and
// share the same policy.
var elevated = map[string]bool{
	"install":   true,
	"uninstall": true,
	"update":    true,
	"start":     true,
	"stop":      true,
	"status":    true,
	"list":      false,
	"available": false,
	"create":    false,
	"version":   false,
}

// RequiresElevation reports whether command must run with elevated rights.
func RequiresElevation(command string) bool {
	return elevated[command]
}

// OutcomeKind tells the caller how to continue after an elevation check.
type OutcomeKind int

const (
	// Proceed means the command may run in the current process.
	Proceed OutcomeKind = iota
	// Reexec means the caller must run Outcome.Cmd and exit with its code.
	Reexec
	// Fail means elevation is required but cannot be attempted.
	Fail
)

// Outcome is the result of an elevation check.
type Outcome struct {
	Kind   OutcomeKind
	Cmd    *exec.Cmd // set when Kind is Reexec
	Reason string    // set when Kind is Fail
}

// Ensure decides whether command can run in-process or must be re-invoked
// through the platform's elevation front end. The returned Reexec command
// re-runs the current executable with the original arguments and inherited
// stdio; the caller performs the re-exec and propagates the exit code.
func Ensure(info Info, command string, args []string) Outcome {
	if !RequiresElevation(command) || info.Elevated {
		return Outcome{Kind: Proceed}
	}

	front := info.Profile.Elevate
	if len(front) == 0 {
		return Outcome{Kind: Fail, Reason: fmt.Sprintf("no elevation front end for platform %s", info.Profile.Name)}
	}
	if !commandExists(front[0]) {
		return Outcome{Kind: Fail, Reason: fmt.Sprintf("elevation front end %q not found", front[0])}
	}

	exe, err := os.Executable()
	if err != nil {
		return Outcome{Kind: Fail, Reason: fmt.Sprintf("locating executable: %v", err)}
	}

	argv := append(append([]string{}, front[1:]...), exe)
	argv = append(argv, args...)

	cmd := exec.Command(front[0], argv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return Outcome{Kind: Reexec, Cmd: cmd}
}
