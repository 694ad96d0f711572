package errors_test

import (
	"fmt"

	"github.com/agentstation/regdiff/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := &errors.NotFoundError{
		Resource: "file",
		ID:       "registry.txt",
	}

	if errors.IsNotFound(err) {
		fmt.Println("Input file not found")
	}

	// Output: Input file not found
}

// Example_warning shows how a backup failure is reported without aborting.
func Example_warning() {
	backupErr := errors.NewIOError("commit", "registry.txt.bak", errors.New("read-only file system"))
	err := errors.NewWarning("backup", backupErr)

	if errors.IsWarning(err) {
		fmt.Println("continuing after:", err)
	}

	// Output: continuing after: warning during backup: IO error during commit of registry.txt.bak: read-only file system
}

// Example_noOp shows the informational no-op result.
func Example_noOp() {
	err := errors.NewNoOpError("export", "diff is empty")

	if errors.IsNoOp(err) {
		fmt.Println("nothing exported")
	}

	// Output: nothing exported
}
