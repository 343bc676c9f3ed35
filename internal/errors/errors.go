// Package errors turns command failures into terminal output, adding a hint
// for the failures a user can fix themselves.
package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/keyring"
	"github.com/julianstephens/dayweave/internal/logger"
	"github.com/julianstephens/dayweave/internal/storage"
	"github.com/julianstephens/dayweave/internal/storage/postgres"
	"github.com/julianstephens/dayweave/internal/validation"
)

var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotFound, "list existing records with the matching 'list' command"},
	{validation.ErrInvalid, "see 'dayweave <command> --help' for accepted values"},
	{postgres.ErrEmbeddedCredentials, "store it with 'dayweave keyring set' or export " + constants.EnvPostgresConnection + ", or use a .pgpass file"},
	{keyring.ErrKeyringUnavailable, "export " + constants.EnvPostgresConnection + " instead of using the keyring"},
	{keyring.ErrNotFound, "run 'dayweave keyring set' first"},
}

// Hint returns a suggestion for err, or "" when there is none.
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err as "Error: ..." with its hint, if any, on a second line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  hint: " + hint
	}
	return msg
}

// Fatal logs err, prints it to stderr and exits with status 1.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
