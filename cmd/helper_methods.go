package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/closet/internal/configs"
	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/secrets"
	"github.com/PolarWolf314/closet/internal/ui"
	"github.com/PolarWolf314/closet/internal/utils"
	"github.com/PolarWolf314/closet/internal/vault"
	"github.com/PolarWolf314/closet/internal/workflows"

	"github.com/briandowns/spinner"
)

// Password prompts, replaceable in tests.
var (
	readPassphrase    = utils.ReadPassphrase
	readNewPassphrase = utils.ReadNewPassphrase
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// environment is everything a command needs to find a user's closet.
type environment struct {
	settings *configs.Settings
	config   *configs.Config
	dataDir  string
	username string
	params   secrets.KDFParams
}

func (e *environment) vault() *vault.Manager {
	return vault.NewManager(e.dataDir, vault.WithKDFParams(e.params), vault.WithLogger(Logger))
}

// loadEnvironment resolves settings, config, data directory and username
// from the environment, the config file and the global flags.
func loadEnvironment() (*environment, error) {
	settings, err := configs.ResolveSettings()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Config path: %s", settings.ConfigPath())

	config, err := configs.LoadConfig(settings.ConfigPath())
	if err != nil {
		return nil, err
	}

	params, err := config.KDFParams()
	if err != nil {
		return nil, err
	}

	username := userFlag
	if username == "" {
		username = config.User.DefaultUsername
	}
	if username == "" {
		username, err = utils.GetUsername()
		if err != nil {
			return nil, fmt.Errorf("could not determine username, pass --user: %w", err)
		}
	}
	if err := vault.ValidateUsername(username); err != nil {
		return nil, err
	}

	env := &environment{
		settings: settings,
		config:   config,
		dataDir:  configs.DataDir(dataDirFlag, settings, config),
		username: username,
		params:   params,
	}
	Logger.Debugf("Data directory: %s, user: %s", env.dataDir, env.username)
	return env, nil
}

// readPassword gets the password from stdin when --password-stdin is set,
// otherwise from a hidden prompt. When isNew is true and the password is
// prompted for, it is asked twice.
func readPassword(username string, isNew bool) (string, error) {
	if passwordStdin {
		password, err := utils.ReadPasswordLine(input())
		if err != nil {
			return "", err
		}
		if password == "" {
			return "", kerrors.ErrEmptyPassword
		}
		return password, nil
	}

	var (
		raw []byte
		err error
	)
	if isNew {
		fmt.Fprintf(os.Stderr, "No closet found for %s, a new one will be created.\n", username)
		raw, err = readNewPassphrase("New password: ", "Repeat password: ")
	} else {
		raw, err = readPassphrase(fmt.Sprintf("Password for %s: ", username))
	}
	if err != nil {
		return "", err
	}
	defer clear(raw)

	if len(raw) == 0 {
		return "", kerrors.ErrEmptyPassword
	}
	return string(raw), nil
}

// openSession resolves the environment, asks for the password and unlocks
// the closet under a spinner.
func openSession(ctx context.Context) (*environment, *workflows.Session, error) {
	env, err := loadEnvironment()
	if err != nil {
		return nil, nil, err
	}

	v := env.vault()
	exists, err := v.Exists(env.username)
	if err != nil {
		return nil, nil, err
	}

	password, err := readPassword(env.username, !exists)
	if err != nil {
		return nil, nil, err
	}

	spinner, cleanup := startSpinner("Unlocking closet...", verbose)
	defer cleanup()

	session, err := workflows.OpenSession(ctx, workflows.SessionOptions{
		Username: env.username,
		Password: password,
		Vault:    v,
		Logger:   Logger,
	})
	if err != nil {
		return nil, nil, err
	}
	spinner.FinalMSG = ""
	return env, session, nil
}

// commitSession saves the session under a spinner.
func commitSession(ctx context.Context, session *workflows.Session) error {
	if !session.Dirty() {
		return nil
	}
	_, cleanup := startSpinner("Saving closet...", verbose)
	defer cleanup()
	return session.Commit(ctx)
}

// confirm asks a yes/no question on stdin. Anything but y or yes is no.
func confirm(question string) bool {
	fmt.Printf("%s %s [y/N]: ", ui.WarningMark(), question)
	answer, err := readLine()
	if err != nil {
		fmt.Println()
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// formatError renders an error for the user.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrAuthenticationOrCorruption):
		return ui.ErrorMark() + " Wrong password, or the data file is damaged"

	case errors.Is(err, kerrors.ErrMalformedPayload):
		return ui.ErrorMark() + " The data file opened but its contents are not a valid closet\n" +
			ui.InfoMark() + " " + err.Error()

	case errors.Is(err, kerrors.ErrEmptyPassword):
		return ui.ErrorMark() + " A password is required"

	case errors.Is(err, utils.ErrPassphraseMismatch):
		return ui.ErrorMark() + " Passwords do not match, nothing was saved"

	case errors.Is(err, kerrors.ErrInvalidUsername):
		return ui.ErrorMark() + " " + err.Error()

	case errors.Is(err, kerrors.ErrDrawerNotFound):
		return ui.ErrorMark() + " " + err.Error() + "\n" +
			ui.InfoMark() + " Run " + ui.Code.Sprint("closet drawer list") + " to see your drawers"

	case errors.Is(err, kerrors.ErrItemNotFound):
		return ui.ErrorMark() + " " + err.Error()

	case errors.Is(err, kerrors.ErrDrawerExists):
		return ui.ErrorMark() + " " + err.Error() + "\n" +
			ui.InfoMark() + " Use " + ui.Flag.Sprint("--force") + " to replace its contents"

	case errors.Is(err, kerrors.ErrValidation):
		return ui.ErrorMark() + " " + err.Error()

	case errors.Is(err, kerrors.ErrDataFileExists):
		return ui.ErrorMark() + " " + err.Error() + "\n" +
			ui.InfoMark() + " Use " + ui.Flag.Sprint("--force") + " to replace it"

	case errors.Is(err, kerrors.ErrLegacyFormat):
		return ui.ErrorMark() + " " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidKDFParams):
		return ui.ErrorMark() + " " + err.Error()

	default:
		return ui.ErrorMark() + " " + err.Error()
	}
}

// isUnexpectedError returns true if the error should cause a non-zero exit.
// A failed unlock counts, so scripts using --password-stdin can detect it.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrEmptyPassword),
		errors.Is(err, utils.ErrPassphraseMismatch),
		errors.Is(err, kerrors.ErrInvalidUsername),
		errors.Is(err, kerrors.ErrDrawerNotFound),
		errors.Is(err, kerrors.ErrItemNotFound),
		errors.Is(err, kerrors.ErrDrawerExists),
		errors.Is(err, kerrors.ErrValidation),
		errors.Is(err, kerrors.ErrDataFileExists),
		errors.Is(err, kerrors.ErrLegacyFormat):
		return false
	default:
		return true
	}
}

// reportedError marks an error whose message was already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// reportError prints err and returns it only when it is unexpected.
func reportError(err error) error {
	fmt.Println(formatError(err))
	if isUnexpectedError(err) {
		return reportedError{err}
	}
	return nil
}
