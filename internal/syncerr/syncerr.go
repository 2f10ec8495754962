// Package syncerr classifies the errors that abort a sync run.
package syncerr

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ConfigCode      = "SYNC_CONFIG_INVALID"
	IntegrityCode   = "SYNC_PAGE_INCOMPLETE"
	RemoteWriteCode = "SYNC_PAGE_UPDATE_FAILED"
)

// Config reports a missing or invalid parameter, including splice markers
// that are not present in the page body.
func Config(err error, message string) error {
	return goerrors.Wrap(nonNil(err, message), goerrors.CategoryValidation, message).
		WithTextCode(ConfigCode)
}

// Integrity reports a page response that lacks a field needed for the update.
func Integrity(err error, message string) error {
	return goerrors.Wrap(nonNil(err, message), goerrors.CategoryExternal, message).
		WithTextCode(IntegrityCode)
}

// RemoteWrite reports a failed page update.
func RemoteWrite(err error, message string) error {
	return goerrors.Wrap(nonNil(err, message), goerrors.CategoryExternal, message).
		WithTextCode(RemoteWriteCode)
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// IsRemote reports whether err came from the remote page (incomplete fetch or failed update).
func IsRemote(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryExternal)
}

func nonNil(err error, message string) error {
	if err != nil {
		return err
	}
	return errors.New(message)
}
